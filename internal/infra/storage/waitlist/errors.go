package waitlist

import "errors"

var (
	// ErrEntryNotFound возвращается, когда запись листа ожидания не найдена
	ErrEntryNotFound = errors.New("waitlist.repository: entry not found")

	// ErrEntryNotPending возвращается при попытке перевести в терминальный статус
	// запись, которая уже не находится в статусе pending
	// Защищает от двойной конвертации при конкурентных вызовах обработки
	ErrEntryNotPending = errors.New("waitlist.repository: entry is not pending")

	// ErrCannotWithdraw возвращается при попытке отозвать уже разрешенную запись
	ErrCannotWithdraw = errors.New("waitlist.repository: entry cannot be withdrawn")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("waitlist.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("waitlist.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("waitlist.repository: failed to scan row")
)
