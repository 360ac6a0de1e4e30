package waitlist

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-WaitlistService/internal/domain"
	"github.com/m04kA/SMC-WaitlistService/pkg/dbmetrics"
	"github.com/m04kA/SMC-WaitlistService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с записями листа ожидания
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория листа ожидания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую запись листа ожидания в статусе pending
func (r *Repository) Create(ctx context.Context, entry *domain.WaitlistEntry) (*domain.WaitlistEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("waitlist_entries").
		Columns(
			"course_id",
			"user_id",
			"customer_name",
			"customer_email",
			"participants",
			"participant_names",
			"auto_book",
			"status",
		).
		Values(
			entry.CourseID,
			entry.UserID,
			entry.CustomerName,
			entry.CustomerEmail,
			entry.Participants,
			pq.Array(entry.ParticipantNames),
			entry.AutoBook,
			domain.WaitlistStatusPending,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&entry.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	entry.Status = domain.WaitlistStatusPending
	entry.CreatedAt = createdAt.Time
	entry.UpdatedAt = updatedAt.Time

	return entry, nil
}

// GetByID получает запись листа ожидания по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.WaitlistEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectEntryColumns().
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	entry, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan entry: %v", ErrScanRow, err)
	}

	return entry, nil
}

// GetPendingByCourse получает pending записи курса в порядке создания
// Порядок created_at ASC - это гарантия FIFO: самый старый запрос обслуживается первым
func (r *Repository) GetPendingByCourse(ctx context.Context, courseID int64) ([]*domain.WaitlistEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectEntryColumns().
		Where(squirrel.Eq{
			"course_id": courseID,
			"status":    domain.WaitlistStatusPending,
		}).
		OrderBy("created_at ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetPendingByCourse - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetPendingByCourse - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// GetByCourse получает записи курса с опциональным фильтром по статусу
func (r *Repository) GetByCourse(ctx context.Context, courseID int64, status *domain.WaitlistStatus) ([]*domain.WaitlistEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := selectEntryColumns().
		Where(squirrel.Eq{"course_id": courseID}).
		OrderBy("created_at ASC, id ASC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCourse - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCourse - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// MarkConverted переводит pending запись в статус converted с привязкой созданного бронирования
// Условие status = 'pending' в WHERE защищает от двойной конвертации:
// если запись уже разрешена конкурентным вызовом, возвращается ErrEntryNotPending
func (r *Repository) MarkConverted(ctx context.Context, id int64, bookingID int64, convertedAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("waitlist_entries").
		Set("status", domain.WaitlistStatusConverted).
		Set("converted_booking_id", bookingID).
		Set("converted_at", convertedAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"id":     id,
			"status": domain.WaitlistStatusPending,
		}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkConverted - build update query: %v", ErrBuildQuery, err)
	}

	return r.execStatusUpdate(ctx, executor, query, args, "MarkConverted")
}

// MarkNotified переводит pending запись в статус notified
// Вызывается только после успешной отправки уведомления о доступности
func (r *Repository) MarkNotified(ctx context.Context, id int64, notifiedAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("waitlist_entries").
		Set("status", domain.WaitlistStatusNotified).
		Set("notified_at", notifiedAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"id":     id,
			"status": domain.WaitlistStatusPending,
		}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkNotified - build update query: %v", ErrBuildQuery, err)
	}

	return r.execStatusUpdate(ctx, executor, query, args, "MarkNotified")
}

// MarkCancelled переводит запись в статус cancelled (отзыв по инициативе клиента)
// Допустимо только из статусов pending и notified
func (r *Repository) MarkCancelled(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	withdrawable := []string{
		string(domain.WaitlistStatusPending),
		string(domain.WaitlistStatusNotified),
	}

	query, args, err := psqlbuilder.Update("waitlist_entries").
		Set("status", domain.WaitlistStatusCancelled).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"id":     id,
			"status": withdrawable,
		}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkCancelled - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkCancelled - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkCancelled - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrCannotWithdraw
	}

	return nil
}

func (r *Repository) execStatusUpdate(ctx context.Context, executor DBExecutor, query string, args []interface{}, op string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrEntryNotPending
	}

	return nil
}

// selectEntryColumns возвращает SELECT builder с полным набором колонок записи
func selectEntryColumns() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"course_id",
		"user_id",
		"customer_name",
		"customer_email",
		"participants",
		"participant_names",
		"auto_book",
		"status",
		"converted_booking_id",
		"converted_at",
		"notified_at",
		"created_at",
		"updated_at",
	).From("waitlist_entries")
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanEntry сканирует одну строку результата в запись листа ожидания
func scanEntry(row rowScanner) (*domain.WaitlistEntry, error) {
	var entry domain.WaitlistEntry
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&entry.ID,
		&entry.CourseID,
		&entry.UserID,
		&entry.CustomerName,
		&entry.CustomerEmail,
		&entry.Participants,
		pq.Array(&entry.ParticipantNames),
		&entry.AutoBook,
		&entry.Status,
		&entry.ConvertedBookingID,
		&entry.ConvertedAt,
		&entry.NotifiedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	entry.CreatedAt = createdAt.Time
	entry.UpdatedAt = updatedAt.Time

	return &entry, nil
}

// scanEntries сканирует результаты запроса в слайс записей
func scanEntries(rows *sql.Rows) ([]*domain.WaitlistEntry, error) {
	entries := make([]*domain.WaitlistEntry, 0)

	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanEntries - scan row: %v", ErrScanRow, err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanEntries - rows error: %v", ErrScanRow, err)
	}

	return entries, nil
}
