package course

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-WaitlistService/internal/domain"
	"github.com/m04kA/SMC-WaitlistService/pkg/dbmetrics"
	"github.com/m04kA/SMC-WaitlistService/pkg/psqlbuilder"
)

// Repository репозиторий для чтения курсов и их регулярных слотов
// Курсы и слоты создаются админским инструментарием; сервис их только читает
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория курсов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает курс по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Course, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"title",
		"default_capacity",
		"active",
		"created_at",
		"updated_at",
	).
		From("courses").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var course domain.Course
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&course.ID,
		&course.Title,
		&course.DefaultCapacity,
		&course.Active,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrCourseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan course: %v", ErrScanRow, err)
	}

	course.CreatedAt = createdAt.Time
	course.UpdatedAt = updatedAt.Time

	return &course, nil
}

// GetActiveSlots получает активные регулярные слоты курса
// Порядок фиксированный (start_time ASC, id ASC) - он определяет tie-break
// при поиске первого подходящего слота внутри одного дня
func (r *Repository) GetActiveSlots(ctx context.Context, courseID int64) ([]*domain.RecurringSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"course_id",
		"day_of_week",
		"start_time",
		"end_time",
		"capacity",
		"active",
		"created_at",
		"updated_at",
	).
		From("recurring_slots").
		Where(squirrel.Eq{"course_id": courseID, "active": true}).
		OrderBy("start_time ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveSlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveSlots - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]*domain.RecurringSlot, 0)
	for rows.Next() {
		var slot domain.RecurringSlot
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&slot.ID,
			&slot.CourseID,
			&slot.DayOfWeek,
			&slot.StartTime,
			&slot.EndTime,
			&slot.Capacity,
			&slot.Active,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetActiveSlots - scan slot: %v", ErrScanRow, err)
		}

		slot.CreatedAt = createdAt.Time
		slot.UpdatedAt = updatedAt.Time

		slots = append(slots, &slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetActiveSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}
