package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/dberrors"
	"github.com/m04kA/SMC-CourtBookingService/pkg/sqlbuilder"
	"github.com/m04kA/SMC-CourtBookingService/pkg/txmanager"
	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

const table = "bookings"

var columns = []string{
	"id",
	"court_id",
	"user_id",
	"user_name",
	"booking_date",
	"hour",
	"type",
	"vm_type",
	"opponent",
	"opponent2",
	"partner",
	"description",
	"created_at",
	"updated_at",
}

// Repository репозиторий бронирований для PostgreSQL и SQLite
type Repository struct {
	db DBExecutor
	sb *sqlbuilder.Builder
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor, sb *sqlbuilder.Builder) *Repository {
	return &Repository{db: db, sb: sb}
}

// Create вставляет бронирования одним запросом: либо все, либо ни одного.
// Занятый слот отклоняется уникальным индексом (court_id, booking_date, hour) → ErrSlotTaken.
func (r *Repository) Create(ctx context.Context, bookings []*domain.Booking) error {
	if len(bookings) == 0 {
		return nil
	}
	executor := txmanager.GetExecutor(ctx, r.db)

	insert := r.sb.Insert(table).Columns(columns...)
	for _, b := range bookings {
		insert = insert.Values(
			b.ID,
			b.CourtID,
			b.UserID,
			b.UserName,
			b.Date,
			b.Hour,
			b.Type,
			b.VMType,
			b.Opponent,
			b.Opponent2,
			b.Partner,
			b.Description,
			b.CreatedAt.UTC(),
			b.UpdatedAt.UTC(),
		)
	}

	query, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return r.mapWriteError("Create", err)
	}

	return nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// ListByDate все бронирования даты, отсортированные по корту и часу.
// Внутри транзакции на PostgreSQL строки блокируются (FOR UPDATE): проверка правил
// и запись выполняются по одному снимку дня.
func (r *Repository) ListByDate(ctx context.Context, date types.DateString) ([]*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := r.sb.Select(columns...).
		From(table).
		Where(squirrel.Eq{"booking_date": date}).
		OrderBy("court_id ASC", "hour ASC")

	if txmanager.IsInTransaction(ctx) && r.sb.SupportsRowLocks() {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ListByUser бронирования пользователя начиная с from (пустая дата - все), по дате и часу
func (r *Repository) ListByUser(ctx context.Context, userID string, from types.DateString) ([]*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := r.sb.Select(columns...).
		From(table).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("booking_date ASC", "hour ASC", "court_id ASC")

	if !from.IsZero() {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_date": from})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByUser - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByUser - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// Update перезаписывает изменяемые поля бронирования (корт, час, тип, атрибуты, updated_at).
// Владелец, дата и created_at не меняются.
func (r *Repository) Update(ctx context.Context, b *domain.Booking) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Update(table).
		Set("court_id", b.CourtID).
		Set("hour", b.Hour).
		Set("type", b.Type).
		Set("vm_type", b.VMType).
		Set("opponent", b.Opponent).
		Set("opponent2", b.Opponent2).
		Set("partner", b.Partner).
		Set("description", b.Description).
		Set("updated_at", b.UpdatedAt.UTC()).
		Where(squirrel.Eq{"id": b.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return r.mapWriteError("Update", err)
	}

	return expectAffected("Update", result, 1)
}

// Delete удаляет бронирования по ID. Если хотя бы одного нет - ErrBookingNotFound
// (вызывающий откатывает транзакцию)
func (r *Repository) Delete(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Delete(table).
		Where(squirrel.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return r.mapWriteError("Delete", err)
	}

	return expectAffected("Delete", result, int64(len(ids)))
}

// DeleteByUser удаляет все бронирования пользователя, возвращает их количество
func (r *Repository) DeleteByUser(ctx context.Context, userID string) (int, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Delete(table).
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByUser - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, r.mapWriteError("DeleteByUser", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByUser - get rows affected: %v", ErrExecQuery, err)
	}

	return int(n), nil
}

func (r *Repository) mapWriteError(op string, err error) error {
	switch {
	case dberrors.IsUniqueViolation(err):
		return fmt.Errorf("%w: %s: %v", ErrSlotTaken, op, err)
	case dberrors.IsConflict(err):
		return fmt.Errorf("%w: %s: %v", ErrConflict, op, err)
	default:
		return fmt.Errorf("%w: %s - execute: %v", ErrExecQuery, op, err)
	}
}

func expectAffected(op string, result sql.Result, want int64) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if n != want {
		return ErrBookingNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&b.ID,
		&b.CourtID,
		&b.UserID,
		&b.UserName,
		&b.Date,
		&b.Hour,
		&b.Type,
		&b.VMType,
		&b.Opponent,
		&b.Opponent2,
		&b.Partner,
		&b.Description,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
