package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/dberrors"
	"github.com/m04kA/SMC-CourtBookingService/pkg/sqlbuilder"
	"github.com/m04kA/SMC-CourtBookingService/pkg/txmanager"
)

const table = "users"

var columns = []string{
	"id",
	"email",
	"first_name",
	"last_name",
	"full_name",
	"role",
	"status",
	"password_hash",
	"created_at",
	"updated_at",
}

// Repository репозиторий пользователей
type Repository struct {
	db txmanager.DBExecutor
	sb *sqlbuilder.Builder
}

// NewRepository создает новый экземпляр репозитория пользователей
func NewRepository(db txmanager.DBExecutor, sb *sqlbuilder.Builder) *Repository {
	return &Repository{db: db, sb: sb}
}

// Create сохраняет пользователя. Email должен быть уже нормализован
func (r *Repository) Create(ctx context.Context, u *domain.User) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Insert(table).
		Columns(columns...).
		Values(
			u.ID,
			u.Email,
			u.FirstName,
			u.LastName,
			u.FullName,
			u.Role,
			u.Status,
			u.PasswordHash,
			u.CreatedAt.UTC(),
			u.UpdatedAt.UTC(),
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return fmt.Errorf("%w: %s", ErrEmailTaken, u.Email)
		}
		return fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetByID получает пользователя по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByEmail получает пользователя по email (без учёта регистра)
func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, "GetByEmail", squirrel.Eq{"email": domain.NormalizeEmail(email)})
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Sqlizer) (*domain.User, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Select(columns...).
		From(table).
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	u, err := scanUser(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan user: %v", ErrScanRow, op, err)
	}

	return u, nil
}

// List все пользователи, новые первыми
func (r *Repository) List(ctx context.Context) ([]*domain.User, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Select(columns...).
		From(table).
		OrderBy("created_at DESC", "email ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return users, nil
}

// UpdateStatus меняет статус учётной записи
func (r *Repository) UpdateStatus(ctx context.Context, id string, status domain.AccountStatus, at time.Time) error {
	return r.update(ctx, "UpdateStatus", id, map[string]interface{}{"status": status, "updated_at": at.UTC()})
}

// UpdateRole меняет роль
func (r *Repository) UpdateRole(ctx context.Context, id string, role domain.Role, at time.Time) error {
	return r.update(ctx, "UpdateRole", id, map[string]interface{}{"role": role, "updated_at": at.UTC()})
}

func (r *Repository) update(ctx context.Context, op, id string, set map[string]interface{}) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Update(table).
		SetMap(set).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	return expectOne(op, result)
}

// Delete удаляет пользователя. Бронирования удаляет вызывающий в той же транзакции
func (r *Repository) Delete(ctx context.Context, id string) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	return expectOne("Delete", result)
}

func expectOne(op string, result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var u domain.User
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.FirstName,
		&u.LastName,
		&u.FullName,
		&u.Role,
		&u.Status,
		&u.PasswordHash,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	u.CreatedAt = createdAt.Time
	u.UpdatedAt = updatedAt.Time

	return &u, nil
}
