// Package storage собирает адаптер хранилища по конфигурации: PostgreSQL, SQLite или память
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/m04kA/SMC-CourtBookingService/internal/config"
	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/internal/infra/migrations"
	"github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/dberrors"
	"github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/user"
	"github.com/m04kA/SMC-CourtBookingService/pkg/sqlbuilder"
	"github.com/m04kA/SMC-CourtBookingService/pkg/txmanager"
	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

// BookingRepository общий интерфейс репозиториев бронирований
type BookingRepository interface {
	Create(ctx context.Context, bookings []*domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	ListByDate(ctx context.Context, date types.DateString) ([]*domain.Booking, error)
	ListByUser(ctx context.Context, userID string, from types.DateString) ([]*domain.Booking, error)
	Update(ctx context.Context, b *domain.Booking) error
	Delete(ctx context.Context, ids ...string) error
	DeleteByUser(ctx context.Context, userID string) (int, error)
}

// UserRepository общий интерфейс репозиториев пользователей
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	UpdateStatus(ctx context.Context, id string, status domain.AccountStatus, at time.Time) error
	UpdateRole(ctx context.Context, id string, role domain.Role, at time.Time) error
	Delete(ctx context.Context, id string) error
}

// TransactionManager менеджер транзакций
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

// Storage выбранный адаптер
type Storage struct {
	Bookings  BookingRepository
	Users     UserRepository
	TxManager TransactionManager

	// DB пул соединений SQL-адаптера; nil для памяти
	DB *sql.DB
}

// Close закрывает пул соединений
func (s *Storage) Close() error {
	if s.DB == nil {
		return nil
	}
	return s.DB.Close()
}

// Open открывает хранилище и применяет миграции
func Open(ctx context.Context, cfg *config.Config, log Logger) (*Storage, error) {
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		store := memory.NewStore()
		log.Info("Storage: in-memory (data is lost on restart)")
		return &Storage{Bookings: store.Bookings(), Users: store.Users(), TxManager: store}, nil

	case config.DriverPostgres:
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("ping postgres: %w", err)
		}
		log.Info("Storage: postgres (host=%s, port=%d, db=%s)", cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		return OpenSQL(ctx, db, sqlbuilder.Postgres)

	case config.DriverSQLite:
		db, err := sql.Open("sqlite", cfg.SQLite.Path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		// SQLite допускает одного писателя: с одним соединением транзакции выстраиваются в очередь
		db.SetMaxOpenConns(1)
		log.Info("Storage: sqlite (path=%s)", cfg.SQLite.Path)

		return OpenSQL(ctx, db, sqlbuilder.SQLite)

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// OpenSQL собирает SQL-адаптер поверх готового пула и применяет миграции
// При ошибке пул закрывается
func OpenSQL(ctx context.Context, db *sql.DB, dialect sqlbuilder.Dialect) (*Storage, error) {
	opts := []txmanager.Option{txmanager.WithConflictClassifier(dberrors.IsConflict)}
	if dialect == sqlbuilder.SQLite {
		opts = append(opts,
			txmanager.WithSerializableLevel(sql.LevelDefault),
			txmanager.WithReadOnlyHint(false))
	}
	tm := txmanager.NewTransactionManager(db, opts...)

	migrator, err := migrations.NewMigrator(db, dialect)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := migrator.Up(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	sb := sqlbuilder.MustNew(dialect)
	return &Storage{
		Bookings:  booking.NewRepository(db, sb),
		Users:     user.NewRepository(db, sb),
		TxManager: tm,
		DB:        db,
	}, nil
}
