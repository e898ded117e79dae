package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

var (
	// ErrTransaction возвращается при ошибках начала/фиксации транзакции
	ErrTransaction = errors.New("txmanager: transaction error")

	// ErrConflict фиксация не прошла из-за конкурентной транзакции, запрос можно повторить
	ErrConflict = errors.New("txmanager: serialization conflict")
)

// DBExecutor общий интерфейс для *sql.DB и *sql.Tx
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

type txKey struct{}

// GetExecutor возвращает транзакцию из контекста, если она есть, иначе db
func GetExecutor(ctx context.Context, db DBExecutor) DBExecutor {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok && tx != nil {
		return tx
	}
	return db
}

// IsInTransaction проверяет, выполняется ли код внутри транзакции
func IsInTransaction(ctx context.Context) bool {
	tx, ok := ctx.Value(txKey{}).(*sql.Tx)
	return ok && tx != nil
}

// Manager менеджер транзакций поверх *sql.DB
type Manager struct {
	db                *sql.DB
	serializableLevel sql.IsolationLevel
	defaultIsolation  sql.IsolationLevel
	isConflict        func(error) bool
	readOnlyHint      bool
}

// Option настройка менеджера
type Option func(*Manager)

// WithSerializableLevel переопределяет уровень изоляции для DoSerializable
// SQLite не различает уровни изоляции, для него передаём sql.LevelDefault
func WithSerializableLevel(level sql.IsolationLevel) Option {
	return func(m *Manager) {
		m.serializableLevel = level
	}
}

// WithConflictClassifier распознаёт ошибки драйвера, после которых транзакцию можно повторить
func WithConflictClassifier(isConflict func(error) bool) Option {
	return func(m *Manager) {
		m.isConflict = isConflict
	}
}

// WithReadOnlyHint включает или отключает флаг ReadOnly для DoReadOnly
// Для SQLite флаг отключаем: снимок чтения даёт и обычная транзакция
func WithReadOnlyHint(enabled bool) Option {
	return func(m *Manager) {
		m.readOnlyHint = enabled
	}
}

// NewTransactionManager создает менеджер транзакций
func NewTransactionManager(db *sql.DB, opts ...Option) *Manager {
	m := &Manager{
		db:                db,
		serializableLevel: sql.LevelSerializable,
		defaultIsolation:  sql.LevelDefault,
		readOnlyHint:      true,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Do выполняет fn в транзакции с уровнем изоляции по умолчанию
func (m *Manager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: m.defaultIsolation}, fn)
}

// DoSerializable выполняет fn в сериализуемой транзакции
func (m *Manager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: m.serializableLevel}, fn)
}

// DoReadOnly выполняет fn в транзакции только на чтение
func (m *Manager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: m.defaultIsolation, ReadOnly: m.readOnlyHint}, fn)
}

func (m *Manager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) (err error) {
	// Вложенные вызовы переиспользуют внешнюю транзакцию
	if IsInTransaction(ctx) {
		return fn(ctx)
	}

	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: begin: %v", ErrTransaction, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		if m.isConflict != nil && m.isConflict(err) {
			return fmt.Errorf("%w: commit: %v", ErrConflict, err)
		}
		return fmt.Errorf("%w: commit: %v", ErrTransaction, err)
	}

	return nil
}
