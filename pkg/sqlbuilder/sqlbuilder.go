package sqlbuilder

import (
	"fmt"

	"github.com/Masterminds/squirrel"
)

// Dialect SQL диалект хранилища
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// Builder обёртка над squirrel.StatementBuilder с плейсхолдерами нужного диалекта
type Builder struct {
	dialect Dialect
	sb      squirrel.StatementBuilderType
}

// New создает builder для диалекта
func New(dialect Dialect) (*Builder, error) {
	switch dialect {
	case Postgres:
		return &Builder{dialect: dialect, sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)}, nil
	case SQLite:
		return &Builder{dialect: dialect, sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)}, nil
	default:
		return nil, fmt.Errorf("sqlbuilder: unsupported dialect %q", dialect)
	}
}

// MustNew как New, но паникует на неизвестном диалекте
func MustNew(dialect Dialect) *Builder {
	b, err := New(dialect)
	if err != nil {
		panic(err)
	}
	return b
}

func (b *Builder) Dialect() Dialect {
	return b.dialect
}

// SupportsRowLocks поддерживает ли диалект SELECT ... FOR UPDATE
// SQLite блокирует всю базу на запись, построчных блокировок нет
func (b *Builder) SupportsRowLocks() bool {
	return b.dialect == Postgres
}

func (b *Builder) Select(columns ...string) squirrel.SelectBuilder {
	return b.sb.Select(columns...)
}

func (b *Builder) Insert(table string) squirrel.InsertBuilder {
	return b.sb.Insert(table)
}

func (b *Builder) Update(table string) squirrel.UpdateBuilder {
	return b.sb.Update(table)
}

func (b *Builder) Delete(table string) squirrel.DeleteBuilder {
	return b.sb.Delete(table)
}
