// Package postgres provides a store.Repository backed by PostgreSQL via
// pgx/v5. Row scanning uses pgx's struct-by-name mapping; the column set
// is declared explicitly at construction time.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrymomot/viewkit/store"
)

// DB is the subset of pgxpool.Pool the repository needs, kept small so
// tests and transaction wrappers can stand in for a pool.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Column declares one persisted column and how to read its value from an
// entity. The column set must include "id", which identifies rows for
// upserts and deletes.
type Column[T any] struct {
	Name  string
	Value func(entity *T) any
}

// identifier matches the safe subset of SQL identifiers accepted for table
// and column names.
var identifier = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Repository is a PostgreSQL-backed store.Repository.
type Repository[T any] struct {
	db      DB
	table   string
	columns []Column[T]
}

// New creates a repository over the given table. Invalid identifiers or a
// column set without "id" are configuration mistakes and panic at
// construction time.
func New[T any](db DB, table string, columns []Column[T]) *Repository[T] {
	if !identifier.MatchString(table) {
		panic(fmt.Sprintf("postgres: invalid table name %q", table))
	}
	hasID := false
	for _, col := range columns {
		if !identifier.MatchString(col.Name) {
			panic(fmt.Sprintf("postgres: invalid column name %q", col.Name))
		}
		if col.Name == "id" {
			hasID = true
		}
	}
	if !hasID {
		panic(fmt.Sprintf("postgres: table %q column set must include \"id\"", table))
	}
	return &Repository[T]{db: db, table: table, columns: columns}
}

// Get returns the entity whose field equals value, or store.ErrNotFound.
func (r *Repository[T]) Get(ctx context.Context, field string, value any) (*T, error) {
	if !r.hasColumn(field) {
		return nil, fmt.Errorf("postgres: unknown lookup field %q on table %q", field, r.table)
	}
	rows, err := r.db.Query(ctx, r.selectSQL()+fmt.Sprintf(" WHERE %s = $1", field), value)
	if err != nil {
		return nil, err
	}
	entity, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[T])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return entity, nil
}

// Objects returns a queryset over all rows of the table, ordered by id.
func (r *Repository[T]) Objects() store.Queryset[T] {
	return &queryset[T]{repo: r}
}

// Save upserts the entity by its id column.
func (r *Repository[T]) Save(ctx context.Context, entity *T) error {
	names := make([]string, len(r.columns))
	placeholders := make([]string, len(r.columns))
	updates := make([]string, 0, len(r.columns)-1)
	args := make([]any, len(r.columns))
	for i, col := range r.columns {
		names[i] = col.Name
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = col.Value(entity)
		if col.Name != "id" {
			updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", col.Name, col.Name))
		}
	}
	sql := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (id) DO UPDATE SET %s",
		r.table,
		strings.Join(names, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(updates, ", "),
	)
	_, err := r.db.Exec(ctx, sql, args...)
	return err
}

// Delete removes the entity's row by id.
func (r *Repository[T]) Delete(ctx context.Context, entity *T) error {
	var id any
	for _, col := range r.columns {
		if col.Name == "id" {
			id = col.Value(entity)
		}
	}
	_, err := r.db.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", r.table), id)
	return err
}

func (r *Repository[T]) hasColumn(name string) bool {
	for _, col := range r.columns {
		if col.Name == name {
			return true
		}
	}
	return false
}

func (r *Repository[T]) selectSQL() string {
	names := make([]string, len(r.columns))
	for i, col := range r.columns {
		names[i] = col.Name
	}
	return fmt.Sprintf("SELECT %s FROM %s", strings.Join(names, ", "), r.table)
}

// queryset is a lazy all-rows queryset. It carries no cursor state, so
// Clone only needs to copy the handle.
type queryset[T any] struct {
	repo *Repository[T]
}

func (q *queryset[T]) Clone() store.Queryset[T] {
	clone := *q
	return &clone
}

func (q *queryset[T]) Exists(ctx context.Context) (bool, error) {
	var exists bool
	err := q.repo.db.QueryRow(ctx, fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s)", q.repo.table)).Scan(&exists)
	return exists, err
}

func (q *queryset[T]) Count(ctx context.Context) (int, error) {
	var count int
	err := q.repo.db.QueryRow(ctx, fmt.Sprintf("SELECT count(*) FROM %s", q.repo.table)).Scan(&count)
	return count, err
}

func (q *queryset[T]) All(ctx context.Context) ([]T, error) {
	rows, err := q.repo.db.Query(ctx, q.repo.selectSQL()+" ORDER BY id")
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[T])
}
