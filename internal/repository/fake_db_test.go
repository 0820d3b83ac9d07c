package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"reflect"

	"skill-swap/internal/database"
)

type fakeRows struct {
	data [][]any
	i    int
	err  error
}

func (r *fakeRows) Close()     {}
func (r *fakeRows) Next() bool { r.i++; return r.i <= len(r.data) }
func (r *fakeRows) Err() error { return r.err }
func (r *fakeRows) Scan(dest ...any) error {
	return assign(r.data[r.i-1], dest)
}

type fakeRow struct {
	vals []any
	err  error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	return assign(r.vals, dest)
}

func assign(vals []any, dest []any) error {
	if len(vals) != len(dest) {
		return fmt.Errorf("scan: got %d values for %d destinations", len(vals), len(dest))
	}
	for i, d := range dest {
		dv := reflect.ValueOf(d).Elem()
		if vals[i] == nil {
			dv.Set(reflect.Zero(dv.Type()))
			continue
		}
		v := reflect.ValueOf(vals[i])
		if !v.Type().AssignableTo(dv.Type()) {
			return fmt.Errorf("scan: cannot assign %s to %s", v.Type(), dv.Type())
		}
		dv.Set(v)
	}
	return nil
}

type fakeDB struct {
	rows     [][]any
	queryErr error
	row      fakeRow

	queries []string
	args    [][]any
}

func (f *fakeDB) record(q string, args []any) {
	f.queries = append(f.queries, q)
	f.args = append(f.args, args)
}

func (f *fakeDB) Ping(context.Context) error { return nil }
func (f *fakeDB) Close() error               { return nil }
func (f *fakeDB) Exec(_ context.Context, q string, args ...any) (int64, error) {
	f.record(q, args)
	return 1, nil
}
func (f *fakeDB) Query(_ context.Context, q string, args ...any) (database.Rows, error) {
	f.record(q, args)
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return &fakeRows{data: f.rows}, nil
}
func (f *fakeDB) QueryRow(_ context.Context, q string, args ...any) database.Row {
	f.record(q, args)
	return f.row
}
func (f *fakeDB) Begin(context.Context) (database.Tx, error) { return nil, errors.New("not supported") }
func (f *fakeDB) SQLDB() *sql.DB                             { return nil }
