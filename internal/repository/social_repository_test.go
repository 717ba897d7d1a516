package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
)

type rowsAffected int64

func (r rowsAffected) LastInsertId() (int64, error) { return 0, errors.New("not supported") }
func (r rowsAffected) RowsAffected() (int64, error) { return int64(r), nil }

// scriptedExecer answers each ExecContext call with the next scripted result
type scriptedExecer struct {
	results []sql.Result
	errs    []error
	queries []string
}

func (e *scriptedExecer) ExecContext(_ context.Context, query string, _ ...interface{}) (sql.Result, error) {
	i := len(e.queries)
	e.queries = append(e.queries, query)
	if i < len(e.errs) && e.errs[i] != nil {
		return nil, e.errs[i]
	}
	return e.results[i], nil
}

func TestToggleRow(t *testing.T) {
	errDB := errors.New("connection reset")

	tests := []struct {
		name        string
		results     []sql.Result
		errs        []error
		wantActive  bool
		wantErr     bool
		wantQueries []string
	}{
		{
			name:        "adds missing row",
			results:     []sql.Result{rowsAffected(0), rowsAffected(1)},
			wantActive:  true,
			wantQueries: []string{"delete", "insert"},
		},
		{
			name:        "removes existing row",
			results:     []sql.Result{rowsAffected(1)},
			wantQueries: []string{"delete"},
		},
		{
			name:        "concurrent insert already stored the row",
			results:     []sql.Result{rowsAffected(0), rowsAffected(0)},
			wantActive:  true,
			wantQueries: []string{"delete", "insert"},
		},
		{
			name:        "delete fails",
			errs:        []error{errDB},
			wantErr:     true,
			wantQueries: []string{"delete"},
		},
		{
			name:        "insert fails",
			results:     []sql.Result{rowsAffected(0), nil},
			errs:        []error{nil, errDB},
			wantErr:     true,
			wantQueries: []string{"delete", "insert"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ex := &scriptedExecer{results: tt.results, errs: tt.errs}
			active, err := toggleRow(context.Background(), ex, "delete", "insert", "user-1", "item-1")

			if tt.wantErr {
				if !errors.Is(err, errDB) {
					t.Fatalf("err = %v, want wrapped %v", err, errDB)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if active != tt.wantActive {
				t.Errorf("active = %v, want %v", active, tt.wantActive)
			}
			if len(ex.queries) != len(tt.wantQueries) {
				t.Fatalf("queries = %v, want %v", ex.queries, tt.wantQueries)
			}
			for i, q := range tt.wantQueries {
				if ex.queries[i] != q {
					t.Errorf("query %d = %q, want %q", i, ex.queries[i], q)
				}
			}
		})
	}
}
