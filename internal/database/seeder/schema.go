package seeder

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"skill-swap/internal/database"
)

// EnsureTableColumns fails when table lacks any of columns, naming every
// missing one. It guards seeders against running before migrations.
func EnsureTableColumns(ctx context.Context, db database.DB, table string, columns ...string) error {
	if db == nil {
		return database.ErrNilDB
	}
	if strings.TrimSpace(table) == "" {
		return errors.New("empty table name")
	}

	rows, err := db.Query(ctx,
		`SELECT column_name FROM information_schema.columns
		 WHERE table_schema = current_schema() AND table_name = $1`,
		table,
	)
	if err != nil {
		return fmt.Errorf("inspect %s: %w", table, err)
	}
	defer rows.Close()

	have := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return err
		}
		have[name] = true
	}
	if err := rows.Err(); err != nil {
		return err
	}

	var missing []string
	for _, col := range columns {
		if !have[col] {
			missing = append(missing, table+"."+col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("schema mismatch: missing column %s (run `matcher migrate` first)", strings.Join(missing, ", "))
	}
	return nil
}
