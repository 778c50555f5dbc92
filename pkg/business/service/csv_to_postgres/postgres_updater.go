package csv_to_postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Максимальное количество записей в одной пачке -- чтобы не упереться
// в лимит параметров запроса.
const maxBatchSize = 500

// PostgresUpdater заливает строки CSV в таблицу батчами с upsert по
// конфликтной колонке.
type PostgresUpdater struct {
	DB          *sql.DB
	Schema      string
	TableName   string
	Columns     []string
	ConflictCol string
}

func NewPostgresUpdater(db *sql.DB, schema, table string, columns []string, conflictCol string) *PostgresUpdater {
	return &PostgresUpdater{
		DB:          db,
		Schema:      schema,
		TableName:   table,
		Columns:     columns,
		ConflictCol: conflictCol,
	}
}

func (u *PostgresUpdater) UpdateData(ctx context.Context, rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}
	numCols := len(u.Columns)

	for start := 0; start < len(rows); start += maxBatchSize {
		end := start + maxBatchSize
		if end > len(rows) {
			end = len(rows)
		}
		batch := rows[start:end]

		valueStrings := make([]string, 0, len(batch))
		args := make([]interface{}, 0, len(batch)*numCols)
		for i, row := range batch {
			placeholders := make([]string, numCols)
			for j := 0; j < numCols; j++ {
				placeholders[j] = fmt.Sprintf("$%d", i*numCols+j+1)
				args = append(args, row[j])
			}
			valueStrings = append(valueStrings, "("+strings.Join(placeholders, ", ")+")")
		}

		updates := make([]string, 0, numCols)
		for _, col := range u.Columns {
			if col == u.ConflictCol {
				continue
			}
			updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", col, col))
		}

		query := fmt.Sprintf(`
			INSERT INTO %s.%s (%s)
			VALUES
				%s
			ON CONFLICT (%s) DO UPDATE
			SET %s;
		`,
			u.Schema, u.TableName,
			strings.Join(u.Columns, ", "),
			strings.Join(valueStrings, ", "),
			u.ConflictCol,
			strings.Join(updates, ", "))

		if _, err := u.DB.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("batch upsert into %s.%s failed: %w", u.Schema, u.TableName, err)
		}
	}
	return nil
}
