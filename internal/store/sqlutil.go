package store

import (
	"database/sql"
	"fmt"
)

// checkRowsErr checks for errors that may have occurred during row iteration.
// This should be called after a for rows.Next() loop to catch any iteration errors
// that rows.Next() doesn't report directly.
func checkRowsErr(rows *sql.Rows) error {
	if err := rows.Err(); err != nil {
		return fmt.Errorf("rows iteration error: %w", err)
	}
	return nil
}
