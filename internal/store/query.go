package store

import (
	"database/sql"
	"strings"
)

// notInCondition builds an "id NOT IN (…)" condition and its args for the
// given local keys. An empty key list yields "1 = 1", which matches every
// row — the complement of nothing is everything.
func notInCondition(keep []int64) (string, []any) {
	if len(keep) == 0 {
		return "1 = 1", nil
	}

	args := make([]any, len(keep))
	for i, id := range keep {
		args[i] = id
	}

	return `id NOT IN (?` + strings.Repeat(", ?", len(keep)-1) + `)`, args
}

// collectIDs drains a single-column id query into a slice.
func collectIDs(rows *sql.Rows, err error) ([]int64, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64

	for rows.Next() {
		var id int64
		if scanErr := rows.Scan(&id); scanErr != nil {
			return nil, scanErr
		}

		ids = append(ids, id)
	}

	return ids, rows.Err()
}
