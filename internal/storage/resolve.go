// ABOUTME: ID prefix resolution shared by all SQLite tables.
// ABOUTME: Accepts a full UUID or a unique prefix of one.
package storage

import (
	"fmt"
	"strings"
)

// resolveID finds the full ID in table from an ID or prefix.
// table must be a trusted constant.
func (d *DB) resolveID(table, what, idOrPrefix string) (string, error) {
	idOrPrefix = strings.ToLower(strings.TrimSpace(idOrPrefix))
	if idOrPrefix == "" {
		return "", notFound(what, "(empty id)")
	}

	// If it looks like a full UUID, use it directly
	if len(idOrPrefix) == 36 && strings.Count(idOrPrefix, "-") == 4 {
		return idOrPrefix, nil
	}

	// A literal comparison, so % and _ in user input match only themselves.
	query := fmt.Sprintf(`SELECT id FROM %s WHERE substr(id, 1, length(?)) = ? LIMIT 2`, table)
	rows, err := d.db.Query(query, idOrPrefix, idOrPrefix)
	if err != nil {
		return "", fmt.Errorf("resolve %s ID: %w", what, err)
	}
	defer rows.Close()

	var matches []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("scan %s ID: %w", what, err)
		}
		matches = append(matches, id)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("resolve %s ID: %w", what, err)
	}

	if len(matches) == 0 {
		return "", notFound(what, idOrPrefix)
	}
	if len(matches) > 1 {
		return "", fmt.Errorf("%w %s: matches multiple %s records", ErrAmbiguousPrefix, idOrPrefix, what)
	}

	return matches[0], nil
}
