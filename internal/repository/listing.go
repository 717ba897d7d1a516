package repository

import (
	"fmt"
	"strings"

	"github.com/artconnect/artconnect-api/internal/model"
)

const defaultListLimit = 10

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern turns free text into a case-insensitive substring pattern
func likePattern(query string) string {
	return "%" + likeEscaper.Replace(query) + "%"
}

// listingQuery builds the search over an arts or events table: available
// rows only, optional text match on title, description and category,
// optional exact category, newest first.
func listingQuery(table string, filter model.ListFilter) (string, []interface{}) {
	conditions := []string{"is_available = TRUE"}
	args := []interface{}{}

	if q := strings.TrimSpace(filter.Query); q != "" {
		args = append(args, likePattern(q))
		n := len(args)
		conditions = append(conditions, fmt.Sprintf(
			`(title ILIKE $%d ESCAPE '\' OR description ILIKE $%d ESCAPE '\' OR category ILIKE $%d ESCAPE '\')`,
			n, n, n))
	}

	if c := strings.TrimSpace(filter.Category); c != "" {
		args = append(args, c)
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	args = append(args, limit, offset)

	query := fmt.Sprintf(
		"SELECT * FROM %s WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		table,
		strings.Join(conditions, " AND "),
		len(args)-1,
		len(args),
	)

	return query, args
}
