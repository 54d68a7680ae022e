package sqlite

import (
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/postcard"
)

// Preset timestamps are stored as UTC RFC3339 text with nanoseconds so rows
// sort and compare lexically.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(value, column string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("presets.%s: %w", column, err)
	}
	return t, nil
}

// presetQuery builds the SELECT for filter, ordered by name. SQLite only
// accepts OFFSET after a LIMIT, so an offset without a limit uses LIMIT -1.
func presetQuery(filter postcard.PresetFilter) (string, []any) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + presetColumns + " FROM presets WHERE 1=1")
	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Name != nil {
		query.WriteString(" AND name = ?")
		args = append(args, strings.TrimSpace(*filter.Name))
	}
	query.WriteString(" ORDER BY name ASC")

	switch {
	case filter.Limit > 0:
		query.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	case filter.Offset > 0:
		query.WriteString(" LIMIT -1")
	}
	if filter.Offset > 0 {
		query.WriteString(" OFFSET ?")
		args = append(args, filter.Offset)
	}

	return query.String(), args
}
