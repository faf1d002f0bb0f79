package postgresql

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/worktrack/worktrack-backend-go/internal/pkg/worktime"
)

func newID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return id.String(), nil
}

// dateArg renders a calendar date for a DATE parameter.
func dateArg(t time.Time) string {
	return t.Format(worktime.DateLayout)
}

// buildUpdate renders "UPDATE table SET ... WHERE id = $n" for the given
// columns. updated_at is always touched.
func buildUpdate(table string, updates map[string]interface{}, id string) (string, []interface{}) {
	cols := make([]string, 0, len(updates))
	for col := range updates {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	setClauses := make([]string, 0, len(cols)+1)
	args := make([]interface{}, 0, len(cols)+1)
	i := 1
	for _, col := range cols {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", col, i))
		args = append(args, updates[col])
		i++
	}
	setClauses = append(setClauses, "updated_at = NOW()")

	sql := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d", table, strings.Join(setClauses, ", "), i)
	return sql, append(args, id)
}
