package sqlxrepos

import (
	"strconv"
	"strings"

	"github.com/njia-app/njia/core"
)

// sqlxIndexed substitutes the single ? placeholder with the positional $n arg.
func sqlxIndexed(clause string, n int) string {
	return strings.Replace(clause, "?", "$"+strconv.Itoa(n), 1)
}

// orderBy renders an ORDER BY clause from the requested orderings, falling
// back to def.
func orderBy(ordering []core.DBOrdering, def string) string {
	if len(ordering) == 0 {
		if def == "" {
			return ""
		}
		return " ORDER BY " + def
	}
	parts := make([]string, 0, len(ordering))
	for _, ord := range ordering {
		parts = append(parts, ord.String())
	}
	return " ORDER BY " + strings.Join(parts, ", ")
}
