package infrastructure

import (
	"fmt"
	"strings"
)

// searchExpressions are the renderings of a joined transaction row (t) and
// its category (c) that a free-text search is matched against.
var searchExpressions = []string{
	"(t.amount_cents::numeric / 100)::numeric(20, 2)::text",
	"t.amount_cents::text",
	"c.category",
	"t.description",
	"to_char(t.transaction_date, 'YYYY-MM-DD')",
	"to_char(t.transaction_date, 'MM/DD/YYYY')",
	"to_char(t.transaction_date, 'DD/MM/YYYY')",
	"to_char(t.transaction_date, 'FMMonth DD, YYYY')",
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// AddSearchFilter restricts q to rows where query is a case-insensitive
// substring of any search expression. A blank query adds nothing. The pattern
// is bound once and shared by every branch; a NULL description yields NULL
// for its branch and so never matches on its own.
func AddSearchFilter(q *SelectQuery, query string) {
	query = strings.TrimSpace(query)
	if query == "" {
		return
	}

	p := q.Arg("%" + escapeLike(query) + "%")
	conds := make([]string, len(searchExpressions))
	for i, expr := range searchExpressions {
		conds[i] = fmt.Sprintf(`%s ILIKE %s ESCAPE '\'`, expr, p)
	}
	q.AndWhere("(" + strings.Join(conds, " OR ") + ")")
}
