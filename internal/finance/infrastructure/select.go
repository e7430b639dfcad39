package infrastructure

import (
	"strconv"
	"strings"
)

// SelectQuery assembles a SELECT statement with positional ($n) arguments.
// Values are only ever bound through Arg; SQL text comes from this package.
type SelectQuery struct {
	Columns []string
	From    string
	Where   []string
	GroupBy string
	OrderBy string
	Limit   int
	Offset  int

	args []interface{}
}

// Arg binds v and returns its placeholder.
func (q *SelectQuery) Arg(v interface{}) string {
	q.args = append(q.args, v)
	return "$" + strconv.Itoa(len(q.args))
}

func (q *SelectQuery) AndWhere(cond string) {
	q.Where = append(q.Where, cond)
}

// Clone copies q so that derived queries never share argument storage.
func (q SelectQuery) Clone() SelectQuery {
	c := q
	c.Columns = append([]string(nil), q.Columns...)
	c.Where = append([]string(nil), q.Where...)
	c.args = append([]interface{}(nil), q.args...)
	return c
}

// SQL renders the statement and its arguments. LIMIT and OFFSET are bound as
// arguments when set.
func (q SelectQuery) SQL() (string, []interface{}) {
	c := q.Clone()

	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(strings.Join(c.Columns, ", "))
	if len(c.From) > 0 {
		b.WriteString(" FROM ")
		b.WriteString(c.From)
	}
	if len(c.Where) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(c.Where, " AND "))
	}
	if len(c.GroupBy) > 0 {
		b.WriteString(" GROUP BY ")
		b.WriteString(c.GroupBy)
	}
	if len(c.OrderBy) > 0 {
		b.WriteString(" ORDER BY ")
		b.WriteString(c.OrderBy)
	}
	if c.Limit > 0 {
		b.WriteString(" LIMIT ")
		b.WriteString(c.Arg(c.Limit))
	}
	if c.Offset > 0 {
		b.WriteString(" OFFSET ")
		b.WriteString(c.Arg(c.Offset))
	}
	return b.String(), c.args
}
