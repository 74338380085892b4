package query

import (
	"fmt"
	"strings"

	"cloud.google.com/go/spanner"
)

// Direction represents ORDER BY direction.
type Direction int

const (
	// Asc represents ascending order.
	Asc Direction = iota
	// Desc represents descending order.
	Desc
)

type ordering struct {
	column    string
	direction Direction
}

// Builder constructs SELECT statements for Cloud Spanner. Every method returns a new
// Builder, so a partially built query can be shared and extended safely. Parameter
// names are generated (@p0, @p1, ...) from the order of the WHERE conditions.
type Builder struct {
	table        string
	selectCols   []string
	whereClauses []Condition
	orderings    []ordering
	limitVal     int64
	offsetVal    int64
}

// From creates a new Builder for the specified table.
func From(table string) *Builder {
	return &Builder{
		table:        table,
		selectCols:   []string{},
		whereClauses: []Condition{},
		orderings:    []ordering{},
	}
}

// Select appends columns to retrieve.
func (b *Builder) Select(columns ...string) *Builder {
	nb := b.clone()
	nb.selectCols = append(nb.selectCols, columns...)
	return nb
}

// Where adds a WHERE condition. Multiple calls are combined with AND.
func (b *Builder) Where(condition Condition) *Builder {
	nb := b.clone()
	nb.whereClauses = append(nb.whereClauses, condition)
	return nb
}

// OrderBy appends a sort key. Earlier keys take precedence over later ones.
func (b *Builder) OrderBy(column string, direction Direction) *Builder {
	nb := b.clone()
	nb.orderings = append(nb.orderings, ordering{column: column, direction: direction})
	return nb
}

// Limit sets the maximum number of rows to return.
func (b *Builder) Limit(limit int64) *Builder {
	nb := b.clone()
	nb.limitVal = limit
	return nb
}

// Offset sets the number of rows to skip.
func (b *Builder) Offset(offset int64) *Builder {
	nb := b.clone()
	nb.offsetVal = offset
	return nb
}

// Build constructs the final spanner.Statement with SQL and parameters.
func (b *Builder) Build() spanner.Statement {
	var sql strings.Builder
	params := make(map[string]interface{})

	sql.WriteString("SELECT ")
	if len(b.selectCols) == 0 {
		sql.WriteString("*")
	} else {
		sql.WriteString(strings.Join(b.selectCols, ", "))
	}

	sql.WriteString(" FROM ")
	sql.WriteString(b.table)

	if len(b.whereClauses) > 0 {
		sql.WriteString(" WHERE ")
		whereParts := make([]string, 0, len(b.whereClauses))
		paramIndex := 0
		for _, condition := range b.whereClauses {
			fragment, condParams := condition.SQL(paramIndex)
			whereParts = append(whereParts, fragment)
			for k, v := range condParams {
				params[k] = v
			}
			paramIndex += len(condParams)
		}
		sql.WriteString(strings.Join(whereParts, " AND "))
	}

	if len(b.orderings) > 0 {
		sql.WriteString(" ORDER BY ")
		parts := make([]string, 0, len(b.orderings))
		for _, o := range b.orderings {
			dir := "ASC"
			if o.direction == Desc {
				dir = "DESC"
			}
			parts = append(parts, o.column+" "+dir)
		}
		sql.WriteString(strings.Join(parts, ", "))
	}

	if b.limitVal > 0 {
		sql.WriteString(" LIMIT @limit")
		params["limit"] = b.limitVal
	}

	if b.offsetVal > 0 {
		sql.WriteString(" OFFSET @offset")
		params["offset"] = b.offsetVal
	}

	return spanner.Statement{
		SQL:    sql.String(),
		Params: params,
	}
}

func (b *Builder) clone() *Builder {
	nb := &Builder{
		table:        b.table,
		selectCols:   make([]string, len(b.selectCols)),
		whereClauses: make([]Condition, len(b.whereClauses)),
		orderings:    make([]ordering, len(b.orderings)),
		limitVal:     b.limitVal,
		offsetVal:    b.offsetVal,
	}
	copy(nb.selectCols, b.selectCols)
	copy(nb.whereClauses, b.whereClauses)
	copy(nb.orderings, b.orderings)
	return nb
}

// String returns a human-readable representation for debugging.
func (b *Builder) String() string {
	stmt := b.Build()
	return fmt.Sprintf("SQL: %s\nParams: %v", stmt.SQL, stmt.Params)
}
