package query

import "fmt"

// Condition is a WHERE clause fragment using Spanner named parameters.
type Condition interface {
	// SQL returns the fragment and its parameters. paramIndex is the first free
	// parameter number; a condition consumes one index per returned parameter.
	SQL(paramIndex int) (string, map[string]interface{})
}

type eqCondition struct {
	field string
	value interface{}
}

// Eq creates an equality condition: Eq("status", "pending") -> "status = @p0".
func Eq(field string, value interface{}) Condition {
	return &eqCondition{field: field, value: value}
}

func (c *eqCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	paramName := fmt.Sprintf("p%d", paramIndex)
	return fmt.Sprintf("%s = @%s", c.field, paramName), map[string]interface{}{paramName: c.value}
}

type inCondition struct {
	field  string
	values []string
}

// In creates a membership condition over an array parameter:
// In("price_id", ids) -> "price_id IN UNNEST(@p0)".
func In(field string, values []string) Condition {
	return &inCondition{field: field, values: values}
}

func (c *inCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	paramName := fmt.Sprintf("p%d", paramIndex)
	return fmt.Sprintf("%s IN UNNEST(@%s)", c.field, paramName), map[string]interface{}{paramName: c.values}
}

type isNullCondition struct {
	field string
}

// IsNull creates a NULL check: IsNull("deleted_at") -> "deleted_at IS NULL".
func IsNull(field string) Condition {
	return &isNullCondition{field: field}
}

func (c *isNullCondition) SQL(int) (string, map[string]interface{}) {
	return fmt.Sprintf("%s IS NULL", c.field), map[string]interface{}{}
}
