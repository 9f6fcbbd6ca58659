package db

import (
	"fmt"
	"strings"
)

// UpdateBuilder collects the columns of a partial UPDATE. Columns that are
// never added keep their stored value.
type UpdateBuilder struct {
	table string
	cols  []string
	args  []interface{}
}

func NewUpdate(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

func (b *UpdateBuilder) Set(col string, v interface{}) *UpdateBuilder {
	b.args = append(b.args, v)
	b.cols = append(b.cols, fmt.Sprintf("%s = $%d", col, len(b.args)))
	return b
}

// ByID renders "UPDATE <table> SET ..., updated_at = NOW() WHERE id = $n
// RETURNING <returning>". updated_at is always touched.
func (b *UpdateBuilder) ByID(id int64, returning string) (string, []interface{}) {
	sets := append(append([]string{}, b.cols...), "updated_at = NOW()")
	args := append(append([]interface{}{}, b.args...), id)
	sql := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d RETURNING %s",
		b.table, strings.Join(sets, ", "), len(args), returning)
	return sql, args
}
