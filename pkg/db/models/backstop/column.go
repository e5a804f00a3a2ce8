package backstop

import (
	"fmt"
	"strings"
)

// ColumnDef defines a single ClickHouse column.
type ColumnDef struct {
	Name  string
	Type  string
	Codec string // optional compression codec, e.g. "ZSTD(1)"
}

// SQL returns the column definition for CREATE TABLE statements.
// Example: "tx_hash String CODEC(ZSTD(1))"
func (c ColumnDef) SQL() string {
	if c.Codec != "" {
		return fmt.Sprintf("%s %s CODEC(%s)", c.Name, c.Type, c.Codec)
	}
	return fmt.Sprintf("%s %s", c.Name, c.Type)
}

// ColumnsToSchemaSQL joins column definitions for a CREATE TABLE body.
func ColumnsToSchemaSQL(columns []ColumnDef) string {
	defs := make([]string, 0, len(columns))
	for _, c := range columns {
		defs = append(defs, c.SQL())
	}
	return strings.Join(defs, ",\n\t\t\t")
}

// ColumnNames returns the bare column names, in order.
func ColumnNames(columns []ColumnDef) []string {
	names := make([]string, 0, len(columns))
	for _, c := range columns {
		names = append(names, c.Name)
	}
	return names
}
