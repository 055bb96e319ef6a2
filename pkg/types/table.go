package types

// Table is an ordered tabular query result. Columns keep the exact order the
// originating SELECT declared; Rows keep the order the query returned them.
type Table struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

func (t *Table) Empty() bool {
	return t == nil || len(t.Rows) == 0
}
