package table

import (
	"fmt"

	"hermannm.dev/wrap"
)

// Table is an ordered collection of rows over a typed schema. Tables are never modified after
// construction: Filter and Project return new tables that share row storage with the original.
type Table struct {
	columns []Column
	rows    [][]any
}

type Column struct {
	Name     string   `json:"name"`
	DataType DataType `json:"dataType"`
	Optional bool     `json:"optional"`
}

// Mask holds one inclusion flag per row of a table.
type Mask []bool

// New creates a table from the given columns and rows. Each row must have one cell per column,
// holding a value of the column's data type or nil. Cells are converted to their canonical types
// (int64 for INTEGER, float64 for FLOAT, string for TEXT/UUID, time.Time for TIMESTAMP).
func New(columns []Column, rows [][]any) (Table, error) {
	if err := validateColumns(columns); err != nil {
		return Table{}, err
	}

	normalizedRows := make([][]any, 0, len(rows))
	for i, row := range rows {
		if len(row) != len(columns) {
			return Table{}, fmt.Errorf(
				"row %d has %d fields, but table has %d columns",
				i,
				len(row),
				len(columns),
			)
		}

		normalized := make([]any, len(row))
		for j, value := range row {
			var err error
			normalized[j], err = normalizeValue(columns[j].DataType, value)
			if err != nil {
				return Table{}, wrap.Errorf(
					err,
					"invalid value in row %d for column '%s'",
					i,
					columns[j].Name,
				)
			}
		}

		normalizedRows = append(normalizedRows, normalized)
	}

	return Table{columns: columns, rows: normalizedRows}, nil
}

func validateColumns(columns []Column) error {
	var errs []error
	seen := make(map[string]struct{}, len(columns))

	for i, column := range columns {
		if column.Name == "" {
			errs = append(errs, fmt.Errorf("column %d has no name", i))
		}
		if _, duplicate := seen[column.Name]; duplicate {
			errs = append(errs, fmt.Errorf("duplicate column name '%s'", column.Name))
		}
		seen[column.Name] = struct{}{}

		if !column.DataType.IsValid() {
			errs = append(errs, fmt.Errorf("invalid data type for column '%s'", column.Name))
		}
	}

	if len(errs) != 0 {
		return wrap.Errors("invalid table columns", errs...)
	}
	return nil
}

func (table Table) Len() int {
	return len(table.rows)
}

func (table Table) Columns() []Column {
	columns := make([]Column, len(table.columns))
	copy(columns, table.columns)
	return columns
}

// Row returns the cells of the row at the given index, ordered like Columns. The returned slice
// must not be modified.
func (table Table) Row(index int) []any {
	return table.rows[index]
}

func (table Table) Column(name string) (column Column, index int, err error) {
	for i, column := range table.columns {
		if column.Name == name {
			return column, i, nil
		}
	}

	return Column{}, 0, fmt.Errorf("column '%s' not found in table", name)
}

// Values returns the cells of the named column, one per row.
func (table Table) Values(columnName string) ([]any, Column, error) {
	column, index, err := table.Column(columnName)
	if err != nil {
		return nil, Column{}, err
	}

	values := make([]any, len(table.rows))
	for i, row := range table.rows {
		values[i] = row[index]
	}
	return values, column, nil
}

// Filter returns a table with only the rows whose mask entry is true. Rows beyond the length of
// the mask are excluded.
func (table Table) Filter(mask Mask) Table {
	rows := make([][]any, 0, len(table.rows))
	for i, row := range table.rows {
		if i < len(mask) && mask[i] {
			rows = append(rows, row)
		}
	}

	return Table{columns: table.columns, rows: rows}
}

// Project returns a table with only the named columns, in the given order.
func (table Table) Project(columnNames ...string) (Table, error) {
	columns := make([]Column, 0, len(columnNames))
	indices := make([]int, 0, len(columnNames))

	for _, name := range columnNames {
		column, index, err := table.Column(name)
		if err != nil {
			return Table{}, err
		}
		columns = append(columns, column)
		indices = append(indices, index)
	}

	if err := validateColumns(columns); err != nil {
		return Table{}, wrap.Error(err, "invalid projection")
	}

	rows := make([][]any, len(table.rows))
	for i, row := range table.rows {
		projected := make([]any, len(indices))
		for j, index := range indices {
			projected[j] = row[index]
		}
		rows[i] = projected
	}

	return Table{columns: columns, rows: rows}, nil
}

// And combines two masks of equal length with logical AND.
func And(mask1 Mask, mask2 Mask) Mask {
	combined := make(Mask, min(len(mask1), len(mask2)))
	for i := range combined {
		combined[i] = mask1[i] && mask2[i]
	}
	return combined
}
