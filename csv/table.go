package csv

import (
	"io"

	"hermannm.dev/candlestick/table"
	"hermannm.dev/wrap"
)

// ReadTable reads a CSV file with a header row into a table. Column data types are deduced from
// the first maxRowsToCheck rows (all rows if maxRowsToCheck <= 0).
func ReadTable(csvFile io.ReadSeeker, maxRowsToCheck int) (table.Table, error) {
	reader, err := NewReader(csvFile, false)
	if err != nil {
		return table.Table{}, err
	}

	header, err := reader.ReadHeaderRow()
	if err != nil {
		return table.Table{}, wrap.Error(err, "failed to read CSV column names from header row")
	}

	records, err := reader.ReadAll()
	if err != nil {
		return table.Table{}, err
	}

	data, err := table.ParseRecords(header, records, maxRowsToCheck)
	if err != nil {
		return table.Table{}, wrap.Error(err, "failed to parse CSV data")
	}

	return data, nil
}

// ReadAll reads the remaining rows of the file.
func (reader *Reader) ReadAll() (rows [][]string, err error) {
	for {
		row, _, done, err := reader.ReadRow()
		if done {
			return rows, nil
		}
		if err != nil {
			return nil, wrap.Errorf(err, "failed to read row %d of CSV file", reader.currentRow)
		}

		rows = append(rows, row)
	}
}
