package dataset

import (
	"errors"
	"io"

	"github.com/xuri/excelize/v2"
	"hermannm.dev/candlestick/table"
	"hermannm.dev/wrap"
)

// ReadXLSX reads the first sheet of an Excel workbook into a table, using the first row as the
// header. Column data types are deduced from the first maxRowsToCheck rows.
func ReadXLSX(file io.Reader, maxRowsToCheck int) (table.Table, error) {
	workbook, err := excelize.OpenReader(file)
	if err != nil {
		return table.Table{}, wrap.Error(err, "failed to open workbook")
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return table.Table{}, errors.New("workbook has no sheets")
	}

	rows, err := workbook.GetRows(sheets[0])
	if err != nil {
		return table.Table{}, wrap.Errorf(err, "failed to read rows from sheet '%s'", sheets[0])
	}
	if len(rows) == 0 {
		return table.Table{}, wrap.Errorf(errors.New("no header row"), "sheet '%s' is empty", sheets[0])
	}

	return table.ParseRecords(rows[0], rows[1:], maxRowsToCheck)
}
