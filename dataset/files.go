package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"hermannm.dev/candlestick/csv"
	"hermannm.dev/candlestick/log"
	"hermannm.dev/candlestick/table"
	"hermannm.dev/wrap"
)

// Files loads datasets from files in a directory, where the dataset name is the file name without
// extension. Supported formats are CSV (.csv), Excel (.xlsx, first sheet) and Parquet (.parquet).
type Files struct {
	fsys fs.FS
	// Number of rows used to deduce column data types for formats without a schema (CSV, XLSX).
	maxRowsToCheck int
}

var supportedExtensions = []string{"csv", "xlsx", "parquet"}

func NewFiles(dir string, maxRowsToCheck int) Files {
	return NewFilesFS(os.DirFS(dir), maxRowsToCheck)
}

func NewFilesFS(fsys fs.FS, maxRowsToCheck int) Files {
	return Files{fsys: fsys, maxRowsToCheck: maxRowsToCheck}
}

func (files Files) LoadDataset(ctx context.Context, name string) (table.Table, error) {
	if err := ctx.Err(); err != nil {
		return table.Table{}, err
	}

	filePath, err := files.findDatasetFile(name)
	if err != nil {
		return table.Table{}, err
	}

	log.Debugf("loading dataset '%s' from file '%s'", name, filePath)

	file, err := files.fsys.Open(filePath)
	if err != nil {
		return table.Table{}, wrap.Errorf(err, "failed to open dataset file '%s'", filePath)
	}
	defer file.Close()

	var data table.Table
	switch strings.ToLower(path.Ext(filePath)) {
	case ".csv":
		data, err = files.readCSV(file)
	case ".xlsx":
		data, err = ReadXLSX(file, files.maxRowsToCheck)
	case ".parquet":
		data, err = readParquetFile(file)
	default:
		err = fmt.Errorf("unsupported file extension '%s'", path.Ext(filePath))
	}
	if err != nil {
		return table.Table{}, wrap.Errorf(err, "failed to read dataset file '%s'", filePath)
	}

	return data, nil
}

func (files Files) findDatasetFile(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\*?[]{}`) || name == "." || name == ".." {
		return "", fmt.Errorf("invalid dataset name '%s'", name)
	}

	pattern := fmt.Sprintf("%s.{%s}", name, strings.Join(supportedExtensions, ","))
	matches, err := doublestar.Glob(files.fsys, pattern)
	if err != nil {
		return "", wrap.Errorf(err, "failed to search for dataset '%s'", name)
	}

	switch len(matches) {
	case 0:
		return "", wrap.Errorf(ErrNotFound, "no file found for dataset '%s'", name)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf(
			"dataset '%s' is ambiguous, found files: %s",
			name,
			strings.Join(matches, ", "),
		)
	}
}

func (files Files) readCSV(file fs.File) (table.Table, error) {
	seeker, ok := file.(io.ReadSeeker)
	if !ok {
		return table.Table{}, errors.New("CSV file does not support seeking")
	}
	return csv.ReadTable(seeker, files.maxRowsToCheck)
}

func readParquetFile(file fs.File) (table.Table, error) {
	readerAt, ok := file.(io.ReaderAt)
	if !ok {
		return table.Table{}, errors.New("parquet file does not support random access")
	}

	stat, err := file.Stat()
	if err != nil {
		return table.Table{}, wrap.Error(err, "failed to stat parquet file")
	}

	return ReadParquet(readerAt, stat.Size())
}
