package writer

import (
	"github.com/parquet-go/parquet-go"
	"github.com/pkg/errors"
)

// WriteParquet writes rows as a single Parquet file whose schema is derived
// from the parquet struct tags of T.
func WriteParquet[T any](path string, rows []T) error {
	if err := parquet.WriteFile(path, rows, parquet.Compression(&parquet.Snappy)); err != nil {
		return errors.Wrapf(err, "write parquet %s", path)
	}
	return nil
}

// ReadParquet loads every row of a file written by WriteParquet.
func ReadParquet[T any](path string) ([]T, error) {
	rows, err := parquet.ReadFile[T](path)
	if err != nil {
		return nil, errors.Wrapf(err, "read parquet %s", path)
	}
	return rows, nil
}
