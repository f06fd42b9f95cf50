package writer

import (
	"bufio"
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// WriteJSON writes rows as a single indented JSON array.
func WriteJSON[T any](path string, rows []T) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "close %s", path)
		}
	}()

	if rows == nil {
		rows = []T{}
	}
	bw := bufio.NewWriterSize(f, bufferSize)
	enc := json.NewEncoder(bw)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rows); err != nil {
		return errors.Wrap(err, "encode json")
	}
	return errors.Wrap(bw.Flush(), "flush json")
}
