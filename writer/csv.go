package writer

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"cityflow/datagen/models"

	"github.com/pkg/errors"
)

const bufferSize = 1 << 20

// WriteCSV writes a header line followed by one line per row, truncating any
// existing file at path.
func WriteCSV[T models.Row](path string, columns []string, rows []T) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "close %s", path)
		}
	}()

	bw := bufio.NewWriterSize(f, bufferSize)
	w := csv.NewWriter(bw)
	if err := w.Write(columns); err != nil {
		return errors.Wrap(err, "write csv header")
	}

	record := make([]string, len(columns))
	for i, row := range rows {
		values := row.Values()
		if len(values) != len(columns) {
			return errors.Errorf("row %d has %d values, want %d", i, len(values), len(columns))
		}
		for j, v := range values {
			record[j] = FormatValue(v)
		}
		if err := w.Write(record); err != nil {
			return errors.Wrapf(err, "write csv row %d", i)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return errors.Wrap(err, "flush csv")
	}
	return errors.Wrap(bw.Flush(), "flush csv")
}

// FormatValue renders a single cell. Floats use the shortest representation
// that round-trips.
func FormatValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.Format(models.TimestampLayout)
	case nil:
		return ""
	default:
		return fmt.Sprint(x)
	}
}
