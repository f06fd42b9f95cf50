package writer

import "fmt"

type Format int

const (
	CSV Format = iota
	JSON
	Parquet
)

func (f Format) String() string {
	switch f {
	case CSV:
		return "csv"
	case JSON:
		return "json"
	case Parquet:
		return "parquet"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

// Ext is the file extension including the leading dot.
func (f Format) Ext() string {
	return "." + f.String()
}

// FileName joins a dataset name with the extension of f.
func FileName(dataset string, f Format) string {
	return dataset + f.Ext()
}
