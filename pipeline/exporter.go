package pipeline

import "context"

// Exporter ships a generated table somewhere besides the output directory.
type Exporter interface {
	Name() string
	Export(ctx context.Context, t Table) error
	Close() error
}
