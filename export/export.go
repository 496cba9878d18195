package export

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TimestampLayout formats the export time in file names.
const TimestampLayout = "20060102_150405"

// Exporter stores the spreadsheet at src under key and returns where it
// was stored.
type Exporter interface {
	Export(ctx context.Context, key, src string, at time.Time) (string, error)
}

// FileName returns the export name for key at time at.
func FileName(key string, at time.Time) string {
	return fmt.Sprintf("%s_%s.xlsx", key, at.Format(TimestampLayout))
}

// CollisionName returns the fallback export name used when FileName is taken.
func CollisionName(key string, at time.Time) string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("%s_%s_%s.xlsx", key, at.Format(TimestampLayout), hex[:6])
}

type multi []Exporter

// Multi exports to every exporter in order and returns the first
// destination. All exporters run even when one fails; the errors are joined.
func Multi(exporters ...Exporter) Exporter {
	return multi(exporters)
}

func (m multi) Export(ctx context.Context, key, src string, at time.Time) (string, error) {
	var (
		first string
		errs  []error
	)
	for _, e := range m {
		dest, err := e.Export(ctx, key, src, at)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if first == "" {
			first = dest
		}
	}
	return first, errors.Join(errs...)
}
