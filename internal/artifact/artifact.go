// Package artifact saves the artifacts downloaded from the backend
// (reports and processed data) into an output directory.
package artifact

import (
	"fmt"
	"os"
	"time"

	"github.com/asdp-project/asdp-cli/internal/fsx"
	"github.com/asdp-project/asdp-cli/internal/model"
	"github.com/pkg/errors"
)

const (
	// ReportPrefix is the file name prefix of reports.
	ReportPrefix = "survey_report"

	// ExportPrefix is the file name prefix of processed datasets.
	ExportPrefix = "processed_data"
)

// TimestampLayout is the layout of the timestamp embedded in file names.
const TimestampLayout = "2006-01-02T15-04-05"

// Timestamp formats t as used in artifact file names.
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// FileName returns the file name for an artifact created at t.
func FileName(prefix string, t time.Time, extension string) string {
	return fmt.Sprintf("%s_%s.%s", prefix, Timestamp(t), extension)
}

// Store saves artifacts. The zero value is invalid; use [NewStore].
type Store struct {
	dir    string
	logger model.Logger
	now    func() time.Time
}

// NewStore creates a [*Store] saving artifacts into dir.
func NewStore(dir string, logger model.Logger) *Store {
	if dir == "" {
		dir = "."
	}
	return &Store{
		dir:    dir,
		logger: model.ValidLoggerOrDefault(logger),
		now:    time.Now,
	}
}

// Dir returns the output directory.
func (s *Store) Dir() string {
	return s.dir
}

// Save writes data into a new timestamped file and returns its path.
// An existing file is never overwritten: we append a counter instead.
// Concurrent calls with the same timestamp get distinct names.
func (s *Store) Save(prefix, extension string, data []byte) (string, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", errors.Wrap(err, "creating output directory")
	}
	name := FileName(prefix, s.now(), extension)
	stem := name[:len(name)-len(extension)-1]
	next := func(idx int) string {
		if idx == 0 {
			return name
		}
		return fmt.Sprintf("%s_%d.%s", stem, idx, extension)
	}
	pathname, err := fsx.WriteFileExclusive(s.dir, next, data, 0644)
	if err != nil {
		return "", errors.Wrap(err, "writing artifact")
	}
	s.logger.Debugf("artifact: saved %s (%d bytes)", pathname, len(data))
	return pathname, nil
}
