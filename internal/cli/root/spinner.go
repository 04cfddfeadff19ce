package root

import (
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
)

// WithSpinner runs fx while showing a spinner with the given description.
func WithSpinner(description string, fx func() error) error {
	bar := progressbar.NewOptions(
		-1,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
	done := make(chan error, 1)
	go func() {
		done <- fx()
	}()
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case err := <-done:
			bar.Finish()
			return err
		case <-ticker.C:
			bar.Add(1)
		}
	}
}
