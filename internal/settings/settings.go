// Package settings contains the client settings: where the backend
// is, how to talk to it, and where to save artifacts.
package settings

import (
	"net/url"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/asdp-project/asdp-cli"
	"github.com/asdp-project/asdp-cli/internal/fsx"
	"github.com/asdp-project/asdp-cli/internal/hujsonx"
	"github.com/asdp-project/asdp-cli/internal/pipeline"
	"github.com/pkg/errors"
)

const (
	// EnvAPIBaseURL overrides the backend base URL.
	EnvAPIBaseURL = "ASDP_API_BASE_URL"

	// EnvOutputDir overrides the output directory.
	EnvOutputDir = "ASDP_OUTPUT_DIR"

	// EnvTimeoutSeconds overrides the per-call timeout.
	EnvTimeoutSeconds = "ASDP_TIMEOUT_SECONDS"
)

// Settings for the asdp client
type Settings struct {
	// Private settings
	Comment string `json:"_,omitempty"`

	APIBaseURL      string `json:"api_base_url"`
	Authorization   string `json:"authorization,omitempty"`
	UserAgent       string `json:"user_agent"`
	TimeoutSeconds  int64  `json:"timeout_seconds"`
	OutputDir       string `json:"output_dir"`
	LogBodies       bool   `json:"log_bodies"`
	ExtendedPayload bool   `json:"extended_payload"`

	mutex sync.Mutex
	path  string
}

// New returns the default settings.
func New() *Settings {
	s := &Settings{}
	s.Default()
	return s
}

// Default fills the empty fields with their default values.
func (s *Settings) Default() {
	if s.APIBaseURL == "" {
		s.APIBaseURL = pipeline.DefaultBaseURL
	}
	if s.UserAgent == "" {
		s.UserAgent = asdp.UserAgent
	}
	if s.OutputDir == "" {
		s.OutputDir = "."
	}
}

// Validate the settings
func (s *Settings) Validate() error {
	URL, err := url.Parse(s.APIBaseURL)
	if err != nil {
		return errors.Wrap(err, "api_base_url")
	}
	if URL.Scheme != "http" && URL.Scheme != "https" {
		return errors.Errorf("api_base_url: unsupported scheme: %q", URL.Scheme)
	}
	if URL.Host == "" {
		return errors.New("api_base_url: missing host")
	}
	if s.TimeoutSeconds < 0 {
		return errors.Errorf("timeout_seconds: must not be negative: %d", s.TimeoutSeconds)
	}
	return nil
}

// Timeout returns the per-call timeout. Zero means no timeout.
func (s *Settings) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// Path returns the path from which we read the settings, if any.
func (s *Settings) Path() string {
	return s.path
}

// ApplyEnv overrides settings using the environment variables
// returned by lookup (e.g., [os.LookupEnv]).
func (s *Settings) ApplyEnv(lookup func(key string) (string, bool)) error {
	if value, found := lookup(EnvAPIBaseURL); found && value != "" {
		s.APIBaseURL = value
	}
	if value, found := lookup(EnvOutputDir); found && value != "" {
		s.OutputDir = value
	}
	if value, found := lookup(EnvTimeoutSeconds); found && value != "" {
		seconds, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return errors.Wrap(err, EnvTimeoutSeconds)
		}
		s.TimeoutSeconds = seconds
	}
	return s.Validate()
}

// Write the settings file in HuJSON to the path
func (s *Settings) Write() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.path == "" {
		return errors.New("settings file path is empty")
	}
	data, err := hujsonx.MarshalIndent(s)
	if err != nil {
		return errors.Wrap(err, "serializing settings")
	}
	if err := fsx.WriteFileAtomic(s.path, data, 0600); err != nil {
		return errors.Wrap(err, "writing settings")
	}
	return nil
}

// Parse returns the settings from HuJSON bytes.
func Parse(b []byte) (*Settings, error) {
	s := &Settings{}
	if err := hujsonx.Unmarshal(b, s); err != nil {
		return nil, errors.Wrap(err, "parsing hujson")
	}
	s.Default()
	if err := s.Validate(); err != nil {
		return nil, errors.Wrap(err, "validating")
	}
	return s, nil
}

// Read reads the settings from path. A missing file is not an
// error: in such a case we return the default settings.
func Read(path string) (*Settings, error) {
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		s := New()
		s.path = path
		return s, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading file")
	}
	s, err := Parse(b)
	if err != nil {
		return nil, errors.Wrap(err, "parsing settings")
	}
	s.path = path
	return s, nil
}
