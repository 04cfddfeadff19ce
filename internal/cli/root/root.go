package root

import (
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/apex/log"
	"github.com/asdp-project/asdp-cli"
	"github.com/asdp-project/asdp-cli/internal/artifact"
	"github.com/asdp-project/asdp-cli/internal/log/handlers/cli"
	"github.com/asdp-project/asdp-cli/internal/notify"
	"github.com/asdp-project/asdp-cli/internal/output"
	"github.com/asdp-project/asdp-cli/internal/pipeline"
	"github.com/asdp-project/asdp-cli/internal/settings"
	"github.com/asdp-project/asdp-cli/internal/workflow"
)

// Cmd is the root command
var Cmd = kingpin.New("asdp", "Survey data processing client")

// Command is syntax sugar for defining sub-commands
var Command = Cmd.Command

// Init should be called by all subcommand that care to have a Session instance
var Init func() (*Session, error)

// Session contains what sub-commands need to drive the workflow.
type Session struct {
	// Settings contains the effective settings.
	Settings *settings.Settings

	// Client is the backend client.
	Client *pipeline.Client

	// Artifacts saves the downloaded artifacts.
	Artifacts *artifact.Store

	// Workflow is the workflow orchestrator.
	Workflow *workflow.Orchestrator
}

// Close releases the resources used by the session.
func (s *Session) Close() error {
	return s.Workflow.Close()
}

func init() {
	settingsPath := Cmd.Flag("settings", "Set a custom settings file path").String()
	verbose := Cmd.Flag("verbose", "Enable verbose log output.").Short('v').Bool()
	baseURL := Cmd.Flag("base-url", "Override the backend base URL").String()
	outputDir := Cmd.Flag("output-dir", "Override the directory where artifacts are saved").String()
	metricsAddress := Cmd.Flag("metrics-address", "Serve prometheus metrics at this address (e.g., 127.0.0.1:9090)").String()

	Cmd.PreAction(func(ctx *kingpin.ParseContext) error {
		log.SetHandler(cli.Default)
		if *verbose {
			log.SetLevel(log.DebugLevel)
			log.Debugf("asdp version %s", asdp.Version)
		}
		if *metricsAddress != "" {
			startMetricsServer(*metricsAddress)
		}

		Init = func() (*Session, error) {
			path := *settingsPath
			if path == "" {
				var err error
				path, err = asdp.DefaultSettingsPath()
				if err != nil {
					return nil, err
				}
			}

			log.Debugf("Reading settings file from %s", path)
			s, err := settings.Read(path)
			if err != nil {
				return nil, err
			}
			if err := s.ApplyEnv(os.LookupEnv); err != nil {
				return nil, err
			}
			if *baseURL != "" {
				s.APIBaseURL = *baseURL
			}
			if *outputDir != "" {
				s.OutputDir = *outputDir
			}
			if err := s.Validate(); err != nil {
				return nil, err
			}
			return NewSession(s), nil
		}

		return nil
	})
}

// NewSession wires the backend client, the artifact store, the
// notification bus and the orchestrator using the given settings.
func NewSession(s *settings.Settings) *Session {
	client := pipeline.NewClient(pipeline.Config{
		Authorization:   s.Authorization,
		BaseURL:         s.APIBaseURL,
		ExtendedPayload: s.ExtendedPayload,
		HTTPClient:      nil,
		LogBodies:       s.LogBodies,
		Logger:          log.Log,
		Timeout:         s.Timeout(),
		UserAgent:       s.UserAgent,
	})
	store := artifact.NewStore(s.OutputDir, log.Log)
	bus := notify.NewBus(notify.Config{
		Listener: func(ev notify.Event) {
			if ev.Type == notify.EventAdded {
				output.Toast(ev.Toast)
			}
		},
	})
	log.Debugf("Using backend at %s", client.BaseURL())
	return &Session{
		Settings:  s,
		Client:    client,
		Artifacts: store,
		Workflow: workflow.New(workflow.Config{
			Artifacts: store,
			Backend:   client,
			Bus:       bus,
			Logger:    log.Log,
		}),
	}
}
