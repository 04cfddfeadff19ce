package onboard

import (
	"strconv"

	"github.com/AlecAivazis/survey/v2"
	"github.com/alecthomas/kingpin/v2"
	"github.com/apex/log"
	"github.com/asdp-project/asdp-cli/internal/cli/root"
	"github.com/asdp-project/asdp-cli/internal/runtimex"
	"github.com/asdp-project/asdp-cli/internal/settings"
)

// Onboarding asks the user about the backend and the output directory
// and stores the answers into the settings file.
func Onboarding(s *settings.Settings) error {
	var answers struct {
		BaseURL         string
		OutputDir       string
		Timeout         string
		ExtendedPayload bool
	}
	questions := []*survey.Question{{
		Name: "BaseURL",
		Prompt: &survey.Input{
			Message: "Backend base URL:",
			Default: s.APIBaseURL,
		},
		Validate: survey.Required,
	}, {
		Name: "OutputDir",
		Prompt: &survey.Input{
			Message: "Directory where reports and exports are saved:",
			Default: s.OutputDir,
		},
		Validate: survey.Required,
	}, {
		Name: "Timeout",
		Prompt: &survey.Input{
			Message: "Timeout of each backend call in seconds (0 means no timeout):",
			Default: strconv.FormatInt(s.TimeoutSeconds, 10),
		},
		Validate: func(ans interface{}) error {
			_, err := strconv.ParseInt(ans.(string), 10, 64)
			return err
		},
	}, {
		Name: "ExtendedPayload",
		Prompt: &survey.Confirm{
			Message: "Send the whole configuration when processing?",
			Default: s.ExtendedPayload,
		},
	}}
	err := survey.Ask(questions, &answers)
	runtimex.PanicOnError(err, "survey.Ask failed")

	timeout, err := strconv.ParseInt(answers.Timeout, 10, 64)
	runtimex.PanicOnError(err, "strconv.ParseInt failed")

	s.APIBaseURL = answers.BaseURL
	s.OutputDir = answers.OutputDir
	s.TimeoutSeconds = timeout
	s.ExtendedPayload = answers.ExtendedPayload
	if err := s.Validate(); err != nil {
		return err
	}
	return s.Write()
}

func init() {
	cmd := root.Command("onboard", "Interactively create the settings file")

	yes := cmd.Flag("yes", "Write the current settings without asking any question.").Bool()

	cmd.Action(func(_ *kingpin.ParseContext) error {
		sess, err := root.Init()
		if err != nil {
			return err
		}
		defer sess.Close()

		if *yes {
			if err := sess.Settings.Write(); err != nil {
				log.WithError(err).Error("failed to write settings file")
				return err
			}
			log.Infof("Written %s", sess.Settings.Path())
			return nil
		}

		if err := Onboarding(sess.Settings); err != nil {
			log.WithError(err).Error("failed to write settings file")
			return err
		}
		log.Infof("Written %s", sess.Settings.Path())
		return nil
	})
}
