package wizard

//
// Thin wrappers around survey prompts.
//

import (
	"errors"
	"strconv"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/asdp-project/asdp-cli/internal/runtimex"
)

// errQuit indicates that the user asked to leave the wizard.
var errQuit = errors.New("wizard: quit")

// askOne asks a single question. A Ctrl-C becomes errQuit while any
// other prompt failure is a bug.
func askOne(prompt survey.Prompt, response any, opts ...survey.AskOpt) error {
	err := survey.AskOne(prompt, response, opts...)
	if errors.Is(err, terminal.InterruptErr) {
		return errQuit
	}
	runtimex.PanicOnError(err, "survey.AskOne failed")
	return nil
}

func askSelect(message string, options []string, current string) (string, error) {
	prompt := &survey.Select{
		Message: message,
		Options: options,
	}
	if contains(options, current) {
		prompt.Default = current
	}
	var answer string
	err := askOne(prompt, &answer)
	return answer, err
}

func askMultiSelect(message string, options []string, selected []string) ([]string, error) {
	if len(options) <= 0 {
		return nil, nil
	}
	prompt := &survey.MultiSelect{
		Message: message,
		Options: options,
		Default: selected,
	}
	var answer []string
	err := askOne(prompt, &answer)
	return answer, err
}

func askInput(message, current string) (string, error) {
	var answer string
	err := askOne(&survey.Input{Message: message, Default: current}, &answer)
	return answer, err
}

func askFloat(message string, current float64) (float64, error) {
	var answer string
	err := askOne(
		&survey.Input{Message: message, Default: strconv.FormatFloat(current, 'f', -1, 64)},
		&answer,
		survey.WithValidator(func(ans interface{}) error {
			_, err := strconv.ParseFloat(ans.(string), 64)
			return err
		}),
	)
	if err != nil {
		return 0, err
	}
	return strconv.ParseFloat(answer, 64)
}

func askInt(message string, current int) (int, error) {
	var answer string
	err := askOne(
		&survey.Input{Message: message, Default: strconv.Itoa(current)},
		&answer,
		survey.WithValidator(func(ans interface{}) error {
			_, err := strconv.Atoi(ans.(string))
			return err
		}),
	)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(answer)
}

func askConfirm(message string, current bool) (bool, error) {
	var answer bool
	err := askOne(&survey.Confirm{Message: message, Default: current}, &answer)
	return answer, err
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
