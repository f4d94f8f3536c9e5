package cli

import (
	"errors"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// ErrAborted is returned when the user interrupts a prompt.
var ErrAborted = errors.New("cli: prompt aborted")

// InputPrompt describes a single text question.
type InputPrompt struct {
	Message   string
	Default   string
	Help      string
	Validator func(string) error
}

// Prompter asks the init wizard's questions. Tests substitute a scripted one.
type Prompter interface {
	Input(p InputPrompt) (string, error)
	Confirm(message string, def bool) (bool, error)
}

// SurveyPrompter asks questions on the terminal.
type SurveyPrompter struct{}

func (SurveyPrompter) Input(p InputPrompt) (string, error) {
	var out string
	prompt := &survey.Input{
		Message: p.Message,
		Help:    p.Help,
		Default: p.Default,
	}
	var opts []survey.AskOpt
	if p.Validator != nil {
		opts = append(opts, survey.WithValidator(func(ans any) error {
			s, _ := ans.(string)
			return p.Validator(s)
		}))
	}
	if err := survey.AskOne(prompt, &out, opts...); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func (SurveyPrompter) Confirm(message string, def bool) (bool, error) {
	var out bool
	if err := survey.AskOne(&survey.Confirm{Message: message, Default: def}, &out); err != nil {
		return false, translateSurveyErr(err)
	}
	return out, nil
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}
