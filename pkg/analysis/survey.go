package analysis

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

type surveyPrompter struct{}

// NewSurveyPrompter returns a Prompter reading from the terminal
func NewSurveyPrompter() Prompter {
	return &surveyPrompter{}
}

func (p *surveyPrompter) Select(ctx context.Context, message string, options []string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	var out int
	prompt := &survey.Select{
		Message:  message,
		Options:  options,
		PageSize: 15,
	}
	if err := survey.AskOne(prompt, &out); err != nil {
		return 0, translateSurveyErr(err)
	}
	return out, nil
}

//nolint:whitespace // readability
func (p *surveyPrompter) InputFuel(
	ctx context.Context, message string, current float64,
) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	var out string
	prompt := &survey.Input{
		Message: message,
		Default: fmt.Sprintf("%.2f", current),
	}
	if err := survey.AskOne(prompt, &out, survey.WithValidator(validateFuel)); err != nil {
		return 0, translateSurveyErr(err)
	}
	return ParseFuel(out)
}

// ParseFuel parses a fuel quantity entered by the user
func ParseFuel(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errors.New("please enter a valid fuel value")
	}
	if f < 0 {
		return 0, errors.New("fuel must not be negative")
	}
	return f, nil
}

func validateFuel(ans any) error {
	s, ok := ans.(string)
	if !ok {
		return errors.New("unexpected answer type")
	}
	_, err := ParseFuel(s)
	return err
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}
