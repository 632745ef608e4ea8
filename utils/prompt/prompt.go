package promptutils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
)

// ErrInterrupted is returned when the user aborts a prompt (Ctrl-C).
// Commands treat it as a clean cancellation rather than a failure to report.
var ErrInterrupted = errors.New("operation interrupted")

type Prompter interface {
	PromptWithDefault(label, defaultValue string) (string, error)
	SelectFromList(label string, items []string) (string, error)
}

type RealPrompter struct{}

func NewPrompter() Prompter {
	return &RealPrompter{}
}

func handlePromptError(err error) error {
	if err != nil {
		if errors.Is(err, promptui.ErrInterrupt) {
			fmt.Println("\nReceived termination signal. Exiting.")
			return ErrInterrupted
		}
		return fmt.Errorf("prompt failed: %w", err)
	}
	return nil
}

func (p *RealPrompter) PromptWithDefault(label, defaultValue string) (string, error) {
	prompt := promptui.Prompt{
		Label:   label,
		Default: defaultValue,
	}
	result, err := prompt.Run()
	if err = handlePromptError(err); err != nil {
		return "", err
	}
	result = strings.TrimSpace(result)
	if result == "" {
		result = defaultValue
	}
	return result, nil
}

func (p *RealPrompter) SelectFromList(label string, items []string) (string, error) {
	selectPrompt := promptui.Select{
		Label: label,
		Items: items,
		Size:  12,
	}
	_, result, err := selectPrompt.Run()
	if err = handlePromptError(err); err != nil {
		return "", err
	}
	return result, nil
}
