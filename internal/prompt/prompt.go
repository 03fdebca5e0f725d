// Package prompt abstracts operator interaction.
//
// Commands pick one Prompter at startup: interactive sessions block for
// input through a terminal form, unattended sessions resolve every question
// to its default without reading anything.
package prompt

import (
	"fmt"

	"github.com/charmbracelet/huh"
)

// Prompter asks the operator a question and returns the answer.
type Prompter interface {
	// Input asks for a free-form value. def is returned when the operator
	// submits an empty answer.
	Input(title, placeholder, def string) (string, error)

	// Password asks for a secret value without echoing it.
	Password(title, def string) (string, error)

	// Confirm asks a yes/no question.
	Confirm(title string, def bool) (bool, error)
}

// New returns the Prompter matching the session mode.
func New(unattended bool) Prompter {
	if unattended {
		return Unattended{}
	}
	return Interactive{}
}

// Interactive blocks for operator input using terminal forms.
type Interactive struct{}

func (Interactive) Input(title, placeholder, def string) (string, error) {
	var value string
	input := huh.NewInput().
		Title(title).
		Placeholder(placeholder).
		Value(&value)
	if err := huh.NewForm(huh.NewGroup(input)).Run(); err != nil {
		return "", fmt.Errorf("prompt canceled: %w", err)
	}
	if value == "" {
		return def, nil
	}
	return value, nil
}

func (Interactive) Password(title, def string) (string, error) {
	var value string
	input := huh.NewInput().
		Title(title).
		EchoMode(huh.EchoModePassword).
		Value(&value)
	if err := huh.NewForm(huh.NewGroup(input)).Run(); err != nil {
		return "", fmt.Errorf("prompt canceled: %w", err)
	}
	if value == "" {
		return def, nil
	}
	return value, nil
}

func (Interactive) Confirm(title string, def bool) (bool, error) {
	value := def
	confirm := huh.NewConfirm().
		Title(title).
		Value(&value)
	if err := huh.NewForm(huh.NewGroup(confirm)).Run(); err != nil {
		return false, fmt.Errorf("prompt canceled: %w", err)
	}
	return value, nil
}

// Unattended resolves every question to its default without blocking.
type Unattended struct{}

func (Unattended) Input(_, _, def string) (string, error) { return def, nil }

func (Unattended) Password(_, def string) (string, error) { return def, nil }

func (Unattended) Confirm(_ string, def bool) (bool, error) { return def, nil }
