// Package mini implements a lightweight, minimalist interface for channel search and playback.
package mini

import (
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/zapp-cli/zapp/icon"
	"github.com/zapp-cli/zapp/style"
)

// errQuit propagates a ctrl-c out of a survey prompt.
var errQuit = errors.New("interrupted")

func title(s string) {
	fmt.Println(style.Title(s))
}

func fail(s string) {
	fmt.Println(icon.Get(icon.Fail) + " " + s)
}

// progress prints a transient status line and returns its eraser.
func progress(s string) func() {
	fmt.Print(icon.Get(icon.Progress) + " " + s)
	return func() {
		fmt.Print("\r\033[K")
	}
}

func getInput(prompt string, valid func(string) bool) (string, error) {
	var value string

	err := survey.AskOne(
		&survey.Input{Message: prompt},
		&value,
		survey.WithValidator(func(ans interface{}) error {
			s, _ := ans.(string)
			if !valid(s) {
				return errors.New("invalid input")
			}
			return nil
		}),
	)
	if errors.Is(err, terminal.InterruptErr) {
		return "", errQuit
	}

	return value, err
}

// menu shows a select prompt over the given options and returns the picked
// index. Control entries are appended after the items.
func menu(options []string, controls ...string) (int, error) {
	var picked string

	err := survey.AskOne(
		&survey.Select{
			Options:  append(options, controls...),
			PageSize: 15,
		},
		&picked,
	)
	if errors.Is(err, terminal.InterruptErr) {
		return 0, errQuit
	}
	if err != nil {
		return 0, err
	}

	all := append(options, controls...)
	for i, option := range all {
		if option == picked {
			return i, nil
		}
	}

	return 0, fmt.Errorf("unknown selection %q", picked)
}
