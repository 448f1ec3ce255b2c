package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/manifoldco/promptui"
	"golang.org/x/term"

	"github.com/skillbridge/jobmatch/internal/core/domain"
)

var errNotInteractive = errors.New("not running in a terminal")

// Prompter asks the user for what the flags did not supply.
type Prompter interface {
	SelectRole() (domain.Role, error)
	Password(label string) (string, error)
}

type terminalPrompter struct {
	in  io.Reader
	out io.Writer
}

func (p terminalPrompter) fd() (int, bool) {
	f, ok := p.in.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0, false
	}
	return int(f.Fd()), true
}

func (p terminalPrompter) SelectRole() (domain.Role, error) {
	if _, ok := p.fd(); !ok {
		return 0, errNotInteractive
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "> {{ .String | cyan }}",
		Inactive: "  {{ .String }}",
		Selected: "{{ .String | green }}",
	}
	prompt := promptui.Select{
		Label:     "Sign in as",
		Items:     domain.Roles,
		Templates: templates,
		Size:      len(domain.Roles),
	}

	index, _, err := prompt.Run()
	if err != nil {
		return 0, fmt.Errorf("role selection cancelled: %w", err)
	}
	return domain.Roles[index], nil
}

func (p terminalPrompter) Password(label string) (string, error) {
	fd, ok := p.fd()
	if !ok {
		return "", errNotInteractive
	}
	fmt.Fprintf(p.out, "%s: ", label)
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(b), nil
}
