// Package auth supplies the GitHub web login credentials used by the browser session.
package auth

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/kwshi/stripcode-bot/internal/config"
)

// ErrNoInput is returned when a prompt reaches end of input without an answer
var ErrNoInput = errors.New("no input")

// Credentials is a GitHub username and password
type Credentials struct {
	Username string
	Password string
}

// Prompter returns configured credentials and asks for whatever is missing
type Prompter struct {
	preset Credentials
	in     *bufio.Reader
	out    io.Writer

	// fd is the terminal to read hidden input from, or -1
	fd int
}

// NewPrompter creates a prompter. Values already set in cfg are never prompted for.
func NewPrompter(cfg config.AuthConfig, in io.Reader, out io.Writer) *Prompter {
	fd := -1
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd = int(f.Fd())
	}
	return &Prompter{
		preset: Credentials{Username: cfg.Username, Password: cfg.Password},
		in:     bufio.NewReader(in),
		out:    out,
		fd:     fd,
	}
}

// Credentials returns the login username and password
func (p *Prompter) Credentials() (Credentials, error) {
	creds := p.preset

	if creds.Username == "" {
		u, err := p.ask("GitHub username: ", false)
		if err != nil {
			return Credentials{}, fmt.Errorf("failed to read username: %w", err)
		}
		creds.Username = u
	}

	if creds.Password == "" {
		pw, err := p.ask("GitHub password: ", true)
		if err != nil {
			return Credentials{}, fmt.Errorf("failed to read password: %w", err)
		}
		creds.Password = pw
	}

	return creds, nil
}

// OTP asks for the current two-factor code
func (p *Prompter) OTP() (string, error) {
	code, err := p.ask("GitHub 2FA code: ", false)
	if err != nil {
		return "", fmt.Errorf("failed to read 2FA code: %w", err)
	}
	return code, nil
}

func (p *Prompter) ask(prompt string, hidden bool) (string, error) {
	fmt.Fprint(p.out, prompt)

	if hidden && p.fd >= 0 {
		b, err := term.ReadPassword(p.fd)
		fmt.Fprintln(p.out)
		if err != nil {
			return "", err
		}
		return nonEmpty(string(b))
	}

	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return nonEmpty(line)
}

func nonEmpty(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrNoInput
	}
	return s, nil
}
