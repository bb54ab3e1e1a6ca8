package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// secretPrompt reads passwords for a command. On a terminal the input is
// read without echo; otherwise one line is read per prompt.
type secretPrompt struct {
	cmd *cobra.Command
	in  *bufio.Reader
}

func newSecretPrompt(cmd *cobra.Command) *secretPrompt {
	return &secretPrompt{cmd: cmd, in: bufio.NewReader(cmd.InOrStdin())}
}

// fill prompts for the flag's value unless it was given on the command line.
func (p *secretPrompt) fill(flag, label string, dst *string) error {
	if p.cmd.Flags().Changed(flag) {
		return nil
	}
	v, err := p.read(label)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

func (p *secretPrompt) read(label string) (string, error) {
	errOut := p.cmd.ErrOrStderr()
	fmt.Fprintf(errOut, "%s: ", label)
	if f, ok := p.cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(errOut)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", strings.ToLower(label), err)
		}
		return string(b), nil
	}
	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading %s: %w", strings.ToLower(label), err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
