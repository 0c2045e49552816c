package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/feds01/cs3099/internal/core/domain"
	"github.com/feds01/cs3099/internal/core/ports/driving"
)

// Ensure terminalPrompter implements the interface.
var _ driving.RevisionPrompter = (*terminalPrompter)(nil)

// errNoInput is returned when input ends before a required answer.
var errNoInput = errors.New("no input")

// terminalPrompter asks questions on the command's input and output.
// One prompter is shared by all questions of a command so that buffered
// input is not lost between them.
type terminalPrompter struct {
	cmd    *cobra.Command
	in     io.Reader
	reader *bufio.Reader
}

func newTerminalPrompter(cmd *cobra.Command) *terminalPrompter {
	in := cmd.InOrStdin()
	return &terminalPrompter{cmd: cmd, in: in, reader: bufio.NewReader(in)}
}

// line prints label and returns the trimmed answer, which may be empty.
func (p *terminalPrompter) line(label string) (string, error) {
	p.cmd.Printf("%s: ", label)
	input, err := p.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

// required asks until a non-empty answer is given.
func (p *terminalPrompter) required(label string) (string, error) {
	for {
		input, err := p.line(label)
		if err != nil {
			return "", err
		}
		if input != "" {
			return input, nil
		}
		if p.exhausted() {
			return "", fmt.Errorf("%w for %s", errNoInput, strings.ToLower(label))
		}
	}
}

// password reads a secret without echo when attached to a terminal.
func (p *terminalPrompter) password(label string) (string, error) {
	if f, ok := p.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		p.cmd.Printf("%s: ", label)
		secret, err := term.ReadPassword(int(f.Fd()))
		p.cmd.Println()
		if err == nil {
			return string(secret), nil
		}
	}
	return p.required(label)
}

// confirm asks a yes/no question. Anything but y or yes is a no.
func (p *terminalPrompter) confirm(question string) (bool, error) {
	answer, err := p.line(question + " [y/N]")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// exhausted reports whether the input has no more data.
func (p *terminalPrompter) exhausted() bool {
	_, err := p.reader.Peek(1)
	return err != nil
}

// lookup returns the publication identifier from flags, prompting when
// neither was given.
func (p *terminalPrompter) lookup(id, name string) (domain.Lookup, error) {
	if id != "" || name != "" {
		return domain.Lookup{ID: id, Name: name}, nil
	}
	id, err := p.line("Publication ID (leave empty to use the name)")
	if err != nil {
		return domain.Lookup{}, err
	}
	if id != "" {
		return domain.Lookup{ID: id}, nil
	}
	name, err = p.required("Publication Name")
	if err != nil {
		return domain.Lookup{}, err
	}
	return domain.Lookup{Name: name}, nil
}

// ConfirmRevision shows the conflict and asks whether to revise.
func (p *terminalPrompter) ConfirmRevision(
	_ context.Context,
	_ domain.Reference,
	conflict domain.UploadOutcome,
) (bool, error) {
	if conflict.Message != "" {
		p.cmd.Printf("Response Error: %s\n", conflict.Message)
	}
	if conflict.Reason != "" {
		p.cmd.Println(conflict.Reason)
	}
	return p.confirm("Do you want to upload it to a new revision?")
}

// RevisionDetails asks for the revision label and changelog. The
// changelog answer may be a path to a file holding it.
func (p *terminalPrompter) RevisionDetails(_ context.Context, _ domain.Reference) (domain.RevisionRequest, error) {
	revision, err := p.required("Revision number")
	if err != nil {
		return domain.RevisionRequest{}, err
	}
	input, err := p.line("Changelog")
	if err != nil {
		return domain.RevisionRequest{}, err
	}
	changelog, err := loadChangelog(input)
	if err != nil {
		return domain.RevisionRequest{}, err
	}
	return domain.RevisionRequest{Revision: revision, Changelog: changelog}, nil
}
