package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/fslaktern/noters/pkg/core"
)

// menuOption is one entry in the interactive menu.
type menuOption int

const (
	optionCreate menuOption = iota + 1
	optionRead
	optionUpdate
	optionDelete
	optionList
	optionSeed
)

var menuLabels = map[menuOption]string{
	optionCreate: "Create note",
	optionRead:   "Read note",
	optionUpdate: "Update note",
	optionDelete: "Delete note",
	optionList:   "List notes",
	optionSeed:   "Seed welcome note",
}

// seedEnvVar overrides the content of the seeded welcome note.
const seedEnvVar = "NOTERS_SEED"

// menu drives the interactive session against a service. Input is consumed
// line by line; EOF ends the session cleanly.
type menu struct {
	svc *core.Service
	in  *bufio.Reader
	out io.Writer
}

func newMenu(svc *core.Service) *menu {
	return &menu{
		svc: svc,
		in:  bufio.NewReader(os.Stdin),
		out: os.Stdout,
	}
}

// run shows the menu in a loop and dispatches the chosen option until the
// input stream ends.
func (m *menu) run(ctx context.Context) error {
	slog.Debug("session started", "user", m.svc.User(), "state", m.svc.State())

	for {
		m.show()
		option, err := m.readOption("Choose option:\n> ")
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(m.out, "bye")
			return nil
		}
		if err != nil {
			return err
		}

		if err := m.dispatch(ctx, option); err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(m.out, "bye")
				return nil
			}
			return err
		}
		fmt.Fprintln(m.out)
	}
}

func (m *menu) show() {
	fmt.Fprintln(m.out, "Please choose an option:")
	for option := optionCreate; option <= optionSeed; option++ {
		fmt.Fprintf(m.out, "(%d) %s\n", option, menuLabels[option])
	}
	fmt.Fprintln(m.out)
}

func (m *menu) dispatch(ctx context.Context, option menuOption) error {
	switch option {
	case optionCreate:
		return m.handleCreate(ctx)
	case optionRead:
		return m.handleRead(ctx)
	case optionUpdate:
		return m.handleUpdate(ctx)
	case optionDelete:
		return m.handleDelete(ctx)
	case optionList:
		return m.handleList(ctx)
	case optionSeed:
		return m.handleSeed(ctx)
	}
	return nil
}

func (m *menu) handleCreate(ctx context.Context) error {
	fmt.Fprintln(m.out, "Create note:")

	name, err := m.readName()
	if err != nil {
		return err
	}
	content, err := m.readContent()
	if err != nil {
		return err
	}

	id, err := m.svc.CreateNote(ctx, name, content)
	if err != nil {
		fmt.Fprintf(m.out, "error: %v\n", err)
		return nil
	}
	fmt.Fprintf(m.out, "Note saved with ID #%d\n", id)
	return nil
}

func (m *menu) handleRead(ctx context.Context) error {
	fmt.Fprintln(m.out, "Read note:")

	id, err := m.readID()
	if err != nil {
		return err
	}

	note, err := m.svc.ReadNote(ctx, id)
	if err != nil {
		fmt.Fprintf(m.out, "error: %v\n", err)
		return nil
	}

	fmt.Fprintln(m.out, "-------------------------------")
	fmt.Fprintf(m.out, "#%d: %s\n\n", note.ID, note.Name)
	fmt.Fprintln(m.out, note.Content)
	fmt.Fprintln(m.out, "-------------------------------")
	return nil
}

func (m *menu) handleUpdate(ctx context.Context) error {
	fmt.Fprintln(m.out, "Update note:")

	id, err := m.readID()
	if err != nil {
		return err
	}
	name, err := m.readName()
	if err != nil {
		return err
	}
	content, err := m.readContent()
	if err != nil {
		return err
	}

	if err := m.svc.UpdateNote(ctx, id, name, content); err != nil {
		fmt.Fprintf(m.out, "error: %v\n", err)
		return nil
	}
	fmt.Fprintln(m.out, "Successfully updated note")
	return nil
}

func (m *menu) handleDelete(ctx context.Context) error {
	fmt.Fprintln(m.out, "Delete note:")

	id, err := m.readID()
	if err != nil {
		return err
	}

	confirmed, err := m.confirm("Are you absolutely sure? (y/n):\n> ")
	if err != nil {
		return err
	}
	if !confirmed {
		fmt.Fprintf(m.out, "Not deleting note #%d\n", id)
		return nil
	}

	if err := m.svc.DeleteNote(ctx, id); err != nil {
		fmt.Fprintf(m.out, "error: %v\n", err)
		return nil
	}
	fmt.Fprintf(m.out, "Successfully deleted note #%d\n", id)
	return nil
}

func (m *menu) handleList(ctx context.Context) error {
	notes, err := m.svc.ListNotes(ctx)
	if err != nil {
		fmt.Fprintf(m.out, "error: %v\n", err)
		return nil
	}
	sort.Slice(notes, func(i, j int) bool { return notes[i].ID < notes[j].ID })

	w := tabwriter.NewWriter(m.out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tOWNER\tNAME")
	for _, note := range notes {
		fmt.Fprintf(w, "%d\t%s\t%s\n", note.ID, note.Owner, note.Name)
	}
	return w.Flush()
}

func (m *menu) handleSeed(ctx context.Context) error {
	content := os.Getenv(seedEnvVar)
	if content == "" {
		slog.Debug("seed content not set, using placeholder", "env", seedEnvVar)
		content = "welcome to noters"
	}

	id, err := m.svc.SeedNote(ctx, "curator", "welcome", content)
	if err != nil {
		fmt.Fprintf(m.out, "error: %v\n", err)
		return nil
	}
	fmt.Fprintf(m.out, "Seeded welcome note with ID #%d\n", id)
	return nil
}

// --- input helpers ---

// readLine prompts until a non-empty line arrives. Leading and trailing
// whitespace is trimmed.
func (m *menu) readLine(prompt string) (string, error) {
	for {
		fmt.Fprint(m.out, prompt)
		line, err := m.in.ReadString('\n')
		if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
			return "", err
		}
		trimmed := strings.TrimSpace(line)
		if trimmed != "" {
			return trimmed, nil
		}
		if errors.Is(err, io.EOF) {
			return "", io.EOF
		}
	}
}

// readUntil reads lines until one equals stop (after trimming), and returns
// everything before it with surrounding whitespace trimmed.
func (m *menu) readUntil(prompt, stop string) (string, error) {
	fmt.Fprint(m.out, prompt)

	var b strings.Builder
	for {
		line, err := m.in.ReadString('\n')
		if strings.TrimSpace(line) == stop {
			return strings.TrimSpace(b.String()), nil
		}
		b.WriteString(line)
		if err != nil {
			return "", err
		}
	}
}

func (m *menu) readOption(prompt string) (menuOption, error) {
	for {
		input, err := m.readLine(prompt)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(input)
		if err != nil || n < int(optionCreate) || n > int(optionSeed) {
			fmt.Fprintf(m.out, "Value not in range %d-%d\n", optionCreate, optionSeed)
			continue
		}
		return menuOption(n), nil
	}
}

func (m *menu) readID() (core.NoteID, error) {
	for {
		input, err := m.readLine("id:\n> ")
		if err != nil {
			return 0, err
		}
		n, err := strconv.ParseUint(input, 10, 16)
		if err != nil {
			fmt.Fprintf(m.out, "Got invalid ID: %v\n", err)
			continue
		}
		return core.NoteID(n), nil
	}
}

// readName validates at the prompt so a typo does not throw away the
// multi-line content entered afterwards.
func (m *menu) readName() (string, error) {
	for {
		input, err := m.readLine("name:\n> ")
		if err != nil {
			return "", err
		}
		if err := core.ValidateName(input, maxNameSize); err != nil {
			fmt.Fprintf(m.out, "Got invalid name: %v\n", err)
			continue
		}
		return input, nil
	}
}

func (m *menu) readContent() (string, error) {
	for {
		input, err := m.readUntil("content (end with '.' on last line):\n", ".")
		if err != nil {
			return "", err
		}
		if err := core.ValidateContent(input, maxContentSize); err != nil {
			fmt.Fprintf(m.out, "Got invalid content: %v\n", err)
			continue
		}
		return input, nil
	}
}

func (m *menu) confirm(prompt string) (bool, error) {
	for {
		input, err := m.readLine(prompt)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(input) {
		case "y", "ye", "yes", "ya", "yuh":
			return true, nil
		case "n", "no", "nah", "nope":
			return false, nil
		}
	}
}
