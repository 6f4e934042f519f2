// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// prompter asks the user for one value at a time. On a terminal every
// question runs a small Bubble Tea program around a textinput, so secrets
// are masked; piped input is read line by line.
type prompter struct {
	ctx  context.Context
	in   io.Reader
	out  io.Writer
	tty  *os.File
	line *bufio.Reader
}

func newPrompter(cmd *cobra.Command) *prompter {
	p := &prompter{
		ctx: cmd.Context(),
		in:  cmd.InOrStdin(),
		out: cmd.ErrOrStderr(),
	}
	if p.ctx == nil {
		p.ctx = context.Background()
	}
	if f, ok := p.in.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		p.tty = f
	} else {
		p.line = bufio.NewReader(p.in)
	}
	return p
}

func (p *prompter) ask(label string) (string, error) {
	return p.read(label, false)
}

func (p *prompter) askSecret(label string) (string, error) {
	return p.read(label, true)
}

func (p *prompter) read(label string, secret bool) (string, error) {
	if p.tty == nil {
		return readLine(p.line, p.out, label)
	}

	program := tea.NewProgram(newInputModel(label, secret),
		tea.WithContext(p.ctx),
		tea.WithInput(p.tty),
		tea.WithOutput(p.out),
	)
	final, err := program.Run()
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}

	m, ok := final.(inputModel)
	if !ok || m.aborted {
		return "", fmt.Errorf("read input: %w", ErrInputAborted)
	}
	return m.value(), nil
}

// readLine writes label to w and reads one line. EOF on an empty line is an
// error.
func readLine(in *bufio.Reader, w io.Writer, label string) (string, error) {
	fmt.Fprint(w, label)
	line, err := in.ReadString('\n')
	line = strings.TrimSpace(line)
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", fmt.Errorf("read input: %w", err)
	}
	return line, nil
}

// inputModel is a one-field form: enter submits, esc or ctrl+c aborts.
type inputModel struct {
	input     textinput.Model
	submitted bool
	aborted   bool
}

func newInputModel(label string, secret bool) inputModel {
	input := textinput.New()
	input.Prompt = label
	input.CharLimit = 256
	input.Width = 40
	if secret {
		input.EchoMode = textinput.EchoPassword
		input.EchoCharacter = '*'
	}
	input.Focus()

	return inputModel{input: input}
}

func (m inputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			m.submitted = true
			m.input.Blur()
			return m, tea.Quit
		case tea.KeyEsc, tea.KeyCtrlC:
			m.aborted = true
			m.input.Blur()
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m inputModel) View() string {
	return m.input.View() + "\n"
}

func (m inputModel) value() string {
	return strings.TrimSpace(m.input.Value())
}
