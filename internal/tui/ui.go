// Package tui is the interactive terminal frontend. It owns no task
// state: every frame is rendered from the controller's collection
// through the view pipeline.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"taskpad/internal/model"
	"taskpad/internal/syncer"
	"taskpad/internal/task"
	"taskpad/internal/view"
)

type inputMode int

const (
	modeList inputMode = iota
	modeAdd
	modeEdit
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	doneStyle   = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	statusStyle = lipgloss.NewStyle().Faint(true)
)

type Model struct {
	ctrl    *syncer.Controller
	timeout time.Duration

	cursor  int
	mode    inputMode
	filter  view.Filter
	input   textinput.Model
	editing model.TaskID
	status  string
}

func New(ctrl *syncer.Controller, timeout time.Duration) Model {
	ti := textinput.New()
	ti.Placeholder = "Task description"
	ti.CharLimit = 256
	ti.Width = 48

	return Model{
		ctrl:    ctrl,
		timeout: timeout,
		filter:  view.FilterAll,
		input:   ti,
		status:  "a add · e edit · space toggle · d delete · f filter · m mode · r refresh · q quit",
	}
}

func Run(ctrl *syncer.Controller, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	ctrl.Refresh(ctx)
	cancel()

	_, err := tea.NewProgram(New(ctrl, timeout)).Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), m.timeout)
}

func (m Model) visible() []model.Task {
	return view.Derive(m.ctrl.Tasks(), m.filter)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.mode != modeList {
			return m.updateInputMode(msg)
		}
		return m.updateListMode(msg.String())
	case tea.WindowSizeMsg:
		m.input.Width = msg.Width - 10
	}
	return m, nil
}

func (m Model) updateInputMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeList
		m.input.SetValue("")
		m.input.Blur()
		m.status = "Cancelled"
		return m, nil

	case "enter":
		desc := m.input.Value()
		ctx, cancel := m.ctx()
		defer cancel()

		var err error
		if m.mode == modeAdd {
			_, err = m.ctrl.Create(ctx, desc)
		} else {
			_, err = m.ctrl.Update(ctx, m.editing, task.Patch{Description: &desc})
		}
		if err != nil {
			m.status = fmt.Sprintf("error: %v", err)
			return m, nil
		}

		m.status = "Saved"
		m.mode = modeList
		m.input.SetValue("")
		m.input.Blur()
		m.cursor = clampCursor(m.cursor, len(m.visible()))
		return m, nil

	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) updateListMode(key string) (tea.Model, tea.Cmd) {
	tasks := m.visible()

	switch key {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "down", "j":
		m.cursor = clampCursor(m.cursor+1, len(tasks))

	case "up", "k":
		m.cursor = clampCursor(m.cursor-1, len(tasks))

	case "a":
		m.mode = modeAdd
		m.input.Placeholder = "Task description"
		m.input.Focus()

	case "e":
		if len(tasks) == 0 {
			return m, nil
		}
		t := tasks[m.cursor]
		m.mode = modeEdit
		m.editing = t.ID
		m.input.SetValue(t.Description)
		m.input.Focus()

	case " ":
		if len(tasks) == 0 {
			return m, nil
		}
		t := tasks[m.cursor]
		toggled := !t.IsCompleted
		ctx, cancel := m.ctx()
		defer cancel()
		if _, err := m.ctrl.Update(ctx, t.ID, task.Patch{IsCompleted: &toggled}); err != nil {
			m.status = fmt.Sprintf("error: %v", err)
			return m, nil
		}
		m.status = "Toggled"
		m.cursor = clampCursor(m.cursor, len(m.visible()))

	case "d":
		if len(tasks) == 0 {
			return m, nil
		}
		ctx, cancel := m.ctx()
		defer cancel()
		if err := m.ctrl.Delete(ctx, tasks[m.cursor].ID); err != nil {
			m.status = fmt.Sprintf("error: %v", err)
			return m, nil
		}
		m.status = "Deleted"
		m.cursor = clampCursor(m.cursor, len(m.visible()))

	case "f":
		m.filter = m.filter.Next()
		m.cursor = clampCursor(m.cursor, len(m.visible()))

	case "m":
		next := syncer.ModeLocal
		if m.ctrl.Mode() == syncer.ModeLocal {
			next = syncer.ModeRemote
		}
		ctx, cancel := m.ctx()
		defer cancel()
		m.ctrl.SetMode(ctx, next)
		m.status = fmt.Sprintf("Mode: %s", next)
		m.cursor = clampCursor(m.cursor, len(m.visible()))

	case "r":
		ctx, cancel := m.ctx()
		defer cancel()
		m.ctrl.Refresh(ctx)
		m.status = "Refreshed"
		m.cursor = clampCursor(m.cursor, len(m.visible()))

	case "esc":
		m.ctrl.ClearError()
	}

	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("taskpad — mode: %s · filter: %s", m.ctrl.Mode(), m.filter)))
	b.WriteString("\n\n")

	if banner := m.ctrl.LastError(); banner != "" {
		b.WriteString(errorStyle.Render("! " + banner))
		b.WriteString("\n")
		b.WriteString(statusStyle.Render("  (esc to dismiss)"))
		b.WriteString("\n\n")
	}

	tasks := m.visible()
	if len(tasks) == 0 {
		b.WriteString(statusStyle.Render("no tasks"))
		b.WriteString("\n")
	}
	for i, t := range tasks {
		marker := "[ ]"
		line := t.Description
		if t.IsCompleted {
			marker = "[x]"
			line = doneStyle.Render(line)
		}
		prefix := "  "
		if i == m.cursor {
			prefix = cursorStyle.Render("> ")
		}
		b.WriteString(fmt.Sprintf("%s%s %s\n", prefix, marker, line))
	}

	if m.mode != modeList {
		b.WriteString("\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.status))
	b.WriteString("\n")
	return b.String()
}

func clampCursor(c, n int) int {
	if n == 0 {
		return 0
	}
	if c < 0 {
		return 0
	}
	if c >= n {
		return n - 1
	}
	return c
}
