// Package tui is the interactive pantry screen: build a pantry, pick preferences, generate.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pageza/budget-chef/backend/internal/pantry"
	"github.com/pageza/budget-chef/backend/internal/types"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)
)

type generatedMsg struct {
	results []types.RecipeSummary
	err     error
}

type Model struct {
	state    pantry.State
	input    string
	cursor   int
	generate pantry.GenerateFunc
	timeout  time.Duration
	quitting bool
}

// New builds the pantry screen. generate performs the network call.
func New(generate pantry.GenerateFunc) Model {
	return Model{
		generate: generate,
		timeout:  90 * time.Second,
	}
}

// State exposes the current pantry state
func (m Model) State() pantry.State {
	return m.state
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) runGenerate() tea.Cmd {
	ingredients := m.state.Selection.Ingredients
	preferences := m.state.Selection.Preferences
	generate := m.generate
	timeout := m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		results, err := generate(ctx, ingredients, preferences)
		return generatedMsg{results: results, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case generatedMsg:
		m.state = pantry.FinishGenerate(m.state, msg.results, msg.err)
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit

		case tea.KeyEnter:
			if strings.TrimSpace(m.input) != "" {
				m.state = pantry.AddIngredient(m.state, m.input)
				m.input = ""
				return m, nil
			}
			return m.startGenerate()

		case tea.KeyCtrlG:
			return m.startGenerate()

		case tea.KeyBackspace:
			if len(m.input) > 0 {
				runes := []rune(m.input)
				m.input = string(runes[:len(runes)-1])
			} else if n := len(m.state.Selection.Ingredients); n > 0 {
				m.state = pantry.RemoveIngredient(m.state, m.state.Selection.Ingredients[n-1])
			}
			return m, nil

		case tea.KeyTab:
			m.cursor = (m.cursor + 1) % len(types.DietaryPreferences)
			return m, nil

		case tea.KeyShiftTab:
			m.cursor = (m.cursor + len(types.DietaryPreferences) - 1) % len(types.DietaryPreferences)
			return m, nil

		case tea.KeyCtrlP:
			m.state = pantry.TogglePreference(m.state, types.DietaryPreferences[m.cursor])
			return m, nil

		case tea.KeySpace:
			m.input += " "
			return m, nil

		case tea.KeyRunes:
			m.input += string(msg.Runes)
			return m, nil
		}
	}
	return m, nil
}

func (m Model) startGenerate() (tea.Model, tea.Cmd) {
	next, err := pantry.BeginGenerate(m.state)
	m.state = next
	if err != nil {
		return m, nil
	}
	return m, m.runGenerate()
}

func (m Model) View() string {
	if m.quitting {
		return "Happy cooking!\n"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Budget Chef: what's in your pantry?"))
	b.WriteString("\n")

	b.WriteString(promptStyle.Render("Add ingredient: "))
	b.WriteString(inputStyle.Render(m.input + "_"))
	b.WriteString("\n\n")

	if len(m.state.Selection.Ingredients) == 0 {
		b.WriteString(normalStyle.Render("Your pantry is empty."))
	} else {
		b.WriteString("Pantry: " + strings.Join(m.state.Selection.Ingredients, ", "))
	}
	b.WriteString("\n\n")

	b.WriteString("Preferences:\n")
	for i, pref := range types.DietaryPreferences {
		box := "[ ]"
		if m.state.HasPreference(pref) {
			box = "[x]"
		}
		line := fmt.Sprintf("%s %s", box, pref)
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString(normalStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case m.state.Loading:
		b.WriteString(promptStyle.Render("Generating recipes..."))
		b.WriteString("\n")
	case m.state.Error != "":
		b.WriteString(errorStyle.Render("Error: " + m.state.Error))
		b.WriteString("\n")
	}

	if len(m.state.Results) > 0 {
		b.WriteString(successStyle.Render(fmt.Sprintf("%d recipes found", len(m.state.Results))))
		b.WriteString("\n")
		for _, r := range m.state.Results {
			b.WriteString(fmt.Sprintf("  %-6s %s  (%s, $%.2f, missing %d)\n",
				r.ID, r.Title, r.TotalPrepTime, r.EstimatedCost, r.MissingItemsCount))
		}
	}

	b.WriteString(helpStyle.Render("enter: add / generate  ctrl+g: generate  backspace: remove last  tab: move  ctrl+p: toggle preference  esc: quit"))
	return b.String()
}
