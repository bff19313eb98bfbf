package tui

import (
	"fmt"
	"strings"

	"gptcommit/internal/prompt"

	tea "github.com/charmbracelet/bubbletea"
)

func (m model) updateStyle(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up":
		if m.styleCursor > 0 {
			m.styleCursor--
		}
		m.focusLanguage()
		return m, nil
	case "down", "tab":
		if m.styleCursor < styleRows-1 {
			m.styleCursor++
		}
		m.focusLanguage()
		return m, nil
	case "enter":
		switch m.styleCursor {
		case styleLanguage:
			m.config.General.Language = strings.TrimSpace(m.languageInput.Value())
		case styleEmoji:
			m.config.General.Emoji = !m.config.General.Emoji
		case styleDescription:
			m.config.General.Description = !m.config.General.Description
		}
		m.saveConfig()
		return m, nil
	case "esc":
		m.languageInput.Blur()
		m.screen = screenMainMenu
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}

	if m.styleCursor == styleLanguage {
		var cmd tea.Cmd
		m.languageInput, cmd = m.languageInput.Update(msg)
		return m, cmd
	}
	if msg.String() == "q" {
		return m, tea.Quit
	}
	return m, nil
}

func (m *model) focusLanguage() {
	if m.styleCursor == styleLanguage {
		m.languageInput.Focus()
	} else {
		m.languageInput.Blur()
	}
}

func (m model) viewStyle() string {
	s := m.style

	title := s.title.Render("Commit Style")
	subtitle := s.subtitle.Render("Shape the instruction sent with every diff")

	cursor := func(row int) string {
		if m.styleCursor == row {
			return s.menuCursor.Render("> ")
		}
		return "  "
	}

	code := prompt.LanguageCode(m.config.General.Language)
	rows := []string{
		fmt.Sprintf("%s%s %s %s", cursor(styleLanguage), s.menuItem.Render("Language"), m.languageInput.View(), s.label.Render("("+code+")")),
		fmt.Sprintf("%s%s %s", cursor(styleEmoji), s.menuItem.Render("Gitmoji prefix"), s.toggle(m.config.General.Emoji)),
		fmt.Sprintf("%s%s %s", cursor(styleDescription), s.menuItem.Render("Explain why"), s.toggle(m.config.General.Description)),
	}

	return title + "\n" + subtitle + "\n\n" +
		strings.Join(rows, "\n") + "\n\n" +
		s.instruction.Render("↑↓: navigate • enter: save/toggle • esc: back") + "\n\n" +
		s.label.Render("Only the first two letters of the language are sent to the model.")
}
