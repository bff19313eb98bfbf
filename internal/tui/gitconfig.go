package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

func (m model) updateGitConfig(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.gitCursor > 0 {
			m.gitCursor--
		}
	case "down", "j":
		if m.gitCursor < 1 {
			m.gitCursor++
		}
	case "enter":
		switch m.gitCursor {
		case 0:
			m.config.AutoAdd = !m.config.AutoAdd
		case 1:
			m.config.AutoPush = !m.config.AutoPush
		}
		m.saveConfig()
	case "esc":
		m.screen = screenMainMenu
	case "q", "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m model) viewGitConfig() string {
	s := m.style

	title := s.title.Render("Git Settings")
	subtitle := s.subtitle.Render("Configure git behavior settings")

	cursor0 := "  "
	if m.gitCursor == 0 {
		cursor0 = s.menuCursor.Render("> ")
	}
	autoAddItem := fmt.Sprintf("%s%s %s", cursor0, s.menuItem.Render("Auto-add changes"), s.toggle(m.config.AutoAdd))

	cursor1 := "  "
	if m.gitCursor == 1 {
		cursor1 = s.menuCursor.Render("> ")
	}
	autoPushItem := fmt.Sprintf("%s%s %s", cursor1, s.menuItem.Render("Auto-push commits"), s.toggle(m.config.AutoPush))

	return title + "\n" + subtitle + "\n\n" +
		autoAddItem + "\n" +
		autoPushItem + "\n\n" +
		s.instruction.Render("↑↓: navigate • enter: toggle • esc: back • q: quit") + "\n\n" +
		s.label.Render("Auto-add: stage all changes before generating\n") +
		s.label.Render("Auto-push: push after committing")
}
