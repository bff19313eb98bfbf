package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

func (m model) updateMainMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.menuCursor > 0 {
			m.menuCursor--
		}
	case "down", "j":
		if m.menuCursor < len(m.menuItems)-1 {
			m.menuCursor++
		}
	case "enter":
		item := m.menuItems[m.menuCursor]
		if item.quit {
			return m, tea.Quit
		}
		m.screen = item.target
		if item.target == screenStyle {
			m.styleCursor = styleLanguage
			m.languageInput.SetValue(m.config.General.Language)
			m.languageInput.Focus()
		}
	case "q", "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m model) viewMainMenu() string {
	s := m.style

	title := s.title.Render("gptcommit Configuration")
	subtitle := s.subtitle.Render("Select an option to configure")
	if m.configErr != nil {
		subtitle += "\n" + s.error.Render("Config not loaded, starting from defaults: "+m.configErr.Error())
	}

	var menuItems string
	for i, item := range m.menuItems {
		cursor := "  "
		if m.menuCursor == i {
			cursor = s.menuCursor.Render("> ")
		}
		menuItems += fmt.Sprintf("%s%s\n%s\n\n", cursor, s.menuItem.Render(item.title), s.label.Render("   "+item.description))
	}

	return title + "\n" + subtitle + "\n\n" + menuItems
}
