// Package tui is the interactive configuration editor and the progress
// spinner shown while a message is generated.
package tui

import (
	"gptcommit/internal/config"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// NewModel loads the config at configPath; a load error is shown and the
// editor starts from defaults.
func NewModel(configPath string) model {
	cfg, err := config.Load(configPath)
	if err != nil {
		cfg = config.Default()
	}

	apiKeyInput := textinput.New()
	apiKeyInput.Placeholder = "Enter your API key..."
	apiKeyInput.EchoMode = textinput.EchoPassword
	apiKeyInput.EchoCharacter = '•'

	languageInput := textinput.New()
	languageInput.Placeholder = "english"
	languageInput.CharLimit = 32

	return model{
		screen:        screenMainMenu,
		configPath:    configPath,
		config:        cfg,
		configErr:     err,
		apiKeyInput:   apiKeyInput,
		languageInput: languageInput,
		menuItems:     mainMenuItems(),
		help:          help.New(),
		keys:          defaultKeyMap(),
		style:         newStyles(),
	}
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "right"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func mainMenuItems() []menuItem {
	return []menuItem{
		{
			title:       "Configure Provider",
			description: "Select and configure the LLM provider",
			target:      screenProviderList,
		},
		{
			title:       "Commit Style",
			description: "Language, gitmoji prefix and explanatory description",
			target:      screenStyle,
		},
		{
			title:       "Git Settings",
			description: "Auto-add and auto-push behaviour",
			target:      screenGitConfig,
		},
		{
			title:       "Exit",
			description: "Leave the configuration editor",
			quit:        true,
		},
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.screen {
		case screenMainMenu:
			return m.updateMainMenu(msg)
		case screenProviderList:
			return m.updateProviderList(msg)
		case screenProviderConfig:
			return m.updateProviderConfig(msg)
		case screenStyle:
			return m.updateStyle(msg)
		case screenGitConfig:
			return m.updateGitConfig(msg)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	return m, nil
}

func (m model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var content string

	switch m.screen {
	case screenMainMenu:
		content = m.viewMainMenu()
	case screenProviderList:
		content = m.viewProviderList()
	case screenProviderConfig:
		content = m.viewProviderConfig()
	case screenStyle:
		content = m.viewStyle()
	case screenGitConfig:
		content = m.viewGitConfig()
	}

	if m.saveErr != nil {
		content += "\n" + m.style.error.Render("Failed to save: "+m.saveErr.Error())
	}

	helpView := m.help.View(m.keys)
	return content + "\n" + helpView
}

// Run starts the configuration editor on the config at configPath.
func Run(configPath string) error {
	m := NewModel(configPath)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m *model) saveConfig() {
	m.saveErr = config.Save(m.configPath, m.config)
}
