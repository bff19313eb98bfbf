package tui

import (
	"fmt"
	"strings"

	"gptcommit/internal/config"
	"gptcommit/internal/llm"

	tea "github.com/charmbracelet/bubbletea"
)

func (m model) updateProviderList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.providerCursor > 0 {
			m.providerCursor--
		}
	case "down", "j":
		if m.providerCursor < len(llm.Registry)-1 {
			m.providerCursor++
		}
	case "enter":
		selected := llm.Registry[m.providerCursor]
		m.providerConfigProvider = selected.Name

		m.apiKeyInput.SetValue("")
		m.modelCursor = 0
		if providerCfg, exists := m.config.Providers[selected.Name]; exists {
			m.apiKeyInput.SetValue(providerCfg.APIKey)
			for i, model := range selected.Models {
				if model == providerCfg.Model {
					m.modelCursor = i
					break
				}
			}
		}
		if selected.NeedsAPIKey {
			m.apiKeyInput.Focus()
		} else {
			m.apiKeyInput.Blur()
		}
		m.screen = screenProviderConfig
	case "esc":
		m.screen = screenMainMenu
	case "q", "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m model) viewProviderList() string {
	s := m.style

	title := s.title.Render("Select Provider")
	subtitle := s.subtitle.Render("Choose an LLM provider to configure")

	var items string
	for i, provider := range llm.Registry {
		cursor := "  "
		if m.providerCursor == i {
			cursor = s.menuCursor.Render("> ")
		}

		status := "not configured"
		if _, exists := m.config.Providers[provider.Name]; exists {
			status = s.value.Render("configured")
		}
		if m.config.DefaultProvider == provider.Name {
			status = s.success.Render("active")
		}

		items += fmt.Sprintf("%s%s %s\n", cursor, s.menuItem.Render(provider.DisplayName), status)
	}

	return title + "\n" + subtitle + "\n\n" + items + "\n" + s.instruction.Render("esc: back • enter: select • q: quit")
}

func (m model) updateProviderConfig(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	info := llm.Registry[m.providerCursor]

	switch msg.String() {
	case "up", "down", "tab":
		if !info.NeedsAPIKey {
			return m, nil
		}
		if m.apiKeyInput.Focused() {
			m.apiKeyInput.Blur()
		} else {
			m.apiKeyInput.Focus()
		}
		return m, nil
	case "enter":
		providerCfg := m.config.Providers[m.providerConfigProvider]
		providerCfg.APIKey = strings.TrimSpace(m.apiKeyInput.Value())
		providerCfg.Model = info.Models[m.modelCursor]
		if m.config.Providers == nil {
			m.config.Providers = make(map[string]config.ProviderConfig)
		}
		m.config.Providers[m.providerConfigProvider] = providerCfg
		m.config.DefaultProvider = m.providerConfigProvider

		m.saveConfig()
		if m.saveErr == nil {
			m.screen = screenProviderList
		}
		return m, nil
	case "esc":
		m.screen = screenProviderList
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}

	if m.apiKeyInput.Focused() {
		var cmd tea.Cmd
		m.apiKeyInput, cmd = m.apiKeyInput.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "left", "h":
		if m.modelCursor > 0 {
			m.modelCursor--
		}
	case "right", "l":
		if m.modelCursor < len(info.Models)-1 {
			m.modelCursor++
		}
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m model) viewProviderConfig() string {
	s := m.style
	info := llm.Registry[m.providerCursor]

	title := s.title.Render(fmt.Sprintf("Configure %s", info.DisplayName))

	apiKeyLabel := s.label.Render("API Key:")
	apiKeyValue := m.apiKeyInput.View()
	if !info.NeedsAPIKey {
		apiKeyValue = s.value.Render("not required")
	}

	var modelOptions []string
	for i, model := range info.Models {
		if i == m.modelCursor {
			modelOptions = append(modelOptions, s.menuCursor.Render("["+model+"]"))
		} else {
			modelOptions = append(modelOptions, s.value.Render(" "+model+" "))
		}
	}
	modelLabel := s.label.Render("Model:")
	modelValue := strings.Join(modelOptions, " ")

	return title + "\n\n" +
		apiKeyLabel + "\n" + apiKeyValue + "\n\n" +
		modelLabel + "\n" + modelValue + "\n\n" +
		s.instruction.Render("tab/↑↓: switch fields • ←→: change model • enter: save • esc: back")
}
