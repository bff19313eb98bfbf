package prompt

import (
	"fmt"
	"strings"
)

// DefaultLanguage is used when the configured language is empty.
const DefaultLanguage = "english"

const identity = "You are to act as the author of a commit message in git."

const mission = identity + ` Your mission is to create clean and comprehensive commit messages as per the conventional commit convention and explain WHAT were the changes and mainly WHY the changes were done. I'll send you an output of 'git diff --staged' command, and you are to convert it into a commit message.`

const (
	gitmojiLine   = "Use GitMoji convention to preface the commit."
	noPrefaceLine = "Do not preface the commit with anything."

	descriptionLine   = `Add a short description of WHY the changes are done after the commit message. Don't start it with "This commit", just describe the changes.`
	noDescriptionLine = "Don't add any descriptions to the commit, only commit message."

	// closing carries the language code as its only verb.
	closing = "Use the present tense. Lines must not be longer than 74 characters. Use %s language for the commit message."
)

type variant struct {
	emoji       bool
	description bool
}

var templates = map[variant]string{
	{emoji: false, description: false}: join(mission, noPrefaceLine, noDescriptionLine, closing),
	{emoji: true, description: false}:  join(mission, gitmojiLine, noDescriptionLine, closing),
	{emoji: false, description: true}:  join(mission, noPrefaceLine, descriptionLine, closing),
	{emoji: true, description: true}:   join(mission, gitmojiLine, descriptionLine, closing),
}

func join(lines ...string) string {
	return strings.Join(lines, "\n")
}

// LanguageCode returns the two-letter code the instruction embeds: the first
// two characters of language, or of DefaultLanguage when language is empty.
func LanguageCode(language string) string {
	language = strings.ToLower(strings.TrimSpace(language))
	if language == "" {
		language = DefaultLanguage
	}
	runes := []rune(language)
	if len(runes) > 2 {
		runes = runes[:2]
	}
	return string(runes)
}

// Instruction returns the system message text for style.
func Instruction(style Style) string {
	tmpl := templates[variant{emoji: style.Emoji, description: style.Description}]
	return fmt.Sprintf(tmpl, LanguageCode(style.Language))
}
