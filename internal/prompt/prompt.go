// Package prompt assembles the conversation sent to the completion endpoint.
package prompt

// Role tags a message in a conversation.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role
	Content string
}

// Conversation is ordered: the instruction comes first and the diff last.
type Conversation []Message

// Style selects the instruction template.
type Style struct {
	Language    string
	Emoji       bool
	Description bool
}

// Exchange is a worked example placed between the instruction and the diff.
type Exchange struct {
	Diff    string `mapstructure:"diff" yaml:"diff"`
	Message string `mapstructure:"message" yaml:"message"`
}

// Build returns the instruction for style, each history exchange as a
// user/assistant pair, and diff verbatim as the final user message.
func Build(diff string, style Style, history ...Exchange) Conversation {
	conv := make(Conversation, 0, 2+2*len(history))
	conv = append(conv, Message{Role: RoleSystem, Content: Instruction(style)})
	for _, ex := range history {
		conv = append(conv,
			Message{Role: RoleUser, Content: ex.Diff},
			Message{Role: RoleAssistant, Content: ex.Message},
		)
	}
	return append(conv, Message{Role: RoleUser, Content: diff})
}

// Diff returns the content of the trailing user message.
func (c Conversation) Diff() string {
	if len(c) == 0 {
		return ""
	}
	return c[len(c)-1].Content
}
