package agent

import (
	"github.com/recrsn/localagent/internal/llm"
)

// Conversation is the append-only transcript of one session. It never holds
// the system prompt.
type Conversation struct {
	messages []llm.Message
}

// Append adds a message to the end of the transcript
func (c *Conversation) Append(msg llm.Message) {
	c.messages = append(c.messages, msg)
}

// Messages returns a copy of the transcript
func (c *Conversation) Messages() []llm.Message {
	return append([]llm.Message(nil), c.messages...)
}

// Len returns the number of messages
func (c *Conversation) Len() int {
	return len(c.messages)
}

// Last returns the most recent message, ok is false when empty
func (c *Conversation) Last() (llm.Message, bool) {
	if len(c.messages) == 0 {
		return llm.Message{}, false
	}
	return c.messages[len(c.messages)-1], true
}

// Reset clears the transcript
func (c *Conversation) Reset() {
	c.messages = nil
}
