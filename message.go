package flightdesk

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

// Role identifies the author of a Message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Message is one entry of a conversation, either durable (stored in history) or
// transient (only part of a single outgoing request).
type Message struct {
	// Role is the author of the message.
	Role Role `json:"role" yaml:"role"`

	// Content is the text body. Empty means absent, which happens for
	// assistant messages that only carry tool calls.
	Content string `json:"content,omitempty" yaml:"content,omitempty"`

	// ToolCalls is set on assistant messages that requested tool invocations.
	ToolCalls []ToolCallRequest `json:"tool_calls,omitempty" yaml:"tool_calls,omitempty"`

	// ToolCallID links a tool message to the request it answers.
	ToolCallID string `json:"tool_call_id,omitempty" yaml:"tool_call_id,omitempty"`

	// Name is the tool name on tool messages.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
}

// SystemMessage creates a system instruction message.
func SystemMessage(text string) Message {
	return Message{Role: RoleSystem, Content: text}
}

// UserMessage creates a user message.
func UserMessage(text string) Message {
	return Message{Role: RoleUser, Content: text}
}

// AssistantMessage creates a plain assistant message.
func AssistantMessage(text string) Message {
	return Message{Role: RoleAssistant, Content: text}
}

// ToolResultMessage creates a tool message answering the given call.
func ToolResultMessage(call ToolCallRequest, result string) Message {
	return Message{
		Role:       RoleTool,
		Content:    result,
		ToolCallID: call.ID,
		Name:       call.Name,
	}
}

// ToolCallRequest is a model-initiated request to invoke a local tool.
type ToolCallRequest struct {
	// ID is the provider-assigned identifier used to pair the result.
	ID string `json:"id" yaml:"id"`

	// Name is the requested tool name.
	Name string `json:"name" yaml:"name"`

	// Arguments is the raw JSON object text sent by the provider.
	Arguments string `json:"arguments" yaml:"arguments"`
}

// Args decodes Arguments into a key-value map. Empty or whitespace-only
// arguments decode to an empty map, since providers send "" for tools that
// take no parameters.
func (c ToolCallRequest) Args() (map[string]any, error) {
	args := map[string]any{}
	raw := strings.TrimSpace(c.Arguments)
	if raw == "" {
		return args, nil
	}
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		return nil, errors.Wrapf(err, "invalid arguments for %s", c.Name)
	}
	if args == nil {
		// JSON "null" decodes into a nil map.
		args = map[string]any{}
	}
	return args, nil
}
