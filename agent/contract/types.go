package contract

// Speaker identifies who produced a conversation turn.
type Speaker string

const (
	SpeakerUser      Speaker = "user"
	SpeakerAssistant Speaker = "assistant"
)

// Turn is one exchange entry in a session's conversation history.
type Turn struct {
	Speaker Speaker `json:"speaker"`
	Text    string  `json:"text"`
}

// ResolverRequest carries everything an IntentResolver may see: the message,
// the session's own history, and the authenticated identity the resolver must
// stay bound to.
type ResolverRequest struct {
	Identity string `json:"identity"`
	Text     string `json:"text"`
	History  []Turn `json:"history,omitempty"`
}

// ResolverResponse is the resolver's synthesized reply plus the tool
// invocations it made to produce it.
type ResolverResponse struct {
	Reply           string       `json:"reply"`
	ToolInvocations []ToolResult `json:"tool_invocations,omitempty"`
}

// ToolRequest names a tool and its arguments as planned by the resolver.
type ToolRequest struct {
	Tool string         `json:"tool"`
	Args map[string]any `json:"args,omitempty"`
}

// ToolResult is a tool's rendered output. Domain conditions ("no savings
// account") are part of Output; Error is reserved for protocol faults such
// as an unknown tool name.
type ToolResult struct {
	Tool   string `json:"tool"`
	Output string `json:"output,omitempty"`
	Error  string `json:"error,omitempty"`
}
