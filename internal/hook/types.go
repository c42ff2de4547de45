// Package hook provides types and bounded-input parsing for Claude Code
// hook events. For more information about Claude Code hooks, see:
// https://docs.anthropic.com/en/docs/claude-code/hooks
package hook

// Event represents the fields common to every Claude Code hook event.
type Event struct {
	SessionID      string `json:"session_id"`
	TranscriptPath string `json:"transcript_path,omitempty"`
	CWD            string `json:"cwd,omitempty"`
	HookEventName  string `json:"hook_event_name,omitempty"`
}

// NotificationEvent represents the Notification hook event
type NotificationEvent struct {
	Event
	Message string `json:"message,omitempty"`
}

// UserPromptSubmitEvent represents the UserPromptSubmit hook event
type UserPromptSubmitEvent struct {
	Event
	Prompt string `json:"prompt,omitempty"`
}

// PreToolUseEvent represents the PreToolUse hook event
type PreToolUseEvent struct {
	Event
	ToolName  string         `json:"tool_name,omitempty"`
	ToolInput map[string]any `json:"tool_input,omitempty"`
}

// PostToolUseEvent represents the PostToolUse hook event
type PostToolUseEvent struct {
	Event
	ToolName     string         `json:"tool_name,omitempty"`
	ToolInput    map[string]any `json:"tool_input,omitempty"`
	ToolResponse map[string]any `json:"tool_response,omitempty"`
}

// StopEvent represents the Stop hook event
type StopEvent struct {
	Event
	StopHookActive bool `json:"stop_hook_active,omitempty"`
}

// SubagentStopEvent represents the SubagentStop hook event
type SubagentStopEvent struct {
	StopEvent
	SubagentID string `json:"subagent_id,omitempty"`
}
