package hook

// ToolCall is the tool invocation carried by a PreToolUse event, keyed by
// tool name. Unknown tools classify as UnknownCall so validators can fall
// back to an always-allow default.
type ToolCall interface {
	isToolCall()
}

// BashCall is a Bash tool invocation with its raw command string.
type BashCall struct {
	Command string
}

// FileCall is an invocation of a file-reading or file-writing tool
// (Read, Edit, MultiEdit, Write) with its target path. Path is empty when
// the tool input carried no usable file_path or notebook_path.
type FileCall struct {
	Tool string
	Path string
}

// UnknownCall is any tool the validators have no opinion about.
type UnknownCall struct {
	Tool string
}

func (BashCall) isToolCall()    {}
func (FileCall) isToolCall()    {}
func (UnknownCall) isToolCall() {}

// fileTools are the tools that can read or write files by path.
var fileTools = map[string]bool{
	"Read":      true,
	"Edit":      true,
	"MultiEdit": true,
	"Write":     true,
}

// ClassifyTool converts a raw tool name and tool_input record into a typed
// ToolCall. Absent or mistyped fields degrade to the zero value rather than
// failing; a missing command or path simply produces a call the validators
// will allow.
func ClassifyTool(name string, input map[string]any) ToolCall {
	switch {
	case name == "Bash":
		cmd, _ := input["command"].(string)
		return BashCall{Command: cmd}

	case fileTools[name]:
		path, _ := input["file_path"].(string)
		if path == "" {
			path, _ = input["notebook_path"].(string)
		}
		return FileCall{Tool: name, Path: path}

	default:
		return UnknownCall{Tool: name}
	}
}
