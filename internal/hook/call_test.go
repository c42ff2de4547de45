package hook

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyTool(t *testing.T) {
	tests := []struct {
		name  string
		tool  string
		input map[string]any
		want  ToolCall
	}{
		{
			name:  "bash command",
			tool:  "Bash",
			input: map[string]any{"command": "ls -la"},
			want:  BashCall{Command: "ls -la"},
		},
		{
			name:  "bash with missing command",
			tool:  "Bash",
			input: map[string]any{},
			want:  BashCall{},
		},
		{
			name:  "bash with non-string command",
			tool:  "Bash",
			input: map[string]any{"command": 42},
			want:  BashCall{},
		},
		{
			name:  "read with file_path",
			tool:  "Read",
			input: map[string]any{"file_path": "/x/.env"},
			want:  FileCall{Tool: "Read", Path: "/x/.env"},
		},
		{
			name:  "write with notebook_path fallback",
			tool:  "Write",
			input: map[string]any{"notebook_path": "/nb.ipynb"},
			want:  FileCall{Tool: "Write", Path: "/nb.ipynb"},
		},
		{
			name:  "edit without any path",
			tool:  "Edit",
			input: map[string]any{"old_string": "a"},
			want:  FileCall{Tool: "Edit"},
		},
		{
			name:  "unknown tool",
			tool:  "Grep",
			input: map[string]any{"file_path": "/x/.env"},
			want:  UnknownCall{Tool: "Grep"},
		},
		{
			name: "nil input",
			tool: "MultiEdit",
			want: FileCall{Tool: "MultiEdit"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyTool(tt.tool, tt.input))
		})
	}
}
