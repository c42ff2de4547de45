package runner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewResult_ExitCodeDerivation(t *testing.T) {
	tests := []struct {
		name     string
		success  bool
		blocked  bool
		wantCode int
	}{
		{"success", true, false, 0},
		{"failure", false, false, 1},
		{"blocked failure", false, true, 2},
		{"blocked wins over success", true, true, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResult(tt.success, "msg", tt.blocked)
			assert.Equal(t, tt.wantCode, r.ExitCode)
			assert.Equal(t, tt.success, r.Success)
			assert.Equal(t, tt.blocked, r.Blocked)
			assert.Equal(t, "msg", r.Message)
		})
	}
}

func TestNewResult_EmptyMessage(t *testing.T) {
	r := NewResult(true, "", false)
	assert.Empty(t, r.Message)
	assert.Equal(t, 0, r.ExitCode)
}
