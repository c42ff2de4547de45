package security

import (
	"fmt"
	"path/filepath"

	"github.com/conneroisu/claude-hooks/internal/hook"
)

// CheckEnvFileAccess blocks file tools from touching dotenv files that may
// hold secrets. Tools that cannot read or write files, and file tools with
// no usable path, are always allowed.
func CheckEnvFileAccess(call hook.ToolCall) Decision {
	fc, ok := call.(hook.FileCall)
	if !ok || fc.Path == "" {
		return Allow()
	}

	base := filepath.Base(fc.Path)
	if !matchesAny(envGlobs, base) {
		return Allow()
	}
	if matchesAny(envAllowGlobs, base) {
		return Allow()
	}

	return Block(fmt.Sprintf("access to environment file %q is not permitted", fc.Path))
}

// CheckCommand tests a Bash command against the ordered dangerous-command
// rules. The first matching rule blocks with its category as the reason.
// Non-Bash tools and empty commands are always allowed.
func CheckCommand(call hook.ToolCall) Decision {
	bc, ok := call.(hook.BashCall)
	if !ok || bc.Command == "" {
		return Allow()
	}

	for _, rule := range commandRules {
		if rule.Pattern.MatchString(bc.Command) {
			return Block(fmt.Sprintf("dangerous command blocked (%s): %s", rule.Category, bc.Command))
		}
	}
	return Allow()
}

// Check runs both validators and returns the first blocking decision, if any.
func Check(call hook.ToolCall) Decision {
	if d := CheckEnvFileAccess(call); !d.Allowed {
		return d
	}
	return CheckCommand(call)
}
