// Package security classifies requested tool invocations as allowed or
// blocked. Both validators are pure functions over a versioned policy table;
// they perform no I/O and keep no state.
//
// The checks are heuristic guards against the historically common classes of
// destructive one-liners and accidental secret-file access. They are not a
// sandbox: sophisticated shell obfuscation can evade regex matching.
package security

import (
	"regexp"

	"github.com/gobwas/glob"
)

// PolicyVersion identifies the pattern table below. Bump it whenever a rule
// is added, removed, or reordered so audit logs can tell which table made a
// decision.
const PolicyVersion = "2025.1"

// Mode selects what a failed check does.
type Mode string

const (
	// ModeBlock vetoes the tool call. This is the default.
	ModeBlock Mode = "block"
	// ModeLogOnly records the finding but lets the call proceed.
	ModeLogOnly Mode = "log-only"
)

// Decision is the outcome of a single validator check.
type Decision struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

// Allow is the decision for anything the policy has no opinion about.
func Allow() Decision {
	return Decision{Allowed: true}
}

// Block produces a blocked decision with a human-readable reason.
func Block(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// CommandRule pairs a dangerous-command pattern with the category named in
// the blocked reason. Rules are evaluated in order; the first match wins.
type CommandRule struct {
	Category string
	Pattern  *regexp.Regexp
}

var commandRules = []CommandRule{
	{
		Category: "sudo rm command",
		Pattern:  regexp.MustCompile(`\bsudo\s+rm\b`),
	},
	{
		Category: "recursive rm on a root-like path",
		Pattern:  regexp.MustCompile(`\brm\s+(?:-[a-zA-Z]+\s+)*-[a-zA-Z]*[rR][a-zA-Z]*\s+(?:-[a-zA-Z-]+\s+)*(?:/|/\*|~|~/|\$HOME)(?:\s|$)`),
	},
	{
		Category: "rm with wildcard",
		Pattern:  regexp.MustCompile(`\brm\s+[^|;&]*\*`),
	},
	{
		Category: "piping remote content into a shell",
		Pattern:  regexp.MustCompile(`\b(?:curl|wget)\b[^|;&]*\|\s*(?:sudo\s+)?(?:ba|z|da)?sh\b`),
	},
	{
		Category: "writing to a raw device",
		Pattern:  regexp.MustCompile(`\bdd\s+[^|;&]*\bof=/dev/`),
	},
	{
		Category: "writing to a raw device",
		Pattern:  regexp.MustCompile(`>\s*/dev/(?:sd|hd|nvme|vd|disk)`),
	},
	{
		Category: "overly permissive chmod",
		Pattern:  regexp.MustCompile(`\bchmod\s+(?:-[a-zA-Z]+\s+)*(?:0?777|a\+rwx)\b`),
	},
}

// envGlobs match base names that look like dotenv files.
var envGlobs = []glob.Glob{
	glob.MustCompile(".env"),
	glob.MustCompile("*.env"),
	glob.MustCompile(".env.*"),
	glob.MustCompile("*.env.*"),
}

// envAllowGlobs are the documented safe variants that stay readable and
// writable: example templates never hold real secrets.
var envAllowGlobs = []glob.Glob{
	glob.MustCompile(".env.example"),
	glob.MustCompile(".env.sample"),
	glob.MustCompile(".env.template"),
	glob.MustCompile("*.env.example"),
	glob.MustCompile("*.env.sample"),
	glob.MustCompile("*.env.template"),
}

func matchesAny(globs []glob.Glob, name string) bool {
	for _, g := range globs {
		if g.Match(name) {
			return true
		}
	}
	return false
}
