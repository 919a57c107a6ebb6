package grading

import (
	"fmt"
	"strings"
)

// suspectPatterns is a best-effort substring scan over submitted source.
// It is advisory only: matches become warnings on the submission
// response, never a rejection. The sandboxed execution service is the
// actual security boundary.
var suspectPatterns = []string{
	"import os",
	"import sys",
	"import subprocess",
	"eval(",
	"exec(",
	"__import__(",
	"open(",
	"compile(",
}

// LintSource scans source code for suspect patterns and returns one
// warning per match.
func LintSource(source string) []string {
	lowered := strings.ToLower(source)

	var warnings []string
	for _, pattern := range suspectPatterns {
		if strings.Contains(lowered, pattern) {
			warnings = append(warnings, fmt.Sprintf("source contains pattern %q; it may not behave as expected in the sandbox", pattern))
		}
	}
	return warnings
}
