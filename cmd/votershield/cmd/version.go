package cmd

import (
	"os/exec"
	"strings"
)

// pipelineVersion returns the current git commit SHA, best-effort, mirroring
// the source's git_sha() helper (main.py) which likewise swallows errors
// and falls back to "unknown" outside a git checkout.
func pipelineVersion() string {
	out, err := exec.Command("git", "rev-parse", "--short", "HEAD").Output()
	if err != nil {
		return "unknown"
	}
	return strings.TrimSpace(string(out))
}
