package exec

import (
	stderrors "errors"
	"fmt"
	"os/exec"
	"regexp"

	"github.com/rileyhilliard/sysmon/internal/errors"
)

// commandNotFoundPatterns detect "not found" messages printed by wrapper
// scripts (nvidia-settings is often a shell shim). These require exit code 127.
var commandNotFoundPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)bash: (\S+): command not found`),
	regexp.MustCompile(`(?i)sh: \d+: (\S+): not found`),
	regexp.MustCompile(`(?i)env: (\S+): No such file or directory`),
	regexp.MustCompile(`(?i)(\S+): not found`),
	regexp.MustCompile(`(?i)(\S+): command not found`),
}

// installHints tells the user where the tools sysmon shells out to come from.
var installHints = map[string]string{
	"sensors":         "Install lm-sensors (e.g. 'apt install lm-sensors') and run 'sudo sensors-detect'.",
	"nvidia-settings": "Install the NVIDIA X server settings tool, or ignore this if there is no NVIDIA GPU.",
	"nvidia-smi":      "Install the NVIDIA driver utilities, or ignore this if there is no NVIDIA GPU.",
}

// IsCommandNotFound checks if the error output indicates a missing command.
// Returns the command name (if extractable) and whether it's a command-not-found error.
func IsCommandNotFound(stderr string, exitCode int) (string, bool) {
	// Exit code 127 is the standard for command not found
	if exitCode != 127 {
		return "", false
	}

	for _, pattern := range commandNotFoundPatterns {
		if matches := pattern.FindStringSubmatch(stderr); len(matches) > 1 {
			return matches[1], true
		}
	}

	return "", true
}

// IsNotFound reports whether err came from a command that isn't installed.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	if stderrors.Is(err, exec.ErrNotFound) {
		return true
	}
	var nf *notFoundError
	return stderrors.As(err, &nf)
}

// notFoundError marks a structured error as command-not-found.
type notFoundError struct {
	name string
}

func (e *notFoundError) Error() string {
	return fmt.Sprintf("%s: command not found", e.name)
}

// HandleExecError turns a non-zero exit into a structured error, detecting
// missing commands and attaching an install hint.
func HandleExecError(name string, stderr string, exitCode int) error {
	if missing, notFound := IsCommandNotFound(stderr, exitCode); notFound {
		if missing == "" {
			missing = name
		}
		return newNotFound(missing)
	}

	return errors.New(errors.ErrExec,
		fmt.Sprintf("'%s' exited with code %d", name, exitCode),
		firstLine(stderr))
}

func newNotFound(name string) error {
	return errors.WrapWithCode(&notFoundError{name: name}, errors.ErrExec,
		fmt.Sprintf("'%s' isn't installed or isn't in PATH", name),
		installHints[name])
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i]
		}
	}
	return s
}
