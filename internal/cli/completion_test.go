package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/sysmon/internal/errors"
)

// newTestRootCmd creates a bare root command so generated scripts don't
// depend on what else is registered.
func newTestRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sysmon",
		Short: "Terminal dashboard for temperatures, load, memory, disks and network",
	}
}

func TestWriteCompletion(t *testing.T) {
	tests := []struct {
		shell string
		want  []string
	}{
		{"bash", []string{"# bash completion for sysmon", "__sysmon_debug", "complete -o default -F __start_sysmon sysmon"}},
		{"zsh", []string{"#compdef sysmon", "_sysmon()"}},
		{"fish", []string{"fish completion for sysmon", "complete -c sysmon"}},
		{"powershell", []string{"Register-ArgumentCompleter"}},
	}

	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, writeCompletion(newTestRootCmd(), &buf, tt.shell))

			for _, want := range tt.want {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}

func TestWriteCompletion_UnknownShell(t *testing.T) {
	err := writeCompletion(newTestRootCmd(), &bytes.Buffer{}, "tcsh")

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestCompletionIncludesBuiltinCommands(t *testing.T) {
	// Cobra completes dynamically through __completeNoDesc, and commands
	// with local flags get their own static functions.
	var buf bytes.Buffer
	require.NoError(t, rootCmd.GenBashCompletion(&buf))
	output := buf.String()

	assert.Contains(t, output, "__completeNoDesc", "should use dynamic completion")
	assert.Contains(t, output, "__start_sysmon", "should have start function")
	assert.Contains(t, output, "_sysmon_root_command", "should have root command function")
	assert.Contains(t, output, "_sysmon_doctor()")
	assert.Contains(t, output, "_sysmon_version()")
	assert.Contains(t, output, "_sysmon_config_init()")
}

func TestCompletionBashSyntaxValid(t *testing.T) {
	cmd := newTestRootCmd()
	cmd.AddCommand(&cobra.Command{Use: "doctor", Short: "Check sources"})

	var buf bytes.Buffer
	require.NoError(t, cmd.GenBashCompletion(&buf))
	output := buf.String()

	assert.Equal(t, strings.Count(output, "{"), strings.Count(output, "}"), "braces should be balanced")
	assert.Contains(t, output, "__start_sysmon()")
}

func TestCompletionCommandValidArgs(t *testing.T) {
	assert.ElementsMatch(t, []string{"bash", "zsh", "fish", "powershell"}, completionCmd.ValidArgs)
}

func TestConfigKeyCompletion(t *testing.T) {
	keys, directive := configGetCmd.ValidArgsFunction(configGetCmd, nil, "")
	assert.Contains(t, keys, "display.graph_height")
	assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)

	keys, _ = configSetCmd.ValidArgsFunction(configSetCmd, []string{"refresh_rate"}, "")
	assert.Empty(t, keys, "no suggestions for the value")
}
