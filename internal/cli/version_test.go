package cli

import (
	"bytes"
	"runtime"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestVersionCmd creates a standalone version command for testing
func createTestVersionCmd() *cobra.Command {
	var short bool
	cmd := &cobra.Command{
		Use: "version",
		Run: func(cmd *cobra.Command, args []string) {
			if short {
				cmd.Println(version)
				return
			}

			cmd.Printf("sysmon %s\n", formatVersion(version))
			cmd.Printf("commit: %s\n", commit)
			cmd.Printf("built: %s\n", date)
			cmd.Printf("go: %s\n", runtime.Version())
			cmd.Printf("os/arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
	cmd.Flags().BoolVar(&short, "short", false, "Print only the version number")
	return cmd
}

func setTestVersion(t *testing.T, v, c, d string) {
	t.Helper()
	origVersion, origCommit, origDate := version, commit, date
	t.Cleanup(func() {
		version, commit, date = origVersion, origCommit, origDate
	})
	version, commit, date = v, c, d
}

func TestVersionOutput(t *testing.T) {
	setTestVersion(t, "1.2.3", "abc1234", "2026-08-01T12:00:00Z")

	cmd := createTestVersionCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "sysmon v1.2.3", "should show version with v prefix")
	assert.Contains(t, output, "commit: abc1234")
	assert.Contains(t, output, "built: 2026-08-01T12:00:00Z")
	assert.Contains(t, output, "go: "+runtime.Version())
	assert.Contains(t, output, "os/arch: "+runtime.GOOS+"/"+runtime.GOARCH)
}

func TestVersionOutputShort(t *testing.T) {
	setTestVersion(t, "1.2.3", "abc1234", "2026-08-01T12:00:00Z")

	cmd := createTestVersionCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--short"})

	err := cmd.Execute()
	require.NoError(t, err)

	output := strings.TrimSpace(buf.String())
	assert.Equal(t, "1.2.3", output, "short output should only show version")
}

func TestFormatVersion(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty string", input: "", want: ""},
		{name: "dev version", input: "dev", want: "dev"},
		{name: "version without prefix", input: "1.2.3", want: "v1.2.3"},
		{name: "version with prefix", input: "v1.2.3", want: "v1.2.3"},
		{name: "prerelease", input: "1.2.3-rc.1", want: "v1.2.3-rc.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatVersion(tt.input))
		})
	}
}

func TestVersionCommandHasShortFlag(t *testing.T) {
	flag := versionCmd.Flags().Lookup("short")
	require.NotNil(t, flag, "version command should have --short flag")
	assert.Equal(t, "bool", flag.Value.Type())
	assert.Equal(t, "false", flag.DefValue)
}

func TestSetVersionInfo(t *testing.T) {
	setTestVersion(t, "dev", "none", "unknown")

	SetVersionInfo("2.0.0", "def5678", "2026-08-15T10:00:00Z")

	assert.Equal(t, "2.0.0", version)
	assert.Equal(t, "def5678", commit)
	assert.Equal(t, "2026-08-15T10:00:00Z", date)
	assert.Equal(t, "2.0.0", GetVersion())
}
