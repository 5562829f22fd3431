package commands

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/folio/pkg/auth"
)

func execute(t *testing.T, in string, args ...string) string {
	t.Helper()
	t.Setenv("FOLIO_STORE", "memory")
	t.Setenv("FOLIO_CONFIG_PATH", t.TempDir())
	t.Setenv("FOLIO_LOG_LEVEL", "error")

	cmd := New()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(in))
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestHashCommand(t *testing.T) {
	assert.Equal(t, auth.Hash("opensesame")+"\n", execute(t, "", "hash", "opensesame"))
	assert.Equal(t, auth.Hash("piped")+"\n", execute(t, "piped\n", "hash"))
}

func TestProjectsCommandJSON(t *testing.T) {
	out := execute(t, "", "projects", "--tag", "ROS", "--json")
	var got struct {
		Projects []struct {
			ID   string   `json:"id"`
			Tags []string `json:"tags"`
		} `json:"projects"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.NotEmpty(t, got.Projects)
	for _, p := range got.Projects {
		assert.Contains(t, p.Tags, "ROS", p.ID)
	}
}

func TestProjectsModesExclusive(t *testing.T) {
	t.Setenv("FOLIO_STORE", "memory")
	cmd := New()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"projects", "--all", "--random"})
	assert.Error(t, cmd.Execute())
}

func TestPlainTerminalCommand(t *testing.T) {
	color.NoColor = true
	out := execute(t, "contact\nexit\n", "terminal", "--plain")
	assert.Contains(t, out, "→ /contact")
	assert.Contains(t, out, "Navigating to Contact page...")
}

func TestUnlockCommand(t *testing.T) {
	assert.Contains(t, execute(t, "", "unlock"), "terminal was not locked")
}

func TestVersionShort(t *testing.T) {
	assert.Contains(t, execute(t, "", "version", "--short"), "dev")
}
