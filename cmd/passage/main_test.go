package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/aretw0/passage"
	"github.com/aretw0/passage/internal/cli"
	"github.com/aretw0/passage/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("PASSAGE_CACHE_BACKEND", "none")
	t.Setenv("PASSAGE_LOG_LEVEL", "error")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		checkOpts = cli.CheckOptions{}
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "passage version "+strings.TrimSpace(passage.Version)+"\n", out)
}

func TestCheckCommand_JSON(t *testing.T) {
	out, err := execute(t, "check", "--from", "India", "--to", "Japan", "--days", "14", "--purpose", "study", "--json")
	require.NoError(t, err)

	var report domain.RequirementReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 8, report.TotalDocuments)
	assert.True(t, report.Summary.VisaNeeded)
}

func TestCheckCommand_Rejected(t *testing.T) {
	out, err := execute(t, "check", "--from", "India", "--to", "Japan", "--days=-3", "--json")
	assert.ErrorIs(t, err, cli.ErrQueryRejected)
	assert.Contains(t, out, `"error"`)
}

func TestPolicyCommand(t *testing.T) {
	out, err := execute(t, "policy", "usa", "germany", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"listed": true`)
	assert.Contains(t, out, `"visa_required": false`)
}
