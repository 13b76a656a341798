package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePositionalPath(t *testing.T) {
	var out bytes.Buffer
	config, exit, err := Parse([]string{"profiles/combat.xml"}, &out)

	require.NoError(t, err)
	assert.False(t, exit)
	require.NotNil(t, config)
	assert.Equal(t, "profiles/combat.xml", config.ProfilePath)
	assert.Equal(t, "text", config.LogFormat)
	assert.Equal(t, "info", config.LogLevel)
	assert.False(t, config.Write)
}

func TestParseProfileFlagWinsOverPositional(t *testing.T) {
	var out bytes.Buffer
	config, exit, err := Parse([]string{"-profile", "a.xml", "b.xml"}, &out)

	require.NoError(t, err)
	assert.False(t, exit)
	assert.Equal(t, "a.xml", config.ProfilePath)
}

func TestParseShorthandFlag(t *testing.T) {
	var out bytes.Buffer
	config, _, err := Parse([]string{"-p", "a.xml", "-write"}, &out)

	require.NoError(t, err)
	assert.Equal(t, "a.xml", config.ProfilePath)
	assert.True(t, config.Write)
}

func TestParseVariablesOnly(t *testing.T) {
	var out bytes.Buffer
	config, exit, err := Parse([]string{"-variables", "plugins/trim.hcl"}, &out)

	require.NoError(t, err)
	assert.False(t, exit)
	assert.Equal(t, "plugins/trim.hcl", config.VariablesPath)
	assert.Empty(t, config.ProfilePath)
}

func TestParseNoArgumentsPrintsUsage(t *testing.T) {
	var out bytes.Buffer
	config, exit, err := Parse(nil, &out)

	require.NoError(t, err)
	assert.True(t, exit)
	assert.Nil(t, config)
	assert.Contains(t, out.String(), "Usage:")
}

func TestParseHelpIsCleanExit(t *testing.T) {
	var out bytes.Buffer
	config, exit, err := Parse([]string{"-h"}, &out)

	require.NoError(t, err)
	assert.True(t, exit)
	assert.Nil(t, config)
}

func TestParseInvalidLogFormat(t *testing.T) {
	var out bytes.Buffer
	_, _, err := Parse([]string{"-log-format", "yaml", "a.xml"}, &out)

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
	assert.Contains(t, exitErr.Message, "log-format")
}

func TestParseInvalidLogLevel(t *testing.T) {
	var out bytes.Buffer
	_, _, err := Parse([]string{"-log-level", "loud", "a.xml"}, &out)

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
	assert.Contains(t, exitErr.Message, "log-level")
}

func TestParseWriteWithoutProfile(t *testing.T) {
	var out bytes.Buffer
	_, _, err := Parse([]string{"-write", "-variables", "plugins/trim.hcl"}, &out)

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
}

func TestParseUnknownFlag(t *testing.T) {
	var out bytes.Buffer
	_, _, err := Parse([]string{"-bogus"}, &out)

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
}
