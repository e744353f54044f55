package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAnnotateArgs(t *testing.T) {
	parsed, err := parseAnnotateArgs([]string{
		"-i", "authors.json",
		"--copyright", "John Doe",
		"--default-contributor", "Alice",
		"-d", "Bob",
		"--skip-unrecognised",
	})
	require.NoError(t, err)

	assert.Equal(t, "authors.json", parsed.input)
	assert.Equal(t, []string{"Alice", "Bob"}, parsed.defaults)
	assert.Equal(t, []string{"--copyright", "John Doe", "--skip-unrecognised"}, parsed.passthrough)
}

func TestParseAnnotateArgsEqualsForm(t *testing.T) {
	parsed, err := parseAnnotateArgs([]string{
		"--input=x.json",
		"--default-contributor=Carol",
		"--year=2026",
	})
	require.NoError(t, err)

	assert.Equal(t, "x.json", parsed.input)
	assert.Equal(t, []string{"Carol"}, parsed.defaults)
	assert.Equal(t, []string{"--year=2026"}, parsed.passthrough)
}

func TestParseAnnotateArgsDoubleDash(t *testing.T) {
	// Everything after -- goes through verbatim, even flags reuseify
	// would otherwise consume.
	parsed, err := parseAnnotateArgs([]string{"-i", "x.json", "--", "-i", "tool-input"})
	require.NoError(t, err)

	assert.Equal(t, "x.json", parsed.input)
	assert.Equal(t, []string{"-i", "tool-input"}, parsed.passthrough)
}

func TestParseAnnotateArgsMissingValue(t *testing.T) {
	_, err := parseAnnotateArgs([]string{"--default-contributor"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "needs an argument")
}

func TestParseAnnotateArgsHelpAndVerbose(t *testing.T) {
	parsed, err := parseAnnotateArgs([]string{"-v", "--help"})
	require.NoError(t, err)
	assert.True(t, parsed.verbose)
	assert.True(t, parsed.help)
	assert.Empty(t, parsed.passthrough)
}

func TestParseAnnotateArgsEmpty(t *testing.T) {
	parsed, err := parseAnnotateArgs(nil)
	require.NoError(t, err)
	assert.Empty(t, parsed.input)
	assert.Empty(t, parsed.defaults)
	assert.Empty(t, parsed.passthrough)
}
