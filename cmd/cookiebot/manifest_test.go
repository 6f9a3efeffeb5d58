package main

import (
	"encoding/json"
	"github.com/alexandre-normand/cookiebot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestManifestDeclaresCookieSlashCommands(t *testing.T) {
	data, err := manifestJSON("https://cookies.example.com/slack/commands")
	require.NoError(t, err)

	var m cookiebot.AppManifest
	require.NoError(t, json.Unmarshal(data, &m))

	commands := make([]string, 0)
	for _, sc := range m.Features.SlashCommands {
		commands = append(commands, sc.Command)
		assert.Equal(t, "https://cookies.example.com/slack/commands", sc.URL)
	}

	assert.Equal(t, []string{"/addcookies", "/cookies", "/removecookies", "/top"}, commands)
	assert.Equal(t, "<user> <amount>", m.Features.SlashCommands[0].UsageHint)
}

func TestManifestIsDeterministic(t *testing.T) {
	first, err := manifestJSON("https://cookies.example.com/slack/commands")
	require.NoError(t, err)

	second, err := manifestJSON("https://cookies.example.com/slack/commands")
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}
