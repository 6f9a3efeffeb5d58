package cookiebot_test

import (
	"encoding/json"
	"github.com/alexandre-normand/cookiebot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestManifestDeclaresSlashCommandsOnly(t *testing.T) {
	b := newSlashTestBot(t, testSigningSecret)

	m := b.Manifest("https://cookies.example.com/slack/commands")

	assert.Equal(t, "cookiebot", m.DisplayInformation.Name)
	assert.Equal(t, []cookiebot.SlashCommand{
		{Command: "/echo", URL: "https://cookies.example.com/slack/commands", Description: "Repeat after me", UsageHint: "<text>", ShouldEscape: true},
		{Command: "/whisper", URL: "https://cookies.example.com/slack/commands", Description: "Whisper", ShouldEscape: true},
	}, m.Features.SlashCommands)
	assert.Equal(t, []string{"chat:write", "commands", "users:read"}, m.OAuthConfig.Scopes.Bot)
	assert.Equal(t, []string{"team_join", "user_change"}, m.Settings.EventSubscriptions.BotEvents)
}

func TestManifestJSONIsDeterministic(t *testing.T) {
	b := newSlashTestBot(t, testSigningSecret)

	first, err := b.ManifestJSON("https://cookies.example.com/slack/commands")
	require.NoError(t, err)

	second, err := b.ManifestJSON("https://cookies.example.com/slack/commands")
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(first, &decoded))
	assert.Contains(t, decoded, "features")
	assert.Contains(t, decoded, "settings")
}
