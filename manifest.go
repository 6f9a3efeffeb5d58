package cookiebot

import (
	"encoding/json"
	"sort"
	"strings"
)

// Scopes needed by the bot to post, answer slash commands and look up members
var botScopes = []string{"chat:write", "commands", "users:read"}

// Events the bot subscribes to for membership actions
var botEvents = []string{"team_join", "user_change"}

// AppManifest is the slack app manifest registering the bot user, its slash commands and events
type AppManifest struct {
	DisplayInformation DisplayInformation `json:"display_information"`
	Features           Features           `json:"features"`
	OAuthConfig        OAuthConfig        `json:"oauth_config"`
	Settings           Settings           `json:"settings"`
}

// DisplayInformation holds the app name and description
type DisplayInformation struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Features holds the bot user and slash commands
type Features struct {
	BotUser       BotUser        `json:"bot_user"`
	SlashCommands []SlashCommand `json:"slash_commands,omitempty"`
}

// BotUser holds the bot user's display settings
type BotUser struct {
	DisplayName  string `json:"display_name"`
	AlwaysOnline bool   `json:"always_online"`
}

// SlashCommand is the manifest declaration of a slash command
type SlashCommand struct {
	Command      string `json:"command"`
	URL          string `json:"url"`
	Description  string `json:"description"`
	UsageHint    string `json:"usage_hint,omitempty"`
	ShouldEscape bool   `json:"should_escape"`
}

// OAuthConfig holds the requested scopes
type OAuthConfig struct {
	Scopes Scopes `json:"scopes"`
}

// Scopes holds the bot scopes
type Scopes struct {
	Bot []string `json:"bot"`
}

// Settings holds the event subscriptions
type Settings struct {
	EventSubscriptions EventSubscriptions `json:"event_subscriptions"`
}

// EventSubscriptions holds the bot events
type EventSubscriptions struct {
	BotEvents []string `json:"bot_events"`
}

// Manifest returns the app manifest declaring every registered slash command with the given request url.
// The output only depends on the registered plugins so registering it again is a no-op
func (b *Bot) Manifest(requestURL string) (m AppManifest) {
	m.DisplayInformation = DisplayInformation{Name: b.name, Description: "Keeps track of everyone's cookies"}
	m.Features.BotUser = BotUser{DisplayName: b.name, AlwaysOnline: true}
	m.OAuthConfig.Scopes.Bot = botScopes
	m.Settings.EventSubscriptions.BotEvents = botEvents

	for _, p := range b.plugins {
		for _, c := range p.Commands {
			if !c.Slash {
				continue
			}

			m.Features.SlashCommands = append(m.Features.SlashCommands, SlashCommand{
				Command:      "/" + strings.ToLower(c.Name),
				URL:          requestURL,
				Description:  c.Description,
				UsageHint:    usageHint(c),
				ShouldEscape: true,
			})
		}
	}

	sort.Slice(m.Features.SlashCommands, func(i, j int) bool {
		return m.Features.SlashCommands[i].Command < m.Features.SlashCommands[j].Command
	})

	return m
}

// ManifestJSON returns the indented json rendition of the app manifest
func (b *Bot) ManifestJSON(requestURL string) (data []byte, err error) {
	return json.MarshalIndent(b.Manifest(requestURL), "", "  ")
}

// usageHint returns the usage of a command without the command name
func usageHint(c CommandDefinition) string {
	usage := strings.TrimPrefix(strings.TrimSpace(c.Usage), "/")

	return strings.TrimSpace(strings.TrimPrefix(usage, c.Name))
}
