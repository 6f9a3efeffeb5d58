package cookiebot

import (
	"context"
	"fmt"
	"io"
	"strings"
)

type helpPlugin struct {
	Plugin

	name              string
	engineVersion     string
	commands          []CommandDefinition
	membershipActions []pluginMembershipAction
}

const (
	helpPluginName = "help"
)

func (b *Bot) newHelpPlugin(version string) *helpPlugin {
	commands, membershipActions := findAllActions(b.plugins)

	helpPlugin := new(helpPlugin)
	helpPlugin.name = b.name
	helpPlugin.engineVersion = version
	helpPlugin.commands = commands
	helpPlugin.membershipActions = membershipActions

	helpPlugin.Plugin = Plugin{Name: helpPluginName, Commands: []CommandDefinition{{
		Name:        helpPluginName,
		Usage:       helpPluginName,
		Description: "Reply with usage instructions",
		Answer:      helpPlugin.showHelp,
	}}}

	return helpPlugin
}

// showHelp generates a message providing a list of all of the cookiebot commands and membership actions.
// Note that CommandDefinitions with the flag Hidden set to true won't be included in the list
func (h *helpPlugin) showHelp(ctx context.Context, c *IncomingCommand) *Answer {
	var b strings.Builder

	user, err := h.UserInfoFinder.GetUserInfo(c.UserID)
	if err != nil {
		h.Logger.Debugf("Error getting user info for user id [%s] so skipping mentioning the name (it would be awkward): %v\n", c.UserID, err)
	} else {
		fmt.Fprintf(&b, "🤝 Hi, `%s`! ", user.RealName)
	}

	fmt.Fprintf(&b, "I'm `%s` (engine `v%s`) and I keep track of everyone's cookies :cookie:.\n", h.name, h.engineVersion)

	if len(h.commands) > 0 {
		fmt.Fprintf(&b, "\nI currently support the following commands:\n")

		appendCommands(&b, h.commands)
	}

	if len(h.membershipActions) > 0 {
		fmt.Fprintf(&b, "\nAnd do those things when people come and go:\n")

		appendMembershipActions(&b, h.membershipActions)
	}

	return &Answer{Text: b.String(), Options: []AnswerOption{AnswerInThread()}}
}

func appendCommands(w io.Writer, commands []CommandDefinition) {
	for _, c := range commands {
		if c.Usage != "" {
			fmt.Fprintf(w, "\t• %s\n", c)
		}
	}
}

func appendMembershipActions(w io.Writer, actions []pluginMembershipAction) {
	for _, a := range actions {
		fmt.Fprintf(w, "\t• [`%s`] %s\n", a.pluginName, a.Description)
	}
}

func findAllActions(plugins []*Plugin) (commands []CommandDefinition, membershipActions []pluginMembershipAction) {
	commands = make([]CommandDefinition, 0)
	membershipActions = make([]pluginMembershipAction, 0)

	for _, p := range plugins {
		for _, c := range p.Commands {
			if !c.Hidden {
				commands = append(commands, c)
			}
		}

		for _, ma := range p.MembershipActions {
			membershipActions = append(membershipActions, pluginMembershipAction{MembershipActionDefinition: ma, pluginName: p.Name})
		}
	}

	return commands, membershipActions
}
