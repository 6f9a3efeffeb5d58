package plugins

import (
	"context"
	"fmt"
	"github.com/alexandre-normand/cookiebot"
	"github.com/slack-go/slack"
)

// Greeter holds the plugin data for the greeter plugin
type Greeter struct {
	cookiebot.Plugin
	channelID string
}

const (
	// GreeterPluginName holds identifying name for the greeter plugin
	GreeterPluginName = "greeter"

	// NoticeChannelID is the channel membership notices are posted to
	NoticeChannelID = "C04COOKIES"
)

// NewGreeter creates a new instance of the Greeter plugin posting membership notices to channelID
func NewGreeter(channelID string) (g *Greeter) {
	g = new(Greeter)
	g.channelID = channelID

	g.Plugin = cookiebot.Plugin{Name: GreeterPluginName, MembershipActions: []cookiebot.MembershipActionDefinition{{
		Description: fmt.Sprintf("Welcome members joining and note members leaving on <#%s>", channelID),
		Notify:      g.notify,
	}}}

	return g
}

func (g *Greeter) notify(ctx context.Context, e *cookiebot.MembershipEvent) *cookiebot.Notice {
	switch e.Change {
	case cookiebot.MemberJoined:
		return g.welcome(e.UserID)
	case cookiebot.MemberLeft:
		return g.goodbye()
	default:
		return nil
	}
}

// welcome returns the notice mentioning the new member along with their avatar when it can be found
func (g *Greeter) welcome(userID string) *cookiebot.Notice {
	title := "Welcome!"
	text := fmt.Sprintf("<@%s> joined the workspace!", userID)

	var accessory *slack.Accessory
	u, err := g.UserInfoFinder.GetUserInfo(userID)
	if err != nil {
		g.Logger.Debugf("[%s] Unable to get user info for [%s], skipping the avatar: %v\n", GreeterPluginName, userID, err)
	} else if u.Profile.Image192 != "" {
		accessory = slack.NewAccessory(slack.NewImageBlockElement(u.Profile.Image192, "avatar"))
	}

	return &cookiebot.Notice{ChannelID: g.channelID, Answer: cookiebot.Answer{
		Text: fmt.Sprintf("%s %s", title, text),
		ContentBlocks: []slack.Block{
			slack.NewHeaderBlock(slack.NewTextBlockObject(slack.PlainTextType, title, false, false)),
			slack.NewSectionBlock(slack.NewTextBlockObject(slack.MarkdownType, text, false, false), nil, accessory),
		},
	}}
}

// goodbye returns the generic notice for a member leaving. The member is deactivated so it isn't named
func (g *Greeter) goodbye() *cookiebot.Notice {
	title := "Goodbye!"
	text := "A member left the workspace."

	return &cookiebot.Notice{ChannelID: g.channelID, Answer: cookiebot.Answer{
		Text: fmt.Sprintf("%s %s", title, text),
		ContentBlocks: []slack.Block{
			slack.NewHeaderBlock(slack.NewTextBlockObject(slack.PlainTextType, title, false, false)),
			slack.NewSectionBlock(slack.NewTextBlockObject(slack.MarkdownType, text, false, false), nil, nil),
		},
	}}
}
