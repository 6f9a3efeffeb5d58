package cookiebot

import (
	"github.com/slack-go/slack"
)

// messagePoster is implemented by any value that has the PostMessage method.
//
// slack.Client implements this interface
type messagePoster interface {
	PostMessage(channelID string, options ...slack.MsgOption) (rChannelID string, rTimestamp string, err error)
}

// ephemeralPoster is implemented by any value that has the PostEphemeral method.
//
// slack.Client implements this interface
type ephemeralPoster interface {
	PostEphemeral(channelID string, userID string, options ...slack.MsgOption) (rTimestamp string, err error)
}

// ChatDriver encompasses the messagePoster and ephemeralPoster interfaces and is implemented by any value that
// has all methods of those interfaces
type ChatDriver interface {
	messagePoster
	ephemeralPoster
}
