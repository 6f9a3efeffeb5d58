// Package capture provides captors of outgoing chat calls for tests
package capture

import (
	"github.com/slack-go/slack"
	"sync"
)

// SentMessage holds the resolved content of a message sent through the ChatDriverCaptor
type SentMessage struct {
	ChannelID string
	UserID    string // Only set for ephemeral messages
	Ephemeral bool
	Text      string
	ThreadTS  string
	Blocks    string // json encoded blocks, if any
}

// ChatDriverCaptor captures messages instead of sending them. Err, when set, is returned by every call
// (the message still gets captured)
type ChatDriverCaptor struct {
	sync.Mutex
	SentMessages []SentMessage
	Err          error
}

// NewChatDriver returns a new initialized ChatDriverCaptor instance
func NewChatDriver() (cdc *ChatDriverCaptor) {
	cdc = new(ChatDriverCaptor)
	cdc.SentMessages = make([]SentMessage, 0)

	return cdc
}

// PostMessage captures a message sent to a channel
func (cdc *ChatDriverCaptor) PostMessage(channelID string, options ...slack.MsgOption) (rChannelID string, rTimestamp string, err error) {
	cdc.capture(SentMessage{ChannelID: channelID}, options...)

	return channelID, "1212314125", cdc.Err
}

// PostEphemeral captures a message sent to a channel only visible to userID
func (cdc *ChatDriverCaptor) PostEphemeral(channelID string, userID string, options ...slack.MsgOption) (rTimestamp string, err error) {
	cdc.capture(SentMessage{ChannelID: channelID, UserID: userID, Ephemeral: true}, options...)

	return "1212314126", cdc.Err
}

// Messages returns a copy of the messages captured so far
func (cdc *ChatDriverCaptor) Messages() (messages []SentMessage) {
	cdc.Lock()
	defer cdc.Unlock()

	return append([]SentMessage{}, cdc.SentMessages...)
}

func (cdc *ChatDriverCaptor) capture(m SentMessage, options ...slack.MsgOption) {
	_, values, err := slack.UnsafeApplyMsgOptions("", m.ChannelID, "", options...)
	if err == nil {
		m.Text = values.Get("text")
		m.ThreadTS = values.Get("thread_ts")
		m.Blocks = values.Get("blocks")
	}

	cdc.Lock()
	defer cdc.Unlock()

	cdc.SentMessages = append(cdc.SentMessages, m)
}
