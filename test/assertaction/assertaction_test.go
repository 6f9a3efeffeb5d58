package assertaction_test

import (
	"context"
	"github.com/alexandre-normand/cookiebot"
	"github.com/alexandre-normand/cookiebot/test/assertaction"
	"github.com/stretchr/testify/assert"
	"testing"
)

var echoCommand = cookiebot.CommandDefinition{
	Hidden:      false,
	Name:        "ping",
	Usage:       "ping",
	Description: "Sends `pong` on `ping`",
	Answer: func(ctx context.Context, c *cookiebot.IncomingCommand) *cookiebot.Answer {
		return &cookiebot.Answer{Text: "pong"}
	},
}

var waveAction = cookiebot.MembershipActionDefinition{
	Description: "Wave",
	Notify: func(ctx context.Context, e *cookiebot.MembershipEvent) *cookiebot.Notice {
		return &cookiebot.Notice{ChannelID: "C1", Answer: cookiebot.Answer{Text: "👋"}}
	},
}

func TestAssertNoMatchWhenMatch(t *testing.T) {
	mockT := new(testing.T)
	assert.Equal(t, false, assertaction.NotMatch(mockT, echoCommand, &cookiebot.IncomingCommand{Name: "ping"}))
}

func TestAssertNoMatchWhenNoMatch(t *testing.T) {
	mockT := new(testing.T)
	assert.Equal(t, true, assertaction.NotMatch(mockT, echoCommand, &cookiebot.IncomingCommand{Name: "pang"}))
}

func TestAssertMatchAndAnswersWhenNoMatch(t *testing.T) {
	mockT := new(testing.T)
	assert.Equal(t, false, assertaction.MatchesAndAnswers(mockT, echoCommand, &cookiebot.IncomingCommand{Name: "pang"}, func(t *testing.T, a *cookiebot.Answer) bool {
		return true
	}))
}

func TestAssertMatchAndAnswersWhenMatchesButAnswerNotValid(t *testing.T) {
	mockT := new(testing.T)
	assert.Equal(t, false, assertaction.MatchesAndAnswers(mockT, echoCommand, &cookiebot.IncomingCommand{Name: "ping"}, func(t *testing.T, a *cookiebot.Answer) bool {
		return false
	}))
}

func TestAssertMatchAndAnswersWhenMatchesWithValidAnswer(t *testing.T) {
	mockT := new(testing.T)
	assert.Equal(t, true, assertaction.MatchesAndAnswers(mockT, echoCommand, &cookiebot.IncomingCommand{Name: "PING"}, func(t *testing.T, a *cookiebot.Answer) bool {
		return a.Text == "pong"
	}))
}

func TestAssertNotifies(t *testing.T) {
	mockT := new(testing.T)
	assert.Equal(t, true, assertaction.Notifies(mockT, waveAction, &cookiebot.MembershipEvent{Change: cookiebot.MemberJoined, UserID: "U1"}, func(t *testing.T, n *cookiebot.Notice) bool {
		return n != nil && n.ChannelID == "C1"
	}))
}
