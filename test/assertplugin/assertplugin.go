package assertplugin

import (
	"context"
	"fmt"
	"github.com/alexandre-normand/cookiebot"
	"github.com/slack-go/slack"
	"log"
	"strings"
	"testing"
)

// Asserter represents a plugin driver/asserter and holds the bot identifier that tests are using when
// sending test messages for processing
type Asserter struct {
	t              *testing.T
	botUserID      string
	logger         *log.Logger
	userInfoFinder cookiebot.UserInfoFinder
}

// New creates a new asserter with the given botUserId
// (only include the id without the '@' prefix).
// The botUserId is used in order to detect commands formed with
// <@botUserId>
func New(t *testing.T, botUserID string, options ...Option) (a *Asserter) {
	a = new(Asserter)
	a.t = t
	a.botUserID = botUserID

	for _, option := range options {
		option(a)
	}

	return a
}

// Option defines an option for the Asserter
type Option func(*Asserter)

// OptionLog sets a logger for the asserter such that this logger is attached to the plugin when driven by
// the asserter
func OptionLog(logger *log.Logger) func(*Asserter) {
	return func(a *Asserter) {
		a.logger = logger
	}
}

// OptionUserInfoFinder sets the user info finder injected in the plugin when driven by the asserter
func OptionUserInfoFinder(uf cookiebot.UserInfoFinder) func(*Asserter) {
	return func(a *Asserter) {
		a.userInfoFinder = uf
	}
}

// ResultValidator is a function to do further validation of the answers resulting from a plugin processing
// a command. The return value is meant to be true if validation is successful and false otherwise
// (following the testify convention)
type ResultValidator func(t *testing.T, answers []*cookiebot.Answer) bool

// NoticeValidator is a function to do further validation of the notices resulting from a plugin processing
// a membership event
type NoticeValidator func(t *testing.T, notices []*cookiebot.Notice) bool

// Answers drives a plugin's commands with a message and collects Answers. Once all of those have been collected,
// it passes handling to a validator to assert the expected answers. It follows the style of
// github.com/stretchr/testify/assert as far as returning true/false to indicate success for further nested testing
func (a *Asserter) Answers(p *cookiebot.Plugin, m *slack.Msg, validate ResultValidator) (valid bool) {
	a.injectServices(p)

	answers := a.driveCommands(p, m)

	return validate(a.t, answers)
}

// Notices drives a plugin's membership actions with a membership event and collects Notices before passing
// them to the validator
func (a *Asserter) Notices(p *cookiebot.Plugin, e *cookiebot.MembershipEvent, validate NoticeValidator) (valid bool) {
	a.injectServices(p)

	notices := make([]*cookiebot.Notice, 0)
	for _, ma := range p.MembershipActions {
		if n := ma.Notify(context.Background(), e); n != nil {
			notices = append(notices, n)
		}
	}

	return validate(a.t, notices)
}

func (a *Asserter) injectServices(p *cookiebot.Plugin) {
	p.Logger = cookiebot.NewSLogger(getLogger(a), true)

	if a.userInfoFinder != nil {
		p.UserInfoFinder = a.userInfoFinder
	}
}

func getLogger(a *Asserter) (logger *log.Logger) {
	if a.logger != nil {
		return a.logger
	}

	var b strings.Builder
	return log.New(&b, "", 0)
}

func (a *Asserter) driveCommands(p *cookiebot.Plugin, m *slack.Msg) (answers []*cookiebot.Answer) {
	answers = make([]*cookiebot.Answer, 0)
	botMentionPrefix := fmt.Sprintf("<@%s> ", a.botUserID)

	text := m.Text
	switch {
	case strings.HasPrefix(text, botMentionPrefix):
		text = strings.TrimPrefix(text, botMentionPrefix)
	case strings.HasPrefix(m.Channel, "D"):
	default:
		return answers
	}

	c := cookiebot.ParseCommand(text)
	if c == nil {
		return answers
	}
	c.UserID = m.User
	c.ChannelID = m.Channel

	for _, cmd := range p.Commands {
		if strings.EqualFold(cmd.Name, c.Name) {
			if answer := cmd.Answer(context.Background(), c); answer != nil {
				answers = append(answers, answer)
			}
		}
	}

	return answers
}
