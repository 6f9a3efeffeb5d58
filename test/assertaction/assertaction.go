// Package assertaction provides testing functions for validation a plugin action's behavior
package assertaction

import (
	"context"
	"github.com/alexandre-normand/cookiebot"
	"github.com/stretchr/testify/assert"
	"strings"
	"testing"
)

// AnswerValidator is a function to do further validation of a command's answer. The return value is meant to be true if validation
// is successful and false otherwise (following the testify convention)
type AnswerValidator func(t *testing.T, a *cookiebot.Answer) bool

// NoticeValidator is a function to do further validation of a membership action's notice
type NoticeValidator func(t *testing.T, n *cookiebot.Notice) bool

// MatchesAndAnswers asserts that the command is named like the incoming command and gets the command's answer to be further validated by AnswerValidator
func MatchesAndAnswers(t *testing.T, command cookiebot.CommandDefinition, c *cookiebot.IncomingCommand, validateAnswer AnswerValidator) bool {
	isMatch := strings.EqualFold(command.Name, c.Name)

	if assert.Equalf(t, true, isMatch, "Command [%s] expected to match but it's named [%s]", c.Name, command.Name) {
		a := command.Answer(context.Background(), c)

		return validateAnswer(t, a)
	}

	return false
}

// NotMatch asserts that the command isn't named like the incoming command
func NotMatch(t *testing.T, command cookiebot.CommandDefinition, c *cookiebot.IncomingCommand) bool {
	isMatch := strings.EqualFold(command.Name, c.Name)

	return assert.Equalf(t, false, isMatch, "Command [%s] should not be a match but the command is named [%s]", c.Name, command.Name)
}

// Notifies runs a membership action with the event and passes the notice to be validated by NoticeValidator
func Notifies(t *testing.T, action cookiebot.MembershipActionDefinition, e *cookiebot.MembershipEvent, validateNotice NoticeValidator) bool {
	n := action.Notify(context.Background(), e)

	return validateNotice(t, n)
}
