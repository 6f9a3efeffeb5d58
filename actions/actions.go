/*
Package actions provides a fluent API for creating cookiebot plugin commands and membership actions. Typical usages
will also involve using the plugin fluent API from github.com/alexandre-normand/cookiebot/plugin.

A quick example could look like:

	import (
		"github.com/alexandre-normand/cookiebot"
		"github.com/alexandre-normand/cookiebot/plugin"
		"github.com/alexandre-normand/cookiebot/actions"
	)

	func newPlugin() (p *cookiebot.Plugin) {
		p = plugin.New("baker").
			WithCommand(actions.NewCommand("bake").
				AsSlashCommand().
				WithUsage("/bake <something>").
				WithDescription("Bake the `<something>` you need").
				WithAnswerer(func(ctx context.Context, c *cookiebot.IncomingCommand) *cookiebot.Answer {
					return &cookiebot.Answer{Text: ":cookie: It's ready for you!"}
				}).
				Build()).
			WithMembershipAction(actions.NewMembershipAction().
				WithDescription("Wave at newcomers").
				WithNotifier(wave).
				Build()).
			Build()
		return p
	}
*/
package actions

import (
	"context"
	"fmt"
	"github.com/alexandre-normand/cookiebot"
)

// CommandBuilder holds the command to build
type CommandBuilder struct {
	command cookiebot.CommandDefinition
}

// MembershipActionBuilder holds the membership action to build
type MembershipActionBuilder struct {
	membershipAction cookiebot.MembershipActionDefinition
}

var (
	// Default to always return nil. This is not a default you want to use in most cases
	defaultAnswerer = func(ctx context.Context, c *cookiebot.IncomingCommand) *cookiebot.Answer {
		return nil
	}

	defaultNotifier = func(ctx context.Context, e *cookiebot.MembershipEvent) *cookiebot.Notice {
		return nil
	}
)

// NewCommand returns a new CommandBuilder to build a new command invoked with name. When done
// with the setup, the caller is expected to call Build() to get the command
func NewCommand(name string) (cb *CommandBuilder) {
	cb = new(CommandBuilder)
	cb.command = cookiebot.CommandDefinition{Hidden: false, Name: name, Usage: name}
	cb.command.Answer = defaultAnswerer

	return cb
}

// AsSlashCommand also registers the command as a slash command
func (cb *CommandBuilder) AsSlashCommand() *CommandBuilder {
	cb.command.Slash = true
	return cb
}

// WithUsage sets the command usage
func (cb *CommandBuilder) WithUsage(usage string) *CommandBuilder {
	cb.command.Usage = usage
	return cb
}

// WithDescription sets the command description
func (cb *CommandBuilder) WithDescription(description string) *CommandBuilder {
	cb.command.Description = description
	return cb
}

// WithDescriptionf sets the command description delegating format and arguments to fmt.Sprintf
func (cb *CommandBuilder) WithDescriptionf(format string, a ...interface{}) *CommandBuilder {
	cb.command.Description = fmt.Sprintf(format, a...)
	return cb
}

// WithAnswerer sets the command's answerer function
func (cb *CommandBuilder) WithAnswerer(answerer cookiebot.Answerer) *CommandBuilder {
	cb.command.Answer = answerer
	return cb
}

// Hidden sets the command to hidden
func (cb *CommandBuilder) Hidden() *CommandBuilder {
	cb.command.Hidden = true
	return cb
}

// Build returns the CommandDefinition
func (cb *CommandBuilder) Build() cookiebot.CommandDefinition {
	return cb.command
}

// NewMembershipAction returns a new MembershipActionBuilder to build a new MembershipActionDefinition
func NewMembershipAction() (mab *MembershipActionBuilder) {
	mab = new(MembershipActionBuilder)
	mab.membershipAction.Notify = defaultNotifier

	return mab
}

// WithDescription sets the membership action description
func (mab *MembershipActionBuilder) WithDescription(desc string) *MembershipActionBuilder {
	mab.membershipAction.Description = desc
	return mab
}

// WithDescriptionf sets the membership action description delegating format and arguments to fmt.Sprintf
func (mab *MembershipActionBuilder) WithDescriptionf(format string, a ...interface{}) *MembershipActionBuilder {
	mab.membershipAction.Description = fmt.Sprintf(format, a...)
	return mab
}

// WithNotifier sets the function to run on membership events
func (mab *MembershipActionBuilder) WithNotifier(notifier cookiebot.Notifier) *MembershipActionBuilder {
	mab.membershipAction.Notify = notifier
	return mab
}

// Build returns the MembershipActionDefinition
func (mab *MembershipActionBuilder) Build() cookiebot.MembershipActionDefinition {
	return mab.membershipAction
}
