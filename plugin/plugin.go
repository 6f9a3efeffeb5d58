// Package plugin provides a fluent API for creating cookiebot plugins along with the
// github.com/alexandre-normand/cookiebot/actions package
package plugin

import (
	"github.com/alexandre-normand/cookiebot"
)

// PluginBuilder holds a plugin to build
type PluginBuilder struct {
	plugin *cookiebot.Plugin
}

// New creates a new PluginBuilder with a plugin with the given name and empty set of actions
func New(name string) (pb *PluginBuilder) {
	pb = new(PluginBuilder)
	pb.plugin = new(cookiebot.Plugin)
	pb.plugin.Name = name
	pb.plugin.Commands = make([]cookiebot.CommandDefinition, 0)
	pb.plugin.MembershipActions = make([]cookiebot.MembershipActionDefinition, 0)

	return pb
}

// WithCommand adds a command to the plugin
func (pb *PluginBuilder) WithCommand(command cookiebot.CommandDefinition) *PluginBuilder {
	pb.plugin.Commands = append(pb.plugin.Commands, command)
	return pb
}

// WithMembershipAction adds a membership action to the plugin
func (pb *PluginBuilder) WithMembershipAction(membershipAction cookiebot.MembershipActionDefinition) *PluginBuilder {
	pb.plugin.MembershipActions = append(pb.plugin.MembershipActions, membershipAction)
	return pb
}

// Build returns the created Plugin instance
func (pb *PluginBuilder) Build() (p *cookiebot.Plugin) {
	return pb.plugin
}
