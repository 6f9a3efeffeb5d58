// Package plugins provides the cookiebot plugins: cookie accounting, membership notices and
// version reporting
package plugins

import (
	"context"
	"fmt"
	"github.com/alexandre-normand/cookiebot"
	"github.com/alexandre-normand/cookiebot/actions"
	"github.com/alexandre-normand/cookiebot/plugin"
)

// Versioner holds the plugin data for the versioner plugin
type Versioner struct {
	cookiebot.Plugin
}

const (
	// VersionerPluginName holds identifying name for the versioner plugin
	VersionerPluginName = "versioner"
)

// NewVersioner creates a new instance of the versioner plugin
func NewVersioner(name string, version string) *Versioner {
	p := plugin.New(VersionerPluginName).
		WithCommand(actions.NewCommand("version").
			WithDescriptionf("Reply with `%s`'s `version` number", name).
			WithAnswerer(func(ctx context.Context, c *cookiebot.IncomingCommand) *cookiebot.Answer {
				return &cookiebot.Answer{Text: fmt.Sprintf("I'm `%s`, version `%s`", name, version)}
			}).
			Build()).
		Build()

	return &Versioner{Plugin: *p}
}
