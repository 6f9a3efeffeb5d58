package cookiebot

import (
	"github.com/spf13/viper"
	"io"
)

// Builder holds a cookiebot instance to build
type Builder struct {
	bot *Bot
	err error
}

// NewBot returns a new Builder used to set up a new cookiebot
func NewBot(name string, v *viper.Viper, options ...Option) (bb *Builder) {
	bb = new(Builder)
	bb.bot, bb.err = New(name, v, options...)

	return bb
}

// WithPlugin adds a plugin to the cookiebot instance
func (bb *Builder) WithPlugin(p *Plugin) *Builder {
	return bb.WithPluginErr(p, nil)
}

// WithPluginErr adds a plugin that has a creation function returning (Plugin, error) to the cookiebot instance
func (bb *Builder) WithPluginErr(p *Plugin, err error) *Builder {
	return bb.WithPluginCloserErr(nil, p, err)
}

// WithPluginCloserErr adds a plugin that has a creation function returning (io.Closer, Plugin, error) to the cookiebot instance.
// The closer is closed when the bot is closed
func (bb *Builder) WithPluginCloserErr(closer io.Closer, p *Plugin, err error) *Builder {
	if bb.err == nil && err != nil {
		bb.err = err
	}

	if bb.err != nil {
		return bb
	}

	if bb.err = bb.bot.RegisterPlugin(p); bb.err != nil {
		return bb
	}

	if closer != nil {
		bb.bot.closers = append(bb.bot.closers, closer)
	}

	return bb
}

// Build registers the help plugin and returns the built cookiebot instance. If there was an error during
// setup, the error is returned along with a nil cookiebot
func (bb *Builder) Build() (b *Bot, err error) {
	if bb.err != nil {
		return nil, bb.err
	}

	if err = bb.bot.RegisterPlugin(&bb.bot.newHelpPlugin(VERSION).Plugin); err != nil {
		return nil, err
	}

	return bb.bot, nil
}
