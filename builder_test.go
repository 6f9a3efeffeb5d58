package cookiebot_test

import (
	"context"
	"errors"
	"github.com/alexandre-normand/cookiebot"
	"github.com/alexandre-normand/cookiebot/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"io"
	"testing"
)

func TestNewBotWithoutPlugins(t *testing.T) {
	b, err := cookiebot.NewBot("jane", config.NewViperWithDefaults()).
		Build()

	require.NoError(t, err)
	require.NotNil(t, b)
}

func TestNewBotWithSimplePlugin(t *testing.T) {
	b, err := cookiebot.NewBot("jane", config.NewViperWithDefaults()).
		WithPlugin(newPlugin()).
		Build()

	require.NoError(t, err)
	require.NotNil(t, b)

	a := b.HandleCommand(context.Background(), &cookiebot.IncomingCommand{Name: "make", Args: []string{"tea"}})
	require.NotNil(t, a)
	assert.Equal(t, "Ready", a.Text)
}

func TestNewBotWithPluginAndError(t *testing.T) {
	b, err := cookiebot.NewBot("jane", config.NewViperWithDefaults()).
		WithPluginErr(newPluginWithErr("")).
		Build()

	require.NoError(t, err)
	require.NotNil(t, b)
}

func TestNewBotWithPluginAndErrorSet(t *testing.T) {
	b, err := cookiebot.NewBot("jane", config.NewViperWithDefaults()).
		WithPluginErr(newPluginWithErr("error1")).
		Build()

	require.Error(t, err)
	assert.EqualError(t, err, "error1")
	assert.Nil(t, b)
}

func TestNewBotWithPluginAndManyErrors(t *testing.T) {
	b, err := cookiebot.NewBot("jane", config.NewViperWithDefaults()).
		WithPluginErr(newPluginWithErr("error1")).
		WithPluginErr(newPluginWithErr("error2")).
		WithPlugin(newPlugin()).
		Build()

	require.Error(t, err)
	assert.EqualError(t, err, "error1")
	assert.Nil(t, b)
}

func TestNewBotWithDuplicateCommand(t *testing.T) {
	b, err := cookiebot.NewBot("jane", config.NewViperWithDefaults()).
		WithPlugin(newPlugin()).
		WithPlugin(newPlugin()).
		Build()

	require.Error(t, err)
	assert.EqualError(t, err, "command [make] of plugin [tester] is already registered by plugin [tester]")
	assert.Nil(t, b)
}

func TestNewBotWithPluginNamedLikeHelp(t *testing.T) {
	p := newPlugin()
	p.Commands[0].Name = "help"

	b, err := cookiebot.NewBot("jane", config.NewViperWithDefaults()).
		WithPlugin(p).
		Build()

	require.Error(t, err)
	assert.Nil(t, b)
}

func TestNewBotWithInvalidUserInfoCacheSize(t *testing.T) {
	v := config.NewViperWithDefaults()
	v.Set(config.UserInfoCacheSizeKey, -1)

	b, err := cookiebot.NewBot("jane", v).
		WithPlugin(newPlugin()).
		Build()

	require.Error(t, err)
	assert.Nil(t, b)
}

func TestNewBotWithCloserPluginClosingWithError(t *testing.T) {
	b, err := cookiebot.NewBot("jane", config.NewViperWithDefaults()).
		WithPluginCloserErr(newPluginWithErrAndCloser("", CloseTester{errorMsg: "should be called"})).
		Build()

	require.NoError(t, err)
	require.NotNil(t, b)

	err = b.Close()
	assert.EqualError(t, err, "should be called")
}

func TestNewBotWithCloserPluginClosingWithoutError(t *testing.T) {
	b, err := cookiebot.NewBot("jane", config.NewViperWithDefaults()).
		WithPluginCloserErr(newPluginWithErrAndCloser("", CloseTester{errorMsg: ""})).
		Build()

	require.NoError(t, err)
	require.NotNil(t, b)

	err = b.Close()
	assert.NoError(t, err)
}

func TestNewBotWithCloserAndErr(t *testing.T) {
	b, err := cookiebot.NewBot("jane", config.NewViperWithDefaults()).
		WithPluginCloserErr(newPluginWithErrAndCloser("error1", CloseTester{})).
		WithPluginCloserErr(newPluginWithErrAndCloser("error2", CloseTester{})).
		Build()

	require.Error(t, err)
	assert.EqualError(t, err, "error1")
	assert.Nil(t, b)
}

// newPlugin returns a new tester plugin
func newPlugin() (p *cookiebot.Plugin) {
	p = new(cookiebot.Plugin)
	p.Name = "tester"
	p.Commands = []cookiebot.CommandDefinition{{
		Name:        "make",
		Usage:       "make <something>",
		Description: "Have the test bot make something for you",
		Answer: func(ctx context.Context, c *cookiebot.IncomingCommand) *cookiebot.Answer {
			return &cookiebot.Answer{Text: "Ready"}
		},
	}}

	return p
}

// newPluginWithErr returns the plugin along with an error if errorMsg is not empty
func newPluginWithErr(errorMsg string) (p *cookiebot.Plugin, err error) {
	if errorMsg != "" {
		return nil, errors.New(errorMsg)
	}

	return newPlugin(), nil
}

// newPluginWithErrAndCloser returns the plugin along with an error if errorMsg is not empty and the closer
func newPluginWithErrAndCloser(errorMsg string, closer io.Closer) (c io.Closer, p *cookiebot.Plugin, err error) {
	p, err = newPluginWithErr(errorMsg)

	return closer, p, err
}

// CloseTester is a Closer that either doesn't do anything or returns the error set on the CloseTester
type CloseTester struct {
	errorMsg string
}

// Close returns the CloseTester error if set, or just returns nil and does nothing otherwise
func (c CloseTester) Close() (err error) {
	if c.errorMsg != "" {
		return errors.New(c.errorMsg)
	}

	return nil
}
