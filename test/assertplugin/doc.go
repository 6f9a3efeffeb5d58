// Package assertplugin provides testing functions to validate a plugin's overall functionality.
// This package is designed to play well but not require the assertanswer package for validation
// of answers
//
// Note that commands are evaluated by assertplugin's driver in a simplified version of how cookiebot
// actually drives plugins. Users should take special care to include <@botUserID> with the same botUserID
// with which the plugin driver has been instantiated in the message text inputs to test commands (or
// include a channel name that starts with D for direct channel testing)
//
// Example:
//
//	func TestPlugin(t *testing.T) {
//	    assertplugin := assertplugin.New(t, "bot")
//	    yourPlugin := newPlugin()
//
//	    assertplugin.Answers(yourPlugin, &slack.Msg{Text: "<@bot> cookies", User: "U1"}, func(t *testing.T, answers []*cookiebot.Answer) bool {
//	        return assert.Len(t, answers, 1) && assertanswer.HasText(t, answers[0], "<@U1> has 0 cookies.")
//	    })
//	}
package assertplugin // import "github.com/alexandre-normand/cookiebot/test/assertplugin"
