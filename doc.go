/*
Package cookiebot provides the engine of a slack bot keeping track of cookies given to members.

Plugins define commands, answered when the bot is mentioned (<@bot> command args), in direct
messages or as slack slash commands, and membership actions, run when members join or leave the
workspace.

Plugins have access to services injected on registration:
  - UserInfoFinder: To query user info (cached)
  - SLogger: To log debug/info statements

Example code (see cmd/cookiebot for the full wiring):

	package main

	import (
		"github.com/alexandre-normand/cookiebot"
		"github.com/alexandre-normand/cookiebot/config"
		"github.com/alexandre-normand/cookiebot/ledger"
		"github.com/alexandre-normand/cookiebot/plugins"
		"github.com/alexandre-normand/cookiebot/store/inmemorydb"
	)

	func main() {
		storer := inmemorydb.New()

		bot, err := cookiebot.NewBot("cookiebot", v).
			WithPluginCloserErr(storer, &plugins.NewCookies(ledger.New(storer)).Plugin, nil).
			WithPlugin(&plugins.NewGreeter(plugins.NoticeChannelID).Plugin).
			Build()
		if err != nil {
			log.Fatal(err)
		}
		defer bot.Close()

		go http.ListenAndServe(v.GetString(config.ListenAddressKey), bot.SlashCommandHandler())

		if err = bot.Run(ctx); err != nil {
			log.Fatal(err)
		}
	}
*/
package cookiebot
