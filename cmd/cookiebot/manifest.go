package main

import (
	"fmt"
	"github.com/alexandre-normand/cookiebot"
	"github.com/alexandre-normand/cookiebot/config"
	"github.com/alexandre-normand/cookiebot/ledger"
	"github.com/alexandre-normand/cookiebot/plugins"
	"github.com/alexandre-normand/cookiebot/store/inmemorydb"
	"github.com/spf13/cobra"
)

var requestURL string

var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Print the slack app manifest declaring the slash commands and bot events",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := manifestJSON(requestURL)
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	},
}

func init() {
	manifestCmd.Flags().StringVar(&requestURL, "url", "https://example.com"+cookiebot.SlashCommandsPath, "public url slack posts slash commands to")

	rootCmd.AddCommand(manifestCmd)
}

// manifestJSON builds the bot with the same plugins as run (without connecting anything) to
// render its manifest
func manifestJSON(url string) (data []byte, err error) {
	bot, err := cookiebot.NewBot(name, config.NewViperWithDefaults()).
		WithPlugin(&plugins.NewCookies(ledger.New(inmemorydb.New())).Plugin).
		WithPlugin(&plugins.NewGreeter(plugins.NoticeChannelID).Plugin).
		WithPlugin(&plugins.NewVersioner(name, cookiebot.VERSION).Plugin).
		Build()
	if err != nil {
		return nil, err
	}
	defer bot.Close()

	return bot.ManifestJSON(url)
}
