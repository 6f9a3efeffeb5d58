// Command cookiebot runs the cookie counting slack bot
package main

import (
	"fmt"
	"github.com/spf13/cobra"
	"os"
)

const (
	name = "cookiebot"
)

var rootCmd = &cobra.Command{
	Use:   name,
	Short: "A slack bot keeping track of everyone's cookies",
	Long: `cookiebot keeps a per-member cookie balance and answers the addcookies,
removecookies, cookies and top commands (as slash commands or mentions).
It also welcomes new members and notes departures on a fixed channel.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
