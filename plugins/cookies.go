package plugins

import (
	"context"
	"fmt"
	"github.com/alexandre-normand/cookiebot"
	"github.com/alexandre-normand/cookiebot/store"
	"math"
	"strings"
)

// CookieLedger is the cookie accounting the Cookies plugin answers with. It is implemented by ledger.Ledger
type CookieLedger interface {
	GetBalance(ctx context.Context, userID string) (balance int64, err error)
	Add(ctx context.Context, userID string, amount int64) (err error)
	Remove(ctx context.Context, userID string, amount int64) (err error)
	Top(ctx context.Context, skip int, limit int) (records []store.Record, err error)
}

// Cookies holds the plugin data for the cookies plugin
type Cookies struct {
	cookiebot.Plugin
	ledger CookieLedger
}

const (
	// CookiesPluginName holds identifying name for the cookies plugin
	CookiesPluginName = "cookies"

	// PageSize is the number of entries on a leaderboard page
	PageSize = 10
)

const (
	addCookiesUsage    = "/addcookies <user> <amount>"
	removeCookiesUsage = "/removecookies <user> <amount>"
	cookiesUsage       = "/cookies [user]"
	topUsage           = "/top [page]"
)

// NewCookies creates a new instance of the Cookies plugin answering with the given ledger
func NewCookies(ledger CookieLedger) (c *Cookies) {
	c = new(Cookies)
	c.ledger = ledger

	c.Plugin = cookiebot.Plugin{Name: CookiesPluginName, Commands: []cookiebot.CommandDefinition{
		{
			Name:        "addcookies",
			Slash:       true,
			Usage:       addCookiesUsage,
			Description: "Give cookies to someone",
			Answer:      c.addCookies,
		},
		{
			Name:        "removecookies",
			Slash:       true,
			Usage:       removeCookiesUsage,
			Description: "Take cookies away from someone (never below zero)",
			Answer:      c.removeCookies,
		},
		{
			Name:        "cookies",
			Slash:       true,
			Usage:       cookiesUsage,
			Description: "Show how many cookies someone (or you) has",
			Answer:      c.showBalance,
		},
		{
			Name:        "top",
			Slash:       true,
			Usage:       topUsage,
			Description: fmt.Sprintf("Show the cookie leaderboard, %d per page", PageSize),
			Answer:      c.showLeaderboard,
		},
	}}

	return c
}

// usage returns the usage hint, only visible to the caller
func usage(cmd *cookiebot.IncomingCommand, usage string) *cookiebot.Answer {
	return &cookiebot.Answer{Text: fmt.Sprintf("Usage: %s", usage), Options: []cookiebot.AnswerOption{cookiebot.AnswerEphemeral(cmd.UserID)}}
}

// apology returns the generic answer for a failure to reach the ledger
func apology(action string) *cookiebot.Answer {
	return &cookiebot.Answer{Text: fmt.Sprintf("Sorry, I couldn't %s right now.", action)}
}

// userAndAmount extracts the required user and amount arguments of addcookies and removecookies
func userAndAmount(args []string) (userID string, amount int64, err error) {
	if userID, err = cookiebot.UserArg(args, 0, "user"); err != nil {
		return "", 0, err
	}

	if amount, err = cookiebot.IntArg(args, 1, "amount"); err != nil {
		return "", 0, err
	}

	return userID, amount, cookiebot.NoExtraArgs(args, 2)
}

func (c *Cookies) addCookies(ctx context.Context, cmd *cookiebot.IncomingCommand) *cookiebot.Answer {
	userID, amount, err := userAndAmount(cmd.Args)
	if err != nil {
		c.Logger.Debugf("[%s] Invalid addcookies request from [%s]: %v\n", CookiesPluginName, cmd.UserID, err)
		return usage(cmd, addCookiesUsage)
	}

	if err = c.ledger.Add(ctx, userID, amount); err != nil {
		c.Logger.Printf("[%s] Error adding [%d] cookies to [%s]: %v\n", CookiesPluginName, amount, userID, err)
		return apology("add cookies")
	}

	total, err := c.ledger.GetBalance(ctx, userID)
	if err != nil {
		c.Logger.Printf("[%s] Error getting balance of [%s]: %v\n", CookiesPluginName, userID, err)
		return apology("add cookies")
	}

	return &cookiebot.Answer{Text: fmt.Sprintf("Added %d cookies! <@%s> now has %d cookies.", amount, userID, total)}
}

func (c *Cookies) removeCookies(ctx context.Context, cmd *cookiebot.IncomingCommand) *cookiebot.Answer {
	userID, amount, err := userAndAmount(cmd.Args)
	if err != nil {
		c.Logger.Debugf("[%s] Invalid removecookies request from [%s]: %v\n", CookiesPluginName, cmd.UserID, err)
		return usage(cmd, removeCookiesUsage)
	}

	if err = c.ledger.Remove(ctx, userID, amount); err != nil {
		c.Logger.Printf("[%s] Error removing [%d] cookies from [%s]: %v\n", CookiesPluginName, amount, userID, err)
		return apology("remove cookies")
	}

	total, err := c.ledger.GetBalance(ctx, userID)
	if err != nil {
		c.Logger.Printf("[%s] Error getting balance of [%s]: %v\n", CookiesPluginName, userID, err)
		return apology("remove cookies")
	}

	return &cookiebot.Answer{Text: fmt.Sprintf("Removed %d cookies! <@%s> now has %d cookies.", amount, userID, total)}
}

func (c *Cookies) showBalance(ctx context.Context, cmd *cookiebot.IncomingCommand) *cookiebot.Answer {
	userID, err := cookiebot.OptionalUserArg(cmd.Args, 0, "user", cmd.UserID)
	if err == nil {
		err = cookiebot.NoExtraArgs(cmd.Args, 1)
	}

	if err != nil {
		c.Logger.Debugf("[%s] Invalid cookies request from [%s]: %v\n", CookiesPluginName, cmd.UserID, err)
		return usage(cmd, cookiesUsage)
	}

	total, err := c.ledger.GetBalance(ctx, userID)
	if err != nil {
		c.Logger.Printf("[%s] Error getting balance of [%s]: %v\n", CookiesPluginName, userID, err)
		return apology("look up cookies")
	}

	return &cookiebot.Answer{Text: fmt.Sprintf("<@%s> has %d cookies.", userID, total)}
}

func (c *Cookies) showLeaderboard(ctx context.Context, cmd *cookiebot.IncomingCommand) *cookiebot.Answer {
	page, err := cookiebot.OptionalIntArg(cmd.Args, 0, "page", 1)
	if err == nil {
		err = cookiebot.NoExtraArgs(cmd.Args, 1)
	}

	if err == nil && page < 1 {
		err = &cookiebot.ArgumentError{Name: "page", Value: cmd.Args[0], Reason: "must be at least 1"}
	}

	if err != nil {
		c.Logger.Debugf("[%s] Invalid top request from [%s]: %v\n", CookiesPluginName, cmd.UserID, err)
		return usage(cmd, topUsage)
	}

	skip := pageOffset(page)
	records, err := c.ledger.Top(ctx, skip, PageSize)
	if err != nil {
		c.Logger.Printf("[%s] Error getting page [%d] of the leaderboard: %v\n", CookiesPluginName, page, err)
		return apology("get the leaderboard")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "*Cookie Leaderboard (Page %d)*\n", page)

	if len(records) == 0 {
		fmt.Fprintf(&b, "No cookies on this page yet.")
	}

	for i, r := range records {
		if i > 0 {
			b.WriteString("\n")
		}

		fmt.Fprintf(&b, "%d. <@%s>: %d cookies", skip+i+1, r.UserID, r.Cookies)
	}

	return &cookiebot.Answer{Text: b.String()}
}

// pageOffset returns the number of entries before a 1-indexed page. Pages too far to be addressed
// get an offset past every record
func pageOffset(page int64) (skip int) {
	if page-1 > int64(math.MaxInt/PageSize) {
		return math.MaxInt
	}

	return int(page-1) * PageSize
}
