package cookiebot

import (
	"context"
	"fmt"
	"github.com/alexandre-normand/cookiebot/config"
	"github.com/pkg/errors"
	"github.com/slack-go/slack"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"io"
	"log"
	"os"
	"regexp"
	"strings"
)

const (
	// VERSION represents the current cookiebot version
	VERSION = "1.0.0"

	defaultCommandName = "default"
)

// ErrInvalidAuth is returned by Run when slack rejects the bot's credentials
var ErrInvalidAuth = errors.New("invalid slack credentials")

// Bot represents a cookiebot instance (mostly, a name and its plugins)
type Bot struct {
	name          string
	config        *viper.Viper
	defaultAction Answerer
	plugins       []*Plugin
	closers       []io.Closer

	// Internal state as an optimization when dispatching commands and membership events
	commands          map[string]pluginCommand
	membershipActions []pluginMembershipAction

	selfID   string
	selfName string

	// Matches messages addressed to us, compiled once our identity is known
	mentionRegex *regexp.Regexp

	// Users we already said goodbye to. Slack keeps sending user_change events for deactivated users
	departedUsers map[string]bool

	api            *slack.Client
	chatDriver     ChatDriver
	userInfoFinder UserInfoFinder
	slackOpts      []slack.Option
	meter          metric.Meter
	instrumenter   *instrumenter
	log            *sLogger
	logger         *log.Logger
}

// Plugin represents a plugin (its name, commands and membership actions) along with the services
// injected on registration
type Plugin struct {
	Name              string
	Commands          []CommandDefinition
	MembershipActions []MembershipActionDefinition

	// Logger is injected on registration
	Logger SLogger

	// UserInfoFinder is injected on registration
	UserInfoFinder UserInfoFinder
}

// CommandDefinition represents how a command is named, published, used and described
// along with defining the function defining its behavior
type CommandDefinition struct {
	// Indicates whether the command should be omitted from the help message
	Hidden bool

	// Name the command is invoked with (the first word of a command request)
	Name string

	// Indicates whether the command is also registered as a slack slash command
	Slash bool

	// Usage example
	Usage string

	// Help description for the command
	Description string

	// Function to execute when the command is invoked
	Answer Answerer
}

// String returns a friendly description of a CommandDefinition
func (c CommandDefinition) String() string {
	return fmt.Sprintf("`%s` - %s", c.Usage, c.Description)
}

// IncomingCommand holds a command request: the command name, its arguments and who
// invoked it from where
type IncomingCommand struct {
	Name      string
	Args      []string
	UserID    string
	ChannelID string
}

// Answerer is what gets executed when a command is invoked. A nil Answer means nothing
// is sent back
type Answerer func(ctx context.Context, c *IncomingCommand) *Answer

// MembershipChange identifies a change of workspace membership
type MembershipChange int

const (
	// MemberJoined is the change of a user joining the workspace
	MemberJoined MembershipChange = iota
	// MemberLeft is the change of a user leaving (being deactivated from) the workspace
	MemberLeft
)

// String returns the name of a MembershipChange
func (mc MembershipChange) String() string {
	switch mc {
	case MemberJoined:
		return "joined"
	case MemberLeft:
		return "left"
	default:
		return "unknown"
	}
}

// MembershipEvent holds a membership change for a user
type MembershipEvent struct {
	Change MembershipChange
	UserID string
}

// Notice is an answer to post on a given channel
type Notice struct {
	ChannelID string
	Answer
}

// Notifier is what gets executed on a membership event. A nil Notice means nothing is posted
type Notifier func(ctx context.Context, e *MembershipEvent) *Notice

// MembershipActionDefinition represents a plugin action triggered by membership events
type MembershipActionDefinition struct {
	// Help description for the membership action
	Description string

	// Function to execute on every membership event
	Notify Notifier
}

// pluginCommand holds a command definition along with the name of its plugin
type pluginCommand struct {
	CommandDefinition
	pluginName string
}

// pluginMembershipAction holds a membership action definition along with the name of its plugin
type pluginMembershipAction struct {
	MembershipActionDefinition
	pluginName string
}

// Option defines an option for a Bot
type Option func(*Bot)

// OptionLog sets a logger for the bot
func OptionLog(logger *log.Logger) func(*Bot) {
	return func(b *Bot) {
		b.logger = logger
	}
}

// OptionWithSlackOption adds a slack.Option to apply on the slack client
func OptionWithSlackOption(opt slack.Option) func(*Bot) {
	return func(b *Bot) {
		b.slackOpts = append(b.slackOpts, opt)
	}
}

// OptionMeter sets the meter used to instrument the bot. Defaults to the global meter provider's
func OptionMeter(meter metric.Meter) func(*Bot) {
	return func(b *Bot) {
		b.meter = meter
	}
}

// OptionChatDriver sets the chat driver used to post answers instead of the slack client
func OptionChatDriver(cd ChatDriver) func(*Bot) {
	return func(b *Bot) {
		b.chatDriver = cd
	}
}

// OptionUserInfoFinder sets the user info finder used instead of the slack client
func OptionUserInfoFinder(uf UserInfoFinder) func(*Bot) {
	return func(b *Bot) {
		b.userInfoFinder = uf
	}
}

// New creates a new cookiebot instance with the given name and configuration. Plugins
// get registered through RegisterPlugin or, more commonly, with the Builder from NewBot
func New(name string, v *viper.Viper, options ...Option) (b *Bot, err error) {
	b = &Bot{name: name, config: v, plugins: []*Plugin{}, commands: map[string]pluginCommand{}, departedUsers: map[string]bool{}}
	b.defaultAction = func(ctx context.Context, c *IncomingCommand) *Answer {
		return &Answer{Text: fmt.Sprintf("I don't understand, ask me for \"%s\" to get a list of things I do", helpPluginName)}
	}

	for _, opt := range options {
		opt(b)
	}

	if b.logger == nil {
		b.logger = log.New(os.Stdout, fmt.Sprintf("%s: ", name), log.Lshortfile|log.LstdFlags)
	}
	b.log = NewSLogger(b.logger, v.GetBool(config.DebugKey))

	if b.meter == nil {
		b.meter = otel.Meter(name)
	}

	if b.instrumenter, err = newInstrumenter(name, b.meter); err != nil {
		return nil, err
	}

	slackOpts := append([]slack.Option{
		slack.OptionDebug(v.GetBool(config.DebugKey)),
		slack.OptionLog(log.New(os.Stdout, "slack: ", log.Lshortfile|log.LstdFlags)),
	}, b.slackOpts...)
	b.api = slack.New(v.GetString(config.TokenKey), slackOpts...)

	var cd ChatDriver = b.api
	if b.chatDriver != nil {
		cd = b.chatDriver
	}

	if b.chatDriver, err = newChatDriverWithTelemetry(cd, name, b.meter); err != nil {
		return nil, err
	}

	var uf UserInfoFinder = b.api
	if b.userInfoFinder != nil {
		uf = b.userInfoFinder
	}

	cuf, err := NewCachingUserInfoFinder(v, uf, b.log)
	if err != nil {
		return nil, err
	}

	if b.userInfoFinder, err = newUserInfoFinderWithTelemetry(cuf, name, b.meter); err != nil {
		return nil, err
	}

	return b, nil
}

// RegisterPlugin registers a plugin with the cookiebot engine and injects its services. Command
// names must be unique across plugins
func (b *Bot) RegisterPlugin(p *Plugin) (err error) {
	for _, c := range p.Commands {
		name := strings.ToLower(c.Name)
		if existing, ok := b.commands[name]; ok {
			return fmt.Errorf("command [%s] of plugin [%s] is already registered by plugin [%s]", name, p.Name, existing.pluginName)
		}
	}

	for _, c := range p.Commands {
		b.commands[strings.ToLower(c.Name)] = pluginCommand{CommandDefinition: c, pluginName: p.Name}
	}

	for _, ma := range p.MembershipActions {
		b.membershipActions = append(b.membershipActions, pluginMembershipAction{MembershipActionDefinition: ma, pluginName: p.Name})
	}

	p.Logger = b.log
	p.UserInfoFinder = b.userInfoFinder
	b.plugins = append(b.plugins, p)

	return nil
}

// Close closes all closers registered along with plugins. The first error is returned
func (b *Bot) Close() (err error) {
	for _, c := range b.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}

	return err
}

// Run connects to slack and loops on real time events until ctx is done. It returns ErrInvalidAuth
// if slack rejects the bot's credentials
func (b *Bot) Run(ctx context.Context) (err error) {
	rtm := b.api.NewRTM()

	go rtm.ManageConnection()
	defer rtm.Disconnect()

	return b.processEvents(ctx, rtm.IncomingEvents)
}

// processEvents handles events until ctx is done or the events channel is closed
func (b *Bot) processEvents(ctx context.Context, events <-chan slack.RTMEvent) (err error) {
	for {
		select {
		case <-ctx.Done():
			b.log.Debugf("Context done, stopping event processing: %v\n", ctx.Err())
			return nil

		case msg, ok := <-events:
			if !ok {
				return nil
			}

			switch e := msg.Data.(type) {
			case *slack.ConnectedEvent:
				b.log.Printf("Connected (connection counter: %d)\n", e.ConnectionCount)
				b.cacheSelfIdentity(e.Info)

			case *slack.MessageEvent:
				b.processMessageEvent(ctx, e)

			case *slack.TeamJoinEvent:
				b.processMembershipEvent(ctx, &MembershipEvent{Change: MemberJoined, UserID: e.User.ID})

			case *slack.UserChangeEvent:
				b.processUserChange(ctx, e.User)

			case *slack.LatencyReport:
				b.log.Debugf("Current latency: %v\n", e.Value)
				b.instrumenter.slackLatency(e.Value)

			case *slack.RTMError:
				b.log.Printf("Error: %s\n", e.Error())

			case *slack.InvalidAuthEvent:
				b.log.Printf("Invalid credentials\n")
				return ErrInvalidAuth

			default:
				// Ignoring other events
			}
		}
	}
}

// processUserChange turns the deactivation of a user into a MemberLeft event. Later changes to an
// already deactivated user are ignored until the user is reactivated
func (b *Bot) processUserChange(ctx context.Context, u slack.User) {
	if !u.Deleted {
		delete(b.departedUsers, u.ID)
		return
	}

	if b.departedUsers[u.ID] {
		b.log.Debugf("Ignoring change of already departed user [%s]\n", u.ID)
		return
	}

	b.departedUsers[u.ID] = true
	b.processMembershipEvent(ctx, &MembershipEvent{Change: MemberLeft, UserID: u.ID})
}

// cacheSelfIdentity keeps the selfID and selfName to avoid having to look them up every time
func (b *Bot) cacheSelfIdentity(info *slack.Info) {
	if info == nil || info.User == nil {
		return
	}

	b.selfID = info.User.ID
	b.selfName = info.User.Name
	b.mentionRegex = regexp.MustCompile("^(<@" + regexp.QuoteMeta(b.selfID) + ">|@?" + regexp.QuoteMeta(b.selfName) + "):? (.+)")

	b.log.Debugf("Caching self id [%s] and self name [%s]\n", b.selfID, b.selfName)
}

// processMessageEvent routes new messages addressed to us to commands and sends the resulting answer.
// The rules are the following:
//  1. If the message is on a channel with a direct mention to us (@name), we route to commands
//  2. If the message is a direct message to us, we route to commands
//  3. Anything else (including edits, deletions and our own messages) is ignored
func (b *Bot) processMessageEvent(ctx context.Context, e *slack.MessageEvent) {
	if e.SubType != "" || e.ReplyTo > 0 {
		return
	}

	if e.User == b.selfID || (b.selfID != "" && e.BotID == b.selfID) {
		b.log.Debugf("Ignoring message from user [%s] because that's \"us\" [%s]\n", e.User, b.selfID)
		return
	}

	content, ok := b.addressedContent(e.Channel, e.Text)
	if !ok {
		return
	}

	b.instrumenter.eventSeen(messageEventType)

	cmd := ParseCommand(content)
	if cmd == nil {
		return
	}
	cmd.UserID = e.User
	cmd.ChannelID = e.Channel

	answer := b.HandleCommand(ctx, cmd)
	if answer == nil {
		return
	}

	if err := b.sendAnswer(e.Channel, e.User, e.Timestamp, answer); err != nil {
		b.log.Printf("Unable to send answer to command [%s] from [%s]: %v\n", cmd.Name, e.User, err)
	}
}

// addressedContent returns the text of a message minus our mention if the message is
// addressed to us (mention or direct message)
func (b *Bot) addressedContent(channelID string, text string) (content string, addressed bool) {
	if b.mentionRegex != nil {
		if matches := b.mentionRegex.FindStringSubmatch(text); len(matches) == 3 {
			return matches[2], true
		}
	}

	if strings.HasPrefix(channelID, "D") {
		return text, true
	}

	return "", false
}

// ParseCommand splits text into a command name and its arguments. A leading '/' on the name is
// dropped and the name is lowercased. It returns nil for blank text
func ParseCommand(text string) (c *IncomingCommand) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil
	}

	return &IncomingCommand{Name: strings.ToLower(strings.TrimPrefix(fields[0], "/")), Args: fields[1:]}
}

// HandleCommand dispatches a command to the plugin command registered with its name. Unknown
// commands get the default answer pointing at help
func (b *Bot) HandleCommand(ctx context.Context, c *IncomingCommand) (answer *Answer) {
	pc, ok := b.commands[strings.ToLower(c.Name)]
	if !ok {
		b.log.Debugf("No command registered for [%s], answering with default\n", c.Name)
		b.instrumenter.commandProcessed(defaultCommandName, defaultCommandName, 0)

		return b.defaultAction(ctx, c)
	}

	d := measure(func() {
		answer = pc.Answer(ctx, c)
	})
	b.instrumenter.commandProcessed(pc.pluginName, pc.Name, d)

	return answer
}

// processMembershipEvent invokes all membership actions and posts their notices. Failures to post
// are logged and never retried
func (b *Bot) processMembershipEvent(ctx context.Context, e *MembershipEvent) {
	b.instrumenter.eventSeen(membershipEventType)
	b.log.Debugf("Member [%s] %s\n", e.UserID, e.Change)

	for _, ma := range b.membershipActions {
		n := ma.Notify(ctx, e)
		if n == nil {
			continue
		}

		if _, _, err := b.chatDriver.PostMessage(n.ChannelID, n.Answer.msgOptions()...); err != nil {
			b.log.Printf("[%s] Unable to post notice for member [%s] %s on channel [%s]: %v\n", ma.pluginName, e.UserID, e.Change, n.ChannelID, err)
			continue
		}

		b.instrumenter.noticeSent(ma.pluginName)
	}
}

// sendAnswer posts an answer on the channel, ephemerally if the answer asks for it
func (b *Bot) sendAnswer(channelID string, userID string, threadTS string, answer *Answer) (err error) {
	sendOpts := ApplyAnswerOpts(answer.Options...)
	options := answer.msgOptions()

	if sendOpts[ThreadedReplyOpt] == "true" && threadTS != "" {
		options = append(options, slack.MsgOptionTS(threadTS))
	}

	if ephemeralUserID, ok := sendOpts[EphemeralAnswerToOpt]; ok {
		_, err = b.chatDriver.PostEphemeral(channelID, ephemeralUserID, options...)
		return err
	}

	_, _, err = b.chatDriver.PostMessage(channelID, options...)
	return err
}
