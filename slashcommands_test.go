package cookiebot_test

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"github.com/alexandre-normand/cookiebot"
	"github.com/alexandre-normand/cookiebot/config"
	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"
)

const (
	testSigningSecret = "e6b19c573432dcc6b075501d51b51bb8"
)

func newSlashTestBot(t *testing.T, secret string) (b *cookiebot.Bot) {
	v := config.NewViperWithDefaults()
	v.Set(config.SigningSecretKey, secret)

	p := &cookiebot.Plugin{Name: "echo", Commands: []cookiebot.CommandDefinition{{
		Name:        "echo",
		Slash:       true,
		Usage:       "/echo <text>",
		Description: "Repeat after me",
		Answer: func(ctx context.Context, c *cookiebot.IncomingCommand) *cookiebot.Answer {
			return &cookiebot.Answer{Text: fmt.Sprintf("%s said %s", c.UserID, strings.Join(c.Args, " "))}
		}}, {
		Name:        "whisper",
		Slash:       true,
		Usage:       "/whisper",
		Description: "Whisper",
		Answer: func(ctx context.Context, c *cookiebot.IncomingCommand) *cookiebot.Answer {
			return &cookiebot.Answer{Text: "psst", Options: []cookiebot.AnswerOption{cookiebot.AnswerEphemeral(c.UserID)}}
		}}}}

	b, err := cookiebot.NewBot("cookiebot", v).WithPlugin(p).Build()
	require.NoError(t, err)

	return b
}

func newSignedSlashRequest(t *testing.T, secret string, ts time.Time, form url.Values) (r *http.Request) {
	body := form.Encode()
	timestamp := strconv.FormatInt(ts.Unix(), 10)

	mac := hmac.New(sha256.New, []byte(secret))
	_, err := mac.Write([]byte(fmt.Sprintf("v0:%s:%s", timestamp, body)))
	require.NoError(t, err)

	r = httptest.NewRequest(http.MethodPost, cookiebot.SlashCommandsPath, strings.NewReader(body))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.Header.Set("X-Slack-Request-Timestamp", timestamp)
	r.Header.Set("X-Slack-Signature", "v0="+hex.EncodeToString(mac.Sum(nil)))

	return r
}

func TestSlashCommandAnsweredInChannel(t *testing.T) {
	b := newSlashTestBot(t, testSigningSecret)

	w := httptest.NewRecorder()
	b.SlashCommandHandler().ServeHTTP(w, newSignedSlashRequest(t, testSigningSecret, time.Now(), url.Values{"command": {"/echo"}, "text": {"hello  there"}, "user_id": {"U1"}, "channel_id": {"C1"}}))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var msg slack.Msg
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &msg))
	assert.Equal(t, slack.ResponseTypeInChannel, msg.ResponseType)
	assert.Equal(t, "U1 said hello there", msg.Text)
}

func TestSlashCommandAnsweredEphemerally(t *testing.T) {
	b := newSlashTestBot(t, testSigningSecret)

	w := httptest.NewRecorder()
	b.SlashCommandHandler().ServeHTTP(w, newSignedSlashRequest(t, testSigningSecret, time.Now(), url.Values{"command": {"/whisper"}, "user_id": {"U1"}, "channel_id": {"C1"}}))

	require.Equal(t, http.StatusOK, w.Code)

	var msg slack.Msg
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &msg))
	assert.Equal(t, slack.ResponseTypeEphemeral, msg.ResponseType)
	assert.Equal(t, "psst", msg.Text)
}

func TestSlashCommandUnknownGetsDefaultAnswer(t *testing.T) {
	b := newSlashTestBot(t, testSigningSecret)

	w := httptest.NewRecorder()
	b.SlashCommandHandler().ServeHTTP(w, newSignedSlashRequest(t, testSigningSecret, time.Now(), url.Values{"command": {"/dance"}, "user_id": {"U1"}, "channel_id": {"C1"}}))

	require.Equal(t, http.StatusOK, w.Code)

	var msg slack.Msg
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &msg))
	assert.Equal(t, "I don't understand, ask me for \"help\" to get a list of things I do", msg.Text)
}

func TestSlashCommandWithInvalidSignature(t *testing.T) {
	b := newSlashTestBot(t, testSigningSecret)

	w := httptest.NewRecorder()
	b.SlashCommandHandler().ServeHTTP(w, newSignedSlashRequest(t, "not the secret", time.Now(), url.Values{"command": {"/echo"}, "user_id": {"U1"}}))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSlashCommandWithStaleTimestamp(t *testing.T) {
	b := newSlashTestBot(t, testSigningSecret)

	w := httptest.NewRecorder()
	b.SlashCommandHandler().ServeHTTP(w, newSignedSlashRequest(t, testSigningSecret, time.Now().Add(-time.Hour), url.Values{"command": {"/echo"}, "user_id": {"U1"}}))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSlashCommandWithoutSignatureHeaders(t *testing.T) {
	b := newSlashTestBot(t, testSigningSecret)

	r := httptest.NewRequest(http.MethodPost, cookiebot.SlashCommandsPath, strings.NewReader("command=%2Fecho"))
	w := httptest.NewRecorder()
	b.SlashCommandHandler().ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSlashCommandsDisabledWithoutSigningSecret(t *testing.T) {
	b := newSlashTestBot(t, "")

	w := httptest.NewRecorder()
	b.SlashCommandHandler().ServeHTTP(w, newSignedSlashRequest(t, testSigningSecret, time.Now(), url.Values{"command": {"/echo"}}))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthCheck(t *testing.T) {
	b := newSlashTestBot(t, "")

	w := httptest.NewRecorder()
	b.SlashCommandHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, cookiebot.HealthPath, nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}

func TestMetricsExposed(t *testing.T) {
	b := newSlashTestBot(t, "")

	h := b.SlashCommandHandler()
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, cookiebot.HealthPath, nil))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, cookiebot.MetricsPath, nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_latency_seconds")
}
