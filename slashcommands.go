package cookiebot

import (
	"bytes"
	"encoding/json"
	"github.com/alexandre-normand/cookiebot/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/slack-go/slack"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	// SlashCommandsPath is the path slack posts slash commands to
	SlashCommandsPath = "/slack/commands"

	// HealthPath is the path of the health check
	HealthPath = "/healthz"

	// MetricsPath is the path metrics are exposed on
	MetricsPath = "/metrics"
)

var (
	httpLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_requests_latency_seconds",
			Help:    "Latency of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	httpMetricsOnce sync.Once
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (w *statusRecorder) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// httpMetrics measures request latency by route pattern
func httpMetrics(next http.Handler) http.Handler {
	httpMetricsOnce.Do(func() {
		prometheus.MustRegister(httpLatency)
	})

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}

		httpLatency.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Observe(time.Since(start).Seconds())
	})
}

// SlashCommandHandler returns the http handler serving slash commands, the health check and metrics.
// Slash commands are only served when a signing secret is configured since every request must
// be verified
func (b *Bot) SlashCommandHandler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer, httpMetrics)

	r.Get(HealthPath, func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle(MetricsPath, promhttp.Handler())

	if secret := b.config.GetString(config.SigningSecretKey); secret != "" {
		r.Post(SlashCommandsPath, b.serveSlashCommand(secret))
	} else {
		b.log.Printf("No signing secret configured, slash commands are disabled\n")
	}

	return r
}

// serveSlashCommand verifies the slack signature of a slash command request, dispatches it and
// writes the answer as the immediate response
func (b *Bot) serveSlashCommand(secret string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}

		sv, err := slack.NewSecretsVerifier(r.Header, secret)
		if err != nil {
			b.log.Debugf("Rejecting slash command with invalid signature headers: %v\n", err)
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if _, err = sv.Write(body); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}

		if err = sv.Ensure(); err != nil {
			b.log.Debugf("Rejecting slash command with invalid signature: %v\n", err)
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		r.Body = io.NopCloser(bytes.NewReader(body))
		sc, err := slack.SlashCommandParse(r)
		if err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}

		b.instrumenter.eventSeen(slashEventType)

		cmd := &IncomingCommand{Name: strings.ToLower(strings.TrimPrefix(sc.Command, "/")), Args: strings.Fields(sc.Text), UserID: sc.UserID, ChannelID: sc.ChannelID}
		answer := b.HandleCommand(r.Context(), cmd)
		if answer == nil {
			w.WriteHeader(http.StatusOK)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err = json.NewEncoder(w).Encode(slashResponse(answer)); err != nil {
			b.log.Printf("Unable to write response to slash command [%s] from [%s]: %v\n", cmd.Name, cmd.UserID, err)
		}
	}
}

// slashResponse converts an answer to a slash command response. Ephemeral answers are only shown
// to the caller and everything else is shown to the channel
func slashResponse(answer *Answer) (msg slack.Msg) {
	msg.Text = answer.Text
	msg.ResponseType = slack.ResponseTypeInChannel

	if _, ok := ApplyAnswerOpts(answer.Options...)[EphemeralAnswerToOpt]; ok {
		msg.ResponseType = slack.ResponseTypeEphemeral
	}

	if len(answer.ContentBlocks) > 0 {
		msg.Blocks = slack.Blocks{BlockSet: answer.ContentBlocks}
	}

	return msg
}
