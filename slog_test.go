package cookiebot_test

import (
	"github.com/alexandre-normand/cookiebot"
	"github.com/stretchr/testify/assert"
	"log"
	"strings"
	"testing"
)

func TestLogWhenDebugEnabled(t *testing.T) {
	var b strings.Builder
	l := log.New(&b, "", 0)
	slog := cookiebot.NewSLogger(l, true)

	slog.Debugf("Writing a log statement for my little %s\n", "cookie")
	o := b.String()

	assert.Equal(t, "Writing a log statement for my little cookie\n", o)
}

func TestLogWhenDebugDisabled(t *testing.T) {
	var b strings.Builder
	l := log.New(&b, "", 0)
	slog := cookiebot.NewSLogger(l, false)

	slog.Debugf("Writing a log statement for my little %s\n", "cookie")
	o := b.String()

	// Nothing should have been logged
	assert.Equal(t, "", o)
}

func TestPrintfLogsRegardlessOfDebug(t *testing.T) {
	for _, debug := range []bool{true, false} {
		var b strings.Builder
		l := log.New(&b, "", 0)
		slog := cookiebot.NewSLogger(l, debug)

		slog.Printf("Writing a log statement for my little %s\n", "cookie")

		assert.Equal(t, "Writing a log statement for my little cookie\n", b.String())
	}
}
