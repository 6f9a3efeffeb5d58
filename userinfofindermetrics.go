package cookiebot

import (
	"github.com/slack-go/slack"
	"go.opentelemetry.io/otel/metric"
	"time"
)

// userInfoFinderWithTelemetry implements UserInfoFinder interface with all methods wrapped
// with open telemetry metrics
type userInfoFinderWithTelemetry struct {
	base UserInfoFinder
	methodTelemetry
}

// newUserInfoFinderWithTelemetry returns an instance of the UserInfoFinder decorated with open telemetry timing and count metrics
func newUserInfoFinderWithTelemetry(base UserInfoFinder, name string, meter metric.Meter) (uf userInfoFinderWithTelemetry, err error) {
	uf.base = base
	uf.methodTelemetry, err = newMethodTelemetry("userInfoFinder", name, meter)

	return uf, err
}

// GetUserInfo implements UserInfoFinder
func (_d userInfoFinderWithTelemetry) GetUserInfo(userID string) (user *slack.User, err error) {
	defer func(since time.Time) { _d.record("GetUserInfo", since, err) }(time.Now())

	return _d.base.GetUserInfo(userID)
}
