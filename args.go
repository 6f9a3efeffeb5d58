package cookiebot

import (
	"fmt"
	"regexp"
	"strconv"
)

// userMentionRegex matches a slack user mention such as <@U123ABC> or <@U123ABC|jane>
var userMentionRegex = regexp.MustCompile(`^<@([UW][A-Z0-9]+)(?:\|[^>]*)?>$`)

// ArgumentError is returned when a command argument is missing or malformed
type ArgumentError struct {
	Name   string
	Value  string
	Reason string
}

// Error implements error
func (e *ArgumentError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("argument [%s] %s", e.Name, e.Reason)
	}

	return fmt.Sprintf("argument [%s] with value [%s] %s", e.Name, e.Value, e.Reason)
}

// UserArg returns the id of the user mentioned by the argument at index
func UserArg(args []string, index int, name string) (userID string, err error) {
	if index >= len(args) {
		return "", &ArgumentError{Name: name, Reason: "is missing"}
	}

	return parseUserMention(name, args[index])
}

// OptionalUserArg returns the id of the user mentioned by the argument at index or defaultUserID
// if there is no such argument
func OptionalUserArg(args []string, index int, name string, defaultUserID string) (userID string, err error) {
	if index >= len(args) {
		return defaultUserID, nil
	}

	return parseUserMention(name, args[index])
}

// IntArg returns the integer value of the argument at index
func IntArg(args []string, index int, name string) (value int64, err error) {
	if index >= len(args) {
		return 0, &ArgumentError{Name: name, Reason: "is missing"}
	}

	return parseInt(name, args[index])
}

// OptionalIntArg returns the integer value of the argument at index or defaultValue
// if there is no such argument
func OptionalIntArg(args []string, index int, name string, defaultValue int64) (value int64, err error) {
	if index >= len(args) {
		return defaultValue, nil
	}

	return parseInt(name, args[index])
}

// NoExtraArgs returns an error if there are more than count arguments
func NoExtraArgs(args []string, count int) (err error) {
	if len(args) > count {
		return &ArgumentError{Name: "extra", Value: args[count], Reason: "is unexpected"}
	}

	return nil
}

func parseUserMention(name string, raw string) (userID string, err error) {
	matches := userMentionRegex.FindStringSubmatch(raw)
	if matches == nil {
		return "", &ArgumentError{Name: name, Value: raw, Reason: "is not a user mention"}
	}

	return matches[1], nil
}

func parseInt(name string, raw string) (value int64, err error) {
	value, err = strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &ArgumentError{Name: name, Value: raw, Reason: "is not an integer"}
	}

	return value, nil
}
