package snowflake

import (
	"errors"
	"strings"

	sf "github.com/snowflakedb/gosnowflake"
)

// Category is a closed classification of warehouse failures. The original
// error message is always preserved alongside it for display.
type Category string

const (
	CategoryAuth       Category = "auth"
	CategoryPermission Category = "permission"
	CategoryNotFound   Category = "not-found"
	CategoryTransient  Category = "transient"
	CategoryUnknown    Category = "unknown"
)

// Known Snowflake error numbers. Server-side numbers are stable across
// driver versions, unlike message text.
const (
	errIncorrectCredentials = 390100
	errAuthTokenExpired     = 390114
	errSessionGone          = 390111
	errInsufficientPriv     = 3001
	errObjectNotExist       = 2003
	errObjectNotExistDDL    = 2043
)

// Classify maps a warehouse error to a category. Driver error numbers take
// precedence; message substrings are the fallback for wrapped or transport
// errors that carry no number.
func Classify(err error) Category {
	if err == nil {
		return CategoryUnknown
	}

	var sfErr *sf.SnowflakeError
	if errors.As(err, &sfErr) {
		switch sfErr.Number {
		case errIncorrectCredentials, errAuthTokenExpired, errSessionGone:
			return CategoryAuth
		case errInsufficientPriv:
			return CategoryPermission
		case errObjectNotExist, errObjectNotExistDDL:
			return CategoryNotFound
		}
	}

	return classifyMessage(err.Error())
}

func classifyMessage(msg string) Category {
	m := strings.ToLower(msg)
	switch {
	case strings.Contains(m, "not authorized"),
		strings.Contains(m, "insufficient privileges"),
		strings.Contains(m, "access denied"):
		return CategoryPermission
	case strings.Contains(m, "incorrect username or password"),
		strings.Contains(m, "authentication"):
		return CategoryAuth
	case strings.Contains(m, "does not exist"):
		return CategoryNotFound
	case strings.Contains(m, "timeout"),
		strings.Contains(m, "temporarily unavailable"),
		strings.Contains(m, "service unavailable"),
		strings.Contains(m, "connection reset"):
		return CategoryTransient
	default:
		return CategoryUnknown
	}
}

// IsPermission reports whether the error should carry the grants hint.
// Snowflake folds missing grants into "does not exist or not authorized"
// messages, so the substring check stays alongside the structured category.
func IsPermission(err error) bool {
	if err == nil {
		return false
	}
	if Classify(err) == CategoryPermission {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "not authorized")
}
