package utils

import (
	"strconv"
	"strings"
	"time"
)

// ParseDurationString accepts the compact "7d" / "12h" / "30m" / "45s" format
// used in the session TTL config. Anything it cannot parse falls back to the
// given default.
func ParseDurationString(value string, fallback time.Duration) time.Duration {
	value = strings.TrimSpace(strings.ToLower(value))
	if len(value) < 2 {
		return fallback
	}

	unit := value[len(value)-1]
	amount, err := strconv.Atoi(value[:len(value)-1])
	if err != nil || amount <= 0 {
		return fallback
	}

	switch unit {
	case 'd':
		return time.Duration(amount) * 24 * time.Hour
	case 'h':
		return time.Duration(amount) * time.Hour
	case 'm':
		return time.Duration(amount) * time.Minute
	case 's':
		return time.Duration(amount) * time.Second
	default:
		return fallback
	}
}
