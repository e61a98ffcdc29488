package config

import (
	"fmt"
	"strings"
	"time"
)

// DurationField parses an optional duration setting such as rotation.tick.
// A blank value yields def; negative durations are rejected. name is the
// config key and only appears in error messages.
func DurationField(name, value string, def time.Duration) (time.Duration, error) {
	s := strings.TrimSpace(value)
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q (use Go syntax like \"90s\"): %w", name, value, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s: duration must not be negative", name)
	}
	return d, nil
}
