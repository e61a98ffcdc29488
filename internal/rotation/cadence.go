package rotation

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// Cadence is a parsed cadence string: either a fixed interval or a cron
// schedule that yields the next activation time.
type Cadence struct {
	Every  time.Duration // fixed interval when > 0
	Cron   cron.Schedule // next-activation schedule when non-nil
	Source string        // "duration" | "hhmm" | "cron"
}

// IsZero reports whether no cadence was configured.
func (c Cadence) IsZero() bool { return c.Every <= 0 && c.Cron == nil }

// next returns the wall-clock time of the next activation after now.
func (c Cadence) next(now time.Time) time.Time {
	if c.Cron != nil {
		return c.Cron.Next(now)
	}
	return now.Add(c.Every)
}

// String renders the cadence for logs.
func (c Cadence) String() string {
	if c.Cron != nil {
		return "cron"
	}
	return c.Every.String()
}

var reHHMM = regexp.MustCompile(`^\s*(\d{1,3}):(\d{2})\s*$`)

// Interval builds a fixed-interval cadence.
func Interval(every time.Duration) Cadence {
	return Cadence{Every: every, Source: "duration"}
}

// ParseCadence parses a cadence string.
//
// Supported forms:
//   - Cron (crontab.guru-style): "0 9 * * *", "@hourly", "@every 55m"
//   - Interval duration: "25m", "1h30m"
//   - Interval HH:MM: "00:50" (50 minutes), "02:30" (2 hours 30 minutes)
//
// Optional prefixes:
//   - "cron:" forces cron parsing
//   - "interval:" or "every:" forces interval parsing
func ParseCadence(raw string) (Cadence, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Cadence{}, fmt.Errorf("cadence required")
	}

	low := strings.ToLower(s)
	if strings.HasPrefix(low, "cron:") {
		expr := strings.TrimSpace(s[len("cron:"):])
		if expr == "" {
			return Cadence{}, fmt.Errorf("cron cadence required after 'cron:'")
		}
		return parseCron(expr)
	}
	if strings.HasPrefix(low, "interval:") {
		return parseInterval(strings.TrimSpace(s[len("interval:"):]))
	}
	if strings.HasPrefix(low, "every:") {
		return parseInterval(strings.TrimSpace(s[len("every:"):]))
	}

	// Heuristics: any whitespace or leading '@' => cron.
	if strings.ContainsAny(s, " \t\n\r") || strings.HasPrefix(s, "@") {
		return parseCron(s)
	}

	// HH:MM => interval duration.
	if reHHMM.MatchString(s) {
		d, err := parseHHMMDuration(s)
		if err != nil {
			return Cadence{}, err
		}
		return Cadence{Every: d, Source: "hhmm"}, nil
	}

	// Go duration => interval duration.
	if d, err := time.ParseDuration(s); err == nil {
		if d <= 0 {
			return Cadence{}, fmt.Errorf("interval must be > 0")
		}
		return Cadence{Every: d, Source: "duration"}, nil
	}

	return Cadence{}, fmt.Errorf(
		"invalid cadence %q (use cron like '0 9 * * *', HH:MM like '02:30', or duration like '25m')",
		raw,
	)
}

func parseCron(expr string) (Cadence, error) {
	sched, err := cron.ParseStandard(expr)
	if err != nil {
		return Cadence{}, fmt.Errorf("invalid cron cadence %q: %w", expr, err)
	}
	return Cadence{Cron: sched, Source: "cron"}, nil
}

func parseInterval(v string) (Cadence, error) {
	if v == "" {
		return Cadence{}, fmt.Errorf("interval required")
	}
	if reHHMM.MatchString(v) {
		d, err := parseHHMMDuration(v)
		if err != nil {
			return Cadence{}, err
		}
		return Cadence{Every: d, Source: "hhmm"}, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return Cadence{}, fmt.Errorf("invalid interval %q (use HH:MM or Go duration like '25m'/'1h30m')", v)
	}
	if d <= 0 {
		return Cadence{}, fmt.Errorf("interval must be > 0")
	}
	return Cadence{Every: d, Source: "duration"}, nil
}

func parseHHMMDuration(v string) (time.Duration, error) {
	m := reHHMM.FindStringSubmatch(v)
	if len(m) != 3 {
		return 0, fmt.Errorf("invalid HH:MM %q", v)
	}
	var hh int
	for i := 0; i < len(m[1]); i++ {
		hh = hh*10 + int(m[1][i]-'0')
	}
	mm := int(m[2][0]-'0')*10 + int(m[2][1]-'0')
	if mm > 59 {
		return 0, fmt.Errorf("invalid minutes in %q", v)
	}
	d := time.Duration(hh)*time.Hour + time.Duration(mm)*time.Minute
	if d <= 0 {
		return 0, fmt.Errorf("interval must be > 0")
	}
	return d, nil
}
