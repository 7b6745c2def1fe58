package reservation

import (
	"errors"
	"fmt"
	"time"
)

const (
	DefaultMinAdvance  = 30 * time.Minute
	DefaultMinDuration = 15 * time.Minute
	DefaultMaxDuration = 7 * 24 * time.Hour
)

// ErrInvalidWindow matches every policy violation.
var ErrInvalidWindow = errors.New("invalid reservation window")

type Rule int

const (
	RuleStartInPast Rule = iota + 1
	RuleEndAfterStart
	RuleMinAdvance
	RuleMinDuration
	RuleMaxDuration
)

// PolicyError reports the first rule a window broke. errors.Is matches it
// against ErrInvalidWindow and against the per-rule sentinels below.
type PolicyError struct {
	Rule Rule
	msg  string
}

func (e *PolicyError) Error() string { return e.msg }

func (e *PolicyError) Is(target error) bool {
	if target == ErrInvalidWindow {
		return true
	}
	t, ok := target.(*PolicyError)
	return ok && t.Rule == e.Rule
}

var (
	ErrStartInPast      = &PolicyError{Rule: RuleStartInPast, msg: "start time cannot be in the past"}
	ErrEndBeforeStart   = &PolicyError{Rule: RuleEndAfterStart, msg: ErrWindowOrder.Error()}
	ErrAdvanceNotMet    = &PolicyError{Rule: RuleMinAdvance, msg: advanceMessage(DefaultMinAdvance)}
	ErrDurationTooShort = &PolicyError{Rule: RuleMinDuration, msg: minDurationMessage(DefaultMinDuration)}
	ErrDurationTooLong  = &PolicyError{Rule: RuleMaxDuration, msg: maxDurationMessage(DefaultMaxDuration)}
)

// Policy decides whether a requested window may be booked at all,
// independent of other reservations.
type Policy struct {
	MinAdvance  time.Duration
	MinDuration time.Duration
	MaxDuration time.Duration
}

func DefaultPolicy() Policy {
	return Policy{
		MinAdvance:  DefaultMinAdvance,
		MinDuration: DefaultMinDuration,
		MaxDuration: DefaultMaxDuration,
	}
}

// Validate applies the rules in a fixed order and stops at the first failure.
func (p Policy) Validate(now, start, end time.Time) error {
	now, start, end = now.UTC(), start.UTC(), end.UTC()

	if start.Before(now) {
		return ErrStartInPast
	}
	if !end.After(start) {
		return ErrEndBeforeStart
	}
	if start.Sub(now) < p.MinAdvance {
		return p.violation(ErrAdvanceNotMet, p.MinAdvance == DefaultMinAdvance, advanceMessage(p.MinAdvance))
	}
	d := end.Sub(start)
	if d < p.MinDuration {
		return p.violation(ErrDurationTooShort, p.MinDuration == DefaultMinDuration, minDurationMessage(p.MinDuration))
	}
	if d > p.MaxDuration {
		return p.violation(ErrDurationTooLong, p.MaxDuration == DefaultMaxDuration, maxDurationMessage(p.MaxDuration))
	}
	return nil
}

// ValidateWindow is Validate followed by NewWindow.
func (p Policy) ValidateWindow(now, start, end time.Time) (Window, error) {
	if err := p.Validate(now, start, end); err != nil {
		return Window{}, err
	}
	return NewWindow(start, end)
}

func (p Policy) violation(sentinel *PolicyError, isDefault bool, msg string) error {
	if isDefault {
		return sentinel
	}
	return &PolicyError{Rule: sentinel.Rule, msg: msg}
}

func advanceMessage(d time.Duration) string {
	return fmt.Sprintf("must be booked at least %s in advance", humanize(d))
}

func minDurationMessage(d time.Duration) string {
	return fmt.Sprintf("duration must be at least %s", humanize(d))
}

func maxDurationMessage(d time.Duration) string {
	return fmt.Sprintf("duration cannot exceed %s", humanize(d))
}

func humanize(d time.Duration) string {
	const day = 24 * time.Hour
	switch {
	case d >= day && d%day == 0:
		return plural(int64(d/day), "day")
	case d >= time.Hour && d%time.Hour == 0:
		return plural(int64(d/time.Hour), "hour")
	default:
		return plural(int64(d/time.Minute), "minute")
	}
}

func plural(n int64, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
