package kernel

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"courierdispatch/internal/pkg/errs"
	"courierdispatch/internal/pkg/guard"
)

const (
	clockLayout     = "15:04"
	minutesPerDay   = 24 * 60
	windowSeparator = "-"
)

var ErrTimeWindowIsNotConstructed = errors.New("TimeWindow must be created via NewTimeWindow or ParseTimeWindow")

// TimeWindow is a same-day interval of the 24-hour clock with minute precision.
// Start is strictly before end; windows never cross midnight.
type TimeWindow struct {
	start int
	end   int
	guard guard.ConstructorGuard
}

// NewTimeWindow builds a window from minutes since midnight.
func NewTimeWindow(startMinute, endMinute int) (TimeWindow, error) {
	if startMinute < 0 || startMinute >= minutesPerDay {
		return TimeWindow{}, errs.NewValueIsOutOfRangeError("window start", startMinute, 0, minutesPerDay-1)
	}
	if endMinute < 0 || endMinute >= minutesPerDay {
		return TimeWindow{}, errs.NewValueIsOutOfRangeError("window end", endMinute, 0, minutesPerDay-1)
	}
	if startMinute >= endMinute {
		return TimeWindow{}, errs.NewValueIsInvalidErrorWithCause(
			"time window",
			fmt.Errorf("start %s is not before end %s", formatClock(startMinute), formatClock(endMinute)),
		)
	}

	return TimeWindow{start: startMinute, end: endMinute, guard: guard.NewConstructorGuard()}, nil
}

// ParseTimeWindow parses "HH:MM-HH:MM", e.g. "09:00-18:30".
func ParseTimeWindow(s string) (TimeWindow, error) {
	from, to, ok := strings.Cut(s, windowSeparator)
	if !ok {
		return TimeWindow{}, errs.NewValueIsInvalidErrorWithCause("time window", fmt.Errorf("%q is not HH:MM-HH:MM", s))
	}

	start, err := parseClock(from)
	if err != nil {
		return TimeWindow{}, errs.NewValueIsInvalidErrorWithCause("time window", err)
	}
	end, err := parseClock(to)
	if err != nil {
		return TimeWindow{}, errs.NewValueIsInvalidErrorWithCause("time window", err)
	}

	return NewTimeWindow(start, end)
}

// ParseTimeWindows parses every entry and joins the failures.
func ParseTimeWindows(raw []string) ([]TimeWindow, error) {
	windows := make([]TimeWindow, 0, len(raw))
	var errList []error
	for _, s := range raw {
		w, err := ParseTimeWindow(s)
		if err != nil {
			errList = append(errList, err)
			continue
		}
		windows = append(windows, w)
	}
	if len(errList) > 0 {
		return nil, errors.Join(errList...)
	}
	return windows, nil
}

func (w TimeWindow) StartMinute() int {
	return w.start
}

func (w TimeWindow) EndMinute() int {
	return w.end
}

func (w TimeWindow) String() string {
	return formatClock(w.start) + windowSeparator + formatClock(w.end)
}

func (w TimeWindow) IsEqual(other TimeWindow) bool {
	return w.start == other.start && w.end == other.end
}

func (w TimeWindow) Validate() error {
	return w.guard.Validate(ErrTimeWindowIsNotConstructed)
}

// FormatTimeWindows renders windows in their wire form.
func FormatTimeWindows(windows []TimeWindow) []string {
	out := make([]string, len(windows))
	for i, w := range windows {
		out[i] = w.String()
	}
	return out
}

func parseClock(s string) (int, error) {
	if len(s) != len(clockLayout) {
		return 0, fmt.Errorf("%q is not HH:MM", s)
	}
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return 0, fmt.Errorf("%q is not HH:MM: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

func formatClock(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}
