// Package timewin parses restaurant open-hour strings and checks them against
// target meal windows. Windows are minutes since midnight, same-day only.
package timewin

import (
	"fmt"
	"strconv"
	"strings"
)

// Window is a [Start, End) interval in minutes since midnight
type Window struct {
	Start int
	End   int
}

// Common meal slots
var (
	LunchWindow  = Window{Start: 11*60 + 30, End: 14 * 60} // 11:30-14:00
	DinnerWindow = Window{Start: 17*60 + 30, End: 20*60 + 30} // 17:30-20:30
)

// ParseTimeHHMM converts "HH:MM" to minutes since midnight.
// "8:5" is accepted as 8:05.
func ParseTimeHHMM(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty time string")
	}
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("bad time format: %s", s)
	}
	h, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, fmt.Errorf("bad time format: %s", s)
	}
	m, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, fmt.Errorf("bad time format: %s", s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("out of range time: %s", s)
	}
	return h*60 + m, nil
}

// normalizeDash maps en/em/minus dashes to a plain hyphen
func normalizeDash(s string) string {
	r := strings.NewReplacer("–", "-", "—", "-", "−", "-")
	return r.Replace(s)
}

// ParseWindow parses "HH:MM-HH:MM" (any dash variant) into a Window.
// Overnight spans are rejected; windows must strictly increase.
func ParseWindow(s string) (Window, error) {
	if strings.TrimSpace(s) == "" {
		return Window{}, fmt.Errorf("empty window string")
	}
	s = normalizeDash(strings.TrimSpace(s))
	left, right, found := strings.Cut(s, "-")
	if !found {
		return Window{}, fmt.Errorf("bad window format: %s", s)
	}
	start, err := ParseTimeHHMM(left)
	if err != nil {
		return Window{}, err
	}
	end, err := ParseTimeHHMM(right)
	if err != nil {
		return Window{}, err
	}
	if end <= start {
		return Window{}, fmt.Errorf("non-increasing window: %s", s)
	}
	return Window{Start: start, End: end}, nil
}

// OverlapMinutes returns the overlap length between two windows, 0 if disjoint
func OverlapMinutes(a, b Window) int {
	s := max(a.Start, b.Start)
	e := min(a.End, b.End)
	if e <= s {
		return 0
	}
	return e - s
}

// IsOpenForWindow reports whether an open-hours string intersects the target
// window by any positive amount. Unparseable strings count as closed.
func IsOpenForWindow(openStr string, target Window) bool {
	w, err := ParseWindow(openStr)
	if err != nil {
		return false
	}
	return OverlapMinutes(w, target) > 0
}
