package booking

import (
	"fmt"
	"time"
)

type Slot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// Window is a half-open busy interval [Start, End) in minutes from
// midnight.
type Window struct {
	Start int
	End   int
}

// ParseHM converts "HH:MM" to minutes from midnight.
func ParseHM(hm string) (int, error) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatHM converts minutes from midnight back to "HH:MM".
func FormatHM(minutes int) string {
	minutes %= 24 * 60
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Overlaps is the open-interval test: [s1,e1) and [s2,e2) overlap iff
// s1 < e2 && s2 < e1.
func Overlaps(s1, e1, s2, e2 int) bool {
	return s1 < e2 && s2 < e1
}

// BuildSlots walks the operating window [opensAt, closesAt) in steps of
// slotMinutes. A candidate whose end would pass closesAt is dropped
// (ending exactly at closesAt is fine); the rest are flagged available
// unless they overlap a busy window.
func BuildSlots(opensAt, closesAt string, slotMinutes, durationMinutes int, busy []Window) ([]Slot, error) {
	if slotMinutes <= 0 || durationMinutes <= 0 {
		return nil, fmt.Errorf("invalid slot or duration minutes")
	}

	open, err := ParseHM(opensAt)
	if err != nil {
		return nil, fmt.Errorf("invalid opens_at: %w", err)
	}
	closing, err := ParseHM(closesAt)
	if err != nil {
		return nil, fmt.Errorf("invalid closes_at: %w", err)
	}

	var slots []Slot

	for cur := open; cur < closing; cur += slotMinutes {
		end := cur + durationMinutes
		if end > closing {
			continue
		}

		available := true
		for _, w := range busy {
			if Overlaps(cur, end, w.Start, w.End) {
				available = false
				break
			}
		}

		slots = append(slots, Slot{
			Time:      FormatHM(cur),
			Available: available,
		})
	}

	return slots, nil
}
