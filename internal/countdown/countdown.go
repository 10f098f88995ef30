// Package countdown derives the time remaining until a fixed target moment
// and drives a cancellable periodic recomputation of it.
package countdown

import (
	"fmt"
	"strconv"
	"time"
)

const (
	secondsPerDay    = 86400
	secondsPerHour   = 3600
	secondsPerMinute = 60
)

// Snapshot is the remaining time at one instant.
type Snapshot struct {
	Days    int64 `json:"days"`
	Hours   int   `json:"hours"`
	Minutes int   `json:"minutes"`
	Seconds int   `json:"seconds"`
	Done    bool  `json:"done"`
}

// Display is a Snapshot formatted for the page: days unpadded,
// hours/minutes/seconds zero-padded to two digits.
type Display struct {
	Days    string `json:"days"`
	Hours   string `json:"hours"`
	Minutes string `json:"minutes"`
	Seconds string `json:"seconds"`
}

// Compute returns the snapshot for target as seen at now.
// The delta is truncated to whole seconds and never negative.
func Compute(target, now time.Time) Snapshot {
	if !now.Before(target) {
		return Snapshot{Done: true}
	}

	total := int64(target.Sub(now) / time.Second)

	return Snapshot{
		Days:    total / secondsPerDay,
		Hours:   int(total % secondsPerDay / secondsPerHour),
		Minutes: int(total % secondsPerHour / secondsPerMinute),
		Seconds: int(total % secondsPerMinute),
	}
}

// TotalSeconds folds the snapshot back into whole seconds.
func (s Snapshot) TotalSeconds() int64 {
	return s.Days*secondsPerDay +
		int64(s.Hours)*secondsPerHour +
		int64(s.Minutes)*secondsPerMinute +
		int64(s.Seconds)
}

func (s Snapshot) Display() Display {
	return Display{
		Days:    strconv.FormatInt(s.Days, 10),
		Hours:   pad2(s.Hours),
		Minutes: pad2(s.Minutes),
		Seconds: pad2(s.Seconds),
	}
}

// String renders "D días HH:MM:SS".
func (s Snapshot) String() string {
	d := s.Display()
	return fmt.Sprintf("%s días %s:%s:%s", d.Days, d.Hours, d.Minutes, d.Seconds)
}

func pad2(n int) string {
	return fmt.Sprintf("%02d", n)
}
