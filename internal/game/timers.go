package game

import "time"

// afterFunc is a thin wrapper over time.AfterFunc so every engine timer
// goes through one call site; test doubles can swap implementations if a
// future test package needs virtual time.
func afterFunc(d time.Duration, f func()) *time.Timer {
	return time.AfterFunc(d, f)
}
