package model

import (
	"time"
)

// Version is one immutable, numbered snapshot of the full ranking set.
// Exactly one version is flagged current at a time and all reads serve
// from it. Version numbers are unique and never reused, so gaps left by
// failed publishes are expected.
type Version struct {
	ID        int32
	Number    int32
	Date      time.Time
	IsCurrent bool
	Notes     string
	Created   time.Time
}

func (v *Version) FormattedDate() string {
	if v.Date.IsZero() {
		return "unknown"
	}
	return v.Date.Format(time.DateOnly)
}

// PublishResult reports the outcome of a successful publish.
type PublishResult struct {
	VersionID     int32
	VersionNumber int32
	PlayerCount   int

	// Warnings lists input-quality problems that did not stop the publish,
	// like duplicate player names that make rank deltas ambiguous.
	Warnings []string
}
