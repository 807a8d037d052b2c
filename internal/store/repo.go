package store

import (
	"context"
	"time"

	"github.com/abhisek/feedtune/internal/prefs"
)

// QueryOpts configures change log queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// StoredPreferences is a profile's saved preferences.
type StoredPreferences struct {
	Profile     string
	Preferences prefs.FeedPreferences
	UpdatedAt   time.Time
}

// PreferenceRepo persists feed preferences per profile.
type PreferenceRepo interface {
	// Load returns the saved preferences, or nil if the profile has none.
	Load(ctx context.Context, profile string) (*StoredPreferences, error)

	// Save upserts the preferences for profile.
	Save(ctx context.Context, profile string, p prefs.FeedPreferences) error

	// Delete removes the saved row. Deleting a missing profile is not an error.
	Delete(ctx context.Context, profile string) error

	// Profiles lists every profile with saved preferences.
	Profiles(ctx context.Context) ([]string, error)
}

// ChangeRecord is one entry in the preference change log.
type ChangeRecord struct {
	ID          int
	Sequence    int64
	Timestamp   time.Time
	Profile     string
	SessionID   string
	Action      prefs.Action
	Detail      string
	Preferences prefs.FeedPreferences
}

// ChangeRepo provides append and query access to the change log.
type ChangeRepo interface {
	// Append records a change and returns its sequence number.
	Append(ctx context.Context, rec ChangeRecord) (int64, error)

	// Query returns changes for profile, newest first.
	Query(ctx context.Context, profile string, opts QueryOpts) ([]ChangeRecord, error)

	// Prune deletes all but the newest keep changes of profile and reports
	// how many were removed.
	Prune(ctx context.Context, profile string, keep int) (int64, error)
}
