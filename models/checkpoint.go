package models

// TrackingCheckpoint is one (city, timestamp) record in a package's history.
// Checkpoints are append-only and read back ordered by timestamp ascending.
// A checkpoint may only exist for a package with IsTracked = true.
type TrackingCheckpoint struct {
	ID        int64  `db:"id" json:"id"`
	PackageID int64  `db:"package_id" json:"package_id"`
	City      string `db:"city" json:"city"`
	// Timestamp is an RFC3339 UTC string. Callers may submit out-of-order
	// timestamps; they are accepted as-is, not reordered or rejected.
	Timestamp string `db:"timestamp" json:"timestamp"`
}
