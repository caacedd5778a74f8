package models

// Package represents a shipment between two users.
// It maps to the `packages` table. SenderID and ReceiverID reference users(id);
// referential integrity is enforced by the database, not the application.
type Package struct {
	ID              int64  `db:"id" json:"id"`
	SenderID        int64  `db:"sender_id" json:"sender_id"`
	ReceiverID      int64  `db:"receiver_id" json:"receiver_id"`
	Name            string `db:"name" json:"name"`
	Description     string `db:"description" json:"description"`
	SenderCity      string `db:"sender_city" json:"sender_city"`
	DestinationCity string `db:"destination_city" json:"destination_city"`
	// IsTracked starts false and flips to true exactly once, when the first
	// checkpoint is registered. It is never reset.
	IsTracked bool `db:"is_tracked" json:"is_tracked"`
	// CreatedAt is stored as an RFC3339 UTC string so lexicographic order
	// matches chronological order across both supported drivers.
	CreatedAt string `db:"creation_date" json:"creation_date"`

	// Usernames are populated only by the admin listing join.
	SenderUsername   string `db:"sender_username" json:"sender_username,omitempty"`
	ReceiverUsername string `db:"receiver_username" json:"receiver_username,omitempty"`
}
