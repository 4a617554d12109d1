package models

import "time"

// Business is the shop profile attached to a user. Only the fields the
// calendar needs are mapped.
type Business struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Name      string    `db:"name" json:"name"`
	Address   *string   `db:"address" json:"address,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// AddressOrEmpty returns the free-text address or "".
func (b *Business) AddressOrEmpty() string {
	if b == nil || b.Address == nil {
		return ""
	}
	return *b.Address
}
