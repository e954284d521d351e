package model

import "time"

// Contact mirrors the `contacts` table: one row per contact-form
// submission. Email is unique so repeat submissions are rejected.
type Contact struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Comments  string    `json:"comments"`
	CreatedAt time.Time `json:"createdAt"`
}
