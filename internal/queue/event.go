// Package queue defines message payloads exchanged over the message broker.
package queue

// ContactSubmittedEvent is published when a contact-form submission is
// accepted. Downstream consumers (notification mailer, CRM sync) get
// everything they need without querying the primary database.
type ContactSubmittedEvent struct {
	ContactID   uint64 `json:"contact_id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Comments    string `json:"comments"`
	SubmittedAt string `json:"submitted_at"`
}
