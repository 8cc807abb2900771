package model

import "time"

// ContactMessage is a contact-form submission kept in the `contacts`
// table until the owner deletes it.
type ContactMessage struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Subject     string    `json:"subject"`
	Email       string    `json:"email"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
