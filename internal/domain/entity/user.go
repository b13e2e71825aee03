// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "fmt"

// User is the record every storage backend persists.
// An empty ID means the user has not been persisted yet; once a backend assigns it,
// the ID never changes for the lifetime of the record.
type User struct {
	ID    string `json:"id"`    // Assigned by the store: decimal integer for relational backends, opaque key for documents.
	Name  string `json:"name"`  // Display name, required on creation.
	Email string `json:"email"` // Contact email, required on creation.
}

// IsPersisted reports whether a store has already assigned an ID to the user.
func (u *User) IsPersisted() bool {
	return u != nil && u.ID != ""
}

// String renders the user the way the plain-text endpoints print it.
func (u *User) String() string {
	if u == nil {
		return "User{}"
	}

	return fmt.Sprintf("User{id=%s, name='%s', email='%s'}", u.ID, u.Name, u.Email)
}
