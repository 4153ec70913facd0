package models

// Group represents a set of persons who share expenses.
// Deleting a group deletes its persons, expenses and settlements.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Roommates", "Ski Trip").
	Name string

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}
