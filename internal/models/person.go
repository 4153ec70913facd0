package models

// Person is a member of a group who can pay for or share expenses.
// A person is never modified after creation. Deleting a person is rejected
// while any expense or settlement of the group still references them.
type Person struct {
	// ID is the unique identifier for the person (UUID format).
	ID string

	// GroupID is the group this person belongs to.
	GroupID string

	// Name is the display name. Never empty after trimming.
	Name string

	// CreatedAt is the Unix timestamp when the person was added.
	CreatedAt int64
}
