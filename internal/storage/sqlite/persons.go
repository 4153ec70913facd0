package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/groupledger/internal/models"
	"github.com/mmynk/groupledger/internal/storage"
)

// AddPerson persists a new person in an existing group.
func (s *SQLiteStore) AddPerson(ctx context.Context, person *models.Person) error {
	if person.ID == "" {
		person.ID = uuid.New().String()
	}
	if person.CreatedAt == 0 {
		person.CreatedAt = time.Now().Unix()
	}

	if _, err := s.GetGroup(ctx, person.GroupID); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO persons (id, group_id, name, created_at) VALUES (?, ?, ?, ?)",
		person.ID, person.GroupID, person.Name, person.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert person: %w", err)
	}
	return nil
}

// GetPerson retrieves a person by ID.
func (s *SQLiteStore) GetPerson(ctx context.Context, personID string) (*models.Person, error) {
	person := &models.Person{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, group_id, name, created_at FROM persons WHERE id = ?",
		personID,
	).Scan(&person.ID, &person.GroupID, &person.Name, &person.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("person %s: %w", personID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get person: %w", err)
	}
	return person, nil
}

// ListPersons retrieves the persons of a group in the order they were added.
func (s *SQLiteStore) ListPersons(ctx context.Context, groupID string) ([]*models.Person, error) {
	return listPersons(ctx, s.db, groupID)
}

func listPersons(ctx context.Context, q querier, groupID string) ([]*models.Person, error) {
	rows, err := q.QueryContext(ctx,
		"SELECT id, group_id, name, created_at FROM persons WHERE group_id = ? ORDER BY created_at, id",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list persons: %w", err)
	}
	defer rows.Close()

	var persons []*models.Person
	for rows.Next() {
		person := &models.Person{}
		if err := rows.Scan(&person.ID, &person.GroupID, &person.Name, &person.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}
		persons = append(persons, person)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate persons: %w", err)
	}
	return persons, nil
}

// DeletePerson removes a person who is not referenced by any expense or
// settlement. Referenced persons are kept and storage.ErrPersonInUse is returned.
func (s *SQLiteStore) DeletePerson(ctx context.Context, personID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var inUse bool
	err = tx.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM expenses WHERE payer_id = ?1)
		    OR EXISTS (SELECT 1 FROM expense_debtors WHERE person_id = ?1)
		    OR EXISTS (SELECT 1 FROM settlements WHERE from_person_id = ?1 OR to_person_id = ?1)`,
		personID,
	).Scan(&inUse)
	if err != nil {
		return fmt.Errorf("failed to check person references: %w", err)
	}
	if inUse {
		return fmt.Errorf("person %s: %w", personID, storage.ErrPersonInUse)
	}

	res, err := tx.ExecContext(ctx, "DELETE FROM persons WHERE id = ?", personID)
	if err != nil {
		return fmt.Errorf("failed to delete person: %w", err)
	}
	if err := expectOneRow(res, "person", personID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
