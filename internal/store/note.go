package store

import (
	"database/sql"
	"fmt"
	"unicode/utf8"

	"github.com/rgoulding/notekeep/internal/model"
)

// Content policy for notes.
const (
	TitleMinLen       = 3
	DescriptionMinLen = 5
)

// NotePatch carries a partial update. Nil fields are left unchanged.
type NotePatch struct {
	Title       *string
	Description *string
	Tag         *string
}

type NoteStore struct {
	db *sql.DB
}

func NewNoteStore(db *sql.DB) *NoteStore {
	return &NoteStore{db: db}
}

func scanNote(scanner interface{ Scan(...any) error }) (*model.Note, error) {
	var n model.Note
	err := scanner.Scan(
		&n.ID, &n.OwnerID, &n.Title, &n.Description, &n.Tag,
		&n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

const noteCols = `id, owner_id, title, description, tag, created_at, updated_at`

// Create inserts a note owned by ownerID. The owner is always the caller's
// identity; there is no way to create a note on someone else's behalf.
func (s *NoteStore) Create(ownerID int64, title, description, tag string) (*model.Note, error) {
	if utf8.RuneCountInString(title) < TitleMinLen {
		return nil, fmt.Errorf("%w: title must be at least %d characters", ErrValidation, TitleMinLen)
	}
	if utf8.RuneCountInString(description) < DescriptionMinLen {
		return nil, fmt.Errorf("%w: description must be at least %d characters", ErrValidation, DescriptionMinLen)
	}

	result, err := s.db.Exec(
		`INSERT INTO notes (owner_id, title, description, tag) VALUES (?, ?, ?, ?)`,
		ownerID, title, description, tag,
	)
	if err != nil {
		return nil, fmt.Errorf("insert note: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *NoteStore) GetByID(id int64) (*model.Note, error) {
	row := s.db.QueryRow(`SELECT `+noteCols+` FROM notes WHERE id = ?`, id)
	n, err := scanNote(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get note: %w", err)
	}
	return n, nil
}

// ListByOwner returns all notes owned by ownerID, newest first.
func (s *NoteStore) ListByOwner(ownerID int64) ([]model.Note, error) {
	rows, err := s.db.Query(
		`SELECT `+noteCols+` FROM notes WHERE owner_id = ? ORDER BY created_at DESC, id DESC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	var notes []model.Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, *n)
	}
	return notes, rows.Err()
}

// Update applies a partial update to the note with the given id on behalf of
// ownerID. The lookup is deliberately not scoped by owner: a missing note is
// ErrNotFound, a note owned by someone else is ErrNotOwner, and the two must
// stay distinguishable. The fetch, ownership check, and write run in one
// transaction so a concurrent delete cannot slip between them.
func (s *NoteStore) Update(id, ownerID int64, patch NotePatch) (*model.Note, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	n, err := fetchNote(tx, id)
	if err != nil {
		return nil, err
	}
	if n.OwnerID != ownerID {
		return nil, ErrNotOwner
	}

	if patch.Title != nil {
		n.Title = *patch.Title
	}
	if patch.Description != nil {
		n.Description = *patch.Description
	}
	if patch.Tag != nil {
		n.Tag = *patch.Tag
	}

	_, err = tx.Exec(
		`UPDATE notes SET title = ?, description = ?, tag = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		n.Title, n.Description, n.Tag, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update note: %w", err)
	}

	// Re-read inside the transaction: a delete racing the commit must not
	// turn a successful update into a nil result.
	updated, err := fetchNote(tx, id)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return updated, nil
}

// Delete removes the note with the given id on behalf of ownerID. Existence
// is checked first, then ownership; nothing is removed until both pass.
func (s *NoteStore) Delete(id, ownerID int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	n, err := fetchNote(tx, id)
	if err != nil {
		return err
	}
	if n.OwnerID != ownerID {
		return ErrNotOwner
	}

	if _, err := tx.Exec(`DELETE FROM notes WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func fetchNote(tx *sql.Tx, id int64) (*model.Note, error) {
	row := tx.QueryRow(`SELECT `+noteCols+` FROM notes WHERE id = ?`, id)
	n, err := scanNote(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get note: %w", err)
	}
	return n, nil
}
