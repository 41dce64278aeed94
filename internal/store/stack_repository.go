package store

import "fmt"

// StackRepository records paste history: one entry per time a clip is
// written back to the system clipboard.
type StackRepository struct {
	db *DB
}

// NewStackRepository creates a new paste-stack repository.
func NewStackRepository(db *DB) *StackRepository {
	return &StackRepository{db: db}
}

// Push appends an entry for a pasted clip.
func (r *StackRepository) Push(clipID int64) error {
	_, err := r.db.Exec(`INSERT INTO paste_stack (clip_id, pasted_at) VALUES (?, ?)`, clipID, now())
	if err != nil {
		return fmt.Errorf("push stack entry: %w", err)
	}
	return nil
}

// List returns the most recent entries, newest first, joined with the
// pasted clip's type and preview.
func (r *StackRepository) List(limit int) ([]StackEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.Query(`
		SELECT ps.id, ps.clip_id, ps.pasted_at, c.content_type, COALESCE(c.preview_text, '')
		FROM paste_stack ps
		JOIN clips c ON c.id = ps.clip_id
		ORDER BY ps.id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list stack: %w", err)
	}
	defer rows.Close()

	var entries []StackEntry
	for rows.Next() {
		var e StackEntry
		if err := rows.Scan(&e.ID, &e.ClipID, &e.PastedAt, &e.ContentType, &e.PreviewText); err != nil {
			return nil, fmt.Errorf("scan stack row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stack rows: %w", err)
	}
	return entries, nil
}

// Clear drops all paste history.
func (r *StackRepository) Clear() error {
	if _, err := r.db.Exec(`DELETE FROM paste_stack`); err != nil {
		return fmt.Errorf("clear stack: %w", err)
	}
	return nil
}
