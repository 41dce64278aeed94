package store

import (
	"database/sql"
	"fmt"
)

// SnippetRepository handles database operations for reusable snippets and
// their folders.
type SnippetRepository struct {
	db *DB
}

// NewSnippetRepository creates a new snippet repository.
func NewSnippetRepository(db *DB) *SnippetRepository {
	return &SnippetRepository{db: db}
}

// List returns all snippets, most recently updated first.
func (r *SnippetRepository) List() ([]Snippet, error) {
	rows, err := r.db.Query(`
		SELECT id, title, body, folder_id, created_at, updated_at
		FROM snippets ORDER BY updated_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list snippets: %w", err)
	}
	defer rows.Close()

	var snippets []Snippet
	for rows.Next() {
		var s Snippet
		var folderID sql.NullInt64
		if err := rows.Scan(&s.ID, &s.Title, &s.Body, &folderID, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan snippet row: %w", err)
		}
		if folderID.Valid {
			s.FolderID = &folderID.Int64
		}
		snippets = append(snippets, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snippet rows: %w", err)
	}
	return snippets, nil
}

// Add creates a snippet.
func (r *SnippetRepository) Add(title, body string, folderID *int64) (*Snippet, error) {
	ts := now()
	res, err := r.db.Exec(`
		INSERT INTO snippets (title, body, folder_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, title, body, folderID, ts, ts)
	if err != nil {
		return nil, fmt.Errorf("add snippet: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("add snippet id: %w", err)
	}
	return &Snippet{ID: id, Title: title, Body: body, FolderID: folderID, CreatedAt: ts, UpdatedAt: ts}, nil
}

// Update replaces a snippet's title and body.
func (r *SnippetRepository) Update(id int64, title, body string) error {
	res, err := r.db.Exec(`
		UPDATE snippets SET title = ?, body = ?, updated_at = ? WHERE id = ?
	`, title, body, now(), id)
	if err != nil {
		return fmt.Errorf("update snippet: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a snippet.
func (r *SnippetRepository) Delete(id int64) error {
	res, err := r.db.Exec(`DELETE FROM snippets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete snippet: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListFolders returns all snippet folders ordered by name.
func (r *SnippetRepository) ListFolders() ([]SnippetFolder, error) {
	rows, err := r.db.Query(`SELECT id, name, created_at FROM snippet_folders ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list snippet folders: %w", err)
	}
	defer rows.Close()

	var folders []SnippetFolder
	for rows.Next() {
		var f SnippetFolder
		if err := rows.Scan(&f.ID, &f.Name, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan snippet folder row: %w", err)
		}
		folders = append(folders, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snippet folder rows: %w", err)
	}
	return folders, nil
}

// AddFolder creates a snippet folder. Names are unique.
func (r *SnippetRepository) AddFolder(name string) (*SnippetFolder, error) {
	created := now()
	res, err := r.db.Exec(`INSERT INTO snippet_folders (name, created_at) VALUES (?, ?)`, name, created)
	if err != nil {
		return nil, fmt.Errorf("add snippet folder: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("add snippet folder id: %w", err)
	}
	return &SnippetFolder{ID: id, Name: name, CreatedAt: created}, nil
}
