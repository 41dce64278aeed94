package store

import "fmt"

// FolderRepository handles database operations for clip folders.
type FolderRepository struct {
	db *DB
}

// NewFolderRepository creates a new folder repository.
func NewFolderRepository(db *DB) *FolderRepository {
	return &FolderRepository{db: db}
}

// List returns all folders ordered by name.
func (r *FolderRepository) List() ([]Folder, error) {
	rows, err := r.db.Query(`SELECT id, name, created_at FROM folders ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	defer rows.Close()

	var folders []Folder
	for rows.Next() {
		var f Folder
		if err := rows.Scan(&f.ID, &f.Name, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan folder row: %w", err)
		}
		folders = append(folders, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folder rows: %w", err)
	}
	return folders, nil
}

// Add creates a folder. Names are unique; duplicates fail.
func (r *FolderRepository) Add(name string) (*Folder, error) {
	created := now()
	res, err := r.db.Exec(`INSERT INTO folders (name, created_at) VALUES (?, ?)`, name, created)
	if err != nil {
		return nil, fmt.Errorf("add folder: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("add folder id: %w", err)
	}
	return &Folder{ID: id, Name: name, CreatedAt: created}, nil
}
