package store

import (
	"database/sql"
	"fmt"
)

// TagRepository handles database operations for tags and clip-tag links.
type TagRepository struct {
	db *DB
}

// NewTagRepository creates a new tag repository.
func NewTagRepository(db *DB) *TagRepository {
	return &TagRepository{db: db}
}

// List returns all tags ordered by name.
func (r *TagRepository) List() ([]Tag, error) {
	return r.queryTags(`SELECT id, name, created_at FROM tags ORDER BY name ASC`)
}

// ForClip returns the tags attached to one clip, ordered by name.
func (r *TagRepository) ForClip(clipID int64) ([]Tag, error) {
	return r.queryTags(`
		SELECT t.id, t.name, t.created_at
		FROM tags t
		JOIN clip_tags ct ON t.id = ct.tag_id
		WHERE ct.clip_id = ?
		ORDER BY t.name ASC
	`, clipID)
}

// TagClip attaches a tag (created on first use) to a clip. Attaching an
// already-attached tag is a no-op.
func (r *TagRepository) TagClip(clipID int64, name string) (*Tag, error) {
	tag, err := r.ensure(name)
	if err != nil {
		return nil, err
	}
	_, err = r.db.Exec(`INSERT OR IGNORE INTO clip_tags (clip_id, tag_id) VALUES (?, ?)`, clipID, tag.ID)
	if err != nil {
		return nil, fmt.Errorf("tag clip: %w", err)
	}
	return tag, nil
}

// UntagClip detaches a tag from a clip.
func (r *TagRepository) UntagClip(clipID, tagID int64) error {
	_, err := r.db.Exec(`DELETE FROM clip_tags WHERE clip_id = ? AND tag_id = ?`, clipID, tagID)
	if err != nil {
		return fmt.Errorf("untag clip: %w", err)
	}
	return nil
}

// ensure returns the tag named name, creating it if absent.
func (r *TagRepository) ensure(name string) (*Tag, error) {
	var t Tag
	err := r.db.QueryRow(`SELECT id, name, created_at FROM tags WHERE name = ?`, name).
		Scan(&t.ID, &t.Name, &t.CreatedAt)
	if err == nil {
		return &t, nil
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("lookup tag: %w", err)
	}

	created := now()
	res, err := r.db.Exec(`INSERT INTO tags (name, created_at) VALUES (?, ?)`, name, created)
	if err != nil {
		return nil, fmt.Errorf("add tag: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("add tag id: %w", err)
	}
	return &Tag{ID: id, Name: name, CreatedAt: created}, nil
}

func (r *TagRepository) queryTags(query string, args ...any) ([]Tag, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query tags: %w", err)
	}
	defer rows.Close()

	var tags []Tag
	for rows.Next() {
		var t Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan tag row: %w", err)
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tag rows: %w", err)
	}
	return tags, nil
}
