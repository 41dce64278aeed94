package store

import (
	"database/sql"
	"fmt"
)

// listColumns excludes data: list views never need the payload and image
// payloads can be large. Get fetches the full row.
const listColumns = `id, content_type, COALESCE(preview_text, ''), COALESCE(title, ''),
	COALESCE(source_app_name, ''), folder_id, created_at, last_pasted_at,
	last_edited_at, times_pasted, is_pinned, COALESCE(metadata, '')`

// ClipRepository handles database operations for captured clips.
type ClipRepository struct {
	db *DB
}

// NewClipRepository creates a new clip repository.
func NewClipRepository(db *DB) *ClipRepository {
	return &ClipRepository{db: db}
}

// Insert stores one capture row and returns it with its assigned id.
// Preview and title are truncated to 255 runes before writing.
func (r *ClipRepository) Insert(n NewClip) (*Clip, error) {
	if !n.ContentType.Valid() {
		return nil, fmt.Errorf("insert clip: unknown content type %q", n.ContentType)
	}
	created := n.CreatedAt
	if created == "" {
		created = now()
	}
	preview := truncate(n.PreviewText, 255)
	title := truncate(n.Title, 255)

	res, err := r.db.Exec(`
		INSERT INTO clips (content_type, data, preview_text, title, source_app_name, folder_id, created_at, metadata)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, n.ContentType, n.Data, preview, title, n.SourceApp, n.FolderID, created, n.Metadata)
	if err != nil {
		return nil, fmt.Errorf("insert clip: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert clip id: %w", err)
	}

	return &Clip{
		ID:          id,
		ContentType: n.ContentType,
		Data:        n.Data,
		PreviewText: preview,
		Title:       title,
		SourceApp:   n.SourceApp,
		FolderID:    n.FolderID,
		CreatedAt:   created,
		Metadata:    n.Metadata,
	}, nil
}

// Get returns one clip with its full data payload.
func (r *ClipRepository) Get(id int64) (*Clip, error) {
	row := r.db.QueryRow(`
		SELECT `+listColumns+`, COALESCE(data, '')
		FROM clips WHERE id = ?
	`, id)

	var c Clip
	var folderID sql.NullInt64
	var lastPasted, lastEdited sql.NullString
	err := row.Scan(&c.ID, &c.ContentType, &c.PreviewText, &c.Title,
		&c.SourceApp, &folderID, &c.CreatedAt, &lastPasted,
		&lastEdited, &c.TimesPasted, &c.IsPinned, &c.Metadata, &c.Data)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get clip: %w", err)
	}
	applyNullable(&c, folderID, lastPasted, lastEdited)
	return &c, nil
}

// List returns clips in the given folder scope, newest first, without data.
func (r *ClipRepository) List(f FolderFilter) ([]Clip, error) {
	query := `SELECT ` + listColumns + ` FROM clips`
	var args []any
	query, args = applyFolderFilter(query, args, f, " WHERE ")
	query += ` ORDER BY created_at DESC`

	return r.queryClips(query, args...)
}

// Search returns clips whose title or preview contains term, newest first.
// An empty term degrades to List within the same scope.
func (r *ClipRepository) Search(term string, f FolderFilter) ([]Clip, error) {
	if term == "" {
		return r.List(f)
	}
	query := `SELECT ` + listColumns + ` FROM clips WHERE (title LIKE ? OR preview_text LIKE ?)`
	like := "%" + term + "%"
	args := []any{like, like}
	query, args = applyFolderFilter(query, args, f, " AND ")
	query += ` ORDER BY created_at DESC`

	return r.queryClips(query, args...)
}

// Delete removes a clip (and, via cascades, its tag links and stack entries).
func (r *ClipRepository) Delete(id int64) error {
	return r.exec("delete clip", id, `DELETE FROM clips WHERE id = ?`, id)
}

// SetFolder moves a clip into a folder; nil means back to the inbox.
func (r *ClipRepository) SetFolder(id int64, folderID *int64) error {
	return r.exec("move clip", id, `UPDATE clips SET folder_id = ? WHERE id = ?`, folderID, id)
}

// SetTitle renames a clip and records the edit time.
func (r *ClipRepository) SetTitle(id int64, title string) error {
	return r.exec("retitle clip", id,
		`UPDATE clips SET title = ?, last_edited_at = ? WHERE id = ?`,
		truncate(title, 255), now(), id)
}

// TogglePin flips a clip's pinned flag and returns the new state.
func (r *ClipRepository) TogglePin(id int64) (bool, error) {
	var pinned bool
	err := r.db.QueryRow(`SELECT is_pinned FROM clips WHERE id = ?`, id).Scan(&pinned)
	if err == sql.ErrNoRows {
		return false, ErrNotFound
	}
	if err != nil {
		return false, fmt.Errorf("toggle pin: %w", err)
	}
	if err := r.exec("toggle pin", id, `UPDATE clips SET is_pinned = ? WHERE id = ?`, !pinned, id); err != nil {
		return false, err
	}
	return !pinned, nil
}

// MarkPasted bumps the paste counter and timestamp.
func (r *ClipRepository) MarkPasted(id int64) error {
	return r.exec("mark pasted", id,
		`UPDATE clips SET last_pasted_at = ?, times_pasted = times_pasted + 1 WHERE id = ?`,
		now(), id)
}

// Count returns the total number of stored clips.
func (r *ClipRepository) Count() (int, error) {
	var n int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM clips`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count clips: %w", err)
	}
	return n, nil
}

func (r *ClipRepository) exec(op string, id int64, query string, args ...any) error {
	res, err := r.db.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ClipRepository) queryClips(query string, args ...any) ([]Clip, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query clips: %w", err)
	}
	defer rows.Close()

	var clips []Clip
	for rows.Next() {
		var c Clip
		var folderID sql.NullInt64
		var lastPasted, lastEdited sql.NullString
		err := rows.Scan(&c.ID, &c.ContentType, &c.PreviewText, &c.Title,
			&c.SourceApp, &folderID, &c.CreatedAt, &lastPasted,
			&lastEdited, &c.TimesPasted, &c.IsPinned, &c.Metadata)
		if err != nil {
			return nil, fmt.Errorf("scan clip row: %w", err)
		}
		applyNullable(&c, folderID, lastPasted, lastEdited)
		clips = append(clips, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate clip rows: %w", err)
	}
	return clips, nil
}

func applyFolderFilter(query string, args []any, f FolderFilter, prefix string) (string, []any) {
	switch {
	case f.All:
		return query, args
	case f.ID > 0:
		return query + prefix + `folder_id = ?`, append(args, f.ID)
	default:
		return query + prefix + `folder_id IS NULL`, args
	}
}

func applyNullable(c *Clip, folderID sql.NullInt64, lastPasted, lastEdited sql.NullString) {
	if folderID.Valid {
		c.FolderID = &folderID.Int64
	}
	if lastPasted.Valid {
		c.LastPastedAt = &lastPasted.String
	}
	if lastEdited.Valid {
		c.LastEditedAt = &lastEdited.String
	}
}
