package store

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// FileInfo is the metadata row for one stored file.
type FileInfo struct {
	ID          string
	Name        string
	ContentType string
	Size        int64
	CreatedAt   time.Time
}

// FileStore keeps file blobs on disk and their metadata in the database.
type FileStore struct {
	db  *sql.DB
	dir string
}

// NewFileStore creates a file store rooted at dir, creating it if needed.
func NewFileStore(db *sql.DB, dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create file store directory: %w", err)
	}
	return &FileStore{db: db, dir: dir}, nil
}

func (fs *FileStore) blobPath(id string) string {
	return filepath.Join(fs.dir, id)
}

// UploadStream writes one file blob. The metadata row is committed on Close;
// an abandoned stream leaves no row behind.
type UploadStream struct {
	fs          *FileStore
	file        *os.File
	id          string
	name        string
	contentType string
	size        int64
	createdAt   time.Time
}

// OpenUploadStream starts an upload for a new file.
func (fs *FileStore) OpenUploadStream(name, contentType string) (*UploadStream, error) {
	id := uuid.NewString()
	f, err := os.Create(fs.blobPath(id))
	if err != nil {
		return nil, fmt.Errorf("failed to create blob: %w", err)
	}
	return &UploadStream{
		fs:          fs,
		file:        f,
		id:          id,
		name:        name,
		contentType: contentType,
		createdAt:   time.Now(),
	}, nil
}

// ID returns the store-assigned file id.
func (u *UploadStream) ID() string { return u.id }

func (u *UploadStream) Write(p []byte) (int, error) {
	n, err := u.file.Write(p)
	u.size += int64(n)
	return n, err
}

// Close finishes the upload and records the file metadata.
func (u *UploadStream) Close() error {
	if err := u.file.Close(); err != nil {
		os.Remove(u.fs.blobPath(u.id))
		return fmt.Errorf("failed to close blob: %w", err)
	}
	_, err := u.fs.db.Exec(
		"INSERT INTO files (id, name, content_type, size, created_at) VALUES (?, ?, ?, ?, ?)",
		u.id, u.name, u.contentType, u.size, u.createdAt,
	)
	if err != nil {
		os.Remove(u.fs.blobPath(u.id))
		return fmt.Errorf("failed to record file metadata: %w", err)
	}
	return nil
}

// Find lists stored files, optionally filtered by exact name.
func (fs *FileStore) Find(ctx context.Context, name string) ([]FileInfo, error) {
	query := "SELECT id, name, content_type, size, created_at FROM files ORDER BY created_at ASC"
	args := []any{}
	if name != "" {
		query = "SELECT id, name, content_type, size, created_at FROM files WHERE name = ? ORDER BY created_at ASC"
		args = append(args, name)
	}
	rows, err := fs.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}
	defer rows.Close()

	var files []FileInfo
	for rows.Next() {
		var f FileInfo
		if err := rows.Scan(&f.ID, &f.Name, &f.ContentType, &f.Size, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan file metadata: %w", err)
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

func (fs *FileStore) getInfo(ctx context.Context, id string) (FileInfo, error) {
	var f FileInfo
	err := fs.db.QueryRowContext(ctx,
		"SELECT id, name, content_type, size, created_at FROM files WHERE id = ?", id,
	).Scan(&f.ID, &f.Name, &f.ContentType, &f.Size, &f.CreatedAt)
	if err == sql.ErrNoRows {
		return FileInfo{}, ErrNotFound
	}
	if err != nil {
		return FileInfo{}, fmt.Errorf("failed to read file metadata: %w", err)
	}
	return f, nil
}

// OpenDownloadStream opens a file blob for reading.
func (fs *FileStore) OpenDownloadStream(ctx context.Context, id string) (io.ReadCloser, FileInfo, error) {
	info, err := fs.getInfo(ctx, id)
	if err != nil {
		return nil, FileInfo{}, err
	}
	f, err := os.Open(fs.blobPath(id))
	if os.IsNotExist(err) {
		return nil, FileInfo{}, ErrNotFound
	}
	if err != nil {
		return nil, FileInfo{}, fmt.Errorf("failed to open blob: %w", err)
	}
	return f, info, nil
}

// DeleteByID removes a file's metadata and blob. Returns ErrNotFound when the
// id does not exist.
func (fs *FileStore) DeleteByID(ctx context.Context, id string) error {
	res, err := fs.db.ExecContext(ctx, "DELETE FROM files WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete file metadata: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	if err := os.Remove(fs.blobPath(id)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove blob: %w", err)
	}
	return nil
}
