package store

import (
	"context"
	"database/sql"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/parley-chat/parley/internal/database"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMessages_SaveListDeleteRoundTrip(t *testing.T) {
	db := openTestDB(t)
	q := New(db.DB)
	ctx := context.Background()

	first, err := q.SaveMessage(ctx, SaveMessageParams{
		Sender:    "alice",
		Content:   "hello",
		CreatedAt: time.UnixMilli(1000).UTC(),
	})
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)

	second, err := q.SaveMessage(ctx, SaveMessageParams{
		Sender:    "bob",
		Content:   "hi back",
		ImageID:   sql.NullString{String: "file-1", Valid: true},
		CreatedAt: time.UnixMilli(2000).UTC(),
	})
	require.NoError(t, err)

	// Retrievable before deletion, ordered by creation time ascending.
	messages, err := q.ListMessages(ctx)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	require.Equal(t, first.ID, messages[0].ID)
	require.Equal(t, second.ID, messages[1].ID)
	require.Equal(t, "file-1", messages[1].ImageID.String)

	require.NoError(t, q.DeleteMessage(ctx, first.ID))

	// Absent after deletion.
	messages, err = q.ListMessages(ctx)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	require.Equal(t, second.ID, messages[0].ID)

	// Deleting again reports not found.
	require.ErrorIs(t, q.DeleteMessage(ctx, first.ID), ErrNotFound)
}

func TestCallRecords_SaveAndListByParticipant(t *testing.T) {
	db := openTestDB(t)
	q := New(db.DB)
	ctx := context.Background()

	require.NoError(t, q.SaveCallRecord(ctx, SaveCallRecordParams{
		Caller:    "alice",
		Callee:    "bob",
		StartedAt: time.UnixMilli(1000).UTC(),
	}))
	require.NoError(t, q.SaveCallRecord(ctx, SaveCallRecordParams{
		Caller:    "carol",
		Callee:    "alice",
		StartedAt: time.UnixMilli(2000).UTC(),
	}))
	require.NoError(t, q.SaveCallRecord(ctx, SaveCallRecordParams{
		Caller:    "carol",
		Callee:    "dave",
		StartedAt: time.UnixMilli(3000).UTC(),
	}))

	records, err := q.ListCallRecords(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, records, 2)
	// Newest first.
	require.Equal(t, "carol", records[0].Caller)
	require.Equal(t, "bob", records[1].Callee)

	records, err = q.ListCallRecords(ctx, "nobody")
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestFileStore_UploadDownloadDelete(t *testing.T) {
	db := openTestDB(t)
	dir := t.TempDir()
	fs, err := NewFileStore(db.DB, filepath.Join(dir, "blobs"))
	require.NoError(t, err)
	ctx := context.Background()

	upload, err := fs.OpenUploadStream("photo.png", "image/png")
	require.NoError(t, err)
	_, err = io.Copy(upload, strings.NewReader("fake png bytes"))
	require.NoError(t, err)
	require.NoError(t, upload.Close())

	files, err := fs.Find(ctx, "")
	require.NoError(t, err)
	require.Len(t, files, 1)
	require.Equal(t, upload.ID(), files[0].ID)
	require.Equal(t, "image/png", files[0].ContentType)
	require.Equal(t, int64(len("fake png bytes")), files[0].Size)

	files, err = fs.Find(ctx, "photo.png")
	require.NoError(t, err)
	require.Len(t, files, 1)

	files, err = fs.Find(ctx, "other.png")
	require.NoError(t, err)
	require.Empty(t, files)

	src, info, err := fs.OpenDownloadStream(ctx, upload.ID())
	require.NoError(t, err)
	data, err := io.ReadAll(src)
	require.NoError(t, err)
	require.NoError(t, src.Close())
	require.Equal(t, "fake png bytes", string(data))
	require.Equal(t, "photo.png", info.Name)

	require.NoError(t, fs.DeleteByID(ctx, upload.ID()))
	_, _, err = fs.OpenDownloadStream(ctx, upload.ID())
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, fs.DeleteByID(ctx, upload.ID()), ErrNotFound)
}
