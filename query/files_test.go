package query

import (
	"fmt"
	"testing"

	"storeit/storage-api/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestOrder(t *testing.T) {
	tests := []struct {
		sort    string
		want    string
		wantErr bool
	}{
		{"", "created_at desc", false},
		{DefaultSort, "created_at desc", false},
		{"$createdAt-asc", "created_at asc", false},
		{"$updatedAt-desc", "updated_at desc", false},
		{"size-asc", "size asc", false},
		{"size-desc", "size desc", false},
		{"name-asc", "name asc", false},
		// Unknown direction defaults to descending
		{"size-sideways", "size desc", false},
		{"size", "size desc", false},
		// Unknown-but-well-formed fields are forwarded as-is
		{"$bogus-asc", "$bogus asc", false},
		// Anything that isn't an identifier is rejected
		{"size; DROP TABLE files-asc", "", true},
		{"na me-asc", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.sort, func(t *testing.T) {
			got, err := Order(tt.sort)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrBadSortField)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn))
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(model.File{}))

	return db
}

func seedFiles(t *testing.T, db *gorm.DB) {
	t.Helper()

	files := []model.File{
		{ID: "f1", Name: "report.pdf", Type: model.TypeDocument, OwnerID: "u1", Size: 2048, BucketFileID: "b1"},
		{ID: "f2", Name: "song.mp3", Type: model.TypeAudio, OwnerID: "u1", Size: 100, BucketFileID: "b2"},
		{ID: "f3", Name: "shared.png", Type: model.TypeImage, OwnerID: "u2", Size: 300,
			Users: model.StringSlice{"other@example.com", "u1@example.com"}, BucketFileID: "b3"},
		{ID: "f4", Name: "private.png", Type: model.TypeImage, OwnerID: "u2", Size: 400, BucketFileID: "b4"},
	}

	for _, f := range files {
		require.NoError(t, db.Create(&f).Error)
	}
}

func listIDs(t *testing.T, db *gorm.DB, p ListParams) []string {
	t.Helper()

	tx, err := List(db.Model(model.File{}), "u1", "u1@example.com", p)
	require.NoError(t, err)

	var files []model.File
	require.NoError(t, tx.Find(&files).Error)

	ids := make([]string, 0, len(files))
	for _, f := range files {
		ids = append(ids, f.ID)
	}
	return ids
}

func TestListOwnerOrShared(t *testing.T) {
	db := newTestDB(t)
	seedFiles(t, db)

	ids := listIDs(t, db, ListParams{Sort: "name-asc"})

	// Owned files plus the one shared with u1, never u2's private file
	assert.Equal(t, []string{"f1", "f3", "f2"}, ids)
}

func TestListTypeFilter(t *testing.T) {
	db := newTestDB(t)
	seedFiles(t, db)

	assert.Equal(t, []string{"f1"}, listIDs(t, db, ListParams{Types: []string{model.TypeDocument}}))
	assert.Equal(t, []string{"f3"}, listIDs(t, db, ListParams{Types: []string{model.TypeImage}}))
	assert.Equal(t, []string{"f2"}, listIDs(t, db, ListParams{Types: []string{model.TypeVideo, model.TypeAudio}}))
}

func TestListSearch(t *testing.T) {
	db := newTestDB(t)
	seedFiles(t, db)

	assert.Equal(t, []string{"f1"}, listIDs(t, db, ListParams{Search: "REPO"}))
	assert.Empty(t, listIDs(t, db, ListParams{Search: "nomatch"}))
	// Substring match against a shared file's name works too
	assert.Equal(t, []string{"f3"}, listIDs(t, db, ListParams{Search: "shared"}))
}

func TestListSortAndLimit(t *testing.T) {
	db := newTestDB(t)
	seedFiles(t, db)

	assert.Equal(t, []string{"f2", "f3", "f1"}, listIDs(t, db, ListParams{Sort: "size-asc"}))
	assert.Equal(t, []string{"f1", "f3", "f2"}, listIDs(t, db, ListParams{Sort: "size-desc"}))
	assert.Equal(t, []string{"f2", "f3"}, listIDs(t, db, ListParams{Sort: "size-asc", Limit: 2}))
}

func TestListIdempotent(t *testing.T) {
	db := newTestDB(t)
	seedFiles(t, db)

	p := ListParams{Types: []string{model.TypeImage}, Sort: "size-asc", Limit: 10}
	first := listIDs(t, db, p)
	second := listIDs(t, db, p)

	assert.Equal(t, first, second)
}

func TestListUnknownSortFieldFailsAtDatabase(t *testing.T) {
	db := newTestDB(t)
	seedFiles(t, db)

	tx, err := List(db.Model(model.File{}), "u1", "u1@example.com", ListParams{Sort: "bogusfield-asc"})
	require.NoError(t, err)

	var files []model.File
	assert.Error(t, tx.Find(&files).Error)
}
