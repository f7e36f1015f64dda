package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/moritama/fleamarket-backend/internal/blob"
	"github.com/moritama/fleamarket-backend/internal/model"
	"github.com/moritama/fleamarket-backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type mockCategoryRepo struct {
	categories map[string]uint64
	nextID     uint64
	calls      int
}

func newMockCategoryRepo() *mockCategoryRepo {
	return &mockCategoryRepo{categories: map[string]uint64{}, nextID: 1}
}

func (m *mockCategoryRepo) GetOrCreate(_ context.Context, name string) (*model.Category, error) {
	m.calls++
	if id, ok := m.categories[name]; ok {
		return &model.Category{ID: id, Name: name}, nil
	}
	id := m.nextID
	m.nextID++
	m.categories[name] = id
	return &model.Category{ID: id, Name: name}, nil
}

type mockItemRepo struct {
	items   map[uint64]model.Item
	nextID  uint64
	rows    []repository.ItemRow
	deleted []uint64

	lastKeyword string
}

func newMockItemRepo() *mockItemRepo {
	return &mockItemRepo{items: map[uint64]model.Item{}, nextID: 1}
}

func (m *mockItemRepo) Create(_ context.Context, item *model.Item) error {
	item.ID = m.nextID
	m.nextID++
	m.items[item.ID] = *item
	return nil
}

func (m *mockItemRepo) FindByID(_ context.Context, id uint64) (*model.Item, error) {
	item, ok := m.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &item, nil
}

func (m *mockItemRepo) ListJoined(_ context.Context) ([]repository.ItemRow, error) {
	return m.rows, nil
}

func (m *mockItemRepo) FindJoinedByID(_ context.Context, id uint64) (*repository.ItemRow, error) {
	for i := range m.rows {
		if m.rows[i].ID == id {
			return &m.rows[i], nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockItemRepo) SearchJoined(_ context.Context, keyword string) ([]repository.ItemRow, error) {
	m.lastKeyword = keyword
	matched := []repository.ItemRow{}
	for _, row := range m.rows {
		if strings.Contains(row.Name, keyword) {
			matched = append(matched, row)
		}
	}
	return matched, nil
}

func (m *mockItemRepo) DeleteByID(_ context.Context, id uint64) error {
	delete(m.items, id)
	m.deleted = append(m.deleted, id)
	return nil
}

// --- Helpers ---

func newTestService(t *testing.T) (ItemService, *mockItemRepo, *mockCategoryRepo, string) {
	t.Helper()
	dir := t.TempDir()
	blobs, err := blob.New(dir)
	require.NoError(t, err)
	items := newMockItemRepo()
	categories := newMockCategoryRepo()
	return NewItemService(items, categories, blobs), items, categories, dir
}

func dirEntryCount(t *testing.T, dir string) int {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	return len(entries)
}

// --- Tests ---

func TestCreateValidation(t *testing.T) {
	tests := []struct {
		name        string
		itemName    string
		category    string
		contentType string
	}{
		{"empty name", "", "Toy", "image/jpeg"},
		{"name too long", strings.Repeat("a", 33), "Toy", "image/jpeg"},
		{"empty category", "Hat", "", "image/jpeg"},
		{"category too long", "Hat", strings.Repeat("c", 13), "image/jpeg"},
		{"wrong content type", "Hat", "Fashion", "image/png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, items, categories, dir := newTestService(t)

			_, err := svc.Create(context.Background(), tt.itemName, tt.category, []byte("img"), tt.contentType)

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			// Fail fast: no blob write, no category upsert, no item insert.
			assert.Equal(t, 0, dirEntryCount(t, dir))
			assert.Equal(t, 0, categories.calls)
			assert.Empty(t, items.items)
		})
	}
}

func TestCreate(t *testing.T) {
	svc, items, categories, dir := newTestService(t)

	res, err := svc.Create(context.Background(), "Teddy Bear", "Toy", []byte("jpeg bytes"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "Teddy Bear", res.Name)
	assert.Equal(t, "Toy", res.Category)

	require.Len(t, items.items, 1)
	stored := items.items[1]
	assert.Equal(t, "Teddy Bear", stored.Name)
	assert.Equal(t, categories.categories["Toy"], stored.CategoryID)
	assert.True(t, strings.HasSuffix(stored.ImageFilename, ".jpg"))
	assert.Len(t, stored.ImageFilename, 64+len(".jpg"))

	// The blob landed under the content-derived name.
	_, err = os.Stat(filepath.Join(dir, stored.ImageFilename))
	assert.NoError(t, err)
}

func TestCreateReusesCategory(t *testing.T) {
	svc, items, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "Teddy Bear", "Toy", []byte("a"), "image/jpeg")
	require.NoError(t, err)
	_, err = svc.Create(ctx, "Toy Car", "Toy", []byte("b"), "image/jpeg")
	require.NoError(t, err)

	assert.Equal(t, items.items[1].CategoryID, items.items[2].CategoryID)
}

func TestGetNotFound(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	_, err := svc.Get(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSearch(t *testing.T) {
	svc, items, _, _ := newTestService(t)
	items.rows = []repository.ItemRow{
		{ID: 1, Name: "Teddy Bear", Category: "Toy", ImageFilename: "default.jpg"},
		{ID: 2, Name: "Guitar", Category: "Instrument", ImageFilename: "default.jpg"},
	}

	rows, err := svc.Search(context.Background(), "eddy")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Teddy Bear", rows[0].Name)
	assert.Equal(t, "eddy", items.lastKeyword)
}

func TestDelete(t *testing.T) {
	svc, items, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "Hat", "Fashion", []byte("img"), "image/jpeg")
	require.NoError(t, err)

	name, err := svc.Delete(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Hat", name)
	assert.Equal(t, []uint64{1}, items.deleted)

	_, err = svc.Delete(ctx, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteKeepsBlob(t *testing.T) {
	svc, _, _, dir := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "Hat", "Fashion", []byte("img"), "image/jpeg")
	require.NoError(t, err)
	_, err = svc.Delete(ctx, 1)
	require.NoError(t, err)

	assert.Equal(t, 1, dirEntryCount(t, dir))
}

func TestImage(t *testing.T) {
	svc, _, _, dir := newTestService(t)

	defaultBytes := []byte("default jpeg")
	require.NoError(t, os.WriteFile(filepath.Join(dir, blob.DefaultFilename), defaultBytes, 0o644))
	stored := []byte("real jpeg")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "abc.jpg"), stored, 0o644))

	got, err := svc.Image("abc.jpg")
	require.NoError(t, err)
	assert.Equal(t, stored, got)

	// Missing blobs fall back to the default image.
	got, err = svc.Image("missing.jpg")
	require.NoError(t, err)
	assert.Equal(t, defaultBytes, got)

	// A malformed filename fails validation regardless of existence.
	_, err = svc.Image("anything.png")
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
}
