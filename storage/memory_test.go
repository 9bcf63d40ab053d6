package storage

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"upstreamnews/internal/config"
	"upstreamnews/internal/domain"
)

func newTestDB(defaultLimit int) *MemoryStoryDB {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewMemoryStoryDB(config.AppConfig{DefaultStoryLimit: defaultLimit}, logger)
}

func processed(titles ...string) []domain.ProcessedStory {
	items := make([]domain.ProcessedStory, 0, len(titles))
	for _, title := range titles {
		items = append(items, domain.ProcessedStory{
			Story:     domain.Story{Title: title},
			Relevance: domain.RelevanceLow,
		})
	}
	return items
}

func TestMemoryStoryDB_SaveAndGet(t *testing.T) {
	db := newTestDB(10)
	ctx := context.Background()

	count, err := db.SaveStories(ctx, []domain.Story{{Title: "raw"}}, processed("a", "b", "c"))
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	items, err := db.GetStories(ctx, 2)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "a", items[0].Title)
	assert.Equal(t, "b", items[1].Title)

	raw, err := db.RawStories(ctx)
	require.NoError(t, err)
	require.Len(t, raw, 1)
	assert.Equal(t, "raw", raw[0].Title)
}

func TestMemoryStoryDB_GetUsesDefaultLimit(t *testing.T) {
	db := newTestDB(2)
	ctx := context.Background()

	_, err := db.SaveStories(ctx, nil, processed("a", "b", "c"))
	require.NoError(t, err)

	items, err := db.GetStories(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestMemoryStoryDB_SaveReplacesPreviousResult(t *testing.T) {
	db := newTestDB(10)
	ctx := context.Background()

	_, err := db.SaveStories(ctx, nil, processed("old"))
	require.NoError(t, err)
	_, err = db.SaveStories(ctx, nil, processed("new"))
	require.NoError(t, err)

	items, err := db.GetStories(ctx, 10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "new", items[0].Title)
}

func TestMemoryStoryDB_EmptyOnStart(t *testing.T) {
	db := newTestDB(10)
	ctx := context.Background()

	items, err := db.GetStories(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.True(t, db.UpdatedAt().IsZero())
}
