package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"upstreamnews/internal/adapter/parser"
	"upstreamnews/internal/config"
	"upstreamnews/internal/domain"
	"upstreamnews/internal/keywords"
	"upstreamnews/storage"
)

type stubFetcher struct {
	payload string
	err     error
}

func (f *stubFetcher) Fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	if f.err != nil {
		return nil, f.err
	}
	return io.NopCloser(strings.NewReader(f.payload)), nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newAnalysis(t *testing.T, payload string, maxStories int) (*FeedAnalysisUseCase, *storage.MemoryStoryDB, *keywords.Store) {
	t.Helper()
	log := testLogger()
	db := storage.NewMemoryStoryDB(config.AppConfig{DefaultStoryLimit: 200}, log)
	store := keywords.NewStore()
	uc := NewFeedAnalysisUseCase(
		&stubFetcher{payload: payload},
		parser.NewXMLParser(log),
		db,
		store,
		log,
		"https://example.com/feed",
		maxStories,
	)
	return uc, db, store
}

func feedXML(items ...string) string {
	var b strings.Builder
	b.WriteString("<rss><channel>")
	for _, item := range items {
		b.WriteString(item)
	}
	b.WriteString("</channel></rss>")
	return b.String()
}

func item(title, description string) string {
	return "<item><title>" + title + "</title><description>" + description +
		"</description><pubDate>Fri, 20 Jun 2025 18:11:59 +0200</pubDate></item>"
}

func TestFeedAnalysis_Refresh_SortsByRelevance(t *testing.T) {
	payload := feedXML(
		item("Quiet day on markets", "nothing of note"),
		item("Hydrogen pilot", "a single adjacent topic"),
		item("SLB update", "name mention wins"),
		item("Shale exploration", "two moderate terms"),
	)
	uc, db, _ := newAnalysis(t, payload, 200)

	count, err := uc.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, count)

	stories, err := db.GetStories(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, stories, 4)

	assert.Equal(t, "SLB update", stories[0].Title)
	assert.Equal(t, domain.RelevanceHigh, stories[0].Relevance)
	assert.Equal(t, "Shale exploration", stories[1].Title)
	assert.Equal(t, domain.RelevanceModerate, stories[1].Relevance)
	assert.Equal(t, "Hydrogen pilot", stories[2].Title)
	assert.Equal(t, domain.RelevanceRelevant, stories[2].Relevance)
	assert.Equal(t, "Quiet day on markets", stories[3].Title)
	assert.Equal(t, domain.RelevanceLow, stories[3].Relevance)
}

func TestFeedAnalysis_Refresh_SortIsStableWithinTier(t *testing.T) {
	payload := feedXML(
		item("first low", "plain"),
		item("second low", "plain"),
		item("third low", "plain"),
	)
	uc, db, _ := newAnalysis(t, payload, 200)

	_, err := uc.Refresh(context.Background())
	require.NoError(t, err)

	stories, err := db.GetStories(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, stories, 3)
	assert.Equal(t, "first low", stories[0].Title)
	assert.Equal(t, "second low", stories[1].Title)
	assert.Equal(t, "third low", stories[2].Title)
}

func TestFeedAnalysis_Refresh_TruncatesToMaxStories(t *testing.T) {
	payload := feedXML(
		item("one", ""),
		item("two", ""),
		item("three", ""),
	)
	uc, db, _ := newAnalysis(t, payload, 2)

	count, err := uc.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	stories, err := db.GetStories(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, stories, 2)
	assert.Equal(t, "one", stories[0].Title)
	assert.Equal(t, "two", stories[1].Title)
}

func TestFeedAnalysis_Refresh_ParseErrorYieldsNoStories(t *testing.T) {
	uc, db, _ := newAnalysis(t, "<rss><channel><broken></channel></rss>", 200)

	// предыдущий результат затирается пустым
	_, err := db.SaveStories(context.Background(), nil, []domain.ProcessedStory{
		{Story: domain.Story{Title: "stale"}},
	})
	require.NoError(t, err)

	count, err := uc.Refresh(context.Background())
	assert.ErrorIs(t, err, domain.ErrNoStories)
	assert.Zero(t, count)

	stories, err := db.GetStories(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, stories)
}

func TestFeedAnalysis_Refresh_EmptyFeedSignalsNoStories(t *testing.T) {
	uc, _, _ := newAnalysis(t, feedXML(), 200)

	count, err := uc.Refresh(context.Background())
	assert.ErrorIs(t, err, domain.ErrNoStories)
	assert.Zero(t, count)
}

func TestFeedAnalysis_Refresh_FetchErrorPropagates(t *testing.T) {
	log := testLogger()
	db := storage.NewMemoryStoryDB(config.AppConfig{DefaultStoryLimit: 200}, log)
	uc := NewFeedAnalysisUseCase(
		&stubFetcher{err: errors.New("connection refused")},
		parser.NewXMLParser(log),
		db,
		keywords.NewStore(),
		log,
		"https://example.com/feed",
		200,
	)

	_, err := uc.Refresh(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "fetch failed")
}

func TestFeedAnalysis_Reanalyze_AppliesVocabularyEdits(t *testing.T) {
	payload := feedXML(item("Hydrogen pilot", "a single adjacent topic"))
	uc, db, store := newAnalysis(t, payload, 200)

	_, err := uc.Refresh(context.Background())
	require.NoError(t, err)

	stories, err := db.GetStories(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, stories, 1)
	assert.Equal(t, domain.RelevanceRelevant, stories[0].Relevance)

	store.Move("hydrogen", keywords.TierRelevant, keywords.TierHigh)
	_, err = uc.Reanalyze(context.Background())
	require.NoError(t, err)

	stories, err = db.GetStories(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, stories, 1)
	assert.Equal(t, domain.RelevanceModerate, stories[0].Relevance)
}

func TestFeedAnalysis_Process_Idempotent(t *testing.T) {
	uc, _, _ := newAnalysis(t, "", 200)
	stories := []domain.Story{
		{Title: "LNG exports rise", Description: "natural gas demand", Date: "20 Jun 2025"},
	}

	first := uc.Process(stories)
	second := uc.Process(stories)
	assert.Equal(t, first, second)
}
