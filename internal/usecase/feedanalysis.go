package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"upstreamnews/internal/domain"
	"upstreamnews/internal/editorial"
	"upstreamnews/internal/keywords"
	"upstreamnews/internal/relevance"
)

// FeedAnalysisUseCase реализует полный конвейер анализа ленты:
// загрузка -> парсинг -> классификация и аннотация -> сортировка -> сохранение.
// Хранилище ключевых слов передается классификатору свежим снимком на каждом
// прогоне, поэтому правка вокабуляра видна уже при следующем анализе.
type FeedAnalysisUseCase struct {
	fetcher    FeedFetcher
	parser     FeedParser
	storage    StoryStorage
	store      *keywords.Store
	log        *slog.Logger
	feedURL    string
	maxStories int
}

// NewFeedAnalysisUseCase создает конвейер анализа ленты.
// maxStories ограничивает число новостей, берущихся из ленты за один прогон.
func NewFeedAnalysisUseCase(
	fetcher FeedFetcher,
	parser FeedParser,
	storage StoryStorage,
	store *keywords.Store,
	log *slog.Logger,
	feedURL string,
	maxStories int,
) *FeedAnalysisUseCase {
	return &FeedAnalysisUseCase{
		fetcher:    fetcher,
		parser:     parser,
		storage:    storage,
		store:      store,
		log:        log,
		feedURL:    feedURL,
		maxStories: maxStories,
	}
}

// Refresh выполняет полный цикл обновления: скачивает ленту, анализирует её
// и замещает сохраненный результат. Возвращает число обработанных новостей.
// Ошибка парсинга не пробрасывается как есть: результат становится пустым,
// а вызывающему сигнализируется domain.ErrNoStories.
func (uc *FeedAnalysisUseCase) Refresh(ctx context.Context) (int, error) {
	start := time.Now()
	log := uc.log.With(
		slog.String("component", "feed-analysis"),
		slog.String("url", uc.feedURL),
	)
	log.Info("Feed refresh started")

	reader, err := uc.fetcher.Fetch(ctx, uc.feedURL)
	if err != nil {
		log.Error("Feed fetch failed",
			slog.String("stage", "fetch"),
			slog.Any("error", err),
		)
		return 0, fmt.Errorf("fetch failed: %w", err)
	}
	defer reader.Close()

	stories, err := uc.parser.Parse(ctx, reader)
	if err != nil {
		log.Error("Feed parsing failed",
			slog.String("stage", "parse"),
			slog.Any("error", err),
		)
		if _, saveErr := uc.storage.SaveStories(ctx, nil, nil); saveErr != nil {
			return 0, fmt.Errorf("save failed: %w", saveErr)
		}
		return 0, domain.ErrNoStories
	}
	log.Debug("Feed parsed successfully",
		slog.String("stage", "parse"),
		slog.Int("items_parsed", len(stories)),
	)

	if len(stories) > uc.maxStories {
		stories = stories[:uc.maxStories]
	}
	processed := uc.Process(stories)

	savedCount, err := uc.storage.SaveStories(ctx, stories, processed)
	if err != nil {
		log.Error("Result save failed",
			slog.String("stage", "save"),
			slog.Any("error", err),
		)
		return 0, fmt.Errorf("save failed: %w", err)
	}

	log.Info("Feed refresh completed successfully",
		slog.Int("stories_found", len(stories)),
		slog.Int("stories_saved", savedCount),
		slog.Duration("duration", time.Since(start)),
	)
	if len(stories) == 0 {
		return 0, domain.ErrNoStories
	}
	return savedCount, nil
}

// Reanalyze пересчитывает таблицу по последним распарсенным новостям
// с текущим вокабуляром, без повторной загрузки ленты.
// Вызывается коллаборатором явно после каждой правки ключевых слов.
func (uc *FeedAnalysisUseCase) Reanalyze(ctx context.Context) (int, error) {
	raw, err := uc.storage.RawStories(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load stored stories: %w", err)
	}
	processed := uc.Process(raw)
	savedCount, err := uc.storage.SaveStories(ctx, raw, processed)
	if err != nil {
		return 0, fmt.Errorf("save failed: %w", err)
	}
	uc.log.Info("Stories reanalyzed",
		slog.String("component", "feed-analysis"),
		slog.Int("count", savedCount),
	)
	return savedCount, nil
}

// Process классифицирует и аннотирует новости, затем устойчиво сортирует
// их по релевантности High -> Moderate -> Relevant -> Low. Новости одного
// уровня сохраняют исходный порядок документа.
func (uc *FeedAnalysisUseCase) Process(stories []domain.Story) []domain.ProcessedStory {
	snap := uc.store.Snapshot()
	processed := make([]domain.ProcessedStory, 0, len(stories))
	for _, story := range stories {
		processed = append(processed, domain.ProcessedStory{
			Story:            story,
			Relevance:        relevance.Classify(story, snap),
			EditorialSummary: editorial.Summarize(story),
		})
	}
	sort.SliceStable(processed, func(i, j int) bool {
		return processed[i].Relevance.Rank() < processed[j].Relevance.Rank()
	})
	return processed
}
