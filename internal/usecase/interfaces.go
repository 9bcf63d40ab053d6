package usecase

import (
	"context"
	"io"

	"upstreamnews/internal/domain"
)

// FeedFetcher определяет интерфейс загрузки сырых байтов ленты из внешнего
// источника. Возвращает io.ReadCloser, который нужно закрыть после чтения.
type FeedFetcher interface {
	Fetch(ctx context.Context, url string) (io.ReadCloser, error)
}

// FeedParser определяет интерфейс разбора сырой ленты в доменные Story.
type FeedParser interface {
	Parse(ctx context.Context, reader io.Reader) ([]domain.Story, error)
}

// StoryStorage определяет интерфейс сохранения результата анализа
// и доступа к последним распарсенным новостям.
type StoryStorage interface {
	SaveStories(ctx context.Context, raw []domain.Story, processed []domain.ProcessedStory) (int, error)
	RawStories(ctx context.Context) ([]domain.Story, error)
}
