package storage

import (
	"context"

	"upstreamnews/internal/domain"
)

// Storage определяет общий интерфейс хранилища результатов анализа.
// Объединяет сохранение свежего результата, чтение таблицы и доступ
// к последним распарсенным новостям для переклассификации.
type Storage interface {
	SaveStories(ctx context.Context, raw []domain.Story, processed []domain.ProcessedStory) (int, error)
	GetStories(ctx context.Context, n int) ([]domain.ProcessedStory, error)
	RawStories(ctx context.Context) ([]domain.Story, error)
	Close()
}
