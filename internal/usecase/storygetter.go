package usecase

import (
	"context"

	"upstreamnews/internal/domain"
)

// StoryReader определяет интерфейс чтения сохраненной таблицы результатов.
type StoryReader interface {
	GetStories(ctx context.Context, n int) ([]domain.ProcessedStory, error)
}

// StoryGetterUseCase отдает сохраненный результат анализа для API.
type StoryGetterUseCase struct {
	storage StoryReader
}

// NewStoryGetterUseCase создает UseCase чтения результатов.
func NewStoryGetterUseCase(s StoryReader) *StoryGetterUseCase {
	return &StoryGetterUseCase{storage: s}
}

// GetStories возвращает до limit новостей из сохраненной таблицы.
func (us *StoryGetterUseCase) GetStories(ctx context.Context, limit int) ([]domain.ProcessedStory, error) {
	return us.storage.GetStories(ctx, limit)
}
