package storage

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"upstreamnews/internal/config"
	"upstreamnews/internal/domain"
)

// MemoryStoryDB хранит результат последнего анализа ленты в памяти процесса.
// Долговременного состояния у продукта нет: после рестарта хранилище пусто
// до первого успешного обновления. Помимо обработанной таблицы хранятся
// и сырые Story последнего парсинга - по ним таблица пересчитывается после
// правок вокабуляра без повторной загрузки ленты.
type MemoryStoryDB struct {
	mu                sync.RWMutex
	raw               []domain.Story
	processed         []domain.ProcessedStory
	updatedAt         time.Time
	log               *slog.Logger
	defaultStoryLimit int
}

func NewMemoryStoryDB(appCfg config.AppConfig, log *slog.Logger) *MemoryStoryDB {
	log.Info("Initializing in-memory story storage")
	return &MemoryStoryDB{
		log:               log,
		defaultStoryLimit: appCfg.DefaultStoryLimit,
	}
}

func (db *MemoryStoryDB) Close() {
	db.log.Info("Closing story storage")
}

// SaveStories замещает сохраненный результат новым.
// Возвращает количество сохраненных обработанных новостей.
func (db *MemoryStoryDB) SaveStories(ctx context.Context, raw []domain.Story, processed []domain.ProcessedStory) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	db.mu.Lock()
	defer db.mu.Unlock()
	db.raw = append([]domain.Story(nil), raw...)
	db.processed = append([]domain.ProcessedStory(nil), processed...)
	db.updatedAt = time.Now()
	db.log.Info("Stories saved", slog.Int("count", len(processed)))
	return len(processed), nil
}

// GetStories возвращает до n новостей из сохраненной таблицы в её порядке.
// При n <= 0 используется лимит по умолчанию из конфигурации.
func (db *MemoryStoryDB) GetStories(ctx context.Context, n int) ([]domain.ProcessedStory, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	limit := n
	if limit <= 0 {
		limit = db.defaultStoryLimit
	}
	db.mu.RLock()
	defer db.mu.RUnlock()
	if limit > len(db.processed) {
		limit = len(db.processed)
	}
	items := append([]domain.ProcessedStory(nil), db.processed[:limit]...)
	db.log.Debug("Stories retrieved",
		slog.Int("limit", limit),
		slog.Int("count", len(items)),
	)
	return items, nil
}

// RawStories возвращает копию последних распарсенных новостей.
func (db *MemoryStoryDB) RawStories(ctx context.Context) ([]domain.Story, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	db.mu.RLock()
	defer db.mu.RUnlock()
	return append([]domain.Story(nil), db.raw...), nil
}

// UpdatedAt возвращает время последнего успешного сохранения.
func (db *MemoryStoryDB) UpdatedAt() time.Time {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.updatedAt
}
