package worker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"upstreamnews/internal/domain"
)

// Refresher определяет интерфейс полного обновления ленты.
// Используется для внедрения зависимости в воркер.
type Refresher interface {
	Refresh(ctx context.Context) (int, error)
}

// refreshTimeout - потолок на один цикл обновления.
const refreshTimeout = 60 * time.Second

// Worker периодически обновляет результат анализа ленты по cron-расписанию.
// Первый прогон выполняется сразу при старте, чтобы таблица не была пустой
// до первого тика.
type Worker struct {
	refresher Refresher
	schedule  string
	cron      *cron.Cron
	log       *slog.Logger
}

// New создает воркера обновления ленты.
// schedule - строка в формате robfig/cron, например "@every 3m".
func New(refresher Refresher, schedule string, log *slog.Logger) *Worker {
	return &Worker{
		refresher: refresher,
		schedule:  schedule,
		cron:      cron.New(),
		log:       log,
	}
}

// Start запускает немедленное первое обновление и планировщик.
// Возвращает ошибку, если расписание не удалось разобрать.
func (w *Worker) Start() error {
	w.log.Info("Feed refresh worker started",
		slog.String("component", "worker"),
		slog.String("schedule", w.schedule),
	)
	w.refreshOnce()
	if _, err := w.cron.AddFunc(w.schedule, w.refreshOnce); err != nil {
		return err
	}
	w.cron.Start()
	return nil
}

// Stop останавливает планировщик и дожидается завершения текущего прогона.
func (w *Worker) Stop() {
	ctx := w.cron.Stop()
	<-ctx.Done()
	w.log.Info("Worker stopped", slog.String("component", "worker"))
}

// GetSchedule возвращает расписание обновления.
func (w *Worker) GetSchedule() string { return w.schedule }

func (w *Worker) refreshOnce() {
	start := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()
	count, err := w.refresher.Refresh(ctx)
	switch {
	case errors.Is(err, domain.ErrNoStories):
		w.log.Warn("No stories found in the feed", slog.String("component", "worker"))
	case err != nil:
		w.log.Error("Feed refresh failed",
			slog.String("component", "worker"),
			slog.Any("error", err),
		)
	default:
		w.log.Info("Feed refresh cycle completed",
			slog.String("component", "worker"),
			slog.Int("stories", count),
			slog.Duration("duration", time.Since(start)),
		)
	}
}
