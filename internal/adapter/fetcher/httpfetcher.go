package fetcher

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// fetchTimeout - потолок на один запрос к ленте. Повторных попыток нет:
// неудачная загрузка означает "нет контента" до следующего обновления.
const fetchTimeout = 30 * time.Second

// HTTPFetcher загружает RSS-ленту по HTTP одним запросом.
// Обрабатывает сетевые ошибки и неожиданные HTTP-статусы.
type HTTPFetcher struct {
	client *http.Client
	log    *slog.Logger
}

// NewHTTPFetcher создает загрузчик с клиентом с таймаутом.
func NewHTTPFetcher(log *slog.Logger) *HTTPFetcher {
	return &HTTPFetcher{
		client: &http.Client{Timeout: fetchTimeout},
		log:    log,
	}
}

// Fetch выполняет GET-запрос по указанному URL и возвращает тело ответа.
// Вызывающий обязан закрыть возвращенный io.ReadCloser.
// Любой статус кроме 200 считается ошибкой загрузки.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	log := f.log.With(slog.String("url", url))
	log.Info("Fetching feed")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		log.Error("Failed to create HTTP request", slog.Any("error", err))
		return nil, fmt.Errorf("failed to create request for url %s: %w", url, err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		log.Error(
			"HTTP request failed",
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("failed to fetch url %s: %w", url, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		log.Error(
			"Unexpected status code",
			slog.Int("status_code", resp.StatusCode),
		)
		return nil, fmt.Errorf("unexpected status code: %d for url %s", resp.StatusCode, url)
	}
	log.Info("Feed fetched successfully")
	return resp.Body, nil
}
