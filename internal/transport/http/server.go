package http

import (
	"log/slog"
	"net/http"
)

// NewServer создает и настраивает HTTP-сервер с роутингом и middleware.
// Регистрирует эндпоинты таблицы новостей, CSV-выгрузки и управления
// вокабуляром. Добавляет middleware для логирования и CORS.
func NewServer(log *slog.Logger, h *Handler) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/stories", h.getStories)
	mux.HandleFunc("/api/stories/stats", h.getStats)
	mux.HandleFunc("/api/stories/export", h.exportCSV)
	mux.HandleFunc("/api/refresh", h.refresh)
	mux.HandleFunc("/api/keywords", h.getKeywords)
	mux.HandleFunc("/api/keywords/counts", h.getKeywordCounts)
	mux.HandleFunc("/api/keywords/add", h.addKeyword)
	mux.HandleFunc("/api/keywords/move", h.moveKeyword)
	mux.HandleFunc("/api/keywords/reset", h.resetKeywords)
	mux.HandleFunc("/api/health", h.healthCheck)
	var handler http.Handler = mux
	handler = loggingMiddleware(log)(handler)
	handler = corsMiddleware()(handler)
	return handler
}

// corsMiddleware создает middleware для обработки CORS.
// Разрешает запросы с любого origin и preflight OPTIONS запросы,
// чтобы таблицу можно было смотреть из отдельного фронтенда.
func corsMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
