package http

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"upstreamnews/internal/domain"
	"upstreamnews/internal/keywords"
)

type storyGetter interface {
	GetStories(ctx context.Context, limit int) ([]domain.ProcessedStory, error)
}

// analyzer - часть конвейера, доступная хендлеру: полное обновление ленты
// и пересчет таблицы по уже распарсенным новостям.
type analyzer interface {
	Refresh(ctx context.Context) (int, error)
	Reanalyze(ctx context.Context) (int, error)
}

type Handler struct {
	log         *slog.Logger
	storyGetter storyGetter
	analyzer    analyzer
	store       *keywords.Store
	maxLimit    int
}

func NewHandler(log *slog.Logger, getter storyGetter, analyzer analyzer, store *keywords.Store, maxLimit int) *Handler {
	return &Handler{
		log:         log,
		storyGetter: getter,
		analyzer:    analyzer,
		store:       store,
		maxLimit:    maxLimit,
	}
}

// storyJSON - представление обработанной новости в API и CSV-выгрузке.
// Порядок полей совпадает с колонками выходной таблицы.
type storyJSON struct {
	Title            string `json:"title"`
	Relevance        string `json:"relevance"`
	EditorialSummary string `json:"editorial_summary"`
	Date             string `json:"date"`
	Author           string `json:"author"`
	Categories       string `json:"categories"`
	Link             string `json:"link"`
}

func toStoryJSON(s domain.ProcessedStory) storyJSON {
	return storyJSON{
		Title:            s.Title,
		Relevance:        string(s.Relevance),
		EditorialSummary: s.EditorialSummary,
		Date:             s.Date,
		Author:           s.Author,
		Categories:       s.Categories,
		Link:             s.Link,
	}
}

// getStories - хендлер для эндпоинта GET /api/stories.
// Параметр limit ограничивает число новостей, relevance фильтрует
// по списку уровней через запятую (например "High,Moderate").
func (h *Handler) getStories(w http.ResponseWriter, r *http.Request) {
	const op = "transport.http/getStories"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", getRequestID(r.Context())),
	)
	if r.Method != http.MethodGet {
		log.Warn("method not allowed")
		respondWithError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}
	limit, ok := h.parseLimit(w, r, log)
	if !ok {
		return
	}
	stories, err := h.storyGetter.GetStories(r.Context(), limit)
	if err != nil {
		log.Error("Failed to get stories", slog.Any("error", err))
		respondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	stories = filterByRelevance(stories, r.URL.Query().Get("relevance"))

	payload := make([]storyJSON, 0, len(stories))
	for _, story := range stories {
		payload = append(payload, toStoryJSON(story))
	}
	respondWithJSON(w, http.StatusOK, payload)
}

// getStats - хендлер для эндпоинта GET /api/stories/stats.
// Возвращает общее число новостей и разбивку по уровням релевантности.
func (h *Handler) getStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondWithError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}
	stories, err := h.storyGetter.GetStories(r.Context(), h.maxLimit)
	if err != nil {
		h.log.Error("Failed to get stories for stats", slog.Any("error", err))
		respondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	stats := map[string]int{
		"total":    len(stories),
		"high":     0,
		"moderate": 0,
		"relevant": 0,
		"low":      0,
	}
	for _, story := range stories {
		stats[strings.ToLower(string(story.Relevance))]++
	}
	respondWithJSON(w, http.StatusOK, stats)
}

// exportCSV - хендлер для эндпоинта GET /api/stories/export.
// Выгружает таблицу с колонками Title, Relevance, Editorial Summary,
// Date, Author, Categories, Link - ровно в этом порядке.
func (h *Handler) exportCSV(w http.ResponseWriter, r *http.Request) {
	const op = "transport.http/exportCSV"
	log := h.log.With(slog.String("op", op))
	if r.Method != http.MethodGet {
		respondWithError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}
	stories, err := h.storyGetter.GetStories(r.Context(), h.maxLimit)
	if err != nil {
		log.Error("Failed to get stories for export", slog.Any("error", err))
		respondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	stories = filterByRelevance(stories, r.URL.Query().Get("relevance"))

	filename := fmt.Sprintf("slb_news_analysis_%s.csv", time.Now().Format("20060102_1504"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	writer := csv.NewWriter(w)
	writer.Write([]string{"Title", "Relevance", "Editorial Summary", "Date", "Author", "Categories", "Link"})
	for _, story := range stories {
		writer.Write([]string{
			story.Title,
			string(story.Relevance),
			story.EditorialSummary,
			story.Date,
			story.Author,
			story.Categories,
			story.Link,
		})
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Error("Failed to write CSV", slog.Any("error", err))
	}
}

// refresh - хендлер для эндпоинта POST /api/refresh.
// Запускает полный цикл обновления ленты вручную.
func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	const op = "transport.http/refresh"
	log := h.log.With(slog.String("op", op))
	if r.Method != http.MethodPost {
		respondWithError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}
	count, err := h.analyzer.Refresh(r.Context())
	if errors.Is(err, domain.ErrNoStories) {
		respondWithJSON(w, http.StatusOK, map[string]any{
			"stories": 0,
			"message": "No stories found in the feed",
		})
		return
	}
	if err != nil {
		log.Error("Manual refresh failed", slog.Any("error", err))
		respondWithError(w, http.StatusBadGateway, "Failed to fetch feed")
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]any{"stories": count})
}

// getKeywords - хендлер для эндпоинта GET /api/keywords.
func (h *Handler) getKeywords(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondWithError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}
	respondWithJSON(w, http.StatusOK, map[string][]string{
		"high":     h.store.Keywords(keywords.TierHigh),
		"moderate": h.store.Keywords(keywords.TierModerate),
		"relevant": h.store.Keywords(keywords.TierRelevant),
	})
}

// getKeywordCounts - хендлер для эндпоинта GET /api/keywords/counts.
func (h *Handler) getKeywordCounts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondWithError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}
	respondWithJSON(w, http.StatusOK, h.store.Counts())
}

type addKeywordRequest struct {
	Tier    string `json:"tier"`
	Keyword string `json:"keyword"`
}

// addKeyword - хендлер для эндпоинта POST /api/keywords/add.
// После успешной правки таблица явно пересчитывается.
func (h *Handler) addKeyword(w http.ResponseWriter, r *http.Request) {
	const op = "transport.http/addKeyword"
	log := h.log.With(slog.String("op", op))
	if r.Method != http.MethodPost {
		respondWithError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}
	var req addKeywordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	tier := keywords.Tier(req.Tier)
	if !tier.Valid() || strings.TrimSpace(req.Keyword) == "" {
		respondWithError(w, http.StatusBadRequest, "Invalid 'tier' or 'keyword'")
		return
	}
	added := h.store.Add(tier, req.Keyword)
	log.Info("Keyword add requested",
		slog.String("tier", req.Tier),
		slog.String("keyword", req.Keyword),
		slog.Bool("added", added),
	)
	h.reanalyze(r.Context(), log)
	respondWithJSON(w, http.StatusOK, map[string]any{
		"added":  added,
		"counts": h.store.Counts(),
	})
}

type moveKeywordRequest struct {
	Keyword string `json:"keyword"`
	From    string `json:"from"`
	To      string `json:"to"`
}

// moveKeyword - хендлер для эндпоинта POST /api/keywords/move.
// Отсутствие слова в исходной корзине - не ошибка: операция идемпотентна.
func (h *Handler) moveKeyword(w http.ResponseWriter, r *http.Request) {
	const op = "transport.http/moveKeyword"
	log := h.log.With(slog.String("op", op))
	if r.Method != http.MethodPost {
		respondWithError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}
	var req moveKeywordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	from := keywords.Tier(req.From)
	to := keywords.Tier(req.To)
	if !from.Valid() || !to.Valid() || strings.TrimSpace(req.Keyword) == "" {
		respondWithError(w, http.StatusBadRequest, "Invalid 'keyword', 'from' or 'to'")
		return
	}
	moved := h.store.Move(req.Keyword, from, to)
	log.Info("Keyword move requested",
		slog.String("keyword", req.Keyword),
		slog.String("from", req.From),
		slog.String("to", req.To),
		slog.Bool("moved", moved),
	)
	h.reanalyze(r.Context(), log)
	respondWithJSON(w, http.StatusOK, map[string]any{
		"moved":  moved,
		"counts": h.store.Counts(),
	})
}

// resetKeywords - хендлер для эндпоинта POST /api/keywords/reset.
// Восстанавливает вокабуляр по умолчанию и отбрасывает все правки.
func (h *Handler) resetKeywords(w http.ResponseWriter, r *http.Request) {
	const op = "transport.http/resetKeywords"
	log := h.log.With(slog.String("op", op))
	if r.Method != http.MethodPost {
		respondWithError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}
	h.store.Reset()
	log.Info("Keywords reset to defaults")
	h.reanalyze(r.Context(), log)
	respondWithJSON(w, http.StatusOK, map[string]any{"counts": h.store.Counts()})
}

// healthCheck - хендлер для проверки состояния сервиса.
func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// reanalyze пересчитывает сохраненную таблицу после правки вокабуляра.
// Ошибка пересчета не валит ответ на саму правку - она только логируется,
// правка уже применена и подействует при следующем обновлении.
func (h *Handler) reanalyze(ctx context.Context, log *slog.Logger) {
	if _, err := h.analyzer.Reanalyze(ctx); err != nil {
		log.Error("Failed to reanalyze stories", slog.Any("error", err))
	}
}

// parseLimit разбирает и проверяет параметр limit.
// Пустое значение означает лимит хранилища по умолчанию.
func (h *Handler) parseLimit(w http.ResponseWriter, r *http.Request, log *slog.Logger) (int, bool) {
	limitStr := r.URL.Query().Get("limit")
	if limitStr == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 || limit > h.maxLimit {
		log.Warn("invalid limit parameter", slog.String("limit", limitStr))
		respondWithError(w, http.StatusBadRequest, "Invalid 'limit' parameter")
		return 0, false
	}
	return limit, true
}

// filterByRelevance оставляет только новости перечисленных уровней.
// Пустой фильтр пропускает всё.
func filterByRelevance(stories []domain.ProcessedStory, filter string) []domain.ProcessedStory {
	if filter == "" {
		return stories
	}
	allowed := make(map[domain.Relevance]bool)
	for _, level := range strings.Split(filter, ",") {
		allowed[domain.Relevance(strings.TrimSpace(level))] = true
	}
	filtered := make([]domain.ProcessedStory, 0, len(stories))
	for _, story := range stories {
		if allowed[story.Relevance] {
			filtered = append(filtered, story)
		}
	}
	return filtered
}

// Вспомогательные функции для ответов
func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "Failed to marshal JSON response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func getRequestID(ctx context.Context) string {
	return "req-" + time.Now().Format("20060102150405")
}
