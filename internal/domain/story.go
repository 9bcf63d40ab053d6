package domain

import "errors"

// ErrNoStories сигнализирует, что в ленте не найдено ни одной новости
// (в том числе из-за некорректного XML).
var ErrNoStories = errors.New("no stories found in the feed")

// Relevance - четырехуровневая оценка релевантности новости для организации.
type Relevance string

const (
	RelevanceHigh     Relevance = "High"
	RelevanceModerate Relevance = "Moderate"
	RelevanceRelevant Relevance = "Relevant"
	RelevanceLow      Relevance = "Low"
)

// Rank возвращает порядок сортировки уровня релевантности.
// High сортируется первым, Low - последним.
func (r Relevance) Rank() int {
	switch r {
	case RelevanceHigh:
		return 0
	case RelevanceModerate:
		return 1
	case RelevanceRelevant:
		return 2
	default:
		return 3
	}
}

// Story представляет одну нормализованную новость из RSS-ленты.
// Все поля всегда заполнены: отсутствующие значения заменяются
// документированными значениями по умолчанию, а не пустыми указателями.
type Story struct {
	Title       string // "No title", если элемент отсутствует или пуст
	Link        string
	Description string
	Date        string // извлеченная дата вида "20 Jun 2025" или "Unknown"
	Author      string // "Unknown", если автор не указан
	Categories  string // теги категорий, соединенные через ", "
}

// ProcessedStory - новость, дополненная вычисленной релевантностью
// и редакционной аннотацией. После создания не изменяется.
type ProcessedStory struct {
	Story
	Relevance        Relevance
	EditorialSummary string
}
