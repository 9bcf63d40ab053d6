package parser

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"upstreamnews/internal/domain"
)

// itemXML - DTO одного элемента item в RSS-документе.
type itemXML struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	Description string   `xml:"description"`
	PubDate     string   `xml:"pubDate"`
	Author      string   `xml:"author"`
	Categories  []string `xml:"category"`
}

type XMLParser struct {
	log *slog.Logger
}

func NewXMLParser(log *slog.Logger) *XMLParser {
	return &XMLParser{
		log: log,
	}
}

// Parse читает XML-документ и возвращает по одной Story на каждый элемент
// item, найденный на любой глубине документа, в порядке следования.
// Отсутствующие или пустые подэлементы заменяются значениями по умолчанию.
// Некорректный XML - ошибка, новости не возвращаются.
func (p *XMLParser) Parse(ctx context.Context, reader io.Reader) ([]domain.Story, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var stories []domain.Story
	decoder := xml.NewDecoder(reader)
	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			p.log.Error(
				"Error decoding XML",
				slog.Any("error", err),
			)
			return nil, fmt.Errorf("failed to decode XML: %w", err)
		}
		start, ok := token.(xml.StartElement)
		if !ok || start.Name.Local != "item" {
			continue
		}
		var item itemXML
		if err := decoder.DecodeElement(&item, &start); err != nil {
			p.log.Error(
				"Error decoding item element",
				slog.Any("error", err),
			)
			return nil, fmt.Errorf("failed to decode XML: %w", err)
		}
		stories = append(stories, newStory(item))
	}
	return stories, nil
}

// newStory нормализует DTO в доменную Story, подставляя значения по умолчанию.
func newStory(item itemXML) domain.Story {
	return domain.Story{
		Title:       textOrDefault(item.Title, "No title"),
		Link:        textOrDefault(item.Link, ""),
		Description: textOrDefault(item.Description, ""),
		Date:        extractDate(item.PubDate),
		Author:      textOrDefault(item.Author, "Unknown"),
		Categories:  joinCategories(item.Categories),
	}
}

func textOrDefault(text, fallback string) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return fallback
	}
	return trimmed
}

var dateRe = regexp.MustCompile(`\d{1,2} \w{3} \d{4}`)

// extractDate достает из сырого pubDate дату вида "20 Jun 2025".
// Политика нарочно мягкая, в три ступени: совпадение по регулярному
// выражению -> первые 10 символов сырого текста -> "Unknown".
func extractDate(raw string) string {
	if raw == "" {
		return "Unknown"
	}
	if match := dateRe.FindString(raw); match != "" {
		return match
	}
	runes := []rune(raw)
	if len(runes) > 10 {
		return string(runes[:10])
	}
	return raw
}

// joinCategories соединяет непустые теги категорий через ", ",
// сохраняя порядок следования в документе.
func joinCategories(raw []string) string {
	categories := make([]string, 0, len(raw))
	for _, category := range raw {
		if trimmed := strings.TrimSpace(category); trimmed != "" {
			categories = append(categories, trimmed)
		}
	}
	return strings.Join(categories, ", ")
}
