package relevance

import (
	"strings"

	"upstreamnews/internal/domain"
	"upstreamnews/internal/keywords"
)

// Classify оценивает релевантность новости по текущему снимку вокабуляра.
// Чистая детерминированная функция: одинаковые входы всегда дают одинаковый
// результат, состояние нигде не кэшируется.
//
// Каскад правил (побеждает первое сработавшее):
//   - High:     >=2 слов из high, либо текст содержит "slb"/"schlumberger" -
//     упоминание имени организации всегда означает высокую релевантность,
//     независимо от того, остались ли эти слова в корзине high;
//   - Moderate: >=1 слова из high, либо >=2 слов из moderate;
//   - Relevant: >=1 слова из moderate, либо >=1 слова из relevant;
//   - Low:      всё остальное.
func Classify(story domain.Story, snap keywords.Snapshot) domain.Relevance {
	text := searchText(story)

	highCount := countHits(text, snap.High)
	moderateCount := countHits(text, snap.Moderate)
	relevantCount := countHits(text, snap.Relevant)

	switch {
	case highCount >= 2 || strings.Contains(text, "slb") || strings.Contains(text, "schlumberger"):
		return domain.RelevanceHigh
	case highCount >= 1 || moderateCount >= 2:
		return domain.RelevanceModerate
	case moderateCount >= 1 || relevantCount >= 1:
		return domain.RelevanceRelevant
	default:
		return domain.RelevanceLow
	}
}

// searchText собирает единый поисковый текст новости в нижнем регистре.
func searchText(story domain.Story) string {
	return strings.ToLower(story.Title + " " + story.Description + " " + story.Categories)
}

// countHits считает, сколько слов корзины встречается в тексте как подстрока.
// Каждое слово учитывается не больше одного раза: проверяется наличие,
// а не частота.
func countHits(text string, bucket []string) int {
	count := 0
	for _, keyword := range bucket {
		if strings.Contains(text, strings.ToLower(keyword)) {
			count++
		}
	}
	return count
}
