package editorial

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"upstreamnews/internal/domain"
)

const (
	// maxVerbatimLen - длина описания, до которой оно берется как есть.
	maxVerbatimLen = 300
	// sentenceBudget - бюджет символов при пофразовом усечении длинных описаний.
	sentenceBudget = 250
	// sourceTag - метка ленты-источника в хвосте аннотации.
	sourceTag = "Upstream"
)

var sentenceSplitRe = regexp.MustCompile(`[.!?]+`)

// Summarize строит редакционную аннотацию новости из её описания.
// Чистая детерминированная функция.
//
// Короткое описание (<=300 символов) берется целиком. Длинное режется на
// предложения по завершающей пунктуации, и предложения жадно набираются,
// пока накопленный счетчик символов плюс следующее предложение не превысят
// бюджет в 250; счетчик пополняется длиной предложения до обрезки пробелов.
// Результат всегда завершается точкой, восклицательным или вопросительным
// знаком и оформляется как "{summary} | {date} | Upstream".
func Summarize(story domain.Story) string {
	description := story.Description
	var summary string
	if utf8.RuneCountInString(description) > maxVerbatimLen {
		summary = truncateBySentence(description)
	} else {
		summary = strings.TrimSpace(description)
	}
	if !endsWithTerminator(summary) {
		summary += "."
	}
	return fmt.Sprintf("%s | %s | %s", summary, story.Date, sourceTag)
}

func truncateBySentence(description string) string {
	sentences := sentenceSplitRe.Split(description, -1)
	var parts []string
	charCount := 0
	for _, sentence := range sentences {
		if charCount+utf8.RuneCountInString(sentence) > sentenceBudget {
			break
		}
		parts = append(parts, strings.TrimSpace(sentence))
		charCount += utf8.RuneCountInString(sentence)
	}
	return strings.Join(parts, ". ")
}

func endsWithTerminator(s string) bool {
	return strings.HasSuffix(s, ".") ||
		strings.HasSuffix(s, "!") ||
		strings.HasSuffix(s, "?")
}
