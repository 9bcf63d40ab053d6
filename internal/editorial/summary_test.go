package editorial

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"upstreamnews/internal/domain"
)

func TestSummarize_ShortDescriptionVerbatim(t *testing.T) {
	got := Summarize(domain.Story{
		Description: "  Short update  ",
		Date:        "3 Jul 2025",
	})
	assert.Equal(t, "Short update. | 3 Jul 2025 | Upstream", got)
}

func TestSummarize_ShortDescriptionKeepsOwnTerminator(t *testing.T) {
	got := Summarize(domain.Story{
		Description: "Markets rallied!",
		Date:        "3 Jul 2025",
	})
	assert.Equal(t, "Markets rallied! | 3 Jul 2025 | Upstream", got)
}

func TestSummarize_EmptyDescription(t *testing.T) {
	got := Summarize(domain.Story{Description: "", Date: "Unknown"})
	assert.Equal(t, ". | Unknown | Upstream", got)
}

func TestSummarize_LongDescriptionTruncatesBySentence(t *testing.T) {
	description := "SLB announced a new drilling technology. It will improve efficiency. " +
		"Markets reacted positively, with analysts noting strong demand across multiple " +
		"regions and forecasting continued growth, while several regional operators signalled " +
		"plans to expand their offshore drilling campaigns through the remainder of the year."
	got := Summarize(domain.Story{Description: description, Date: "20 Jun 2025"})

	assert.Equal(t,
		"SLB announced a new drilling technology. It will improve efficiency. | 20 Jun 2025 | Upstream",
		got)
}

func TestSummarize_FirstSentenceOverBudget(t *testing.T) {
	// первое предложение само не влезает в бюджет - остается только точка
	description := strings.Repeat("x", 310) + ". Second sentence here."
	got := Summarize(domain.Story{Description: description, Date: "1 Jan 2024"})

	assert.Equal(t, ". | 1 Jan 2024 | Upstream", got)
}

func TestSummarize_AlwaysTerminatedAndShaped(t *testing.T) {
	descriptions := []string{
		"",
		"plain text without punctuation",
		"one. two! three?",
		strings.Repeat("word ", 120),
	}
	for _, description := range descriptions {
		got := Summarize(domain.Story{Description: description, Date: "5 May 2025"})

		summary, rest, found := strings.Cut(got, " | ")
		assert.True(t, found, got)
		assert.Equal(t, "5 May 2025 | Upstream", rest)
		assert.True(t,
			strings.HasSuffix(summary, ".") ||
				strings.HasSuffix(summary, "!") ||
				strings.HasSuffix(summary, "?"),
			got)
	}
}

func TestSummarize_Deterministic(t *testing.T) {
	story := domain.Story{Description: "Output rose. Prices fell.", Date: "9 Sep 2025"}
	assert.Equal(t, Summarize(story), Summarize(story))
}
