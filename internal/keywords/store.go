package keywords

import (
	"strings"
	"sync"
)

// Tier - имя одной из трех корзин ключевых слов.
type Tier string

const (
	TierHigh     Tier = "high"
	TierModerate Tier = "moderate"
	TierRelevant Tier = "relevant"
)

// Valid сообщает, является ли значение известным именем корзины.
func (t Tier) Valid() bool {
	return t == TierHigh || t == TierModerate || t == TierRelevant
}

// Store хранит редактируемый вокабуляр классификатора: три упорядоченных
// списка ключевых слов в нижнем регистре. Живет в памяти процесса,
// при рестарте заново наполняется значениями по умолчанию.
// Все методы безопасны для конкурентного вызова.
type Store struct {
	mu       sync.RWMutex
	high     []string
	moderate []string
	relevant []string
}

// Snapshot - копия содержимого корзин на момент вызова.
// Передается классификатору при каждой классификации, чтобы правка
// вокабуляра действовала уже на следующем вызове.
type Snapshot struct {
	High     []string
	Moderate []string
	Relevant []string
}

// Counts - размеры корзин. Используется только для отчетности.
type Counts struct {
	High     int `json:"high"`
	Moderate int `json:"moderate"`
	Relevant int `json:"relevant"`
}

// NewStore создает хранилище, наполненное вокабуляром по умолчанию.
func NewStore() *Store {
	s := &Store{}
	s.installDefaults()
	return s
}

func (s *Store) installDefaults() {
	s.high = append([]string(nil), defaultHigh...)
	s.moderate = append([]string(nil), defaultModerate...)
	s.relevant = append([]string(nil), defaultRelevant...)
}

// Add приводит ключевое слово к нижнему регистру и добавляет его в конец
// указанной корзины. Если слово уже есть в этой же корзине (без учета
// регистра), ничего не делает. Наличие слова в других корзинах не проверяется:
// единственный способ не плодить дубликаты между корзинами - использовать Move.
// Возвращает true, если слово было добавлено.
func (s *Store) Add(tier Tier, keyword string) bool {
	lowered := strings.ToLower(keyword)
	s.mu.Lock()
	defer s.mu.Unlock()
	bucket := s.bucket(tier)
	if bucket == nil {
		return false
	}
	for _, kw := range *bucket {
		if strings.EqualFold(kw, lowered) {
			return false
		}
	}
	*bucket = append(*bucket, lowered)
	return true
}

// Move убирает первое совпадение (без учета регистра) из корзины from
// и дописывает слово в нижнем регистре в конец корзины to.
// Если слова в from нет, молча ничего не делает: UI-операции должны быть
// идемпотентными, а не падать с ошибкой валидации.
// Возвращает true, если перенос состоялся.
func (s *Store) Move(keyword string, from, to Tier) bool {
	lowered := strings.ToLower(keyword)
	s.mu.Lock()
	defer s.mu.Unlock()
	src := s.bucket(from)
	dst := s.bucket(to)
	if src == nil || dst == nil {
		return false
	}
	for i, kw := range *src {
		if strings.EqualFold(kw, lowered) {
			*src = append((*src)[:i], (*src)[i+1:]...)
			*dst = append(*dst, lowered)
			return true
		}
	}
	return false
}

// Reset отбрасывает все правки и восстанавливает вокабуляр по умолчанию.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.installDefaults()
}

// Counts возвращает текущие размеры корзин.
func (s *Store) Counts() Counts {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Counts{
		High:     len(s.high),
		Moderate: len(s.moderate),
		Relevant: len(s.relevant),
	}
}

// Snapshot возвращает копию всех трех корзин.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		High:     append([]string(nil), s.high...),
		Moderate: append([]string(nil), s.moderate...),
		Relevant: append([]string(nil), s.relevant...),
	}
}

// Keywords возвращает копию содержимого одной корзины в порядке вставки.
// Порядок важен только для отображения, на классификацию он не влияет.
func (s *Store) Keywords(tier Tier) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	bucket := s.bucket(tier)
	if bucket == nil {
		return nil
	}
	return append([]string(nil), *bucket...)
}

// bucket возвращает указатель на срез корзины. Вызывающий должен держать mu.
func (s *Store) bucket(tier Tier) *[]string {
	switch tier {
	case TierHigh:
		return &s.high
	case TierModerate:
		return &s.moderate
	case TierRelevant:
		return &s.relevant
	default:
		return nil
	}
}
