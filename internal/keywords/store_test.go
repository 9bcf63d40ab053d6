package keywords

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_DefaultCounts(t *testing.T) {
	store := NewStore()
	counts := store.Counts()

	assert.Equal(t, 32, counts.High)
	assert.Equal(t, 25, counts.Moderate)
	assert.Equal(t, 13, counts.Relevant)
}

func TestStore_Add(t *testing.T) {
	store := NewStore()
	before := store.Counts()

	added := store.Add(TierHigh, "Geothermal")
	require.True(t, added)
	assert.Equal(t, before.High+1, store.Counts().High)
	assert.Contains(t, store.Keywords(TierHigh), "geothermal")
}

func TestStore_Add_DuplicateInSameTierIsNoop(t *testing.T) {
	store := NewStore()
	before := store.Counts()

	assert.False(t, store.Add(TierHigh, "Drilling"))
	assert.False(t, store.Add(TierHigh, "DRILLING"))
	assert.Equal(t, before.High, store.Counts().High)
}

func TestStore_Add_OnlyChecksTargetTier(t *testing.T) {
	store := NewStore()

	// "drilling" живет в high, но add проверяет только целевую корзину
	assert.True(t, store.Add(TierRelevant, "drilling"))
	assert.Contains(t, store.Keywords(TierRelevant), "drilling")
	assert.Contains(t, store.Keywords(TierHigh), "drilling")
}

func TestStore_Add_UnknownTier(t *testing.T) {
	store := NewStore()
	assert.False(t, store.Add(Tier("critical"), "drilling"))
}

func TestStore_Move(t *testing.T) {
	store := NewStore()

	moved := store.Move("drilling", TierHigh, TierModerate)
	require.True(t, moved)
	assert.NotContains(t, store.Keywords(TierHigh), "drilling")
	assert.Contains(t, store.Keywords(TierModerate), "drilling")

	counts := store.Counts()
	assert.Equal(t, 31, counts.High)
	assert.Equal(t, 26, counts.Moderate)
}

func TestStore_Move_RoundTrip(t *testing.T) {
	store := NewStore()
	originalHigh := store.Keywords(TierHigh)
	originalModerate := store.Keywords(TierModerate)

	require.True(t, store.Move("drilling", TierHigh, TierModerate))
	require.True(t, store.Move("drilling", TierModerate, TierHigh))

	// членство восстановлено, слово вернулось в конец своей корзины
	assert.ElementsMatch(t, originalHigh, store.Keywords(TierHigh))
	assert.ElementsMatch(t, originalModerate, store.Keywords(TierModerate))
}

func TestStore_Move_MissingKeywordIsSilentNoop(t *testing.T) {
	store := NewStore()
	before := store.Counts()

	assert.False(t, store.Move("blockchain", TierHigh, TierModerate))
	assert.Equal(t, before, store.Counts())
}

func TestStore_Reset(t *testing.T) {
	store := NewStore()
	store.Add(TierHigh, "geothermal")
	store.Move("hydrogen", TierRelevant, TierHigh)
	store.Move("shale", TierModerate, TierRelevant)

	store.Reset()

	counts := store.Counts()
	assert.Equal(t, Counts{High: 32, Moderate: 25, Relevant: 13}, counts)
	assert.NotContains(t, store.Keywords(TierHigh), "geothermal")
	assert.Contains(t, store.Keywords(TierRelevant), "hydrogen")
}

func TestStore_SnapshotIsACopy(t *testing.T) {
	store := NewStore()
	snap := store.Snapshot()

	store.Move("drilling", TierHigh, TierModerate)

	// снимок не видит последующие правки
	assert.Contains(t, snap.High, "drilling")
	assert.NotContains(t, snap.Moderate, "drilling")
}

func TestTier_Valid(t *testing.T) {
	assert.True(t, TierHigh.Valid())
	assert.True(t, TierModerate.Valid())
	assert.True(t, TierRelevant.Valid())
	assert.False(t, Tier("low").Valid())
	assert.False(t, Tier("").Valid())
}
