package moderation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeverity_Max(t *testing.T) {
	assert.Equal(t, SeverityHigh, SeverityMedium.Max(SeverityHigh))
	assert.Equal(t, SeverityHigh, SeverityHigh.Max(SeverityLow))
	assert.Equal(t, SeverityNone, SeverityNone.Max(SeverityNone))
}

func TestMerge_NilOperands(t *testing.T) {
	v := Block(CategoryProfanity, SeverityMedium, "blocked")

	assert.Equal(t, v, Merge(v, nil))
	assert.Equal(t, v, Merge(nil, v))
	assert.Nil(t, Merge(nil, nil))
}

func TestMerge_BlockedIfEitherBlocks(t *testing.T) {
	visual := Allow()
	ocr := Block(CategoryProfanity, SeverityMedium, "text inside image matched a banned pattern")
	ocr.DetectedText = "puta"

	merged := Merge(visual, ocr)

	require.NotNil(t, merged)
	assert.False(t, merged.Allowed)
	assert.Equal(t, []string{CategoryProfanity}, merged.Categories)
	assert.Equal(t, SeverityMedium, merged.Severity)
	assert.Equal(t, "puta", merged.DetectedText)
	assert.Equal(t, ocr.Reason, merged.Reason)
}

func TestMerge_UnionsCategoriesWithoutDuplicates(t *testing.T) {
	a := Block(CategorySexual, SeverityHigh, "visual")
	b := &Verdict{
		Allowed:    false,
		Categories: []string{CategorySexual, CategoryPersonalData},
		Severity:   SeverityMedium,
		Reason:     "ocr",
	}

	merged := Merge(a, b)

	assert.Equal(t, []string{CategorySexual, CategoryPersonalData}, merged.Categories)
	assert.Equal(t, SeverityHigh, merged.Severity)
}

func TestMerge_FallbackOnlyWhenBothFellBack(t *testing.T) {
	a := Allow()
	a.Fallback = true
	b := Allow()

	assert.False(t, Merge(a, b).Fallback)

	b.Fallback = true
	assert.True(t, Merge(a, b).Fallback)
}

func TestMerge_BothAllowed(t *testing.T) {
	merged := Merge(Allow(), Allow())

	assert.True(t, merged.Allowed)
	assert.Empty(t, merged.Categories)
	assert.Equal(t, SeverityNone, merged.Severity)
}
