package patternfilter

import (
	"testing"

	"github.com/safenest/trustpipe/pkg/domain/moderation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilter_Check_CleanTextPasses(t *testing.T) {
	f := NewFilter()

	assert.Nil(t, f.Check("hola, ¿cómo te ha ido el examen?"))
	assert.Nil(t, f.Check("great job on the science project!"))
}

func TestFilter_Check_Profanity(t *testing.T) {
	f := NewFilter()

	v := f.Check("eres un IDIOTA de mierda")
	require.NotNil(t, v)
	assert.False(t, v.Allowed)
	assert.Equal(t, []string{moderation.CategoryProfanity}, v.Categories)
	assert.Equal(t, moderation.SeverityMedium, v.Severity)
}

func TestFilter_Check_ProfanityThroughLeetspeak(t *testing.T) {
	f := NewFilter()

	v := f.Check("eres un 1mbecil")
	require.NotNil(t, v)
	assert.Equal(t, []string{moderation.CategoryProfanity}, v.Categories)

	v = f.Check("h!jo de puta")
	require.NotNil(t, v)
	assert.Equal(t, []string{moderation.CategoryProfanity}, v.Categories)
}

func TestFilter_Check_ViolenceThreat(t *testing.T) {
	f := NewFilter()

	v := f.Check("te voy a matar mañana")
	require.NotNil(t, v)
	assert.False(t, v.Allowed)
	assert.Equal(t, []string{moderation.CategoryViolence}, v.Categories)
	assert.Equal(t, moderation.SeverityHigh, v.Severity)
}

func TestFilter_Check_ViolenceThreatWithDiacritics(t *testing.T) {
	f := NewFilter()

	// Folding turns "daño" into "dano" before matching; the pattern corpus is
	// written in folded form.
	v := f.Check("voy a hacerte daño")
	require.NotNil(t, v)
	assert.Equal(t, []string{moderation.CategoryViolence}, v.Categories)
}

func TestFilter_Check_ViolenceThreatWithTrailingExclamation(t *testing.T) {
	f := NewFilter()

	// The trailing mark is punctuation, not leetspeak; the word boundary
	// after "matar" must still hold.
	v := f.Check("te voy a matar!")
	require.NotNil(t, v)
	assert.Equal(t, []string{moderation.CategoryViolence}, v.Categories)
}

func TestFilter_Check_PersonalDataPhone(t *testing.T) {
	f := NewFilter()

	v := f.Check("llámame al 612 345 678")
	require.NotNil(t, v)
	assert.Equal(t, []string{moderation.CategoryPersonalData}, v.Categories)
}

func TestFilter_Check_PersonalDataEmail(t *testing.T) {
	f := NewFilter()

	// The @ must reach the email pattern untouched by the leet map.
	v := f.Check("escríbeme a pepe.garcia@example.com")
	require.NotNil(t, v)
	assert.Equal(t, []string{moderation.CategoryPersonalData}, v.Categories)
}

func TestFilter_Check_PersonalDataURL(t *testing.T) {
	f := NewFilter()

	v := f.Check("mira https://example.com/perfil")
	require.NotNil(t, v)
	assert.Equal(t, []string{moderation.CategoryPersonalData}, v.Categories)
}

func TestFilter_Check_SocialHandleSolicitation(t *testing.T) {
	f := NewFilter()

	v := f.Check("mi insta es pepito2012")
	require.NotNil(t, v)
	assert.Equal(t, []string{moderation.CategoryPersonalData}, v.Categories)
}

func TestFilter_Check_MeetingRequest(t *testing.T) {
	f := NewFilter()

	v := f.Check("no le digas a tus padres y ven a mi casa")
	require.NotNil(t, v)
	assert.Equal(t, []string{moderation.CategoryMeetingRequest}, v.Categories)
	assert.Equal(t, moderation.SeverityHigh, v.Severity)
}

func TestFilter_Check_WordBoundaries(t *testing.T) {
	f := NewFilter()

	// Substrings inside innocent words must not match.
	assert.Nil(t, f.Check("the class assignment is due"))
	assert.Nil(t, f.Check("me gusta la computacion"))
}

func TestFilter_Check_FirstMatchingGroupWins(t *testing.T) {
	f := NewFilter()

	// Matches both profanity and violence; profanity is checked first.
	v := f.Check("hijo de puta, te voy a matar")
	require.NotNil(t, v)
	assert.Equal(t, []string{moderation.CategoryProfanity}, v.Categories)
}
