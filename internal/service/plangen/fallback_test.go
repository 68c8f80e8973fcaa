package plangen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"growthplan/internal/model"
)

func TestFallbackPlatformsPrecedence(t *testing.T) {
	tests := []struct {
		name    string
		signals model.ContextSignals
		want    []string
	}{
		{
			"preferred wins",
			model.ContextSignals{
				PreferredPlatforms:  []string{"Twitter", "LinkedIn"},
				ResearchedPlatforms: []string{"reddit"},
			},
			[]string{"x", "linkedin"},
		},
		{
			"researched when no preferred",
			model.ContextSignals{ResearchedPlatforms: []string{"reddit", "IG"}},
			[]string{"reddit", "instagram"},
		},
		{
			"default rotation when profile is empty",
			model.ContextSignals{},
			[]string{"x", "linkedin", "reddit"},
		},
		{
			"avoid filters preferred then falls through",
			model.ContextSignals{
				PreferredPlatforms: []string{"x"},
				AvoidPlatforms:     []string{"twitter"},
			},
			[]string{"linkedin", "reddit"},
		},
		{
			"default returned even when avoid covers everything",
			model.ContextSignals{AvoidPlatforms: []string{"x", "linkedin", "reddit"}},
			[]string{"x", "linkedin", "reddit"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FallbackPlatforms(tt.signals))
		})
	}
}

func TestSynthesizeFallbackExactCountAndRotation(t *testing.T) {
	signals := model.ContextSignals{} // default rotation x, linkedin, reddit

	out := SynthesizeFallback(signals, 5, 3)
	require.Len(t, out, 3)

	// platform = platforms[(day+slot) % 3]
	assert.Equal(t, "reddit", out[0].Platform)
	assert.Equal(t, "x", out[1].Platform)
	assert.Equal(t, "linkedin", out[2].Platform)

	for _, c := range out {
		assert.NotEmpty(t, c.Title)
		assert.NotEmpty(t, c.Description)
		assert.NotContains(t, c.Title, "{")
		assert.NotContains(t, c.Description, "{")
	}
}

func TestSynthesizeFallbackDeterministic(t *testing.T) {
	signals := model.ContextSignals{
		ProductName:    "Acme Notes",
		TargetAudience: "indie hackers",
	}
	first := SynthesizeFallback(signals, 12, 4)
	second := SynthesizeFallback(signals, 12, 4)
	assert.Equal(t, first, second)
}

func TestSynthesizeFallbackDistinctKeysWithinDay(t *testing.T) {
	out := SynthesizeFallback(model.ContextSignals{}, 9, len(fallbackTemplates))
	seen := NewExclusionSet()
	for _, c := range out {
		key := c.Key()
		assert.False(t, seen.Has(key), "duplicate key %q", key)
		seen.Add(key)
	}
}

func TestSynthesizeFallbackSubstitutesProfile(t *testing.T) {
	signals := model.ContextSignals{
		ProductName:        "Acme Notes",
		TargetAudience:     "indie hackers",
		ValueProp:          "zero-setup note capture",
		PreferredPlatforms: []string{"x"},
	}
	out := SynthesizeFallback(signals, 1, 3)
	require.Len(t, out, 3)
	joined := ""
	for _, c := range out {
		joined += c.Title + " " + c.Description + " "
	}
	assert.Contains(t, joined, "Acme Notes")
	assert.Contains(t, joined, "indie hackers")
}

func TestSynthesizeFallbackGuerrillaSlot(t *testing.T) {
	signals := model.ContextSignals{PreferredPlatforms: []string{"guerrilla"}}
	out := SynthesizeFallback(signals, 1, 2)
	require.Len(t, out, 2)
	for _, c := range out {
		assert.Equal(t, PlatformGuerrilla, c.Platform)
		assert.Equal(t, guerrillaTemplate.category, c.Category)
		assert.Contains(t, c.Description, "offline")
	}
}

func TestSynthesizeFallbackZeroCount(t *testing.T) {
	assert.Nil(t, SynthesizeFallback(model.ContextSignals{}, 3, 0))
	assert.Nil(t, SynthesizeFallback(model.ContextSignals{}, 3, -1))
}
