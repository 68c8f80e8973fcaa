package plangen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalPlatform(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"Twitter", "x"},
		{"x.com", "x"},
		{"X (Twitter)", "x"},
		{"IG", "instagram"},
		{"Facebook Groups", "facebook"},
		{"linked in", "linkedin"},
		{"TikTok", "tiktok"},
		{"Tik Tok", "tiktok"},
		{"reddit", "reddit"},
		{"  LinkedIn  ", "linkedin"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CanonicalPlatform(tt.raw), "raw=%q", tt.raw)
	}
}

func TestHasBannedPhrase(t *testing.T) {
	assert.True(t, HasBannedPhrase("Build a sales Funnel", ""))
	assert.True(t, HasBannedPhrase("Host something", "promote your WEBINAR replay"))
	assert.True(t, HasBannedPhrase("Launch paid ads on X", ""))
	assert.False(t, HasBannedPhrase("Share a customer insight", "reply to five posts"))
}

func TestPlatformPolicyAllows(t *testing.T) {
	tests := []struct {
		name      string
		preferred []string
		avoid     []string
		platform  string
		want      bool
	}{
		{"empty platform always passes", []string{"x"}, []string{"tiktok"}, "", true},
		{"no lists pass everything", nil, nil, "reddit", true},
		{"preferred list admits member", []string{"X", "LinkedIn"}, nil, "twitter", true},
		{"preferred list rejects outsider", []string{"x"}, nil, "reddit", false},
		{"avoid list rejects member", nil, []string{"TikTok"}, "tik tok", false},
		{"avoid wins over preferred", []string{"x"}, []string{"x"}, "x", false},
		{"guerrilla bypasses preferred list", []string{"x"}, nil, "guerrilla", true},
		{"avoid wins over guerrilla", nil, []string{"guerrilla"}, "guerrilla", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policy := NewPlatformPolicy(tt.preferred, tt.avoid)
			assert.Equal(t, tt.want, policy.Allows(tt.platform))
		})
	}
}
