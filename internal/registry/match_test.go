package registry

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindMatching(t *testing.T) {
	reg := loadCatalogue(t)

	tests := []struct {
		name      string
		term      string
		wantField string
		wantFound bool
	}{
		{"exact field name", "staatsbuergerschaft", "staatsbuergerschaft", true},
		{"exact synonym", "citizenship", "staatsbuergerschaft", true},
		{"synonym is case-insensitive", "Date Of Birth", "geburtsdatum", true},
		{"partial field name", "geburts", "geburtsdatum", true},
		{"partial synonym", "national", "staatsbuergerschaft", true},
		{"example label", "EU citizen", "staatsbuergerschaft", true},
		{"surrounding whitespace", "  nationality  ", "staatsbuergerschaft", true},
		{"no match", "quantenphysik", "", false},
		{"empty term", "", "", false},
		{"blank term", "   ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, found := reg.FindMatching(tt.term)
			require.Equal(t, tt.wantFound, found)
			if tt.wantFound {
				require.Equal(t, tt.wantField, f.Name)
			}
		})
	}
}

func TestFindMatching_ExactBeatsPartial(t *testing.T) {
	// "pension" appears inside "pensionable"; an exact synonym entry on a
	// later field must still win over that earlier partial hit.
	reg, err := New([]Field{
		{Name: "pensionable", Path: "ff:pensionable"},
		{Name: "rentenbezug", Path: "ff:rentenbezug", Synonyms: []string{"pension"}},
	})
	require.NoError(t, err)

	f, found := reg.FindMatching("pension")
	require.True(t, found)
	require.Equal(t, "rentenbezug", f.Name)
}
