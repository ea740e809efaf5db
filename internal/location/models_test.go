package location

import (
	"errors"
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestNewKeyRejectsBadCountryCode(t *testing.T) {
	if _, err := NewKey("London", "GBR"); !errors.Is(err, ErrMalformedRecord) {
		t.Fatalf("expected ErrMalformedRecord, got %v", err)
	}

	k, err := NewKey(" London ", "GB")
	assert.Equal(t, nil, err)
	assert.Equal(t, Key{Capital: "London", CountryCode: "GB"}, k)
}

func TestKeyMatchesIgnoresCase(t *testing.T) {
	a := Key{Capital: "London", CountryCode: "GB"}
	b := Key{Capital: "london", CountryCode: "gb"}

	assert.Equal(t, true, a.Matches(b))
	assert.Equal(t, false, a.Matches(Key{Capital: "Paris", CountryCode: "FR"}))

	// Keys are usable as map keys once normalized.
	seen := map[Key]bool{a.Normalized(): true}
	assert.Equal(t, true, seen[b.Normalized()])
}

func TestValidateCountry(t *testing.T) {
	area := 242495.0
	c := Country{
		Area:        &area,
		Capital:     "London",
		Latitude:    54,
		Longitude:   -2,
		CountryCode: "GB",
		FlagURL:     "https://flagcdn.com/gb.svg",
		Languages:   []Language{{Name: "English", NativeName: "English"}},
		Name:        "United Kingdom of Great Britain and Northern Ireland",
		Population:  67215293,
	}
	assert.Equal(t, nil, Validate(c))

	c.Population = -1
	if err := Validate(c); !errors.Is(err, ErrMalformedRecord) {
		t.Fatalf("expected malformed record for negative population, got %v", err)
	}

	c.Population = 1
	c.Languages = []Language{{NativeName: "svenska"}}
	if err := Validate(c); err == nil {
		t.Fatal("expected error for language without name")
	}
}

func TestUniqueLanguages(t *testing.T) {
	in := []Language{
		{Name: "English", NativeName: "English"},
		{Name: "Welsh", NativeName: "Cymraeg"},
		{Name: "English", NativeName: "English"},
	}
	out := UniqueLanguages(in)
	assert.Equal(t, 2, len(out))
	assert.Equal(t, "Welsh", out[1].Name)
}

func TestFormatOffset(t *testing.T) {
	cases := map[int]string{
		0:      "UTC+00:00",
		7200:   "UTC+02:00",
		-18000: "UTC-05:00",
		19800:  "UTC+05:30",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatOffset(in))
	}
}
