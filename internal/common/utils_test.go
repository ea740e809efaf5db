package common

import "testing"

func TestEqualsAny(t *testing.T) {
	tests := []struct {
		s          string
		candidates []string
		want       bool
	}{
		{"london", []string{"Paris", "London"}, true},
		{"  LONDON ", []string{"London"}, true},
		{"Lon", []string{"London"}, false},
		{"", []string{""}, false},
		{"UK", nil, false},
	}
	for _, tt := range tests {
		if got := EqualsAny(tt.s, tt.candidates...); got != tt.want {
			t.Errorf("EqualsAny(%q, %v) = %v, want %v", tt.s, tt.candidates, got, tt.want)
		}
	}
}
