package database

import "testing"

func TestExtractVersion(t *testing.T) {
	tests := []struct {
		filename string
		want     int
	}{
		{"001_create_leads.up.sql", 1},
		{"042_add_index.up.sql", 42},
		{"no_version.up.sql", 0},
		{"_leading_underscore.up.sql", 0},
		{"abc_letters.up.sql", 0},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			if got := extractVersion(tt.filename); got != tt.want {
				t.Errorf("extractVersion(%q) = %d, want %d", tt.filename, got, tt.want)
			}
		})
	}
}
