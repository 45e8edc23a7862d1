package common

import "testing"

func TestNormalizeHostname(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		root   string
		want   string
		wantOK bool
	}{
		{"plain subdomain", "stay.example.com", "example.com", "stay.example.com", true},
		{"uppercase", "STAY.Example.COM", "example.com", "stay.example.com", true},
		{"wildcard stripped", "*.villas.example.com", "example.com", "villas.example.com", true},
		{"trailing dot stripped", "beach.example.com.", "example.com", "beach.example.com", true},
		{"root itself", "example.com", "example.com", "example.com", true},
		{"wrong root", "stay.other.com", "example.com", "", false},
		{"suffix lookalike", "evil-example.com", "example.com", "", false},
		{"empty", "", "example.com", "", false},
		{"contains space", "bad host.example.com", "example.com", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeHostname(tt.input, tt.root)
			if ok != tt.wantOK {
				t.Fatalf("NormalizeHostname(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("NormalizeHostname(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSubdomainLabel(t *testing.T) {
	if got := SubdomainLabel("stay.example.com", "example.com"); got != "stay" {
		t.Errorf("SubdomainLabel() = %q, want %q", got, "stay")
	}
	if got := SubdomainLabel("a.b.example.com", "example.com"); got != "a" {
		t.Errorf("SubdomainLabel() = %q, want %q", got, "a")
	}
	if got := SubdomainLabel("example.com", "example.com"); got != "" {
		t.Errorf("SubdomainLabel() on root = %q, want empty", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("hello", 10); got != "hello" {
		t.Errorf("Truncate() = %q, want unchanged", got)
	}
	if got := Truncate("hello world", 5); got != "hello" {
		t.Errorf("Truncate() = %q, want %q", got, "hello")
	}
	// Multibyte runes must not be split.
	if got := Truncate("héllo", 2); got != "hé" {
		t.Errorf("Truncate() = %q, want %q", got, "hé")
	}
}
