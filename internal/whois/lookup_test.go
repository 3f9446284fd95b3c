package whois

import (
	"context"
	"testing"
)

func TestExtractDomain(t *testing.T) {
	tests := []struct {
		website string
		want    string
	}{
		{"https://example.com", "example.com"},
		{"http://www.example.com/about", "example.com"},
		{"example.com", "example.com"},
		{"www.example.com:8080/path?q=1", "example.com"},
		{"  https://sub.example.co.uk  ", "sub.example.co.uk"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := ExtractDomain(tt.website); got != tt.want {
			t.Errorf("ExtractDomain(%q) = %q, want %q", tt.website, got, tt.want)
		}
	}
}

func TestUnavailableReportsUnknown(t *testing.T) {
	created, err := Unavailable{}.CreationDate(context.Background(), "example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created != nil {
		t.Errorf("got %v, want nil creation date", created)
	}
}
