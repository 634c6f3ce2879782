package model

import "testing"

func TestRangeString(t *testing.T) {
	tests := []struct {
		r    Range
		want string
	}{
		{Range{}, "HEAD"},
		{Range{From: "v1.0.0"}, "v1.0.0..HEAD"},
		{Range{From: "abc123", To: "def456"}, "abc123..def456"},
		{Range{To: "main"}, "main"},
	}
	for _, tc := range tests {
		if got := tc.r.String(); got != tc.want {
			t.Fatalf("%+v.String() = %q, want %q", tc.r, got, tc.want)
		}
	}
}

func TestTagFor(t *testing.T) {
	if got := TagFor("1.3.0"); got != "v1.3.0" {
		t.Fatalf("TagFor = %q", got)
	}
}
