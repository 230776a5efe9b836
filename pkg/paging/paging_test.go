package paging

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		page, limit     string
		wantPage, wantL int
		wantSkip        int64
	}{
		{"", "", 1, 20, 0},
		{"2", "10", 2, 10, 10},
		{"0", "0", 1, 20, 0},
		{"-5", "-1", 1, 20, 0},
		{"abc", "xyz", 1, 20, 0},
		{"3", "500", 3, 50, 100},
	}

	for _, tt := range tests {
		p := Normalize(tt.page, tt.limit)
		if p.Page != tt.wantPage || p.Limit != tt.wantL || p.Skip() != tt.wantSkip {
			t.Fatalf("Normalize(%q, %q) = %+v (skip %d), want page=%d limit=%d skip=%d",
				tt.page, tt.limit, p, p.Skip(), tt.wantPage, tt.wantL, tt.wantSkip)
		}
	}
}
