package controllers

import "testing"

func TestParsePagination(t *testing.T) {
	cases := []struct {
		page, size   string
		wantPage     int
		wantPageSize int
	}{
		{"", "", 1, 10},
		{"2", "20", 2, 20},
		{"0", "0", 1, 10},
		{"-1", "-5", 1, 10},
		{"abc", "xyz", 1, 10},
		{"3", "100", 3, 100},
		{"3", "101", 3, 10},
	}
	for _, c := range cases {
		page, size := parsePagination(c.page, c.size)
		if page != c.wantPage || size != c.wantPageSize {
			t.Errorf("parsePagination(%q, %q) = (%d, %d), want (%d, %d)",
				c.page, c.size, page, size, c.wantPage, c.wantPageSize)
		}
	}
}
