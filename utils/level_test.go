package utils

import "testing"

func TestLevelForXP(t *testing.T) {
	cases := []struct {
		totalXP int
		want    int
	}{
		{0, 1},
		{50, 1},
		{99, 1},
		{100, 2},
		{199, 2},
		{200, 3},
		{1000, 11},
		{-10, 1},
	}
	for _, c := range cases {
		if got := LevelForXP(c.totalXP); got != c.want {
			t.Errorf("LevelForXP(%d) = %d, want %d", c.totalXP, got, c.want)
		}
	}
}

func TestXPToNextLevel(t *testing.T) {
	cases := []struct {
		totalXP int
		want    int
	}{
		{0, 100},
		{25, 75},
		{99, 1},
		{100, 100},
		{150, 50},
	}
	for _, c := range cases {
		if got := XPToNextLevel(c.totalXP); got != c.want {
			t.Errorf("XPToNextLevel(%d) = %d, want %d", c.totalXP, got, c.want)
		}
	}
}
