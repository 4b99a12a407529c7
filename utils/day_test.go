package utils

import (
	"testing"
	"time"
)

func TestLocationOrUTC(t *testing.T) {
	if loc := LocationOrUTC(""); loc != time.UTC {
		t.Errorf("empty name: got %v, want UTC", loc)
	}
	if loc := LocationOrUTC("Not/AZone"); loc != time.UTC {
		t.Errorf("unknown name: got %v, want UTC", loc)
	}
	loc := LocationOrUTC("Asia/Tokyo")
	if loc.String() != "Asia/Tokyo" {
		t.Errorf("got %v, want Asia/Tokyo", loc)
	}
}
