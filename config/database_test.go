package config

import (
	"testing"

	"gorm.io/gorm/logger"
)

func TestGormConfigTranslatesDriverErrors(t *testing.T) {
	cfg := newGormConfig(logger.Default)
	if !cfg.TranslateError {
		t.Fatal("TranslateError must be enabled so duplicate-key violations map to gorm.ErrDuplicatedKey")
	}
	if !cfg.DisableForeignKeyConstraintWhenMigrating {
		t.Error("expected foreign key constraint creation disabled during migration")
	}
}

func TestToGormLogLevel(t *testing.T) {
	cases := []struct {
		in   string
		want logger.LogLevel
	}{
		{"debug", logger.Info},
		{"info", logger.Warn},
		{"", logger.Warn},
		{"warn", logger.Warn},
		{"error", logger.Error},
		{"silent", logger.Silent},
		{"bogus", logger.Warn},
	}
	for _, c := range cases {
		if got := toGormLogLevel(c.in); got != c.want {
			t.Errorf("toGormLogLevel(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}
