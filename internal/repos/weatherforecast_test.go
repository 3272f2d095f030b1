package repos

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"

	"github.com/rythumitra/rythumitra-backend/internal/logger"
	"github.com/rythumitra/rythumitra-backend/internal/types"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("failed to create test logger: %v", err)
	}
	return log
}

// newDryRunDB opens a driverless gorm session that builds statements
// without executing them, and captures the generated insert SQL.
func newDryRunDB(t *testing.T) (*gorm.DB, *string) {
	t.Helper()
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{
		DryRun:                 true,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("failed to open dry-run db: %v", err)
	}
	var captured string
	err = db.Callback().Create().After("gorm:create").Register("capture_sql", func(tx *gorm.DB) {
		captured = tx.Statement.SQL.String()
	})
	if err != nil {
		t.Fatalf("failed to register capture callback: %v", err)
	}
	return db, &captured
}

func TestWeatherUpsertTargetsLocationAndDate(t *testing.T) {
	db, captured := newDryRunDB(t)
	repo := NewWeatherForecastRepo(db, newTestLogger(t))

	rows := []*types.WeatherForecast{{
		ID:              uuid.New(),
		Location:        "Guntur",
		ForecastDate:    time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		TemperatureHigh: 36,
		TemperatureLow:  26,
		Condition:       "partly cloudy",
	}}
	if err := repo.Upsert(context.Background(), nil, rows); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	sql := *captured
	if sql == "" {
		t.Fatalf("no insert statement was built")
	}
	// A duplicate (location, forecast_date) must overwrite the cached
	// row, not duplicate it or silently keep the stale one.
	if !strings.Contains(sql, "ON CONFLICT (`location`,`forecast_date`)") {
		t.Fatalf("conflict target is not (location, forecast_date): %s", sql)
	}
	if !strings.Contains(sql, "DO UPDATE SET") {
		t.Fatalf("conflict must update the existing row, got: %s", sql)
	}
	if strings.Contains(sql, "DO NOTHING") {
		t.Fatalf("conflict must not drop the refreshed forecast: %s", sql)
	}
}

func TestWeatherUpsertEmptySliceIsNoop(t *testing.T) {
	db, captured := newDryRunDB(t)
	repo := NewWeatherForecastRepo(db, newTestLogger(t))

	if err := repo.Upsert(context.Background(), nil, nil); err != nil {
		t.Fatalf("empty upsert should succeed: %v", err)
	}
	if *captured != "" {
		t.Fatalf("empty upsert must not hit the database, built: %s", *captured)
	}
}
