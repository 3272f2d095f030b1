package services

import (
	"testing"

	"github.com/rythumitra/rythumitra-backend/internal/types"
)

func TestSuitabilityScoreBase(t *testing.T) {
	crop := &types.Crop{Name: "Wheat"}
	score := SuitabilityScore(crop, SuitabilityCriteria{SoilType: "loamy", Season: "rabi", Location: "Guntur"})
	if score != 70 {
		t.Fatalf("expected base score 70, got %d", score)
	}
}

func TestSuitabilityScoreBonuses(t *testing.T) {
	crop := &types.Crop{
		Name:                     "Tomato",
		DailyMarketCrop:          true,
		IntercroppingPossibility: "Good with root crops",
		MarketDemandIndex:        85,
	}
	criteria := SuitabilityCriteria{
		SoilType:      "loamy",
		Season:        "kharif",
		Location:      "Guntur",
		DailyMarket:   true,
		MultiCropping: true,
	}
	score := SuitabilityScore(crop, criteria)
	if score != 99 {
		t.Fatalf("expected 70+15+10+5 clamped to 99, got %d", score)
	}
}

func TestSuitabilityScorePartialBonuses(t *testing.T) {
	crop := &types.Crop{
		Name:              "Tomato",
		DailyMarketCrop:   true,
		MarketDemandIndex: 85,
	}
	criteria := SuitabilityCriteria{
		SoilType:    "loamy",
		Season:      "kharif",
		Location:    "Guntur",
		DailyMarket: true,
	}
	if score := SuitabilityScore(crop, criteria); score != 90 {
		t.Fatalf("expected 70+15+5 = 90, got %d", score)
	}
}

func TestSuitabilityScoreIgnoresUnrequestedBonuses(t *testing.T) {
	crop := &types.Crop{
		Name:                     "Tomato",
		DailyMarketCrop:          true,
		IntercroppingPossibility: "Good with root crops",
	}
	criteria := SuitabilityCriteria{SoilType: "loamy", Season: "kharif", Location: "Guntur"}
	if score := SuitabilityScore(crop, criteria); score != 70 {
		t.Fatalf("flags off should give base score, got %d", score)
	}
}

func TestSuitabilityScoreDemandBoundary(t *testing.T) {
	crop := &types.Crop{Name: "Onion", MarketDemandIndex: 70}
	criteria := SuitabilityCriteria{SoilType: "loamy", Season: "rabi", Location: "Guntur"}
	if score := SuitabilityScore(crop, criteria); score != 70 {
		t.Fatalf("demand index exactly 70 earns no bonus, got %d", score)
	}
	crop.MarketDemandIndex = 70.5
	if score := SuitabilityScore(crop, criteria); score != 75 {
		t.Fatalf("demand index above 70 earns +5, got %d", score)
	}
}

func TestScoreCropsSortsDescendingAndStable(t *testing.T) {
	crops := []*types.Crop{
		{Name: "A"},
		{Name: "B", DailyMarketCrop: true},
		{Name: "C"},
		{Name: "D", MarketDemandIndex: 90},
	}
	criteria := SuitabilityCriteria{
		SoilType:    "loamy",
		Season:      "kharif",
		Location:    "Guntur",
		DailyMarket: true,
	}
	scored := ScoreCrops(crops, criteria)
	if len(scored) != 4 {
		t.Fatalf("expected 4 scored crops, got %d", len(scored))
	}
	// B(85), D(75), then A and C tied at 70 in catalog order.
	wantOrder := []string{"B", "D", "A", "C"}
	for i, want := range wantOrder {
		if scored[i].Crop.Name != want {
			t.Fatalf("position %d: expected %s, got %s", i, want, scored[i].Crop.Name)
		}
	}
	for i := 1; i < len(scored); i++ {
		if scored[i].Suitability > scored[i-1].Suitability {
			t.Fatalf("scores not descending at position %d", i)
		}
	}
}
