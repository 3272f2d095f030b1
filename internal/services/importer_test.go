package services

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

const sampleCropsCSV = `Crop Name,Category,Duration (days),Season,Water Requirement,Soil Type,Daily Market Crop,Home Growable,Market Demand Index,Cultivation Instructions,Seed Varieties,Expected Yield,Seed Price
Tomato,vegetable,75,kharif,medium,loamy;clay,Yes,Yes,82,1-10:Raise seedlings in trays;11-60:Transplant and irrigate weekly,Arka Rakshak;Pusa Ruby,25,650
Wheat,grain,,rabi,,,No,No,,,,,
,vegetable,60,kharif,low,sandy,Yes,No,50,,,,
`

func TestParseCropsCSV(t *testing.T) {
	catalog, err := ParseCropsCSV(strings.NewReader(sampleCropsCSV))
	if err != nil {
		t.Fatalf("ParseCropsCSV failed: %v", err)
	}

	// The nameless third row is skipped.
	if len(catalog.Crops) != 2 {
		t.Fatalf("expected 2 crops, got %d", len(catalog.Crops))
	}

	tomato := catalog.Crops[0]
	if tomato.Name != "Tomato" || tomato.Category != "vegetable" {
		t.Fatalf("unexpected first crop: %+v", tomato)
	}
	if tomato.DurationDays != 75 {
		t.Fatalf("expected duration 75, got %d", tomato.DurationDays)
	}
	if !tomato.DailyMarketCrop || !tomato.HomeGrowable {
		t.Fatalf("Yes cells should parse to true: %+v", tomato)
	}
	if tomato.MarketDemandIndex != 82 {
		t.Fatalf("expected demand index 82, got %v", tomato.MarketDemandIndex)
	}
	if len(tomato.SoilType) != 2 || tomato.SoilType[0] != "loamy" || tomato.SoilType[1] != "clay" {
		t.Fatalf("semicolon soil list not split: %v", tomato.SoilType)
	}

	wheat := catalog.Crops[1]
	if wheat.DurationDays != 90 {
		t.Fatalf("blank duration should default to 90, got %d", wheat.DurationDays)
	}
	if wheat.WaterRequirement != "medium" {
		t.Fatalf("blank water requirement should default to medium, got %q", wheat.WaterRequirement)
	}
	if wheat.MarketDemandIndex != 50 {
		t.Fatalf("blank demand index should default to 50, got %v", wheat.MarketDemandIndex)
	}
	if len(wheat.SoilType) != 1 || wheat.SoilType[0] != "loamy" {
		t.Fatalf("blank soil should default to loamy, got %v", wheat.SoilType)
	}
	if wheat.DailyMarketCrop {
		t.Fatalf("No cell should parse to false")
	}

	if len(catalog.Instructions) != 2 {
		t.Fatalf("expected 2 instructions from the phase cell, got %d", len(catalog.Instructions))
	}
	first := catalog.Instructions[0]
	if first.CropID != tomato.ID {
		t.Fatalf("instruction not linked to its crop")
	}
	if first.CultivationPhase != "Phase 1" || first.DayRange != "1-10" || first.Instructions != "Raise seedlings in trays" {
		t.Fatalf("unexpected first instruction: %+v", first)
	}
	if catalog.Instructions[1].DayRange != "11-60" {
		t.Fatalf("unexpected second instruction range: %q", catalog.Instructions[1].DayRange)
	}

	if len(catalog.Seeds) != 2 {
		t.Fatalf("expected 2 seed varieties, got %d", len(catalog.Seeds))
	}
	seed := catalog.Seeds[0]
	if seed.SeedVariety != "Arka Rakshak" || seed.CropID != tomato.ID {
		t.Fatalf("unexpected first seed: %+v", seed)
	}
	if seed.AvgYieldPerAcre != 25 || seed.PricePerKg != 650 {
		t.Fatalf("seed yield/price not taken from the row: %+v", seed)
	}
	if seed.BestSeason != "kharif" {
		t.Fatalf("seed season should follow the crop season, got %q", seed.BestSeason)
	}
}

func TestParseCropsCSVEmpty(t *testing.T) {
	if _, err := ParseCropsCSV(strings.NewReader("Crop Name,Category\n")); err == nil {
		t.Fatalf("header-only CSV should be an error")
	}
}

func TestBuildSeedCatalogShape(t *testing.T) {
	catalog := BuildSeedCatalog()
	if len(catalog.Crops) != 100 {
		t.Fatalf("expected 100 synthetic crops, got %d", len(catalog.Crops))
	}
	if len(catalog.Instructions) != 300 {
		t.Fatalf("expected 3 phases per crop, got %d", len(catalog.Instructions))
	}
	if len(catalog.Seeds) != 100 {
		t.Fatalf("expected 1 seed recommendation per crop, got %d", len(catalog.Seeds))
	}

	names := make(map[string]bool, len(catalog.Crops))
	categories := make(map[string]int)
	for _, crop := range catalog.Crops {
		if names[crop.Name] {
			t.Fatalf("duplicate crop name %q", crop.Name)
		}
		names[crop.Name] = true
		categories[crop.Category]++
		if crop.DurationDays <= 0 {
			t.Fatalf("crop %q has non-positive duration", crop.Name)
		}
		if len(crop.SoilType) == 0 || len(crop.ClimateTolerance) == 0 {
			t.Fatalf("crop %q missing soil/climate lists", crop.Name)
		}
	}
	if len(categories) != 10 {
		t.Fatalf("expected 10 categories, got %d", len(categories))
	}
	for category, count := range categories {
		if count != 10 {
			t.Fatalf("category %q has %d crops, want 10", category, count)
		}
	}

	instructionsByCrop := make(map[uuid.UUID]int)
	for _, instruction := range catalog.Instructions {
		instructionsByCrop[instruction.CropID]++
		if instruction.DayRange == "" || instruction.Instructions == "" {
			t.Fatalf("instruction for crop %v is incomplete", instruction.CropID)
		}
	}
	for _, crop := range catalog.Crops {
		if instructionsByCrop[crop.ID] != 3 {
			t.Fatalf("crop %q has %d phases, want 3", crop.Name, instructionsByCrop[crop.ID])
		}
	}

	for _, seed := range catalog.Seeds {
		if seed.GerminationRate < 80 || seed.GerminationRate >= 95 {
			t.Fatalf("germination rate out of derived range: %v", seed.GerminationRate)
		}
	}
}

func TestBuildSeedCatalogDeterministicFields(t *testing.T) {
	first := BuildSeedCatalog()
	second := BuildSeedCatalog()
	for i := range first.Crops {
		a, b := first.Crops[i], second.Crops[i]
		if a.Name != b.Name || a.Season != b.Season || a.DurationDays != b.DurationDays ||
			a.MarketDemandIndex != b.MarketDemandIndex || a.ProfitIndex != b.ProfitIndex {
			t.Fatalf("derived fields differ between runs for %q", a.Name)
		}
	}
	for i := range first.Seeds {
		if first.Seeds[i].SeedVariety != second.Seeds[i].SeedVariety ||
			first.Seeds[i].PricePerKg != second.Seeds[i].PricePerKg {
			t.Fatalf("seed fields differ between runs at index %d", i)
		}
	}
}
