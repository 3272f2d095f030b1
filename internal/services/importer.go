package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/rythumitra/rythumitra-backend/internal/logger"
	"github.com/rythumitra/rythumitra-backend/internal/repos"
	"github.com/rythumitra/rythumitra-backend/internal/types"
)

// ImportSummary reports what a bulk load wrote.
type ImportSummary struct {
	Crops               int `json:"crops"`
	Instructions        int `json:"cultivation_instructions"`
	SeedRecommendations int `json:"seed_recommendations"`
}

// ImportService loads the crop catalog in bulk, either from the
// curated CSV or from the deterministic synthetic seeder.
type ImportService interface {
	ImportCrops(ctx context.Context, csvPath string) (*ImportSummary, error)
	SeedDatabase(ctx context.Context) (*ImportSummary, error)
}

type importService struct {
	db              *gorm.DB
	log             *logger.Logger
	cropRepo        repos.CropRepo
	instructionRepo repos.CultivationInstructionRepo
	seedRepo        repos.SeedRecommendationRepo
}

func NewImportService(
	db *gorm.DB,
	log *logger.Logger,
	cropRepo repos.CropRepo,
	instructionRepo repos.CultivationInstructionRepo,
	seedRepo repos.SeedRecommendationRepo,
) ImportService {
	serviceLog := log.With("service", "ImportService")
	return &importService{
		db:              db,
		log:             serviceLog,
		cropRepo:        cropRepo,
		instructionRepo: instructionRepo,
		seedRepo:        seedRepo,
	}
}

// ParsedCatalog is the intermediate result of parsing the crops CSV.
type ParsedCatalog struct {
	Crops        []*types.Crop
	Instructions []*types.CultivationInstruction
	Seeds        []*types.SeedRecommendation
}

func (is *importService) ImportCrops(ctx context.Context, csvPath string) (*ImportSummary, error) {
	if csvPath == "" {
		return nil, fmt.Errorf("CSV path not configured")
	}
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, fmt.Errorf("Failed to open crops CSV: %w", err)
	}
	defer file.Close()

	catalog, err := ParseCropsCSV(file)
	if err != nil {
		return nil, err
	}
	is.log.Info("Parsed crops CSV", "crops", len(catalog.Crops), "instructions", len(catalog.Instructions), "seeds", len(catalog.Seeds))
	return is.load(ctx, catalog)
}

// load upserts crops first so the dependent rows have their parent,
// then writes instructions and seed recommendations concurrently.
func (is *importService) load(ctx context.Context, catalog *ParsedCatalog) (*ImportSummary, error) {
	if err := is.cropRepo.UpsertByName(ctx, nil, catalog.Crops); err != nil {
		return nil, fmt.Errorf("Failed to upsert crops: %w", err)
	}

	// An upsert against an existing name keeps the old primary key, so
	// remap the dependent rows onto the canonical catalog ids.
	all, err := is.cropRepo.GetAll(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("Failed to reload crop catalog: %w", err)
	}
	idByName := make(map[string]uuid.UUID, len(all))
	for _, crop := range all {
		idByName[crop.Name] = crop.ID
	}
	nameByStagedID := make(map[uuid.UUID]string, len(catalog.Crops))
	for _, crop := range catalog.Crops {
		nameByStagedID[crop.ID] = crop.Name
	}
	remap := func(stagedID uuid.UUID) (uuid.UUID, bool) {
		name, ok := nameByStagedID[stagedID]
		if !ok {
			return uuid.Nil, false
		}
		canonical, ok := idByName[name]
		return canonical, ok
	}
	instructions := make([]*types.CultivationInstruction, 0, len(catalog.Instructions))
	for _, instruction := range catalog.Instructions {
		if canonical, ok := remap(instruction.CropID); ok {
			instruction.CropID = canonical
			instructions = append(instructions, instruction)
		}
	}
	seeds := make([]*types.SeedRecommendation, 0, len(catalog.Seeds))
	for _, seed := range catalog.Seeds {
		if canonical, ok := remap(seed.CropID); ok {
			seed.CropID = canonical
			seeds = append(seeds, seed)
		}
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		if _, gErr := is.instructionRepo.Create(groupCtx, nil, instructions); gErr != nil {
			return fmt.Errorf("Failed to insert cultivation instructions: %w", gErr)
		}
		return nil
	})
	group.Go(func() error {
		if _, gErr := is.seedRepo.Create(groupCtx, nil, seeds); gErr != nil {
			return fmt.Errorf("Failed to insert seed recommendations: %w", gErr)
		}
		return nil
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}

	summary := &ImportSummary{
		Crops:               len(catalog.Crops),
		Instructions:        len(instructions),
		SeedRecommendations: len(seeds),
	}
	is.log.Info("Catalog import complete", "crops", summary.Crops, "instructions", summary.Instructions, "seeds", summary.SeedRecommendations)
	return summary, nil
}

// ParseCropsCSV reads the curated catalog format: one crop per row,
// semicolon-separated list cells, cultivation phases encoded as
// "range:details;range:details".
func ParseCropsCSV(r io.Reader) (*ParsedCatalog, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("Failed to parse CSV: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("CSV has no data rows")
	}

	headers := records[0]
	index := make(map[string]int, len(headers))
	for i, header := range headers {
		index[strings.TrimSpace(header)] = i
	}
	field := func(row []string, names ...string) string {
		for _, name := range names {
			if i, ok := index[name]; ok && i < len(row) {
				return strings.TrimSpace(row[i])
			}
		}
		return ""
	}

	catalog := &ParsedCatalog{}
	for _, row := range records[1:] {
		name := field(row, "Crop Name", "name")
		if name == "" {
			continue
		}
		cropID := uuid.New()
		crop := &types.Crop{
			ID:                       cropID,
			Name:                     name,
			Category:                 defaultString(field(row, "Category", "category"), "other"),
			DurationDays:             parseIntDefault(field(row, "Duration (days)", "duration_days"), 90),
			Season:                   defaultString(field(row, "Season", "season"), "year-round"),
			WaterRequirement:         defaultString(field(row, "Water Requirement", "water_requirement"), "medium"),
			ProfitIndex:              defaultString(field(row, "Profit Index", "profit_index"), "medium"),
			SoilType:                 splitList(field(row, "Soil Type", "soil_type"), []string{"loamy"}),
			DailyMarketCrop:          parseYes(field(row, "Daily Market Crop", "daily_market_crop")),
			HomeGrowable:             parseYes(field(row, "Home Growable", "home_growable")),
			MarketDemandIndex:        parseFloatDefault(field(row, "Market Demand Index", "market_demand_index"), 50),
			RestaurantUsageIndex:     parseFloatDefault(field(row, "Restaurant Usage Index", "restaurant_usage_index"), 30),
			HealthBenefits:           field(row, "Health Benefits", "health_benefits"),
			MedicalBenefits:          field(row, "Medical Benefits", "medical_benefits"),
			Vitamins:                 field(row, "Vitamins", "vitamins"),
			Proteins:                 field(row, "Proteins", "proteins"),
			IntercroppingPossibility: field(row, "Intercropping Possibility", "intercropping_possibility"),
		}
		catalog.Crops = append(catalog.Crops, crop)

		if phases := field(row, "Cultivation Instructions"); phases != "" {
			for phaseIdx, phase := range strings.Split(phases, ";") {
				parts := strings.SplitN(phase, ":", 2)
				if len(parts) != 2 {
					continue
				}
				catalog.Instructions = append(catalog.Instructions, &types.CultivationInstruction{
					ID:               uuid.New(),
					CropID:           cropID,
					CultivationPhase: fmt.Sprintf("Phase %d", phaseIdx+1),
					DayRange:         strings.TrimSpace(parts[0]),
					Instructions:     strings.TrimSpace(parts[1]),
					Tips:             pq.StringArray{},
				})
			}
		}

		if varieties := field(row, "Seed Varieties"); varieties != "" {
			for _, variety := range strings.Split(varieties, ";") {
				variety = strings.TrimSpace(variety)
				if variety == "" {
					continue
				}
				catalog.Seeds = append(catalog.Seeds, &types.SeedRecommendation{
					ID:              uuid.New(),
					CropID:          cropID,
					SeedVariety:     variety,
					BestSeason:      defaultString(crop.Season, "All"),
					AvgYieldPerAcre: parseFloatDefault(field(row, "Expected Yield"), 20),
					PricePerKg:      parseFloatDefault(field(row, "Seed Price"), 500),
				})
			}
		}
	}
	return catalog, nil
}

// seedCategories is the synthetic catalog the seeder materializes. A
// deliberately small slice of the curated dataset, enough for every
// category to show up in the app.
var seedCategories = []struct {
	category string
	names    []string
}{
	{"vegetable", []string{"Tomato", "Potato", "Onion", "Cabbage", "Cauliflower", "Brinjal", "Okra", "Cucumber", "Carrot", "Spinach"}},
	{"fruit", []string{"Mango", "Banana", "Papaya", "Guava", "Pomegranate", "Orange", "Lemon", "Watermelon", "Grapes", "Pineapple"}},
	{"grain", []string{"Rice", "Wheat", "Maize", "Bajra", "Jowar", "Ragi", "Barley", "Oats", "Quinoa", "Amaranth"}},
	{"pulse", []string{"Chickpea", "Pigeon Pea", "Green Gram", "Black Gram", "Red Lentil", "Kidney Bean", "Soybean", "Horse Gram", "Cowpea", "Moth Bean"}},
	{"spice", []string{"Turmeric", "Cumin", "Coriander Seed", "Fennel", "Mustard", "Black Pepper", "Cardamom", "Clove", "Ginger", "Garlic"}},
	{"oilseed", []string{"Groundnut", "Sunflower", "Safflower", "Sesame", "Linseed", "Castor", "Niger Seed", "Rapeseed", "Flaxseed", "Chia Seed"}},
	{"plantation", []string{"Tea", "Coffee", "Rubber", "Cocoa", "Cashew", "Areca Nut", "Sugarcane", "Cotton", "Jute", "Bamboo"}},
	{"medicinal", []string{"Aloe Vera", "Ashwagandha", "Brahmi", "Tulsi", "Neem", "Giloy", "Shatavari", "Stevia", "Lemongrass", "Mint"}},
	{"fodder", []string{"Lucerne", "Berseem", "Napier Grass", "Guinea Grass", "Para Grass", "Stylo", "Sudan Grass", "Azolla", "Sesbania", "Gliricidia"}},
	{"flower", []string{"Rose", "Marigold", "Jasmine", "Chrysanthemum", "Tuberose", "Gladiolus", "Gerbera", "Carnation", "Lily", "Dahlia"}},
}

// SeedDatabase writes a deterministic synthetic catalog: every field
// derives from the crop's position, so re-running produces the same
// rows and the name upsert keeps them stable.
func (is *importService) SeedDatabase(ctx context.Context) (*ImportSummary, error) {
	catalog := BuildSeedCatalog()
	is.log.Info("Seeding database", "crops", len(catalog.Crops))
	return is.load(ctx, catalog)
}

// BuildSeedCatalog generates the synthetic crops with index-derived
// attributes and a three-phase cultivation roadmap each.
func BuildSeedCatalog() *ParsedCatalog {
	catalog := &ParsedCatalog{}
	cropIndex := 0
	seasons := []string{"kharif", "rabi", "zaid", "year-round"}
	levels := []string{"high", "medium", "low"}
	intercrops := []string{
		"Excellent with legumes and leafy vegetables",
		"Good with root crops",
		"Compatible with cereals",
	}

	for _, group := range seedCategories {
		for _, name := range group.names {
			baseDuration := 180
			switch group.category {
			case "grain":
				baseDuration = 120
			case "pulse":
				baseDuration = 90
			case "vegetable":
				baseDuration = 60
			case "fruit":
				baseDuration = 365
			}
			durationDays := baseDuration + cropIndex%30
			soil := pq.StringArray{"sandy", "loamy"}
			climate := pq.StringArray{"temperate", "arid"}
			if cropIndex%2 == 0 {
				soil = pq.StringArray{"loamy", "clay"}
				climate = pq.StringArray{"tropical", "subtropical"}
			}
			restaurantIndex := 30.0
			if group.category == "vegetable" || group.category == "spice" {
				restaurantIndex = float64(70 + cropIndex%30)
			}

			cropID := uuid.New()
			catalog.Crops = append(catalog.Crops, &types.Crop{
				ID:                       cropID,
				Name:                     name,
				Category:                 group.category,
				DurationDays:             durationDays,
				Season:                   seasons[cropIndex%4],
				WaterRequirement:         levels[cropIndex%3],
				ProfitIndex:              levels[cropIndex%3],
				SoilType:                 soil,
				ClimateTolerance:         climate,
				DailyMarketCrop:          group.category == "vegetable" || group.category == "fruit",
				HomeGrowable:             group.category == "vegetable" || group.category == "spice" || group.category == "medicinal",
				MarketDemandIndex:        float64(50 + cropIndex%50),
				RestaurantUsageIndex:     restaurantIndex,
				HealthBenefits:           "Rich in essential nutrients, antioxidants, and dietary fiber. Helps boost immunity and supports overall health.",
				MedicalBenefits:          "Known for anti-inflammatory properties, aids digestion, regulates blood sugar, and supports cardiovascular health.",
				Vitamins:                 "Rich in Vitamins A, B-complex, C, D, E, and K along with essential minerals.",
				Proteins:                 fmt.Sprintf("Contains %dg protein per 100g serving.", 2+cropIndex%20),
				IntercroppingPossibility: intercrops[cropIndex%3],
			})

			sowingEnd := durationDays / 6
			growthEnd := durationDays * 2 / 3
			phases := []struct {
				phase        string
				dayRange     string
				instructions string
			}{
				{"Land Preparation & Sowing", fmt.Sprintf("1-%d", sowingEnd), fmt.Sprintf("Prepare the field, treat seeds, and sow %s at the recommended spacing.", name)},
				{"Growth & Maintenance", fmt.Sprintf("%d-%d", sowingEnd+1, growthEnd), "Irrigate on schedule, apply fertilizer in split doses, and scout for pests weekly."},
				{"Harvest", fmt.Sprintf("%d-%d", growthEnd+1, durationDays), fmt.Sprintf("Harvest %s at maturity and dry or grade the produce for market.", name)},
			}
			for _, p := range phases {
				catalog.Instructions = append(catalog.Instructions, &types.CultivationInstruction{
					ID:               uuid.New(),
					CropID:           cropID,
					CultivationPhase: p.phase,
					DayRange:         p.dayRange,
					Instructions:     p.instructions,
					Tips:             pq.StringArray{},
				})
			}

			catalog.Seeds = append(catalog.Seeds, &types.SeedRecommendation{
				ID:              uuid.New(),
				CropID:          cropID,
				SeedVariety:     fmt.Sprintf("%s Improved-%d", name, 1+cropIndex%5),
				Source:          "State Agricultural University",
				BestSeason:      seasons[cropIndex%4],
				MaturityDays:    durationDays,
				AvgYieldPerAcre: float64(10 + cropIndex%40),
				GerminationRate: float64(80 + cropIndex%15),
				PricePerKg:      float64(200 + cropIndex%800),
				SoilSuitability: soil,
				ClimateZones:    climate,
			})
			cropIndex++
		}
	}
	return catalog
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func parseIntDefault(value string, fallback int) int {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return parsed
}

func parseFloatDefault(value string, fallback float64) float64 {
	parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseYes(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "yes", "true", "1":
		return true
	}
	return false
}

func splitList(value string, fallback []string) pq.StringArray {
	if value == "" {
		return pq.StringArray(fallback)
	}
	parts := strings.Split(value, ";")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return pq.StringArray(fallback)
	}
	return pq.StringArray(out)
}
