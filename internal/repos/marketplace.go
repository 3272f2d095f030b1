package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rythumitra/rythumitra-backend/internal/logger"
	"github.com/rythumitra/rythumitra-backend/internal/types"
)

type MarketplacePriceRepo interface {
	Upsert(ctx context.Context, tx *gorm.DB, price *types.MarketplacePrice) error
	ListByRegion(ctx context.Context, tx *gorm.DB, region string) ([]*types.MarketplacePrice, error)
}

type marketplacePriceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMarketplacePriceRepo(db *gorm.DB, baseLog *logger.Logger) MarketplacePriceRepo {
	repoLog := baseLog.With("repo", "MarketplacePriceRepo")
	return &marketplacePriceRepo{db: db, log: repoLog}
}

func (mr *marketplacePriceRepo) Upsert(ctx context.Context, tx *gorm.DB, price *types.MarketplacePrice) error {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "crop_id"}, {Name: "region"}},
			UpdateAll: true,
		}).
		Create(price).Error
}

func (mr *marketplacePriceRepo) ListByRegion(ctx context.Context, tx *gorm.DB, region string) ([]*types.MarketplacePrice, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	query := transaction.WithContext(ctx).Preload("Crop")
	if region != "" {
		query = query.Where("region = ?", region)
	}
	var results []*types.MarketplacePrice
	if err := query.
		Order("updated_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

type PriceHistoryRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.PriceHistory) ([]*types.PriceHistory, error)
	GetByCropID(ctx context.Context, tx *gorm.DB, cropID uuid.UUID) ([]*types.PriceHistory, error)
	ListRecent(ctx context.Context, tx *gorm.DB, limit int) ([]*types.PriceHistory, error)
}

type priceHistoryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPriceHistoryRepo(db *gorm.DB, baseLog *logger.Logger) PriceHistoryRepo {
	repoLog := baseLog.With("repo", "PriceHistoryRepo")
	return &priceHistoryRepo{db: db, log: repoLog}
}

func (pr *priceHistoryRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.PriceHistory) ([]*types.PriceHistory, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	if len(rows) == 0 {
		return []*types.PriceHistory{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListRecent returns the newest history rows across all crops; the AI
// crop recommendation uses them as market context in its prompt.
func (pr *priceHistoryRepo) ListRecent(ctx context.Context, tx *gorm.DB, limit int) ([]*types.PriceHistory, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var results []*types.PriceHistory
	if err := transaction.WithContext(ctx).
		Preload("Crop").
		Order("year DESC, month DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *priceHistoryRepo) GetByCropID(ctx context.Context, tx *gorm.DB, cropID uuid.UUID) ([]*types.PriceHistory, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var results []*types.PriceHistory
	if err := transaction.WithContext(ctx).
		Where("crop_id = ?", cropID).
		Order("year ASC, month ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
