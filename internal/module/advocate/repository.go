package advocate

import (
	"context"
	"errors"

	"github.com/simp-lee/advocates/internal/domain"
	"github.com/simp-lee/advocates/internal/pkg"
	"gorm.io/gorm"
)

const seedBatchSize = 100

// advocateRepository implements domain.AdvocateRepository using GORM.
type advocateRepository struct {
	db *gorm.DB
}

// NewAdvocateRepository creates a new AdvocateRepository backed by the given GORM database.
func NewAdvocateRepository(db *gorm.DB) domain.AdvocateRepository {
	return &advocateRepository{db: db}
}

// Create inserts a new advocate into the database.
func (r *advocateRepository) Create(ctx context.Context, advocate *domain.Advocate) error {
	if err := r.db.WithContext(ctx).Create(advocate).Error; err != nil {
		return mapError(err)
	}
	return nil
}

// CreateBatch inserts advocates in one transaction.
func (r *advocateRepository) CreateBatch(ctx context.Context, advocates []domain.Advocate) error {
	if len(advocates) == 0 {
		return nil
	}
	err := pkg.WithTx(ctx, r.db, func(tx *gorm.DB) error {
		return tx.CreateInBatches(advocates, seedBatchSize).Error
	})
	return mapError(err)
}

// GetByID retrieves an advocate by its primary key.
func (r *advocateRepository) GetByID(ctx context.Context, id uint) (*domain.Advocate, error) {
	var advocate domain.Advocate
	if err := r.db.WithContext(ctx).First(&advocate, id).Error; err != nil {
		return nil, mapError(err)
	}
	return &advocate, nil
}

// Delete removes an advocate by ID.
func (r *advocateRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.Advocate{}, id)
	if result.Error != nil {
		return mapError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// FindPage runs one bounded keyset read.
func (r *advocateRepository) FindPage(ctx context.Context, q domain.KeysetQuery) ([]domain.Advocate, error) {
	var advocates []domain.Advocate
	if err := r.db.WithContext(ctx).
		Scopes(pkg.KeysetScope(q)).
		Find(&advocates).Error; err != nil {
		return nil, mapError(err)
	}
	return advocates, nil
}

// Exists reports whether at least one row satisfies q.
func (r *advocateRepository) Exists(ctx context.Context, q domain.KeysetQuery) (bool, error) {
	q.Limit = 1
	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&domain.Advocate{}).
		Scopes(pkg.KeysetScope(q)).
		Pluck(pkg.IDColumn, &ids).Error; err != nil {
		return false, mapError(err)
	}
	return len(ids) > 0, nil
}

// mapError converts GORM errors to domain errors.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	var appErr *domain.AppError
	if errors.As(err, &appErr) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return domain.NewAppError(domain.CodeInternal, "database error", err)
}
