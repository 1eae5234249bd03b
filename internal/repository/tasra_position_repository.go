package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/kadro-api/internal/domain"
)

// TasraPositionRepository определяет интерфейс для работы с провинциальными должностями
type TasraPositionRepository interface {
	List(ctx context.Context) ([]domain.TasraPosition, error)
	GetByID(ctx context.Context, id string) (*domain.TasraPosition, error)
	Create(ctx context.Context, p *domain.TasraPosition) error
	Update(ctx context.Context, p *domain.TasraPosition) error
	Delete(ctx context.Context, id string) error
	ExistsByKey(ctx context.Context, key string, excludeID *string) (bool, error)
	ApplyBatch(ctx context.Context, inserts, updates []domain.TasraPosition) error
}

type tasraPositionRepository struct {
	db *gorm.DB
}

// NewTasraPositionRepository создаёт новый экземпляр репозитория
func NewTasraPositionRepository(db *gorm.DB) TasraPositionRepository {
	return &tasraPositionRepository{db: db}
}

func (r *tasraPositionRepository) List(ctx context.Context) ([]domain.TasraPosition, error) {
	var positions []domain.TasraPosition
	err := r.db.WithContext(ctx).Order("id ASC").Find(&positions).Error
	return positions, err
}

func (r *tasraPositionRepository) GetByID(ctx context.Context, id string) (*domain.TasraPosition, error) {
	var p domain.TasraPosition
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPositionNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *tasraPositionRepository) Create(ctx context.Context, p *domain.TasraPosition) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *tasraPositionRepository) Update(ctx context.Context, p *domain.TasraPosition) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *tasraPositionRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.TasraPosition{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrPositionNotFound
	}
	return nil
}

func (r *tasraPositionRepository) ExistsByKey(ctx context.Context, key string, excludeID *string) (bool, error) {
	var positions []domain.TasraPosition
	query := r.db.WithContext(ctx).Select("id", "unit", "duty_location")
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	if err := query.Find(&positions).Error; err != nil {
		return false, err
	}

	for i := range positions {
		if positions[i].Key() == key {
			return true, nil
		}
	}
	return false, nil
}

func (r *tasraPositionRepository) ApplyBatch(ctx context.Context, inserts, updates []domain.TasraPosition) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(inserts) > 0 {
			if err := tx.CreateInBatches(inserts, batchSize).Error; err != nil {
				return err
			}
		}
		for i := range updates {
			if err := tx.Save(&updates[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
