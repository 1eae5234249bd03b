package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/kadro-api/internal/domain"
)

// batchSize - размер пачки при массовой вставке
const batchSize = 200

// PositionRepository определяет интерфейс для работы с должностями центральной организации
type PositionRepository interface {
	List(ctx context.Context) ([]domain.Position, error)
	GetByID(ctx context.Context, id string) (*domain.Position, error)
	Create(ctx context.Context, p *domain.Position) error
	Update(ctx context.Context, p *domain.Position) error
	Delete(ctx context.Context, id string) error
	ExistsByKey(ctx context.Context, key string, excludeID *string) (bool, error)
	ApplyBatch(ctx context.Context, inserts, updates []domain.Position) error
}

type positionRepository struct {
	db *gorm.DB
}

// NewPositionRepository создаёт новый экземпляр репозитория
func NewPositionRepository(db *gorm.DB) PositionRepository {
	return &positionRepository{db: db}
}

func (r *positionRepository) List(ctx context.Context) ([]domain.Position, error) {
	var positions []domain.Position
	err := r.db.WithContext(ctx).Order("id ASC").Find(&positions).Error
	return positions, err
}

func (r *positionRepository) GetByID(ctx context.Context, id string) (*domain.Position, error) {
	var p domain.Position
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPositionNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *positionRepository) Create(ctx context.Context, p *domain.Position) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *positionRepository) Update(ctx context.Context, p *domain.Position) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// Delete удаляет должность и снимает ссылку reports_to у подчинённых в одной транзакции
func (r *positionRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ?", id).Delete(&domain.Position{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrPositionNotFound
		}

		return tx.Model(&domain.Position{}).
			Where("reports_to = ?", id).
			Update("reports_to", nil).Error
	})
}

// ExistsByKey проверяет занятость естественного ключа. Ключ сравнивается после
// турецкого приведения регистра, поэтому сравнение выполняется на стороне приложения.
func (r *positionRepository) ExistsByKey(ctx context.Context, key string, excludeID *string) (bool, error) {
	var positions []domain.Position
	query := r.db.WithContext(ctx).Select("id", "department", "name", "duty_location")
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

// ApplyBatch записывает план импорта целиком или не записывает ничего
func (r *positionRepository) ApplyBatch(ctx context.Context, inserts, updates []domain.Position) error {
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
