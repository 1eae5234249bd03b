package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/kadro-api/internal/domain"
)

// PersonnelRepository определяет интерфейс для работы с сотрудниками
type PersonnelRepository interface {
	List(ctx context.Context, org domain.Organization) ([]domain.Personnel, error)
	ListAll(ctx context.Context) ([]domain.Personnel, error)
	GetByID(ctx context.Context, id string) (*domain.Personnel, error)
	Create(ctx context.Context, p *domain.Personnel) error
	Delete(ctx context.Context, id string) error
	ExistsByRegistry(ctx context.Context, org domain.Organization, registryNumber string) (bool, error)
	ApplyBatch(ctx context.Context, inserts []domain.Personnel) error
}

type personnelRepository struct {
	db *gorm.DB
}

// NewPersonnelRepository создаёт новый экземпляр репозитория
func NewPersonnelRepository(db *gorm.DB) PersonnelRepository {
	return &personnelRepository{db: db}
}

func (r *personnelRepository) List(ctx context.Context, org domain.Organization) ([]domain.Personnel, error) {
	var personnel []domain.Personnel
	err := r.db.WithContext(ctx).
		Where("organization = ?", org).
		Order("registry_number ASC").
		Find(&personnel).Error
	return personnel, err
}

func (r *personnelRepository) ListAll(ctx context.Context) ([]domain.Personnel, error) {
	var personnel []domain.Personnel
	err := r.db.WithContext(ctx).Order("organization ASC, registry_number ASC").Find(&personnel).Error
	return personnel, err
}

func (r *personnelRepository) GetByID(ctx context.Context, id string) (*domain.Personnel, error) {
	var p domain.Personnel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPersonnelNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *personnelRepository) Create(ctx context.Context, p *domain.Personnel) error {
	err := r.db.WithContext(ctx).Create(p).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrDuplicateRegistry
	}
	return err
}

// Delete удаляет сотрудника и снимает его назначения в обеих организациях
func (r *personnelRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ?", id).Delete(&domain.Personnel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrPersonnelNotFound
		}

		if err := tx.Model(&domain.Position{}).
			Where("assigned_personnel_id = ?", id).
			Update("assigned_personnel_id", nil).Error; err != nil {
			return err
		}
		return tx.Model(&domain.TasraPosition{}).
			Where("assigned_personnel_id = ?", id).
			Update("assigned_personnel_id", nil).Error
	})
}

func (r *personnelRepository) ExistsByRegistry(ctx context.Context, org domain.Organization, registryNumber string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Personnel{}).
		Where("organization = ? AND registry_number = ?", org, registryNumber).
		Count(&count).Error
	return count > 0, err
}

func (r *personnelRepository) ApplyBatch(ctx context.Context, inserts []domain.Personnel) error {
	if len(inserts) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(inserts, batchSize).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrDuplicateRegistry
	}
	return err
}
