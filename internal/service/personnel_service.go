package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/kadro-api/internal/domain"
	"github.com/kadro-api/internal/dto"
	"github.com/kadro-api/internal/orgchart"
	"github.com/kadro-api/internal/repository"
)

// PersonnelService определяет интерфейс бизнес-логики для сотрудников
type PersonnelService interface {
	List(ctx context.Context, org domain.Organization) ([]orgchart.PersonnelRow, error)
	Create(ctx context.Context, req *dto.CreatePersonnelRequest, actor string) (*domain.Personnel, error)
	Delete(ctx context.Context, id string) error
}

type personnelService struct {
	personRepo repository.PersonnelRepository
	posRepo    repository.PositionRepository
	tasraRepo  repository.TasraPositionRepository
	ranker     *orgchart.Ranker
}

// NewPersonnelService создаёт новый экземпляр сервиса
func NewPersonnelService(
	personRepo repository.PersonnelRepository,
	posRepo repository.PositionRepository,
	tasraRepo repository.TasraPositionRepository,
	ranker *orgchart.Ranker,
) PersonnelService {
	return &personnelService{
		personRepo: personRepo,
		posRepo:    posRepo,
		tasraRepo:  tasraRepo,
		ranker:     ranker,
	}
}

// List возвращает сотрудников организации в порядке их основных должностей
func (s *personnelService) List(ctx context.Context, org domain.Organization) ([]orgchart.PersonnelRow, error) {
	if !org.Valid() {
		return nil, domain.ErrInvalidOrganization
	}

	personnel, err := s.personRepo.List(ctx, org)
	if err != nil {
		return nil, err
	}

	var entries []orgchart.Entry
	switch org {
	case domain.OrgMerkez:
		positions, err := s.posRepo.List(ctx)
		if err != nil {
			return nil, err
		}
		entries = orgchart.PositionEntries(positions, personnel)
	case domain.OrgTasra:
		positions, err := s.tasraRepo.List(ctx)
		if err != nil {
			return nil, err
		}
		entries = orgchart.TasraEntries(positions, personnel)
	}

	return s.ranker.RankPersonnel(personnel, entries), nil
}

func (s *personnelService) Create(ctx context.Context, req *dto.CreatePersonnelRequest, actor string) (*domain.Personnel, error) {
	org := domain.Organization(req.Organization)
	if !org.Valid() {
		return nil, domain.ErrInvalidOrganization
	}
	registry := strings.TrimSpace(req.RegistryNumber)

	// Проверяем уникальность табельного номера в пределах организации
	exists, err := s.personRepo.ExistsByRegistry(ctx, org, registry)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateRegistry
	}

	dateOfBirth, err := parseDate(req.DateOfBirth)
	if err != nil {
		return nil, err
	}

	p := &domain.Personnel{
		ID:             uuid.NewString(),
		Organization:   org,
		FirstName:      strings.TrimSpace(req.FirstName),
		LastName:       strings.TrimSpace(req.LastName),
		Unvan:          reference(req.Unvan),
		RegistryNumber: registry,
		Status:         domain.PersonnelStatus(req.Status),
		Email:          reference(req.Email),
		Phone:          reference(req.Phone),
		PhotoURL:       reference(req.PhotoURL),
		DateOfBirth:    dateOfBirth,
		LastModifiedBy: actor,
		LastModifiedAt: now(),
	}

	if err := s.personRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *personnelService) Delete(ctx context.Context, id string) error {
	return s.personRepo.Delete(ctx, id)
}
