package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/kadro-api/internal/domain"
	"github.com/kadro-api/internal/dto"
	"github.com/kadro-api/internal/orgchart"
	"github.com/kadro-api/internal/repository"
)

// TasraPositionService определяет интерфейс бизнес-логики для провинциальных должностей
type TasraPositionService interface {
	List(ctx context.Context) ([]orgchart.TasraRow, error)
	Create(ctx context.Context, req *dto.CreateTasraPositionRequest, actor string) (*domain.TasraPosition, error)
	Update(ctx context.Context, id string, req *dto.UpdateTasraPositionRequest, actor string) (*domain.TasraPosition, error)
	Delete(ctx context.Context, id string) error
}

type tasraPositionService struct {
	posRepo    repository.TasraPositionRepository
	personRepo repository.PersonnelRepository
	ranker     *orgchart.Ranker
}

// NewTasraPositionService создаёт новый экземпляр сервиса
func NewTasraPositionService(
	posRepo repository.TasraPositionRepository,
	personRepo repository.PersonnelRepository,
	ranker *orgchart.Ranker,
) TasraPositionService {
	return &tasraPositionService{
		posRepo:    posRepo,
		personRepo: personRepo,
		ranker:     ranker,
	}
}

func (s *tasraPositionService) List(ctx context.Context) ([]orgchart.TasraRow, error) {
	positions, err := s.posRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	personnel, err := s.personRepo.List(ctx, domain.OrgTasra)
	if err != nil {
		return nil, err
	}
	return s.ranker.OrderTasraPositions(positions, personnel), nil
}

func (s *tasraPositionService) Create(ctx context.Context, req *dto.CreateTasraPositionRequest, actor string) (*domain.TasraPosition, error) {
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return nil, err
	}

	p := &domain.TasraPosition{
		ID:                    uuid.NewString(),
		Name:                  req.Name,
		Unit:                  req.Unit,
		DutyLocation:          req.DutyLocation,
		Status:                domain.PositionStatus(req.Status),
		OriginalTitle:         req.OriginalTitle,
		ActingAuthority:       req.ActingAuthority,
		ReceivesProxyPay:      req.ReceivesProxyPay,
		HasDelegatedAuthority: req.HasDelegatedAuthority,
		AssignedPersonnelID:   reference(req.AssignedPersonnelID),
		StartDate:             startDate,
	}
	p.Normalize()

	if p.AssignedPersonnelID != nil {
		if err := checkAssignee(ctx, s.personRepo, *p.AssignedPersonnelID, domain.OrgTasra); err != nil {
			return nil, err
		}
	}

	exists, err := s.posRepo.ExistsByKey(ctx, p.Key(), nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicatePosition
	}

	p.LastModifiedBy, p.LastModifiedAt = actor, now()
	if err := s.posRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *tasraPositionService) Update(ctx context.Context, id string, req *dto.UpdateTasraPositionRequest, actor string) (*domain.TasraPosition, error) {
	p, err := s.posRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Unit != nil {
		p.Unit = *req.Unit
	}
	if req.DutyLocation != nil {
		p.DutyLocation = *req.DutyLocation
	}
	if req.Status != nil {
		p.Status = domain.PositionStatus(*req.Status)
	}
	if req.OriginalTitle != nil {
		p.OriginalTitle = req.OriginalTitle
	}
	if req.ActingAuthority != nil {
		p.ActingAuthority = req.ActingAuthority
	}
	if req.ReceivesProxyPay != nil {
		p.ReceivesProxyPay = *req.ReceivesProxyPay
	}
	if req.HasDelegatedAuthority != nil {
		p.HasDelegatedAuthority = *req.HasDelegatedAuthority
	}
	if req.StartDate != nil {
		if p.StartDate, err = parseDate(req.StartDate); err != nil {
			return nil, err
		}
	}
	if req.AssignedPersonnelID != nil {
		personID := reference(req.AssignedPersonnelID)
		if personID != nil {
			if err := checkAssignee(ctx, s.personRepo, *personID, domain.OrgTasra); err != nil {
				return nil, err
			}
		}
		p.AssignedPersonnelID = personID
	}

	p.Normalize()

	exists, err := s.posRepo.ExistsByKey(ctx, p.Key(), &id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicatePosition
	}

	p.LastModifiedBy, p.LastModifiedAt = actor, now()
	if err := s.posRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *tasraPositionService) Delete(ctx context.Context, id string) error {
	return s.posRepo.Delete(ctx, id)
}
