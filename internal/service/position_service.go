package service

import (
	"context"
	"errors"
	"io"

	"github.com/google/uuid"

	"github.com/kadro-api/internal/domain"
	"github.com/kadro-api/internal/dto"
	"github.com/kadro-api/internal/orgchart"
	"github.com/kadro-api/internal/repository"
)

// PositionService определяет интерфейс бизнес-логики для должностей центральной организации
type PositionService interface {
	List(ctx context.Context) ([]orgchart.PositionRow, error)
	Tree(ctx context.Context) ([]*orgchart.Node, error)
	Create(ctx context.Context, req *dto.CreatePositionRequest, actor string) (*domain.Position, error)
	Update(ctx context.Context, id string, req *dto.UpdatePositionRequest, actor string) (*domain.Position, error)
	Delete(ctx context.Context, id string) error
	Export(ctx context.Context, w io.Writer) error
}

type positionService struct {
	posRepo    repository.PositionRepository
	personRepo repository.PersonnelRepository
	ranker     *orgchart.Ranker
}

// NewPositionService создаёт новый экземпляр сервиса
func NewPositionService(
	posRepo repository.PositionRepository,
	personRepo repository.PersonnelRepository,
	ranker *orgchart.Ranker,
) PositionService {
	return &positionService{
		posRepo:    posRepo,
		personRepo: personRepo,
		ranker:     ranker,
	}
}

func (s *positionService) snapshot(ctx context.Context) ([]domain.Position, []domain.Personnel, error) {
	positions, err := s.posRepo.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	personnel, err := s.personRepo.List(ctx, domain.OrgMerkez)
	if err != nil {
		return nil, nil, err
	}
	return positions, personnel, nil
}

func (s *positionService) List(ctx context.Context) ([]orgchart.PositionRow, error) {
	positions, personnel, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return s.ranker.OrderPositions(positions, personnel), nil
}

func (s *positionService) Tree(ctx context.Context) ([]*orgchart.Node, error) {
	positions, personnel, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return s.ranker.BuildTree(positions, personnel), nil
}

func (s *positionService) Create(ctx context.Context, req *dto.CreatePositionRequest, actor string) (*domain.Position, error) {
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return nil, err
	}

	p := &domain.Position{
		ID:                  uuid.NewString(),
		Name:                req.Name,
		Department:          req.Department,
		DutyLocation:        req.DutyLocation,
		Status:              domain.PositionStatus(req.Status),
		OriginalTitle:       req.OriginalTitle,
		ReportsTo:           reference(req.ReportsTo),
		AssignedPersonnelID: reference(req.AssignedPersonnelID),
		StartDate:           startDate,
	}
	p.Normalize()

	// Проверяем существование руководящей должности
	if p.ReportsTo != nil {
		if err := s.checkManager(ctx, *p.ReportsTo); err != nil {
			return nil, err
		}
	}

	if p.AssignedPersonnelID != nil {
		if err := checkAssignee(ctx, s.personRepo, *p.AssignedPersonnelID, domain.OrgMerkez); err != nil {
			return nil, err
		}
	}

	// Проверяем уникальность естественного ключа
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

func (s *positionService) Update(ctx context.Context, id string, req *dto.UpdatePositionRequest, actor string) (*domain.Position, error) {
	p, err := s.posRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Department != nil {
		p.Department = *req.Department
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
	if req.StartDate != nil {
		if p.StartDate, err = parseDate(req.StartDate); err != nil {
			return nil, err
		}
	}

	if req.ReportsTo != nil {
		parentID := reference(req.ReportsTo)
		if parentID != nil {
			// Нельзя подчинить должность самой себе
			if *parentID == id {
				return nil, domain.ErrSelfReference
			}
			if err := s.checkManager(ctx, *parentID); err != nil {
				return nil, err
			}

			// Проверка на цикл: новый руководитель не может быть подчинённым этой должности
			positions, err := s.posRepo.List(ctx)
			if err != nil {
				return nil, err
			}
			if orgchart.CreatesCycle(positions, id, *parentID) {
				return nil, domain.ErrCyclicReference
			}
		}
		p.ReportsTo = parentID
	}

	if req.AssignedPersonnelID != nil {
		personID := reference(req.AssignedPersonnelID)
		if personID != nil {
			if err := checkAssignee(ctx, s.personRepo, *personID, domain.OrgMerkez); err != nil {
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

func (s *positionService) Delete(ctx context.Context, id string) error {
	return s.posRepo.Delete(ctx, id)
}

func (s *positionService) Export(ctx context.Context, w io.Writer) error {
	positions, personnel, err := s.snapshot(ctx)
	if err != nil {
		return err
	}
	rows := s.ranker.OrderPositions(positions, personnel)
	tree := orgchart.Flatten(s.ranker.BuildTree(positions, personnel))
	return writePositionWorkbook(w, rows, tree)
}

func (s *positionService) checkManager(ctx context.Context, id string) error {
	if _, err := s.posRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, domain.ErrPositionNotFound) {
			return domain.ErrManagerNotFound
		}
		return err
	}
	return nil
}

// checkAssignee проверяет, что сотрудник существует и принадлежит нужной организации
func checkAssignee(ctx context.Context, repo repository.PersonnelRepository, id string, org domain.Organization) error {
	person, err := repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if person.Organization != org {
		return domain.ErrAssignmentOutsideScope
	}
	return nil
}
