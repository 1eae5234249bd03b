package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/kadro-api/internal/domain"
	"github.com/kadro-api/internal/importer"
	"github.com/kadro-api/internal/repository"
)

// ImportService определяет интерфейс массовой загрузки таблиц
type ImportService interface {
	Import(ctx context.Context, kind importer.Kind, org domain.Organization, filename string, r io.Reader, actor string) (*importer.Report, error)
}

type importService struct {
	posRepo      repository.PositionRepository
	tasraRepo    repository.TasraPositionRepository
	personRepo   repository.PersonnelRepository
	engine       *importer.Engine
	previewLimit int
	logger       *slog.Logger
}

// NewImportService создаёт новый экземпляр сервиса импорта
func NewImportService(
	posRepo repository.PositionRepository,
	tasraRepo repository.TasraPositionRepository,
	personRepo repository.PersonnelRepository,
	engine *importer.Engine,
	previewLimit int,
	logger *slog.Logger,
) ImportService {
	return &importService{
		posRepo:      posRepo,
		tasraRepo:    tasraRepo,
		personRepo:   personRepo,
		engine:       engine,
		previewLimit: previewLimit,
		logger:       logger,
	}
}

// Import читает файл, строит план по текущему снимку и применяет его одной транзакцией на коллекцию
func (s *importService) Import(ctx context.Context, kind importer.Kind, org domain.Organization, filename string, r io.Reader, actor string) (*importer.Report, error) {
	grid, err := importer.ReadSheet(filename, r)
	if err != nil {
		return nil, err
	}

	opts := importer.Options{Actor: actor, Now: now()}

	var report importer.Report
	switch kind {
	case importer.KindPosition:
		report, err = s.importPositions(ctx, grid, opts)
	case importer.KindTasraPosition:
		report, err = s.importTasra(ctx, grid, opts)
	case importer.KindPersonnel:
		report, err = s.importPersonnel(ctx, grid, org, opts)
	default:
		return nil, fmt.Errorf("unknown import kind %q", kind)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("import completed",
		slog.String("kind", string(kind)),
		slog.String("file", filename),
		slog.String("actor", actor),
		slog.Int("inserted", report.Inserted),
		slog.Int("updated", report.Updated),
		slog.Int("unchanged", report.Unchanged),
		slog.Int("skipped", report.Skipped),
		slog.Int("errored", report.Errored),
	)
	return &report, nil
}

func (s *importService) importPositions(ctx context.Context, grid [][]any, opts importer.Options) (importer.Report, error) {
	positions, err := s.posRepo.List(ctx)
	if err != nil {
		return importer.Report{}, err
	}
	personnel, err := s.personRepo.ListAll(ctx)
	if err != nil {
		return importer.Report{}, err
	}

	plan, err := s.engine.PlanPositions(grid, importer.Snapshot{Positions: positions, Personnel: personnel}, opts)
	if err != nil {
		return importer.Report{}, err
	}
	if err := s.posRepo.ApplyBatch(ctx, plan.Inserts, plan.Updates); err != nil {
		return importer.Report{}, fmt.Errorf("failed to apply position import: %w", err)
	}
	return importer.NewReport(plan, s.previewLimit), nil
}

func (s *importService) importTasra(ctx context.Context, grid [][]any, opts importer.Options) (importer.Report, error) {
	positions, err := s.tasraRepo.List(ctx)
	if err != nil {
		return importer.Report{}, err
	}
	personnel, err := s.personRepo.ListAll(ctx)
	if err != nil {
		return importer.Report{}, err
	}

	plan, err := s.engine.PlanTasraPositions(grid, importer.Snapshot{TasraPositions: positions, Personnel: personnel}, opts)
	if err != nil {
		return importer.Report{}, err
	}
	if err := s.tasraRepo.ApplyBatch(ctx, plan.Inserts, plan.Updates); err != nil {
		return importer.Report{}, fmt.Errorf("failed to apply tasra import: %w", err)
	}
	return importer.NewReport(plan, s.previewLimit), nil
}

func (s *importService) importPersonnel(ctx context.Context, grid [][]any, org domain.Organization, opts importer.Options) (importer.Report, error) {
	if !org.Valid() {
		return importer.Report{}, domain.ErrInvalidOrganization
	}
	personnel, err := s.personRepo.List(ctx, org)
	if err != nil {
		return importer.Report{}, err
	}

	plan, err := s.engine.PlanPersonnel(grid, org, importer.Snapshot{Personnel: personnel}, opts)
	if err != nil {
		return importer.Report{}, err
	}
	if err := s.personRepo.ApplyBatch(ctx, plan.Inserts); err != nil {
		return importer.Report{}, fmt.Errorf("failed to apply personnel import: %w", err)
	}
	return importer.NewReport(plan, s.previewLimit), nil
}
