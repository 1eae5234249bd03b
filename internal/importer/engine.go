package importer

import (
	"github.com/kadro-api/internal/domain"
	"github.com/kadro-api/internal/orgchart"
)

// Snapshot - текущее состояние коллекций, с которым сверяется импорт
type Snapshot struct {
	Positions      []domain.Position
	TasraPositions []domain.TasraPosition
	Personnel      []domain.Personnel
}

// Engine проводит файл через нормализацию, разрешение ссылок и планирование.
// Не выполняет ввода-вывода: снимок на входе, план на выходе.
type Engine struct {
	normalizer *Normalizer
	ranker     *orgchart.Ranker
}

// NewEngine создаёт новый экземпляр движка импорта
func NewEngine(ranker *orgchart.Ranker) *Engine {
	return &Engine{normalizer: NewNormalizer(), ranker: ranker}
}

// PlanPositions строит план импорта должностей центральной организации
func (e *Engine) PlanPositions(grid [][]any, snap Snapshot, opts Options) (Plan[domain.Position], error) {
	opts = opts.withDefaults()

	cands, errs, err := e.normalizer.NormalizePositions(grid)
	if err != nil {
		return Plan[domain.Position]{}, err
	}
	resolved, warnings := NewResolver(e.ranker, opts.NewID).ResolvePositions(cands, snap.Positions, snap.Personnel)

	plan := PlanPositions(resolved, snap.Positions, opts)
	return finish(plan, errs, warnings), nil
}

// PlanTasraPositions строит план импорта провинциальных должностей
func (e *Engine) PlanTasraPositions(grid [][]any, snap Snapshot, opts Options) (Plan[domain.TasraPosition], error) {
	opts = opts.withDefaults()

	cands, errs, err := e.normalizer.NormalizeTasraPositions(grid)
	if err != nil {
		return Plan[domain.TasraPosition]{}, err
	}
	resolved, warnings := NewResolver(e.ranker, opts.NewID).ResolveTasra(cands, snap.TasraPositions, snap.Personnel)

	plan := PlanTasra(resolved, snap.TasraPositions, opts)
	return finish(plan, errs, warnings), nil
}

// PlanPersonnel строит план импорта сотрудников организации
func (e *Engine) PlanPersonnel(grid [][]any, org domain.Organization, snap Snapshot, opts Options) (Plan[domain.Personnel], error) {
	if !org.Valid() {
		return Plan[domain.Personnel]{}, domain.ErrInvalidOrganization
	}
	opts = opts.withDefaults()

	cands, errs, err := e.normalizer.NormalizePersonnel(grid, org)
	if err != nil {
		return Plan[domain.Personnel]{}, err
	}

	plan := PlanPersonnel(cands, snap.Personnel, opts)
	return finish(plan, errs, nil), nil
}

func finish[T any](plan Plan[T], errs, warnings []Issue) Plan[T] {
	plan.Errors = append(errs, plan.Errors...)
	plan.Warnings = append(warnings, plan.Warnings...)
	sortIssues(plan.Errors)
	sortIssues(plan.Warnings)
	return plan
}
