package importer

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/kadro-api/internal/domain"
	"github.com/kadro-api/internal/orgchart"
)

// Options - входные данные планирования, которые не берутся из файла
type Options struct {
	Actor string
	Now   time.Time
	NewID func() string
}

func (o Options) withDefaults() Options {
	if o.NewID == nil {
		o.NewID = uuid.NewString
	}
	if o.Now.IsZero() {
		o.Now = time.Now().UTC()
	}
	return o
}

// Plan - результат планирования: непересекающиеся пакеты вставок и обновлений
type Plan[T any] struct {
	Inserts   []T
	Updates   []T
	Unchanged int
	Skipped   int
	Errors    []Issue
	Warnings  []Issue
}

// planned - запись, накопленная по естественному ключу
type planned[T any] struct {
	record T
	origin *T
	row    int
}

// mergePosition накладывает строку импорта на запись: поля строки побеждают,
// ссылки переносятся только из присутствующих колонок.
func mergePosition(base domain.Position, c PositionCandidate) domain.Position {
	out := base
	out.Name = c.Position.Name
	out.Department = c.Position.Department
	out.DutyLocation = c.Position.DutyLocation
	out.Status = c.Position.Status
	out.OriginalTitle = c.Position.OriginalTitle
	out.StartDate = c.Position.StartDate
	if c.AssigneeProvided {
		out.AssignedPersonnelID = c.Position.AssignedPersonnelID
	}
	if c.ManagerProvided {
		out.ReportsTo = c.Position.ReportsTo
	}
	out.Normalize()
	return out
}

func mergeTasra(base domain.TasraPosition, c TasraCandidate) domain.TasraPosition {
	out := base
	out.Name = c.Position.Name
	out.Unit = c.Position.Unit
	out.DutyLocation = c.Position.DutyLocation
	out.Status = c.Position.Status
	out.OriginalTitle = c.Position.OriginalTitle
	out.ActingAuthority = c.Position.ActingAuthority
	out.ReceivesProxyPay = c.Position.ReceivesProxyPay
	out.HasDelegatedAuthority = c.Position.HasDelegatedAuthority
	out.StartDate = c.Position.StartDate
	if c.AssigneeProvided {
		out.AssignedPersonnelID = c.Position.AssignedPersonnelID
	}
	out.Normalize()
	return out
}

// PlanPositions делит строки на вставки и обновления по естественному ключу.
// Повтор ключа в файле сливается с более ранней строкой, обновления без изменений
// считаются в Unchanged. Ссылка на руководителя, замыкающая цикл, снимается с предупреждением.
func PlanPositions(cands []PositionCandidate, existing []domain.Position, opts Options) Plan[domain.Position] {
	opts = opts.withDefaults()

	byKey := make(map[string]*domain.Position, len(existing))
	for i := range existing {
		byKey[existing[i].Key()] = &existing[i]
	}

	var order []string
	acc := make(map[string]*planned[domain.Position])
	for _, c := range cands {
		key := c.Position.Key()
		if cur, ok := acc[key]; ok {
			cur.record = mergePosition(cur.record, c)
			cur.row = c.Row
			continue
		}

		entry := &planned[domain.Position]{row: c.Row}
		if origin, ok := byKey[key]; ok {
			entry.origin = origin
			entry.record = mergePosition(*origin, c)
		} else {
			base := c.Position
			if base.ID == "" {
				base.ID = opts.NewID()
			}
			entry.record = mergePosition(base, c)
		}
		acc[key] = entry
		order = append(order, key)
	}

	var plan Plan[domain.Position]

	lines := orgchart.NewReportingLines(existing)
	for _, key := range order {
		lines.Set(acc[key].record.ID, acc[key].record.ReportsTo)
	}
	for _, key := range order {
		e := acc[key]
		if e.record.ReportsTo == nil || !lines.CreatesCycle(e.record.ID, *e.record.ReportsTo) {
			continue
		}
		e.record.ReportsTo = nil
		lines.Set(e.record.ID, nil)
		plan.Warnings = append(plan.Warnings, Issue{
			Row:     e.row,
			Message: "Bağlı olduğu pozisyon döngü oluşturuyor, bağlantı kaldırıldı",
		})
	}

	for _, key := range order {
		e := acc[key]
		switch {
		case e.origin == nil:
			stampPosition(&e.record, opts)
			plan.Inserts = append(plan.Inserts, e.record)
		case samePosition(*e.origin, e.record):
			plan.Unchanged++
		default:
			stampPosition(&e.record, opts)
			plan.Updates = append(plan.Updates, e.record)
		}
	}
	return plan
}

// PlanTasra делит строки провинциальных должностей на вставки и обновления
func PlanTasra(cands []TasraCandidate, existing []domain.TasraPosition, opts Options) Plan[domain.TasraPosition] {
	opts = opts.withDefaults()

	byKey := make(map[string]*domain.TasraPosition, len(existing))
	for i := range existing {
		byKey[existing[i].Key()] = &existing[i]
	}

	var order []string
	acc := make(map[string]*planned[domain.TasraPosition])
	for _, c := range cands {
		key := c.Position.Key()
		if cur, ok := acc[key]; ok {
			cur.record = mergeTasra(cur.record, c)
			cur.row = c.Row
			continue
		}

		entry := &planned[domain.TasraPosition]{row: c.Row}
		if origin, ok := byKey[key]; ok {
			entry.origin = origin
			entry.record = mergeTasra(*origin, c)
		} else {
			base := c.Position
			if base.ID == "" {
				base.ID = opts.NewID()
			}
			entry.record = mergeTasra(base, c)
		}
		acc[key] = entry
		order = append(order, key)
	}

	var plan Plan[domain.TasraPosition]
	for _, key := range order {
		e := acc[key]
		switch {
		case e.origin == nil:
			e.record.LastModifiedBy, e.record.LastModifiedAt = opts.Actor, opts.Now
			plan.Inserts = append(plan.Inserts, e.record)
		case sameTasra(*e.origin, e.record):
			plan.Unchanged++
		default:
			e.record.LastModifiedBy, e.record.LastModifiedAt = opts.Actor, opts.Now
			plan.Updates = append(plan.Updates, e.record)
		}
	}
	return plan
}

// PlanPersonnel только добавляет сотрудников: совпадение табельного номера
// со снимком или с более ранней строкой считается пропуском, данные не перезаписываются.
func PlanPersonnel(cands []PersonnelCandidate, existing []domain.Personnel, opts Options) Plan[domain.Personnel] {
	opts = opts.withDefaults()

	seen := make(map[string]struct{}, len(existing)+len(cands))
	for i := range existing {
		seen[existing[i].Key()] = struct{}{}
	}

	var plan Plan[domain.Personnel]
	for _, c := range cands {
		p := c.Personnel
		key := p.Key()
		if _, dup := seen[key]; dup {
			plan.Skipped++
			continue
		}
		seen[key] = struct{}{}

		p.ID = opts.NewID()
		p.LastModifiedBy, p.LastModifiedAt = opts.Actor, opts.Now
		plan.Inserts = append(plan.Inserts, p)
	}
	return plan
}

func stampPosition(p *domain.Position, opts Options) {
	p.LastModifiedBy = opts.Actor
	p.LastModifiedAt = opts.Now
}

func samePosition(a, b domain.Position) bool {
	return a.ID == b.ID &&
		a.Name == b.Name &&
		a.Department == b.Department &&
		a.DutyLocation == b.DutyLocation &&
		a.Status == b.Status &&
		sameString(a.OriginalTitle, b.OriginalTitle) &&
		sameString(a.ReportsTo, b.ReportsTo) &&
		sameString(a.AssignedPersonnelID, b.AssignedPersonnelID) &&
		sameDay(a.StartDate, b.StartDate)
}

func sameTasra(a, b domain.TasraPosition) bool {
	return a.ID == b.ID &&
		a.Name == b.Name &&
		a.Unit == b.Unit &&
		a.DutyLocation == b.DutyLocation &&
		a.Status == b.Status &&
		sameString(a.OriginalTitle, b.OriginalTitle) &&
		sameString(a.ActingAuthority, b.ActingAuthority) &&
		a.ReceivesProxyPay == b.ReceivesProxyPay &&
		a.HasDelegatedAuthority == b.HasDelegatedAuthority &&
		sameString(a.AssignedPersonnelID, b.AssignedPersonnelID) &&
		sameDay(a.StartDate, b.StartDate)
}

func sameString(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// sameDay сравнивает даты по календарному дню; время и зона не учитываются
func sameDay(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// sortIssues упорядочивает замечания по номеру строки, сохраняя порядок внутри строки
func sortIssues(issues []Issue) {
	slices.SortStableFunc(issues, func(a, b Issue) int {
		return a.Row - b.Row
	})
}
