package importer

import (
	"fmt"

	"github.com/kadro-api/internal/domain"
	"github.com/kadro-api/internal/orgchart"
)

// Resolver связывает табельные номера из строк импорта с идентификаторами записей
type Resolver struct {
	ranker *orgchart.Ranker
	newID  func() string
}

// NewResolver создаёт новый экземпляр резолвера
func NewResolver(ranker *orgchart.Ranker, newID func() string) *Resolver {
	return &Resolver{ranker: ranker, newID: newID}
}

// registry - сотрудники одной организации по табельному номеру
type registry map[string]*domain.Personnel

func newRegistry(personnel []domain.Personnel, org domain.Organization) registry {
	r := make(registry)
	for i := range personnel {
		p := &personnel[i]
		if p.Organization == org {
			r[p.RegistryNumber] = p
		}
	}
	return r
}

// ResolvePositions присваивает строкам идентификаторы и разрешает ссылки на
// назначенного сотрудника и руководителя. Неразрешённая ссылка даёт предупреждение
// и пустое значение, строка при этом не отбрасывается.
func (r *Resolver) ResolvePositions(
	cands []PositionCandidate,
	positions []domain.Position,
	personnel []domain.Personnel,
) ([]PositionCandidate, []Issue) {
	staff := newRegistry(personnel, domain.OrgMerkez)

	// рабочий набор: снимок плюс уже разобранные строки файла
	working := append([]domain.Position(nil), positions...)
	byID := make(map[string]int, len(working))
	byKey := make(map[string]string, len(working))
	for i := range working {
		byID[working[i].ID] = i
		byKey[working[i].Key()] = working[i].ID
	}

	var warnings []Issue
	out := make([]PositionCandidate, 0, len(cands))
	for _, c := range cands {
		key := c.Position.Key()
		id, ok := byKey[key]
		if !ok {
			id = r.newID()
			byKey[key] = id
		}
		c.Position.ID = id

		if c.Position.Status != domain.StatusVacant {
			var w *Issue
			c.Position.AssignedPersonnelID, w = r.assignee(staff, c.Row, c.AssigneeRegistryNumber)
			if w != nil {
				warnings = append(warnings, *w)
			}
		}

		if c.ManagerProvided {
			var w *Issue
			c.Position.ReportsTo, w = r.manager(staff, personnel, working, c)
			if w != nil {
				warnings = append(warnings, *w)
			}
		}

		if i, ok := byID[id]; ok {
			working[i] = mergePosition(working[i], c)
		} else {
			byID[id] = len(working)
			working = append(working, mergePosition(c.Position, c))
		}
		out = append(out, c)
	}
	return out, warnings
}

// ResolveTasra присваивает строкам идентификаторы и разрешает назначенного сотрудника
func (r *Resolver) ResolveTasra(
	cands []TasraCandidate,
	positions []domain.TasraPosition,
	personnel []domain.Personnel,
) ([]TasraCandidate, []Issue) {
	staff := newRegistry(personnel, domain.OrgTasra)

	byKey := make(map[string]string, len(positions))
	for i := range positions {
		byKey[positions[i].Key()] = positions[i].ID
	}

	var warnings []Issue
	out := make([]TasraCandidate, 0, len(cands))
	for _, c := range cands {
		key := c.Position.Key()
		id, ok := byKey[key]
		if !ok {
			id = r.newID()
			byKey[key] = id
		}
		c.Position.ID = id

		if c.Position.Status != domain.StatusVacant {
			var w *Issue
			c.Position.AssignedPersonnelID, w = r.assignee(staff, c.Row, c.AssigneeRegistryNumber)
			if w != nil {
				warnings = append(warnings, *w)
			}
		}
		out = append(out, c)
	}
	return out, warnings
}

func (r *Resolver) assignee(staff registry, row int, number string) (*string, *Issue) {
	if number == "" {
		return nil, nil
	}
	p, ok := staff[number]
	if !ok {
		return nil, &Issue{Row: row, Message: fmt.Sprintf("%q sicil numaralı personel bulunamadı, atama boş bırakıldı", number)}
	}
	id := p.ID
	return &id, nil
}

// manager находит должность, которую занимает руководитель.
// Если должностей несколько, берётся лучшая по сокращённой цепочке.
func (r *Resolver) manager(staff registry, personnel []domain.Personnel, working []domain.Position, c PositionCandidate) (*string, *Issue) {
	number := c.ManagerRegistryNumber
	if number == "" {
		return nil, nil
	}
	p, ok := staff[number]
	if !ok {
		return nil, &Issue{Row: c.Row, Message: fmt.Sprintf("%q sicil numaralı yönetici bulunamadı, bağlı olduğu pozisyon boş bırakıldı", number)}
	}

	var held []domain.Position
	for _, pos := range working {
		if pos.ID == c.Position.ID || pos.Status == domain.StatusVacant || pos.AssignedPersonnelID == nil {
			continue
		}
		if *pos.AssignedPersonnelID == p.ID {
			held = append(held, pos)
		}
	}
	if len(held) == 0 {
		return nil, &Issue{Row: c.Row, Message: fmt.Sprintf("%q sicil numaralı yöneticinin atandığı bir pozisyon yok, bağlı olduğu pozisyon boş bırakıldı", number)}
	}

	primary := r.ranker.PrimaryPositions(orgchart.PositionEntries(held, personnel))
	e, ok := primary[p.ID]
	if !ok {
		return nil, &Issue{Row: c.Row, Message: fmt.Sprintf("%q sicil numaralı yöneticinin pozisyonu belirlenemedi", number)}
	}
	id := e.ID
	return &id, nil
}
