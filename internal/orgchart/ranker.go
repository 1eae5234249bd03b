package orgchart

import (
	"cmp"
	"math"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/kadro-api/internal/domain"
)

// Group - грубая группа должности в порядке приоритета
type Group int

const (
	GroupTop Group = iota
	GroupDeputy
	GroupOversight
	GroupFinance
	GroupOther
)

// Profile описывает правила группировки и ранги названий должностей
type Profile struct {
	TopTitle            string         `yaml:"top_title"`
	DeputyTitle         string         `yaml:"deputy_title"`
	OversightDepartment string         `yaml:"oversight_department"`
	FinanceDepartment   string         `yaml:"finance_department"`
	TitleRanks          map[string]int `yaml:"title_ranks"`
}

// DefaultProfile возвращает профиль, применяемый без файла конфигурации
func DefaultProfile() Profile {
	return Profile{
		TopTitle:            "Genel Müdür",
		DeputyTitle:         "Genel Müdür Yardımcısı",
		OversightDepartment: "Rehberlik ve Teftiş Başkanlığı",
		FinanceDepartment:   "Strateji Geliştirme Daire Başkanlığı",
		TitleRanks: map[string]int{
			"Kurul Başkanı":     1,
			"Daire Başkanı":     2,
			"Başkan Yardımcısı": 3,
			"Şube Müdürü":       4,
			"Müfettiş":          5,
			"Şef":               6,
		},
	}
}

// Entry - проекция должности, по которой строится порядок
type Entry struct {
	ID           string
	Title        string
	Department   string
	DutyLocation string
	Holder       *domain.Personnel

	index int
}

// Comparator сравнивает две записи, возвращая -1, 0 или 1
type Comparator func(a, b *Entry) int

// Chain объединяет компараторы лексикографически: следующий применяется только при равенстве
func Chain(cmps ...Comparator) Comparator {
	return func(a, b *Entry) int {
		for _, c := range cmps {
			if r := c(a, b); r != 0 {
				return r
			}
		}
		return 0
	}
}

// Ranker упорядочивает должности и сотрудников по профилю
type Ranker struct {
	profile Profile
}

// NewRanker создаёт новый экземпляр ранжировщика
func NewRanker(profile Profile) *Ranker {
	return &Ranker{profile: profile}
}

// GroupOf определяет группу записи
func (r *Ranker) GroupOf(e *Entry) Group {
	title := strings.TrimSpace(e.Title)
	dept := strings.TrimSpace(e.Department)
	switch {
	case r.profile.TopTitle != "" && title == r.profile.TopTitle:
		return GroupTop
	case r.profile.DeputyTitle != "" && title == r.profile.DeputyTitle:
		return GroupDeputy
	case r.profile.OversightDepartment != "" && dept == r.profile.OversightDepartment:
		return GroupOversight
	case r.profile.FinanceDepartment != "" && dept == r.profile.FinanceDepartment:
		return GroupFinance
	default:
		return GroupOther
	}
}

// TitleRank возвращает ранг названия; неизвестные названия идут после всех известных
func (r *Ranker) TitleRank(title string) int {
	if rank, ok := r.profile.TitleRanks[strings.TrimSpace(title)]; ok {
		return rank
	}
	return math.MaxInt
}

func (r *Ranker) byGroup(a, b *Entry) int {
	return cmp.Compare(r.GroupOf(a), r.GroupOf(b))
}

func (r *Ranker) byCatchAllDepartment(col *collate.Collator) Comparator {
	return func(a, b *Entry) int {
		if r.GroupOf(a) != GroupOther || r.GroupOf(b) != GroupOther {
			return 0
		}
		return col.CompareString(strings.TrimSpace(a.Department), strings.TrimSpace(b.Department))
	}
}

func (r *Ranker) byTitleRank(a, b *Entry) int {
	return cmp.Compare(r.TitleRank(a.Title), r.TitleRank(b.Title))
}

func byTitle(col *collate.Collator) Comparator {
	return func(a, b *Entry) int {
		return col.CompareString(strings.TrimSpace(a.Title), strings.TrimSpace(b.Title))
	}
}

func byDutyLocation(col *collate.Collator) Comparator {
	return func(a, b *Entry) int {
		return emptyLast(col, a.DutyLocation, b.DutyLocation)
	}
}

func byHolderName(col *collate.Collator) Comparator {
	return func(a, b *Entry) int {
		switch {
		case a.Holder == nil && b.Holder == nil:
			return 0
		case a.Holder == nil:
			return 1
		case b.Holder == nil:
			return -1
		}
		return col.CompareString(a.Holder.FullName(), b.Holder.FullName())
	}
}

func emptyLast(col *collate.Collator, a, b string) int {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	switch {
	case a == "" && b == "":
		return 0
	case a == "":
		return 1
	case b == "":
		return -1
	}
	return col.CompareString(a, b)
}

// newCollator создаёт коллатор на вызов: collate.Collator не потокобезопасен
func newCollator() *collate.Collator {
	return collate.New(language.Turkish)
}

// Full возвращает полную цепочку сравнения для списка и дерева
func (r *Ranker) Full(col *collate.Collator) Comparator {
	return Chain(
		r.byGroup,
		r.byCatchAllDepartment(col),
		r.byTitleRank,
		byTitle(col),
		byDutyLocation(col),
		byHolderName(col),
	)
}

// Reduced возвращает сокращённую цепочку (группа, подразделение, ранг названия)
func (r *Ranker) Reduced(col *collate.Collator) Comparator {
	return Chain(
		r.byGroup,
		r.byCatchAllDepartment(col),
		r.byTitleRank,
	)
}

// Sort возвращает упорядоченную копию записей; вход не изменяется
func (r *Ranker) Sort(entries []Entry) []Entry {
	out := slices.Clone(entries)
	less := r.Full(newCollator())
	slices.SortStableFunc(out, func(a, b Entry) int {
		return less(&a, &b)
	})
	return out
}

// PositionEntries строит записи по должностям центральной организации
func PositionEntries(positions []domain.Position, personnel []domain.Personnel) []Entry {
	byID := personnelByID(personnel)
	entries := make([]Entry, len(positions))
	for i := range positions {
		p := &positions[i]
		entries[i] = Entry{
			ID:           p.ID,
			Title:        p.Name,
			Department:   p.Department,
			DutyLocation: p.DutyLocation,
			Holder:       holderOf(byID, p.Status, p.AssignedPersonnelID),
			index:        i,
		}
	}
	return entries
}

// TasraEntries строит записи по провинциальным должностям; единица играет роль подразделения
func TasraEntries(positions []domain.TasraPosition, personnel []domain.Personnel) []Entry {
	byID := personnelByID(personnel)
	entries := make([]Entry, len(positions))
	for i := range positions {
		p := &positions[i]
		entries[i] = Entry{
			ID:           p.ID,
			Title:        p.Name,
			Department:   p.Unit,
			DutyLocation: p.DutyLocation,
			Holder:       holderOf(byID, p.Status, p.AssignedPersonnelID),
			index:        i,
		}
	}
	return entries
}

// PositionRow - строка упорядоченного списка должностей
type PositionRow struct {
	Position domain.Position
	Holder   *domain.Personnel
}

// TasraRow - строка упорядоченного списка провинциальных должностей
type TasraRow struct {
	Position domain.TasraPosition
	Holder   *domain.Personnel
}

// OrderPositions упорядочивает должности центральной организации
func (r *Ranker) OrderPositions(positions []domain.Position, personnel []domain.Personnel) []PositionRow {
	sorted := r.Sort(PositionEntries(positions, personnel))
	rows := make([]PositionRow, len(sorted))
	for i, e := range sorted {
		rows[i] = PositionRow{Position: positions[e.index], Holder: e.Holder}
	}
	return rows
}

// OrderTasraPositions упорядочивает провинциальные должности той же цепочкой
func (r *Ranker) OrderTasraPositions(positions []domain.TasraPosition, personnel []domain.Personnel) []TasraRow {
	sorted := r.Sort(TasraEntries(positions, personnel))
	rows := make([]TasraRow, len(sorted))
	for i, e := range sorted {
		rows[i] = TasraRow{Position: positions[e.index], Holder: e.Holder}
	}
	return rows
}

// PrimaryPositions выбирает для каждого сотрудника лучшую по сокращённой цепочке должность.
// При равенстве остаётся первая во входном порядке.
func (r *Ranker) PrimaryPositions(entries []Entry) map[string]Entry {
	less := r.Reduced(newCollator())
	primary := make(map[string]Entry)
	for i := range entries {
		e := entries[i]
		if e.Holder == nil {
			continue
		}
		cur, ok := primary[e.Holder.ID]
		if !ok || less(&e, &cur) < 0 {
			primary[e.Holder.ID] = e
		}
	}
	return primary
}

// PersonnelRow - строка упорядоченного списка сотрудников
type PersonnelRow struct {
	Personnel domain.Personnel
	Primary   *Entry
}

// RankPersonnel упорядочивает сотрудников по их основной должности, затем по имени.
// Сотрудники без должности идут последними.
func (r *Ranker) RankPersonnel(personnel []domain.Personnel, entries []Entry) []PersonnelRow {
	primary := r.PrimaryPositions(entries)
	rows := make([]PersonnelRow, len(personnel))
	for i, p := range personnel {
		rows[i] = PersonnelRow{Personnel: p}
		if e, ok := primary[p.ID]; ok {
			rows[i].Primary = &e
		}
	}

	col := newCollator()
	reduced := r.Reduced(col)
	slices.SortStableFunc(rows, func(a, b PersonnelRow) int {
		switch {
		case a.Primary != nil && b.Primary != nil:
			if c := reduced(a.Primary, b.Primary); c != 0 {
				return c
			}
		case a.Primary != nil:
			return -1
		case b.Primary != nil:
			return 1
		}
		if c := col.CompareString(a.Personnel.FullName(), b.Personnel.FullName()); c != 0 {
			return c
		}
		return strings.Compare(a.Personnel.RegistryNumber, b.Personnel.RegistryNumber)
	})
	return rows
}

func personnelByID(personnel []domain.Personnel) map[string]*domain.Personnel {
	byID := make(map[string]*domain.Personnel, len(personnel))
	for i := range personnel {
		byID[personnel[i].ID] = &personnel[i]
	}
	return byID
}

func holderOf(byID map[string]*domain.Personnel, status domain.PositionStatus, id *string) *domain.Personnel {
	if status == domain.StatusVacant || id == nil {
		return nil
	}
	return byID[*id]
}
