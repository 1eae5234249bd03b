package importer

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/kadro-api/internal/domain"
)

// Issue - замечание по строке файла; Row - номер строки, как его видит оператор
type Issue struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	return fmt.Sprintf("Satır %d: %s", i.Row, i.Message)
}

// PositionCandidate - строка импорта должности центральной организации
type PositionCandidate struct {
	Row                    int
	Position               domain.Position
	AssigneeRegistryNumber string
	ManagerRegistryNumber  string
	AssigneeProvided       bool
	ManagerProvided        bool
}

// TasraCandidate - строка импорта провинциальной должности
type TasraCandidate struct {
	Row                    int
	Position               domain.TasraPosition
	AssigneeRegistryNumber string
	AssigneeProvided       bool
}

// PersonnelCandidate - строка импорта сотрудника
type PersonnelCandidate struct {
	Row       int
	Personnel domain.Personnel
}

type positionRow struct {
	Department    string     `field:"department" validate:"required"`
	Name          string     `field:"name" validate:"required"`
	DutyLocation  string     `field:"dutyLocation"`
	Status        string     `field:"status" validate:"required,oneof=Asıl Vekalet Yürütme Boş"`
	OriginalTitle string     `field:"originalTitle" validate:"required_if_acting"`
	StartDate     *time.Time `field:"startDate"`
}

type tasraRow struct {
	Unit                  string     `field:"unit" validate:"required"`
	Name                  string     `field:"name" validate:"required"`
	DutyLocation          string     `field:"dutyLocation"`
	Status                string     `field:"status" validate:"required,oneof=Asıl Vekalet Yürütme Boş"`
	OriginalTitle         string     `field:"originalTitle" validate:"required_if_acting"`
	ActingAuthority       string     `field:"actingAuthority"`
	ReceivesProxyPay      bool       `field:"receivesProxyPay"`
	HasDelegatedAuthority bool       `field:"hasDelegatedAuthority"`
	StartDate             *time.Time `field:"startDate"`
}

type personnelRow struct {
	FirstName      string     `field:"firstName" validate:"required"`
	LastName       string     `field:"lastName" validate:"required"`
	Unvan          string     `field:"unvan"`
	RegistryNumber string     `field:"registryNumber" validate:"required"`
	Status         string     `field:"status" validate:"required,oneof=Memur Sözleşmeli"`
	Email          string     `field:"email" validate:"omitempty,email"`
	Phone          string     `field:"phone" validate:"omitempty,max=30"`
	PhotoURL       string     `field:"photoUrl" validate:"omitempty,url"`
	DateOfBirth    *time.Time `field:"dateOfBirth"`
}

// Normalizer превращает сетку ячеек в проверенные кандидаты
type Normalizer struct {
	validate *validator.Validate
}

// NewNormalizer создаёт новый экземпляр нормализатора
func NewNormalizer() *Normalizer {
	return &Normalizer{validate: newValidator()}
}

// NormalizePositions разбирает файл должностей центральной организации
func (n *Normalizer) NormalizePositions(grid [][]any) ([]PositionCandidate, []Issue, error) {
	return normalize(n, grid, positionSchema,
		func(v values) *positionRow {
			return &positionRow{
				Department:    v.text(fDepartment),
				Name:          v.text(fName),
				DutyLocation:  v.text(fDutyLocation),
				Status:        canonicalPositionStatus(v.text(fStatus)),
				OriginalTitle: v.text(fOriginalTitle),
				StartDate:     v.date(fStartDate),
			}
		},
		func(r *positionRow, v values, row int) PositionCandidate {
			p := domain.Position{
				Department:    r.Department,
				Name:          r.Name,
				DutyLocation:  r.DutyLocation,
				Status:        domain.PositionStatus(r.Status),
				OriginalTitle: optional(r.OriginalTitle),
				StartDate:     r.StartDate,
			}
			p.Normalize()

			c := PositionCandidate{
				Row:                    row,
				Position:               p,
				AssigneeRegistryNumber: v.text(fAssigneeRegistry),
				ManagerRegistryNumber:  v.text(fManagerRegistry),
				AssigneeProvided:       v.has(fAssigneeRegistry),
				ManagerProvided:        v.has(fManagerRegistry),
			}
			if p.Status == domain.StatusVacant {
				c.AssigneeRegistryNumber = ""
				c.AssigneeProvided = true
			}
			return c
		})
}

// NormalizeTasraPositions разбирает файл провинциальных должностей
func (n *Normalizer) NormalizeTasraPositions(grid [][]any) ([]TasraCandidate, []Issue, error) {
	return normalize(n, grid, tasraSchema,
		func(v values) *tasraRow {
			return &tasraRow{
				Unit:                  v.text(fUnit),
				Name:                  v.text(fName),
				DutyLocation:          v.text(fDutyLocation),
				Status:                canonicalPositionStatus(v.text(fStatus)),
				OriginalTitle:         v.text(fOriginalTitle),
				ActingAuthority:       v.text(fActingAuthority),
				ReceivesProxyPay:      v.flag(fReceivesProxyPay),
				HasDelegatedAuthority: v.flag(fHasDelegatedAuthority),
				StartDate:             v.date(fStartDate),
			}
		},
		func(r *tasraRow, v values, row int) TasraCandidate {
			p := domain.TasraPosition{
				Unit:                  r.Unit,
				Name:                  r.Name,
				DutyLocation:          r.DutyLocation,
				Status:                domain.PositionStatus(r.Status),
				OriginalTitle:         optional(r.OriginalTitle),
				ActingAuthority:       optional(r.ActingAuthority),
				ReceivesProxyPay:      r.ReceivesProxyPay,
				HasDelegatedAuthority: r.HasDelegatedAuthority,
				StartDate:             r.StartDate,
			}
			p.Normalize()

			c := TasraCandidate{
				Row:                    row,
				Position:               p,
				AssigneeRegistryNumber: v.text(fAssigneeRegistry),
				AssigneeProvided:       v.has(fAssigneeRegistry),
			}
			if p.Status == domain.StatusVacant {
				c.AssigneeRegistryNumber = ""
				c.AssigneeProvided = true
			}
			return c
		})
}

// NormalizePersonnel разбирает файл сотрудников указанной организации
func (n *Normalizer) NormalizePersonnel(grid [][]any, org domain.Organization) ([]PersonnelCandidate, []Issue, error) {
	return normalize(n, grid, personnelSchema,
		func(v values) *personnelRow {
			return &personnelRow{
				FirstName:      v.text(fFirstName),
				LastName:       v.text(fLastName),
				Unvan:          v.text(fUnvan),
				RegistryNumber: v.text(fRegistryNumber),
				Status:         canonicalPersonnelStatus(v.text(fStatus)),
				Email:          v.text(fEmail),
				Phone:          v.text(fPhone),
				PhotoURL:       v.text(fPhotoURL),
				DateOfBirth:    v.date(fDateOfBirth),
			}
		},
		func(r *personnelRow, _ values, row int) PersonnelCandidate {
			return PersonnelCandidate{
				Row: row,
				Personnel: domain.Personnel{
					Organization:   org,
					FirstName:      r.FirstName,
					LastName:       r.LastName,
					Unvan:          optional(r.Unvan),
					RegistryNumber: r.RegistryNumber,
					Status:         domain.PersonnelStatus(r.Status),
					Email:          optional(r.Email),
					Phone:          optional(r.Phone),
					PhotoURL:       optional(r.PhotoURL),
					DateOfBirth:    r.DateOfBirth,
				},
			}
		})
}

// normalize - общий проход по строкам: сопоставление заголовков, извлечение,
// проверка и преобразование. Ошибки строк накапливаются, фатальны только ошибки файла.
func normalize[R any, T any](
	n *Normalizer,
	grid [][]any,
	s *schema,
	parse func(values) *R,
	convert func(*R, values, int) T,
) ([]T, []Issue, error) {
	// только заголовок или заголовок с пустыми строками - данных нет
	if len(grid) < 2 || !hasData(grid[1:]) {
		return nil, nil, domain.ErrMissingHeader
	}

	columns := make([]*field, len(grid[0]))
	recognized := 0
	for i, h := range grid[0] {
		if f, ok := s.match(cellText(h)); ok {
			columns[i] = f
			recognized++
		}
	}
	if recognized == 0 {
		return nil, nil, domain.ErrNoRecognizedColumns
	}

	var (
		out    []T
		issues []Issue
	)
	for i, cells := range grid[1:] {
		if isEmptyRow(cells) {
			continue
		}
		row := i + 2
		cand, issue := normalizeRow(n, s, columns, cells, row, parse, convert)
		if issue != nil {
			issues = append(issues, *issue)
			continue
		}
		out = append(out, cand)
	}
	return out, issues, nil
}

func normalizeRow[R any, T any](
	n *Normalizer,
	s *schema,
	columns []*field,
	cells []any,
	row int,
	parse func(values) *R,
	convert func(*R, values, int) T,
) (cand T, issue *Issue) {
	defer func() {
		if r := recover(); r != nil {
			issue = &Issue{Row: row, Message: fmt.Sprintf("beklenmeyen hata: %v", r)}
		}
	}()

	v := make(values, len(columns))
	for col, f := range columns {
		if f == nil {
			continue
		}
		var raw any
		if col < len(cells) {
			raw = cells[col]
		}
		// при повторе колонки побеждает первое непустое значение
		if prev, ok := v[f.name]; ok && !isZero(prev) {
			continue
		}
		v[f.name] = coerce(f, raw)
	}

	r := parse(v)
	if err := n.validate.Struct(r); err != nil {
		return cand, &Issue{Row: row, Message: describe(err, s)}
	}
	return convert(r, v, row), nil
}

func hasData(rows [][]any) bool {
	for _, cells := range rows {
		if !isEmptyRow(cells) {
			return true
		}
	}
	return false
}

func isZero(v any) bool {
	switch c := v.(type) {
	case string:
		return c == ""
	case *time.Time:
		return c == nil
	case bool:
		return !c
	}
	return v == nil
}
