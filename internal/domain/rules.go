package domain

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Normalize приводит должность к инвариантам статуса.
// Вызывается при ручном редактировании, импорте и слиянии.
func (p *Position) Normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.Department = strings.TrimSpace(p.Department)
	p.DutyLocation = strings.TrimSpace(p.DutyLocation)
	p.OriginalTitle = trimmedOrNil(p.OriginalTitle)

	if p.Status == StatusVacant {
		p.AssignedPersonnelID = nil
		p.StartDate = nil
	}
	if !p.Status.IsActing() {
		p.OriginalTitle = nil
	}
}

// Normalize приводит провинциальную должность к инвариантам статуса
func (t *TasraPosition) Normalize() {
	t.Name = strings.TrimSpace(t.Name)
	t.Unit = strings.TrimSpace(t.Unit)
	t.DutyLocation = strings.TrimSpace(t.DutyLocation)
	t.OriginalTitle = trimmedOrNil(t.OriginalTitle)
	t.ActingAuthority = trimmedOrNil(t.ActingAuthority)

	if t.Status == StatusVacant {
		t.AssignedPersonnelID = nil
		t.StartDate = nil
	}
	if !t.Status.IsActing() {
		t.OriginalTitle = nil
		t.ActingAuthority = nil
		t.ReceivesProxyPay = false
		t.HasDelegatedAuthority = false
	}
}

// Key возвращает естественный ключ должности: подразделение, название, место службы
func (p *Position) Key() string {
	return joinKey(p.Department, p.Name, p.DutyLocation)
}

// Key возвращает естественный ключ провинциальной должности: единица и место службы
func (t *TasraPosition) Key() string {
	return joinKey(t.Unit, t.DutyLocation)
}

// Key возвращает естественный ключ сотрудника внутри организации
func (p *Personnel) Key() string {
	return joinKey(string(p.Organization), p.RegistryNumber)
}

// FoldCase приводит строку к нижнему регистру по турецким правилам (I → ı, İ → i)
func FoldCase(s string) string {
	return cases.Lower(language.Turkish).String(strings.TrimSpace(s))
}

func joinKey(parts ...string) string {
	folded := make([]string, len(parts))
	for i, p := range parts {
		folded[i] = FoldCase(p)
	}
	return strings.Join(folded, "\x1f")
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
