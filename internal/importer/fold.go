package importer

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/kadro-api/internal/domain"
)

// fold приводит заголовок к виду для поиска синонима:
// турецкий нижний регистр, диакритика снята, оставлены только буквы и цифры.
func fold(s string) string {
	s = cases.Lower(language.Turkish).String(s)
	s = strings.ReplaceAll(s, "ı", "i")

	stripped, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), s)
	if err == nil {
		s = stripped
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

var positionStatusByFold = func() map[string]domain.PositionStatus {
	m := make(map[string]domain.PositionStatus, len(domain.PositionStatuses))
	for _, s := range domain.PositionStatuses {
		m[fold(string(s))] = s
	}
	m["asil"] = domain.StatusPermanent
	m["vekil"] = domain.StatusProxy
	m["yurutmeci"] = domain.StatusDelegated
	m["bosta"] = domain.StatusVacant
	return m
}()

var personnelStatusByFold = func() map[string]domain.PersonnelStatus {
	m := make(map[string]domain.PersonnelStatus, len(domain.PersonnelStatuses))
	for _, s := range domain.PersonnelStatuses {
		m[fold(string(s))] = s
	}
	return m
}()

// canonicalPositionStatus возвращает каноническое написание статуса или исходный текст
func canonicalPositionStatus(raw string) string {
	if s, ok := positionStatusByFold[fold(raw)]; ok {
		return string(s)
	}
	return raw
}

func canonicalPersonnelStatus(raw string) string {
	if s, ok := personnelStatusByFold[fold(raw)]; ok {
		return string(s)
	}
	return raw
}
