package service

import (
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// parseDate разбирает дату запроса; пустое значение даёт nil
func parseDate(s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, strings.TrimSpace(*s))
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// reference превращает ссылку из запроса в значение поля: пустая строка снимает ссылку
func reference(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func now() time.Time {
	return time.Now().UTC()
}
