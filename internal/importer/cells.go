package importer

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// dateLayouts - текстовые формы даты, принимаемые в колонках с датой
var dateLayouts = []string{"02.01.2006", "2006-01-02", "02/01/2006", "2.1.2006"}

func cellText(v any) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(c)
	case float64:
		return strconv.FormatFloat(c, 'f', -1, 64)
	case int:
		return strconv.Itoa(c)
	case int64:
		return strconv.FormatInt(c, 10)
	case serialDate:
		return strconv.FormatFloat(c.value, 'f', -1, 64)
	case time.Time:
		return c.Format("02.01.2006")
	default:
		return strings.TrimSpace(fmt.Sprint(c))
	}
}

// cellDate принимает только даты; всё прочее даёт nil, а не ошибку
func cellDate(v any) *time.Time {
	switch c := v.(type) {
	case serialDate:
		t, err := c.time()
		if err != nil {
			return nil
		}
		return cellDate(t)
	case time.Time:
		if c.IsZero() {
			return nil
		}
		d := time.Date(c.Year(), c.Month(), c.Day(), 0, 0, 0, 0, time.UTC)
		return &d
	case string:
		s := strings.TrimSpace(c)
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return &t
			}
		}
	}
	return nil
}

func cellBool(v any) bool {
	switch c := v.(type) {
	case bool:
		return c
	case float64:
		return c != 0
	case int:
		return c != 0
	}
	switch fold(cellText(v)) {
	case "evet", "e", "var", "x", "1", "true", "dogru":
		return true
	}
	return false
}

func isEmptyRow(row []any) bool {
	for _, c := range row {
		if cellText(c) != "" {
			return false
		}
	}
	return true
}

// values - значения строки по каноническим полям, уже приведённые к типу поля
type values map[string]any

func (v values) text(name string) string {
	s, _ := v[name].(string)
	return s
}

func (v values) date(name string) *time.Time {
	t, _ := v[name].(*time.Time)
	return t
}

func (v values) flag(name string) bool {
	b, _ := v[name].(bool)
	return b
}

func (v values) has(name string) bool {
	_, ok := v[name]
	return ok
}

func coerce(f *field, raw any) any {
	switch f.typ {
	case dateField:
		return cellDate(raw)
	case boolField:
		return cellBool(raw)
	default:
		return cellText(raw)
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
