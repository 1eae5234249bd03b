package importer

// DefaultPreviewLimit - сколько ошибок и предупреждений показывать в отчёте по умолчанию
const DefaultPreviewLimit = 5

// Report - итог импорта для оператора
type Report struct {
	Inserted     int      `json:"inserted"`
	Updated      int      `json:"updated"`
	Unchanged    int      `json:"unchanged"`
	Skipped      int      `json:"skipped"`
	Errored      int      `json:"errored"`
	Errors       []string `json:"errors"`
	Warnings     []string `json:"warnings"`
	MoreErrors   int      `json:"more_errors"`
	MoreWarnings int      `json:"more_warnings"`
}

// NewReport сводит план в отчёт; сверх limit замечания только считаются
func NewReport[T any](p Plan[T], limit int) Report {
	if limit <= 0 {
		limit = DefaultPreviewLimit
	}
	r := Report{
		Inserted:  len(p.Inserts),
		Updated:   len(p.Updates),
		Unchanged: p.Unchanged,
		Skipped:   p.Skipped,
		Errored:   len(p.Errors),
	}
	r.Errors, r.MoreErrors = preview(p.Errors, limit)
	r.Warnings, r.MoreWarnings = preview(p.Warnings, limit)
	return r
}

func preview(issues []Issue, limit int) ([]string, int) {
	n := min(len(issues), limit)
	out := make([]string, n)
	for i := range n {
		out[i] = issues[i].String()
	}
	return out, len(issues) - n
}
