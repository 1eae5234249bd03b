package orgchart

import (
	"github.com/kadro-api/internal/domain"
)

func parentIndex(positions []domain.Position) map[string]string {
	parents := make(map[string]string, len(positions))
	for _, p := range positions {
		if p.ReportsTo != nil {
			parents[p.ID] = *p.ReportsTo
		}
	}
	return parents
}

// onCycle сообщает, возвращается ли цепочка руководителей к самой должности
func onCycle(parents map[string]string, id string) bool {
	seen := map[string]struct{}{id: {}}
	cur, ok := parents[id]
	for ok {
		if cur == id {
			return true
		}
		if _, dup := seen[cur]; dup {
			return false
		}
		seen[cur] = struct{}{}
		cur, ok = parents[cur]
	}
	return false
}

// ReportingLines - изменяемое отображение должность → руководитель
type ReportingLines map[string]string

// NewReportingLines строит отображение по снимку должностей
func NewReportingLines(positions []domain.Position) ReportingLines {
	return ReportingLines(parentIndex(positions))
}

// CreatesCycle сообщает, замкнёт ли назначение parentID руководителем id цикл.
// Существующие циклы, не проходящие через id, не учитываются.
func (l ReportingLines) CreatesCycle(id, parentID string) bool {
	if id == parentID {
		return true
	}
	seen := make(map[string]struct{})
	cur := parentID
	for {
		if cur == id {
			return true
		}
		if _, dup := seen[cur]; dup {
			return false
		}
		seen[cur] = struct{}{}
		next, ok := l[cur]
		if !ok {
			return false
		}
		cur = next
	}
}

// Set задаёт или снимает руководителя должности
func (l ReportingLines) Set(id string, parentID *string) {
	if parentID == nil {
		delete(l, id)
		return
	}
	l[id] = *parentID
}

// CreatesCycle проверяет назначение руководителя по снимку должностей
func CreatesCycle(positions []domain.Position, id, parentID string) bool {
	return NewReportingLines(positions).CreatesCycle(id, parentID)
}
