package telemetry

import (
	"strings"
	"sync"
)

// Report is a single call made to a MemoryAPI.
type Report struct {
	Kind   string
	Id     string
	Params []any
	Count  int64
}

const (
	KindBroken  = "broken"
	KindWarning = "warning"
	KindDebug   = "debug"
	KindCount   = "count"
)

// MemoryAPI records every report it receives so tests can assert on what a
// component reported. It is safe for concurrent use.
type MemoryAPI struct {
	mutex   sync.Mutex
	reports []Report
}

func (m *MemoryAPI) push(r Report) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.reports = append(m.reports, r)
}

func (m *MemoryAPI) ReportBroken(id string, params ...any) {
	m.push(Report{Kind: KindBroken, Id: id, Params: params})
}

func (m *MemoryAPI) ReportWarning(id string, params ...any) {
	m.push(Report{Kind: KindWarning, Id: id, Params: params})
}

func (m *MemoryAPI) ReportDebug(msg string, params ...any) {
	m.push(Report{Kind: KindDebug, Id: msg, Params: params})
}

func (m *MemoryAPI) ReportCount(id string, count int64) {
	m.push(Report{Kind: KindCount, Id: id, Count: count})
}

// Reports returns a copy of the recorded reports of the given kind, whose id
// ends with idSuffix. An empty idSuffix matches every id.
func (m *MemoryAPI) Reports(kind, idSuffix string) []Report {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	var out []Report
	for _, r := range m.reports {
		if r.Kind != kind || !strings.HasSuffix(r.Id, idSuffix) {
			continue
		}
		out = append(out, r)
	}
	return out
}
