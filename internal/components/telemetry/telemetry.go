package telemetry

// API is the reporting surface library code logs and counts through, so
// tests can swap in a MemoryAPI and assert on what was reported.
//
// Ids name the component and operation that reported, in lowercase with a dot
// between the two parts and dashes inside a part, like `client.list-bills`.
// Details (the failing path, the bill type, the wrapped error) go in params,
// never in the id.
type API interface {
	// ReportBroken is for failures an operator should look at.
	ReportBroken(id string, params ...any)
	// ReportWarning is for odd input that was tolerated, like an unrecognized sitemap entry.
	ReportWarning(id string, params ...any)
	ReportDebug(msg string, params ...any)
	// ReportCount records a point-in-time count, successive values are samples and not deltas.
	ReportCount(id string, count int64)
}

// ScopedAPI prefixes every id with a component namespace before handing it on.
type ScopedAPI struct {
	prefix string
	inner  API
}

func NewScopedAPI(namespace string, inner API) ScopedAPI {
	return ScopedAPI{prefix: namespace + ": ", inner: inner}
}

func (s ScopedAPI) ReportBroken(id string, params ...any) {
	s.inner.ReportBroken(s.prefix+id, params...)
}

func (s ScopedAPI) ReportWarning(id string, params ...any) {
	s.inner.ReportWarning(s.prefix+id, params...)
}

func (s ScopedAPI) ReportDebug(msg string, params ...any) {
	s.inner.ReportDebug(s.prefix+msg, params...)
}

func (s ScopedAPI) ReportCount(id string, count int64) {
	s.inner.ReportCount(s.prefix+id, count)
}
