package telemetry

import (
	"log/slog"
	"strconv"
)

// SlogAPI writes reports to the default slog logger. Errors among the params
// are logged under "err", everything else positionally as "arg<N>".
type SlogAPI struct{}

func slogArgs(id string, params []any) []any {
	args := make([]any, 0, 2+len(params)*2)
	if id != "" {
		args = append(args, "id", id)
	}
	for i, p := range params {
		if err, ok := p.(error); ok {
			args = append(args, slog.Any("err", err))
			continue
		}
		args = append(args, "arg"+strconv.Itoa(i), p)
	}
	return args
}

func (SlogAPI) ReportBroken(id string, params ...any) {
	slog.Error("component broken", slogArgs(id, params)...)
}

func (SlogAPI) ReportWarning(id string, params ...any) {
	slog.Warn("component warning", slogArgs(id, params)...)
}

func (SlogAPI) ReportDebug(msg string, params ...any) {
	slog.Debug(msg, slogArgs("", params)...)
}

func (SlogAPI) ReportCount(id string, count int64) {
	slog.Info("count", "id", id, "count", count)
}
