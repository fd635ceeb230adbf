package logger

import (
	"log/slog"

	"github.com/gaze-network/artifact-registry/pkg/logger/slogx"
)

// errorAttrReplacer normalizes error attributes to their message string, so
// wrapped errors render without their stack dump on every line.
func errorAttrReplacer(groups []string, attr slog.Attr) slog.Attr {
	if len(groups) == 0 && attr.Key == slogx.ErrorKey {
		if err, ok := attr.Value.Any().(error); ok && err != nil {
			return slog.String(attr.Key, err.Error())
		}
	}
	return attr
}
