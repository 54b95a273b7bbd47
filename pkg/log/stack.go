package log

import (
	"github.com/cockroachdb/errors"
)

// marshalStack is installed as zerolog.ErrorStackMarshaler. It returns the
// first stack trace recorded in the error chain by cockroachdb/errors.
func marshalStack(err error) interface{} {
	if s := extractStacktrace(err); s != "" {
		return s
	}
	return nil
}

func extractStacktrace(err error) string {
	for e := err; e != nil; e = errors.UnwrapOnce(e) {
		if details := errors.GetSafeDetails(e).SafeDetails; len(details) > 0 && details[0] != "" {
			return details[0]
		}
	}
	return ""
}
