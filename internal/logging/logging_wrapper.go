package logging

import (
	"net/http"

	"github.com/sirupsen/logrus"
)

// LoggingWrapper adapts a plain http handler to the one-entry-per-request
// flow the huma endpoints get from the middleware: a fresh LogData per
// request, the total duration under "duration", and a single Complete or
// Error line when the handler returns.
func LoggingWrapper(
	name string,
	log *logrus.Logger,
	handler func(http.ResponseWriter, *http.Request, *LogData) error,
) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		logData := NewLogData(log)
		endTimer := logData.AddTiming("duration")

		err := handler(w, req, logData)
		endTimer()
		if err != nil {
			logData.Log().WithError(err).Errorf("Handler.%v.Error", name)
			return
		}

		logData.Log().Infof("Handler.%v.Complete", name)
	}
}
