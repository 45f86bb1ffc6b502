package httpapi

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"webtools/tools"
)

// TransactionIDHeader carries the transaction ID of every request and response. A valid UUID given by the client is kept, so that callers can correlate logs.
const TransactionIDHeader = "X-Transaction-ID"

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

func (s *statusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}

// withTransaction assigns a transaction ID to each request, and logs and measures the request once it has been handled.
func withTransaction(logger zerolog.Logger, metrics *Metrics, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		startTime := time.Now()

		txid := r.Header.Get(TransactionIDHeader)
		if _, err := uuid.Parse(txid); err != nil {
			txid = uuid.NewString()
		}

		w.Header().Set(TransactionIDHeader, txid)
		r = r.WithContext(tools.WithTransactionID(r.Context(), txid))
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		reqLogger := logger.With().Str("txid", txid).Logger()

		defer func() {
			if p := recover(); p != nil {
				reqLogger.Error().Interface("panic", p).Str("path", r.URL.Path).Msg("Panic while handling request")
				rec.Header().Set("Content-Type", "application/json")
				rec.WriteHeader(http.StatusInternalServerError)
				_, _ = rec.Write([]byte(`{"status":"error","message":"Internal Server Error"}`))
			}

			// The mux sets the pattern on the request it was given, which is r.
			route := r.Pattern
			if route == "" {
				route = "unmatched"
			}

			timeTaken := time.Since(startTime)
			metrics.recordRequest(r.Context(), route, rec.status, timeTaken)
			reqLogger.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("proto", r.Proto).
				Int("status", rec.status).
				Dur("timeTaken", timeTaken).
				Msg("Handled HTTP request")
		}()

		next.ServeHTTP(rec, r)
	})
}
