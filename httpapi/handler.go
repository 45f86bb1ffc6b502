// Package httpapi exposes the tools over HTTP with JSON, form and multipart request bodies.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"webtools/tools"
)

type handler struct {
	logger        zerolog.Logger
	server        tools.Server
	bodyParser    tools.RequestBodyParser
	resultsLogger tools.ResultsLogger
	metrics       *Metrics
}

// NewHandler creates the http.Handler serving the tools and the health endpoint.
func NewHandler(logger zerolog.Logger, server tools.Server, rbp tools.RequestBodyParser, rl tools.ResultsLogger, metrics *Metrics) http.Handler {
	h := &handler{
		logger:        logger,
		server:        server,
		bodyParser:    rbp,
		resultsLogger: rl,
		metrics:       metrics,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /tools/url-encode", h.urlEncode)
	mux.HandleFunc("POST /tools/url-decode", h.urlDecode)
	mux.HandleFunc("POST /tools/regexp-check", h.regexpCheck)
	mux.HandleFunc("POST /tools/datetime-diff", h.dateTimeDiff)
	mux.HandleFunc("POST /tools/datetime-calc", h.dateTimeCalc)
	mux.HandleFunc("GET /healthz", h.healthz)
	mux.HandleFunc("/", h.fallback)

	return withTransaction(logger, metrics, mux)
}

func (h *handler) urlEncode(w http.ResponseWriter, r *http.Request) {
	var req urlEncodeRequest
	if !h.parseBody(w, r, tools.ToolURLEncode, &req) {
		return
	}

	value, err := requireField("urlEncodeValue", req.URLEncodeValue)
	if err != nil {
		h.rejectBody(w, r, tools.ToolURLEncode, err)
		return
	}

	encoded, err := h.server.URLEncode(r.Context(), value)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, &urlEncodeResponse{Status: statusSuccess, URLEncodedValue: encoded})
}

func (h *handler) urlDecode(w http.ResponseWriter, r *http.Request) {
	var req urlDecodeRequest
	if !h.parseBody(w, r, tools.ToolURLDecode, &req) {
		return
	}

	value, err := requireField("urlDecodeValue", req.URLDecodeValue)
	if err != nil {
		h.rejectBody(w, r, tools.ToolURLDecode, err)
		return
	}

	decoded, err := h.server.URLDecode(r.Context(), value)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, &urlDecodeResponse{Status: statusSuccess, URLDecodedValue: decoded})
}

func (h *handler) regexpCheck(w http.ResponseWriter, r *http.Request) {
	var req regexpCheckRequest
	if !h.parseBody(w, r, tools.ToolRegexpCheck, &req) {
		return
	}

	text, err := requireField("targetText", req.TargetText)
	if err != nil {
		h.rejectBody(w, r, tools.ToolRegexpCheck, err)
		return
	}

	pattern, err := requireField("pattern", req.Pattern)
	if err != nil {
		h.rejectBody(w, r, tools.ToolRegexpCheck, err)
		return
	}

	result, err := h.server.RegexpCheck(r.Context(), tools.ScanRequest{
		Text:            text,
		Pattern:         pattern,
		CaseInsensitive: req.IgnoreCase,
		Multiline:       req.MultiLine,
		Global:          req.Global,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.metrics.recordMatches(r.Context(), len(result))
	h.writeJSON(w, r, http.StatusOK, &regexpCheckResponse{
		Status:     statusSuccess,
		ResultText: text,
		Matches:    toMatchMessages(result),
	})
}

func (h *handler) dateTimeDiff(w http.ResponseWriter, r *http.Request) {
	var req dateTimeDiffRequest
	if !h.parseBody(w, r, tools.ToolDateTimeDiff, &req) {
		return
	}

	dt1, err := requireField("datetime1", req.DateTime1)
	if err != nil {
		h.rejectBody(w, r, tools.ToolDateTimeDiff, err)
		return
	}

	dt2, err := requireField("datetime2", req.DateTime2)
	if err != nil {
		h.rejectBody(w, r, tools.ToolDateTimeDiff, err)
		return
	}

	secs, err := h.server.DateTimeDiff(r.Context(), dt1, dt2)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, &dateTimeDiffResponse{Status: statusSuccess, ResultSeconds: secs})
}

func (h *handler) dateTimeCalc(w http.ResponseWriter, r *http.Request) {
	var req dateTimeCalcRequest
	if !h.parseBody(w, r, tools.ToolDateTimeCalc, &req) {
		return
	}

	base, err := requireField("baseDateTime", req.BaseDateTime)
	if err != nil {
		h.rejectBody(w, r, tools.ToolDateTimeCalc, err)
		return
	}

	addTime, err := requireField("addTime", req.AddTime)
	if err != nil {
		h.rejectBody(w, r, tools.ToolDateTimeCalc, err)
		return
	}

	result, err := h.server.DateTimeCalc(r.Context(), base, addTime, req.IsSubtraction)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, &dateTimeCalcResponse{Status: statusSuccess, ResultDateTime: result})
}

func (h *handler) healthz(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, &struct {
		Status string `json:"status"`
	}{statusSuccess})
}

// fallback answers requests no route matched, in the same JSON shape as every other error.
func (h *handler) fallback(w http.ResponseWriter, r *http.Request) {
	if _, ok := toolPaths[r.URL.Path]; ok {
		w.Header().Set("Allow", http.MethodPost)
		h.writeJSON(w, r, http.StatusMethodNotAllowed, &errorResponse{Status: statusError, Message: "method " + r.Method + " not allowed"})
		return
	}
	if r.URL.Path == "/healthz" {
		w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
		h.writeJSON(w, r, http.StatusMethodNotAllowed, &errorResponse{Status: statusError, Message: "method " + r.Method + " not allowed"})
		return
	}

	h.writeJSON(w, r, http.StatusNotFound, &errorResponse{Status: statusError, Message: "no such tool: " + r.URL.Path})
}

var toolPaths = map[string]tools.Tool{
	"/tools/url-encode":    tools.ToolURLEncode,
	"/tools/url-decode":    tools.ToolURLDecode,
	"/tools/regexp-check":  tools.ToolRegexpCheck,
	"/tools/datetime-diff": tools.ToolDateTimeDiff,
	"/tools/datetime-calc": tools.ToolDateTimeCalc,
}

// parseBody parses the request body into target. If that fails, the error response has already been written when false is returned.
func (h *handler) parseBody(w http.ResponseWriter, r *http.Request, tool tools.Tool, target tools.BodyTarget) bool {
	logger := h.requestLogger(r.Context())
	err := h.bodyParser.Parse(logger, &httpRequestBody{r}, target)
	if err != nil {
		h.rejectBody(w, r, tool, err)
		return false
	}

	return true
}

// rejectBody reports a request whose body was not usable, and writes the error response.
func (h *handler) rejectBody(w http.ResponseWriter, r *http.Request, tool tools.Tool, err error) {
	txid := tools.TransactionID(r.Context())
	limits := h.bodyParser.LengthLimits()

	switch {
	case errors.Is(err, tools.ErrFieldBytesLimitExceeded):
		h.resultsLogger.FieldBytesLimitExceeded(txid, tool, limits.MaxLengthField)
	case errors.Is(err, tools.ErrPausableBytesLimitExceeded):
		h.resultsLogger.PausableBytesLimitExceeded(txid, tool, limits.MaxLengthPausable)
	case errors.Is(err, tools.ErrTotalBytesLimitExceeded):
		h.resultsLogger.TotalBytesLimitExceeded(txid, tool, limits.MaxLengthTotal)
	default:
		h.resultsLogger.BodyParseError(txid, tool, err)
	}

	logger := h.requestLogger(r.Context())
	logger.Info().Err(err).Str("tool", string(tool)).Msg("Rejected request body")
	h.writeError(w, r, err)
}

func (h *handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusCodeFor(err)

	msg := err.Error()
	if status == http.StatusInternalServerError {
		// Details of internal errors are in the log, under the transaction ID.
		msg = http.StatusText(status)
	}

	h.writeJSON(w, r, status, &errorResponse{Status: statusError, Message: msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	bb, err := json.Marshal(v)
	if err != nil {
		logger := h.requestLogger(r.Context())
		logger.Error().Err(err).Msg("Error while marshaling JSON response")
		status = http.StatusInternalServerError
		bb = []byte(`{"status":"error","message":"Internal Server Error"}`)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err = w.Write(bb); err != nil {
		logger := h.requestLogger(r.Context())
		logger.Debug().Err(err).Msg("Error while writing response")
	}
}

func (h *handler) requestLogger(ctx context.Context) zerolog.Logger {
	return h.logger.With().Str("txid", tools.TransactionID(ctx)).Logger()
}

// statusCodeFor maps the error taxonomy of the tools onto HTTP status codes.
func statusCodeFor(err error) int {
	var pe *tools.PatternError
	var ee *tools.EncodingError
	var te *tools.TemporalParseError
	var bpe *tools.BodyParseError
	var mfe *missingFieldError
	var ste *tools.ScanTimeoutError

	switch {
	case tools.IsLengthLimitError(err):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, tools.ErrUnsupportedContentType):
		return http.StatusUnsupportedMediaType
	case errors.As(err, &ste):
		return http.StatusUnprocessableEntity
	case errors.As(err, &pe), errors.As(err, &ee), errors.As(err, &te), errors.As(err, &bpe), errors.As(err, &mfe):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// httpRequestBody adapts an *http.Request to tools.RequestBody.
type httpRequestBody struct {
	r *http.Request
}

func (b *httpRequestBody) ContentType() string   { return b.r.Header.Get("Content-Type") }
func (b *httpRequestBody) ContentLength() int64  { return b.r.ContentLength }
func (b *httpRequestBody) BodyReader() io.Reader { return b.r.Body }
