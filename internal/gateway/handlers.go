package gateway

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/soyeahso/reviewdesk/internal/agent"
	"github.com/soyeahso/reviewdesk/internal/domain"
	"github.com/soyeahso/reviewdesk/internal/pdf"
	"github.com/soyeahso/reviewdesk/internal/pipeline"
)

// HealthResponse is returned by health endpoints. The HTTP endpoint only
// populates Status; the RPC handler populates all fields.
type HealthResponse struct {
	Status     string `json:"status"`
	Version    string `json:"version,omitempty"`
	Clients    int    `json:"clients,omitempty"`
	Processing bool   `json:"processing,omitempty"`
	UptimeMs   int64  `json:"uptimeMs,omitempty"`
}

// DocumentResponse is returned after a PDF upload.
type DocumentResponse struct {
	Pages     int    `json:"pages"`
	PageRange string `json:"pageRange"`
}

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// handleDocumentUpload accepts a PDF either as the "file" field of a
// multipart form or as the raw request body.
func (s *Server) handleDocumentUpload(w http.ResponseWriter, r *http.Request) {
	limit := int64(s.cfg.Gateway.MaxUploadMB) << 20
	if limit > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, limit)
	}

	data, err := readUpload(r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "document exceeds the upload limit")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	n, err := s.exec.LoadDocument(r.Context(), data)
	if err != nil {
		var parseErr *pdf.ParseError
		switch {
		case errors.Is(err, pipeline.ErrBusy):
			writeError(w, http.StatusConflict, err.Error())
		case errors.As(err, &parseErr):
			writeError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			s.log.Error().Err(err).Msg("document load failed")
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, DocumentResponse{Pages: n, PageRange: s.exec.Snapshot().PageRange})
}

func readUpload(r *http.Request) ([]byte, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		return io.ReadAll(r.Body)
	}

	f, _, err := r.FormFile("file")
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// handlePageImage serves one rendered page as PNG. Pages are numbered from 1.
func (s *Server) handlePageImage(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(r.PathValue("n"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "page must be a number")
		return
	}

	page, err := s.exec.Page(n)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	mimeType := page.MIMEType
	if mimeType == "" {
		mimeType = "image/png"
	}
	w.Header().Set("Content-Type", mimeType)
	w.Header().Set("Content-Length", strconv.Itoa(len(page.Data)))
	w.Header().Set("Cache-Control", "no-store")
	w.Write(page.Data)
}

// handleNotFound returns a 404 for unknown routes.
func handleNotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(map[string]string{
		"error": "not found",
		"path":  r.URL.Path,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// RequestHandler processes an incoming RPC request frame from a client.
type RequestHandler func(ctx *RequestContext)

// RequestContext carries everything a handler needs.
type RequestContext struct {
	Client *Client
	Frame  Frame
	Server *Server
}

// Respond sends a success response.
func (rc *RequestContext) Respond(payload any) {
	if err := rc.Client.Respond(rc.Frame.ID, payload); err != nil {
		rc.Server.log.Warn().Err(err).Str("method", rc.Frame.Method).Msg("failed to send response")
	}
}

// RespondError sends an error response.
func (rc *RequestContext) RespondError(code, message string) {
	rc.Client.RespondError(rc.Frame.ID, ErrorShape{
		Code:    code,
		Message: message,
	})
}

// Fail maps err to an error response. Errors the executor does not
// classify are reported under fallback.
func (rc *RequestContext) Fail(err error, fallback string) {
	rc.FailWith(err, fallback, nil)
}

// FailWith is Fail with a details payload attached.
func (rc *RequestContext) FailWith(err error, fallback string, details any) {
	shape := errorShape(err, fallback)
	shape.Details = details
	if shape.Code == CodeProviderError || shape.Code == CodeInternal {
		rc.Server.log.Warn().Err(err).Str("method", rc.Frame.Method).Msg("rpc failed")
	}
	if sendErr := rc.Client.RespondError(rc.Frame.ID, shape); sendErr != nil {
		rc.Server.log.Warn().Err(sendErr).Str("method", rc.Frame.Method).Msg("failed to send error response")
	}
}

// Params unmarshals the request params into the given target.
func (rc *RequestContext) Params(target any) error {
	if rc.Frame.Params == nil {
		return nil
	}
	return json.Unmarshal(rc.Frame.Params, target)
}

// errorShape classifies an executor error.
func errorShape(err error, fallback string) ErrorShape {
	var (
		precondition *pipeline.PreconditionError
		validation   *domain.ValidationError
	)
	switch {
	case errors.Is(err, pipeline.ErrBusy):
		return ErrorShape{Code: CodeBusy, Message: err.Error(), Retryable: true, RetryAfter: int((2 * time.Second).Milliseconds())}
	case errors.As(err, &precondition):
		return ErrorShape{Code: CodePreconditionFailed, Message: err.Error()}
	case errors.As(err, &validation),
		errors.Is(err, agent.ErrPositionOutOfRange),
		errors.Is(err, pipeline.ErrUnknownView):
		return ErrorShape{Code: CodeInvalidParams, Message: err.Error()}
	default:
		return ErrorShape{Code: fallback, Message: err.Error()}
	}
}
