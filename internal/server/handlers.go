package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ppedin/wikibase-api/internal/ingest"
	"github.com/ppedin/wikibase-api/pkg/wbapi"
)

// StatusResponse is the body of GET / and GET /health.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse is the body of every operational failure.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// Response headers set on successful ingestion.
const (
	HeaderItemID = "X-Item-ID"
	HeaderRunID  = "X-Run-ID"
)

func (s *Server) routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /validation", s.handleIngest)
	mux.HandleFunc("POST /validation/{$}", s.handleIngest)
	mux.HandleFunc("POST /validation/check", s.handleCheck)
	mux.HandleFunc("GET /validation/schemas", s.handleSchemas)
	if s.metrics != nil {
		mux.Handle("GET /metrics", s.metrics.Handler())
	}
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, StatusResponse{Status: "ok", Message: "XML Schema Validation API is up and running"})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, StatusResponse{Status: "healthy"})
}

func (s *Server) handleSchemas(w http.ResponseWriter, _ *http.Request) {
	entries := s.pipeline.Registry().List()
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, string(e.Type))
	}
	writeJSON(w, http.StatusOK, names)
}

// upload is a parsed record submission.
type upload struct {
	content      []byte
	resourceType string
	label        string
	language     string
	description  string
}

// readUpload parses the multipart form. On failure it writes the response
// and returns false.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request, needLabel bool) (upload, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload+multipartOverhead)
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large") {
			writeDetail(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("Upload exceeds %d bytes", s.maxUpload))
			return upload{}, false
		}
		writeDetail(w, http.StatusBadRequest, "Failed to parse multipart form: "+err.Error())
		return upload{}, false
	}

	u := upload{
		resourceType: strings.TrimSpace(r.FormValue("resource_type")),
		label:        strings.TrimSpace(r.FormValue("label")),
		language:     strings.TrimSpace(r.FormValue("language")),
		description:  strings.TrimSpace(r.FormValue("description")),
	}

	var missing []string
	file, _, err := r.FormFile("file")
	if err != nil {
		missing = append(missing, "file")
	}
	if u.resourceType == "" {
		missing = append(missing, "resource_type")
	}
	if needLabel && u.label == "" {
		missing = append(missing, "label")
	}
	if len(missing) > 0 {
		if file != nil {
			file.Close()
		}
		writeDetail(w, http.StatusUnprocessableEntity, "Missing required form fields: "+strings.Join(missing, ", "))
		return upload{}, false
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "Failed to read uploaded file: "+err.Error())
		return upload{}, false
	}
	u.content = content
	return u, true
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	u, ok := s.readUpload(w, r, false)
	if !ok {
		return
	}

	result, _, err := s.pipeline.Validate(u.content, u.resourceType)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result.Response())
}

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	u, ok := s.readUpload(w, r, true)
	if !ok {
		return
	}

	out, err := s.pipeline.Ingest(r.Context(), ingest.Request{
		Content:      u.content,
		ResourceType: u.resourceType,
		Label:        u.label,
		Language:     u.language,
		Description:  u.description,
	})
	if out.RunID != "" {
		w.Header().Set(HeaderRunID, out.RunID)
	}
	if err != nil {
		if errors.Is(err, wbapi.ErrItemExists) {
			writeDetail(w, http.StatusBadRequest,
				fmt.Sprintf("Item with the given label already exists (item %s)", out.ExistingID))
			return
		}
		s.writeError(w, r, err)
		return
	}

	if out.Created() {
		w.Header().Set(HeaderItemID, out.ItemID)
	}
	writeJSON(w, http.StatusOK, out.Result.Response())
}

// writeError maps operational errors to status codes.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("%s %s [%s]: %v", r.Method, r.URL.Path, RequestIDFrom(r.Context()), err)

	switch {
	case errors.Is(err, wbapi.ErrUnknownResourceType):
		writeDetail(w, http.StatusNotFound, "Schema not found for resource type: "+r.FormValue("resource_type"))
	case errors.Is(err, wbapi.ErrInvalidRequest):
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, wbapi.ErrConnectionFailed):
		writeDetail(w, http.StatusInternalServerError, "Connection to the Wikibase instance failed")
	case errors.Is(err, wbapi.ErrItemCreationFailed):
		writeDetail(w, http.StatusInternalServerError, "Item addition failed")
	default:
		writeDetail(w, http.StatusInternalServerError, "Validation failed: "+err.Error())
	}
}
