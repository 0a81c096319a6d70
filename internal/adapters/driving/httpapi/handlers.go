package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/custodia-labs/nlquery/internal/core/domain"
	"github.com/custodia-labs/nlquery/internal/logger"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 64 << 10

type handlers struct {
	ports Ports
}

// TranslateRequest is the body of POST /api/translate.
type TranslateRequest struct {
	Text string `json:"text"`
}

// SearchRequest is the body of POST /api/search.
type SearchRequest struct {
	Text    string `json:"text"`
	Page    int    `json:"page,omitempty"`
	PerPage int    `json:"per_page,omitempty"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components,omitempty"`
}

func (h *handlers) translate(w http.ResponseWriter, r *http.Request) {
	var req TranslateRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, domain.NewResult[domain.StructuredQuery](nil, err))
		return
	}

	q, err := h.ports.Translation.Translate(r.Context(), req.Text)
	if err != nil {
		logger.Warn("Translate failed: %v", err)
	}
	writeJSON(w, statusFor(err), domain.NewResult(q, err))
}

func (h *handlers) search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, domain.NewResult[domain.SearchResult](nil, err))
		return
	}

	opts := domain.SearchOptions{Page: req.Page, PerPage: req.PerPage}
	result, err := h.ports.Search.Search(r.Context(), req.Text, opts)
	if err != nil {
		logger.Warn("Search failed: %v", err)
	}
	writeJSON(w, statusFor(err), domain.NewResult(result, err))
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "ok"}
	status := http.StatusOK

	if h.ports.Health != nil {
		checks := h.ports.Health.Check(r.Context())
		resp.Components = make(map[string]string, len(checks))
		for name, err := range checks {
			if err != nil {
				resp.Components[name] = err.Error()
				resp.Status = "degraded"
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Components[name] = "ok"
		}
	}

	writeJSON(w, status, resp)
}

// statusFor maps an error to its HTTP status.
func statusFor(err error) int {
	if err == nil {
		return http.StatusOK
	}
	switch kind, _ := domain.KindOf(err); {
	case errors.Is(err, domain.ErrSchemaViolation):
		return http.StatusUnprocessableEntity
	case kind == domain.KindIntrospection, kind == domain.KindGeneration:
		return http.StatusBadGateway
	case kind == domain.KindConfiguration:
		return http.StatusInternalServerError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusBadGateway
	}
}

// decodeBody reads a single JSON object of at most maxBodyBytes into v.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return invalidBody(fmt.Errorf("exceeds %d KiB limit", tooLarge.Limit>>10))
		}
		return invalidBody(err)
	}
	if dec.More() {
		return invalidBody(errors.New("trailing data"))
	}
	return nil
}

type bodyError struct {
	cause error
}

func (e *bodyError) Error() string {
	return "invalid request body: " + strings.TrimPrefix(e.cause.Error(), "json: ")
}

func (e *bodyError) Unwrap() error { return domain.ErrInvalidInput }

func invalidBody(err error) error {
	return &bodyError{cause: err}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("Writing response: %v", err)
	}
}
