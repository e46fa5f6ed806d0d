package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"hotel_enrich/internal/app"
	"hotel_enrich/internal/domain"
	"hotel_enrich/internal/enrich"
)

// DefaultMaxUpload bounds POST /v1/enrich bodies when Handlers.MaxUpload is unset.
const DefaultMaxUpload = 32 << 20

type Handlers struct {
	Q         *app.QueryService
	MaxUpload int64
}

type problem struct {
	Type    string   `json:"type"`
	Title   string   `json:"title"`
	Status  int      `json:"status"`
	Detail  string   `json:"detail,omitempty"`
	Missing []string `json:"missing,omitempty"`
}

type rulesView struct {
	Fingerprint string       `json:"fingerprint"`
	Columns     []string     `json:"columns"`
	Rules       enrich.Rules `json:"rules"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Post("/v1/enrich", h.enrich)
	s.mux.Get("/v1/departments/{postal}", h.getDepartment)
	s.mux.Get("/v1/domains", h.classifyDomain)
	s.mux.Get("/v1/rules", h.getRules)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	writeProblemBody(w, problem{Type: "about:blank", Title: title, Status: status, Detail: detail})
}

func writeProblemBody(w http.ResponseWriter, p problem) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	if err := json.NewEncoder(w).Encode(p); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	return etagOf(body), body
}

func etagOf(body []byte) string {
	sum := sha1.Sum(body)
	return `W/"` + hex.EncodeToString(sum[:]) + `"`
}

// writeTagged writes body with its ETag, or a bare 304 when the client
// already holds that version.
func writeTagged(w http.ResponseWriter, r *http.Request, etag, contentType string, body []byte) {
	w.Header().Set("ETag", etag)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("failed to write body")
	}
}

func (h *Handlers) enrich(w http.ResponseWriter, r *http.Request) {
	limit := h.MaxUpload
	if limit <= 0 {
		limit = DefaultMaxUpload
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeProblem(w, http.StatusRequestEntityTooLarge, "Payload Too Large",
				"upload exceeds "+strconv.FormatInt(limit, 10)+" bytes")
			return
		}
		writeProblem(w, http.StatusBadRequest, "Bad Request", "could not read request body")
		return
	}

	out, err := h.Q.EnrichCSV(r.Context(), body)
	if err != nil {
		var schema *domain.SchemaError
		switch {
		case errors.As(err, &schema):
			writeProblemBody(w, problem{
				Type:    "about:blank",
				Title:   "Missing Columns",
				Status:  http.StatusBadRequest,
				Detail:  "required columns absent: " + strings.Join(schema.Missing, ", "),
				Missing: schema.Missing,
			})
		case errors.Is(err, domain.ErrInvalidInput):
			writeProblem(w, http.StatusBadRequest, "Invalid Input", err.Error())
		default:
			log.Error().Err(err).Msg("enrich request failed")
			writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "enrichment failed")
		}
		return
	}

	w.Header().Set("X-Enrich-Rows", strconv.Itoa(out.Rows))
	writeTagged(w, r, etagOf(out.Body), "text/csv; charset=utf-8", out.Body)
}

func (h *Handlers) getDepartment(w http.ResponseWriter, r *http.Request) {
	dv, err := h.Q.GetDepartment(r.Context(), chi.URLParam(r, "postal"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeProblem(w, http.StatusNotFound, "Not Found", "no department for this postal code")
			return
		}
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "department lookup failed")
		return
	}
	etag, body := calcETagAndBody(dv)
	writeTagged(w, r, etag, "application/json", body)
}

func (h *Handlers) classifyDomain(w http.ResponseWriter, r *http.Request) {
	u := r.URL.Query().Get("url")
	if strings.TrimSpace(u) == "" {
		writeProblem(w, http.StatusBadRequest, "Invalid URL", "url query parameter is required")
		return
	}
	dv, err := h.Q.ClassifyWebsite(r.Context(), u)
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "domain lookup failed")
		return
	}
	etag, body := calcETagAndBody(dv)
	writeTagged(w, r, etag, "application/json", body)
}

func (h *Handlers) getRules(w http.ResponseWriter, r *http.Request) {
	rules := h.Q.Rules()
	etag, body := calcETagAndBody(rulesView{
		Fingerprint: rules.Fingerprint(),
		Columns:     h.Q.OutputColumns(),
		Rules:       rules,
	})
	writeTagged(w, r, etag, "application/json", body)
}
