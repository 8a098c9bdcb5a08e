// Package v1 provides the REST API handlers for generator profile access.
package v1

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/coccyx/gogen-api/internal/api/common"
	"github.com/coccyx/gogen-api/internal/registry"
	"github.com/coccyx/gogen-api/internal/service"
	"github.com/coccyx/gogen-api/pkg/versions"
)

// ListResponse wraps the summaries returned by list and search.
type ListResponse struct {
	Items []registry.Summary `json:"Items"`
}

// UpsertResponse acknowledges a successful write.
type UpsertResponse struct {
	Gogen string `json:"gogen"`
}

// Routes handles HTTP requests for the profile registry.
type Routes struct {
	service service.RegistryService
}

// NewRoutes creates a new Routes instance with the provided service.
func NewRoutes(svc service.RegistryService) *Routes {
	return &Routes{
		service: svc,
	}
}

// Router creates a new router for the registry API.
func Router(svc service.RegistryService) http.Handler {
	routes := NewRoutes(svc)

	r := chi.NewRouter()

	// Profile ids contain slashes (owner/name), so get takes a wildcard.
	r.Get("/get/*", routes.getProfile)
	r.Get("/list", routes.listProfiles)
	r.Get("/search", routes.searchProfiles)
	r.Post("/upsert", routes.upsertProfile)

	return r
}

// getProfile handles GET /v1/get/{gogen}
func (routes *Routes) getProfile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "*")
	if id == "" {
		common.WriteErrorResponse(w, "profile id is required", http.StatusBadRequest)
		return
	}

	p, err := routes.service.Get(r.Context(), id)
	if err != nil {
		common.WriteServiceError(w, err)
		return
	}
	common.WriteJSONResponse(w, p, http.StatusOK)
}

// listProfiles handles GET /v1/list
func (routes *Routes) listProfiles(w http.ResponseWriter, r *http.Request) {
	items, err := routes.service.List(r.Context())
	if err != nil {
		common.WriteServiceError(w, err)
		return
	}
	common.WriteJSONResponse(w, ListResponse{Items: items}, http.StatusOK)
}

// searchProfiles handles GET /v1/search?q=
func (routes *Routes) searchProfiles(w http.ResponseWriter, r *http.Request) {
	items, err := routes.service.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		common.WriteServiceError(w, err)
		return
	}
	common.WriteJSONResponse(w, ListResponse{Items: items}, http.StatusOK)
}

// upsertProfile handles POST /v1/upsert. The Authorization header carries
// the write credential; its absence is rejected by the service before any
// store call.
func (routes *Routes) upsertProfile(w http.ResponseWriter, r *http.Request) {
	var p registry.Profile
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		common.WriteErrorResponse(w, "invalid request body", http.StatusBadRequest)
		return
	}

	credential := r.Header.Get("Authorization")
	if err := routes.service.Upsert(r.Context(), p, credential); err != nil {
		common.WriteServiceError(w, err)
		return
	}
	common.WriteJSONResponse(w, UpsertResponse{Gogen: p.Gogen}, http.StatusOK)
}

// HealthRouter creates a router for health check endpoints.
func HealthRouter() http.Handler {
	r := chi.NewRouter()

	r.Get("/health", healthHandler)
	r.Get("/version", versionHandler)

	return r
}

// healthHandler handles health check requests.
func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"healthy"}`))
}

// versionHandler handles version information requests.
func versionHandler(w http.ResponseWriter, _ *http.Request) {
	info := versions.GetVersionInfo()

	response := map[string]string{
		"version":    info.Version,
		"commit":     info.Commit,
		"build_date": info.BuildDate,
		"go_version": info.GoVersion,
		"platform":   info.Platform,
	}
	common.WriteJSONResponse(w, response, http.StatusOK)
}
