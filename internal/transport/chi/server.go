// Package chi is the HTTP transport: routing, request decoding, the
// response envelope, and error mapping.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/vitrine-cloud/vitrine/internal/domain"
	"github.com/vitrine-cloud/vitrine/internal/domain/attribute"
	"github.com/vitrine-cloud/vitrine/internal/domain/filter"
	"github.com/vitrine-cloud/vitrine/internal/usecase/listing"
	"github.com/vitrine-cloud/vitrine/internal/usecase/options"
)

// Consumer interfaces over the usecase services, substitutable in tests.

type listingService interface {
	Search(ctx context.Context, spec *filter.Spec) (*listing.Page, error)
	Count(ctx context.Context, spec *filter.Spec) (int64, error)
}

type optionsProvider interface {
	Get(ctx context.Context) (options.Options, error)
}

type attrGroupService interface {
	Create(ctx context.Context, key, name string, selection attribute.Selection,
		variants []attribute.Variant) (attribute.Group, error)
	List(ctx context.Context) ([]attribute.Group, error)
	Get(ctx context.Context, key string) (attribute.Group, error)
	AddVariant(ctx context.Context, key, value, label string, active bool) (attribute.Variant, error)
	UpdateVariant(ctx context.Context, key, value string, label *string, active *bool) error
	RemoveVariant(ctx context.Context, key, value string) error
}

type healthChecker interface {
	Check(ctx context.Context) error
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server is the HTTP API server.
type Server struct {
	listing       listingService
	options       optionsProvider
	attrs         attrGroupService
	health        healthChecker
	logger        *zap.Logger
	apiKeys       []string
	exposeErrors  bool
	errorHandlers []errorHandler
}

// NewServer creates the HTTP API server. exposeErrors surfaces store
// error detail on 500 responses; enable it outside production only.
func NewServer(
	listingSvc listingService,
	optionsSvc optionsProvider,
	attrSvc attrGroupService,
	healthSvc healthChecker,
	logger *zap.Logger,
	apiKeys []string,
	exposeErrors bool,
) *Server {
	s := &Server{
		listing:      listingSvc,
		options:      optionsSvc,
		attrs:        attrSvc,
		health:       healthSvc,
		logger:       logger,
		apiKeys:      apiKeys,
		exposeErrors: exposeErrors,
	}
	s.errorHandlers = []errorHandler{
		validationHandler,
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound),
		sentinelHandler(domain.ErrAlreadyExists, http.StatusConflict),
	}
	return s
}

// Mount attaches all routes. Admin routes require a bearer API key.
func (s *Server) Mount(r chi.Router) {
	r.Get("/health", s.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/filters", func(r chi.Router) {
			r.Post("/profiles", s.FilterProfiles)
			r.Post("/profiles/count", s.CountProfiles)
			r.Get("/options", s.FilterOptions)
		})

		r.Route("/attribute-groups", func(r chi.Router) {
			r.Use(BearerAuthMiddleware(s.apiKeys))
			r.Post("/", s.CreateAttributeGroup)
			r.Get("/", s.ListAttributeGroups)
			r.Get("/{key}", s.GetAttributeGroup)
			r.Post("/{key}/variants", s.AddVariant)
			r.Patch("/{key}/variants/{value}", s.UpdateVariant)
			r.Delete("/{key}/variants/{value}", s.RemoveVariant)
		})
	})
}

// Health handles GET /health.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	if err := s.health.Check(r.Context()); err != nil {
		s.logger.Warn("health check failed", zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, "unhealthy")
		return
	}
	writeSuccess(w, http.StatusOK, map[string]string{"status": "ok"}, "healthy")
}

func (s *Server) handleError(w http.ResponseWriter, err error) {
	for _, h := range s.errorHandlers {
		if h(w, err) {
			return
		}
	}

	s.logger.Error("internal error", zap.Error(err))
	msg := "internal error"
	if s.exposeErrors {
		msg = err.Error()
	}
	writeError(w, http.StatusInternalServerError, msg)
}

// validationHandler maps validation failures to field-specific 400s.
func validationHandler(w http.ResponseWriter, err error) bool {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		writeError(w, http.StatusBadRequest, ve.Error())
		return true
	}
	if errors.Is(err, domain.ErrValidation) {
		writeError(w, http.StatusBadRequest, err.Error())
		return true
	}
	return false
}

func sentinelHandler(sentinel error, status int) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, sentinel.Error())
		return true
	}
}

// envelope is the uniform response shape.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func writeSuccess(w http.ResponseWriter, status int, data any, message string) {
	writeJSON(w, status, envelope{Success: true, Data: data, Message: message})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Success: false, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}
