package repository

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sundayezeilo/repositories/internal/errx"
	"github.com/sundayezeilo/repositories/internal/httpx"
	"github.com/sundayezeilo/repositories/internal/idgen"
)

// Client-facing error messages.
const (
	MsgInvalidID = "Invalid repository ID."
	MsgNotFound  = "Repository not found"
	MsgInternal  = "Internal server error."
)

// Handler provides HTTP handlers for the repositories API.
type Handler struct {
	service   Service
	validator *PayloadValidator
	logger    *slog.Logger
}

// HandlerConfig holds configuration for the handler.
type HandlerConfig struct {
	Service   Service
	Validator *PayloadValidator // built with NewPayloadValidator when nil
	Logger    *slog.Logger
}

// NewHandler creates a new Handler instance.
func NewHandler(cfg HandlerConfig) (*Handler, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	v := cfg.Validator
	if v == nil {
		var err error
		if v, err = NewPayloadValidator(); err != nil {
			return nil, err
		}
	}

	return &Handler{
		service:   cfg.Service,
		validator: v,
		logger:    logger,
	}, nil
}

// RegisterRoutes mounts the repositories API on r. Every path below
// /repositories/{id} passes through ValidateID first, whatever its method.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/repositories", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)

		r.Route("/{id}", func(r chi.Router) {
			r.Use(ValidateID(h.logger))
			r.Put("/", h.Update)
			r.Delete("/", h.Delete)
			r.Post("/like", h.Like)
		})
	})
}

// ValidateID rejects requests whose {id} path parameter is not a UUID.
func ValidateID(logger *slog.Logger) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := chi.URLParam(r, "id")
			if !idgen.Valid(id) {
				logger.WarnContext(r.Context(), "invalid repository id",
					"request_id", httpx.GetRequestID(r.Context()),
					"id", id,
				)
				httpx.WriteError(w, http.StatusBadRequest, MsgInvalidID)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// List handles GET /repositories.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	repos, err := h.service.List(ctx)
	if err != nil {
		h.handleServiceError(ctx, w, err, h.requestLogger(r))
		return
	}

	httpx.WriteJSON(w, http.StatusOK, repos)
}

// Create handles POST /repositories.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.requestLogger(r)

	req, err := httpx.DecodeJSON[createRequest](r)
	if err != nil {
		logger.WarnContext(ctx, "failed to decode request", "error", err.Error())
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.validator.Validate(req); err != nil {
		var fe *FieldError
		if !errors.As(err, &fe) {
			h.handleServiceError(ctx, w, errx.E("repository.handler.Create", errx.Internal, err), logger)
			return
		}
		logger.WarnContext(ctx, "request validation failed", "field", fe.Field)
		httpx.WriteError(w, http.StatusBadRequest, fe.Message)
		return
	}

	repo, err := h.service.Create(ctx, req.fields())
	if err != nil {
		h.handleServiceError(ctx, w, err, logger)
		return
	}

	logger.InfoContext(ctx, "repository created", "repository_id", repo.ID)
	httpx.WriteJSON(w, http.StatusOK, repo)
}

// Update handles PUT /repositories/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.requestLogger(r)
	id := chi.URLParam(r, "id")

	req, err := httpx.DecodeJSON[updateRequest](r)
	if err != nil {
		logger.WarnContext(ctx, "failed to decode request", "error", err.Error())
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	repo, err := h.service.Update(ctx, id, req.fields())
	if err != nil {
		h.handleServiceError(ctx, w, err, logger.With("repository_id", id))
		return
	}

	logger.InfoContext(ctx, "repository updated", "repository_id", repo.ID)
	httpx.WriteJSON(w, http.StatusOK, repo)
}

// Delete handles DELETE /repositories/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.requestLogger(r)
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(ctx, id); err != nil {
		h.handleServiceError(ctx, w, err, logger.With("repository_id", id))
		return
	}

	logger.InfoContext(ctx, "repository deleted", "repository_id", id)
	httpx.WriteNoContent(w)
}

// Like handles POST /repositories/{id}/like.
func (h *Handler) Like(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.requestLogger(r)
	id := chi.URLParam(r, "id")

	repo, err := h.service.Like(ctx, id)
	if err != nil {
		h.handleServiceError(ctx, w, err, logger.With("repository_id", id))
		return
	}

	logger.InfoContext(ctx, "repository liked", "repository_id", repo.ID, "likes", repo.Likes)
	httpx.WriteJSON(w, http.StatusOK, repo)
}

func (h *Handler) requestLogger(r *http.Request) *slog.Logger {
	return h.logger.With(
		"request_id", httpx.GetRequestID(r.Context()),
		"method", r.Method,
		"path", r.URL.Path,
	)
}

// handleServiceError maps a service error to its status and client message.
func (h *Handler) handleServiceError(ctx context.Context, w http.ResponseWriter, err error, logger *slog.Logger) {
	kind := errx.KindOf(err)

	logAttrs := []any{
		"error", err.Error(),
		"error_kind", kind,
		"operation", errx.OpOf(err),
	}

	status := httpx.ErrorKindToStatus(kind)
	switch kind {
	case errx.Invalid:
		logger.WarnContext(ctx, "invalid repository id", logAttrs...)
		httpx.WriteError(w, status, MsgInvalidID)

	case errx.NotFound:
		logger.WarnContext(ctx, "repository not found", logAttrs...)
		httpx.WriteError(w, status, MsgNotFound)

	default:
		logger.ErrorContext(ctx, "unexpected repository error", logAttrs...)
		httpx.WriteError(w, status, MsgInternal)
	}
}
