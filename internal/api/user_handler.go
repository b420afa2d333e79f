package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/lola-users/internal/api/shared"
	"github.com/phrazzld/lola-users/internal/config"
	"github.com/phrazzld/lola-users/internal/platform/logger"
	"github.com/phrazzld/lola-users/internal/query"
	"github.com/phrazzld/lola-users/internal/redact"
)

const componentName = "user_handler"

// UserHandler handles the user endpoints by executing the configured remote
// operation for each one. It holds no mutable state and is shared by all
// requests.
type UserHandler struct {
	executor   query.Executor
	operations config.OperationsConfig
	logger     *slog.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(
	executor query.Executor,
	operations config.OperationsConfig,
	logger *slog.Logger,
) *UserHandler {
	if executor == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("executor cannot be nil for UserHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for UserHandler")
	}

	return &UserHandler{
		executor:   executor,
		operations: operations,
		logger:     logger.With(slog.String("component", componentName)),
	}
}

// RegisterRoutes mounts the user endpoints on r.
func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.Get("/users", h.ListUsers)
	r.Get("/users/{id}", h.GetUser)
	r.Post("/users", h.CreateUser)
	r.Put("/users/{userId}", h.UpdateUser)
	r.Delete("/users/{id}", h.DeleteUser)
}

// ListUsers handles GET /users requests
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	h.execute(w, r, "list_users", h.operations.ListUsers, ListUsersContext{
		Offset: pageParam(r, "offset", DefaultOffset),
		Limit:  pageParam(r, "limit", DefaultLimit),
	})
}

// GetUser handles GET /users/{id} requests
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	h.execute(w, r, "get_user", h.operations.GetUser, UserIDContext{
		ID: chi.URLParam(r, "id"),
	})
}

// CreateUser handles POST /users requests
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	log := h.requestLogger(r)
	h.execute(w, r, "create_user", h.operations.CreateUser, decodeBody[CreateUserContext](r, log))
}

// UpdateUser handles PUT /users/{userId} requests
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	log := h.requestLogger(r)
	params := decodeBody[UpdateUserContext](r, log)
	params.UserID = chi.URLParam(r, "userId")
	h.execute(w, r, "update_user", h.operations.UpdateUser, params)
}

// DeleteUser handles DELETE /users/{id} requests
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	h.execute(w, r, "delete_user", h.operations.DeleteUser, UserIDContext{
		ID: chi.URLParam(r, "id"),
	})
}

// requestLogger returns the request-scoped logger, tagged with this
// component, or the handler's own logger outside the trace middleware.
func (h *UserHandler) requestLogger(r *http.Request) *slog.Logger {
	if log := logger.FromContext(r.Context()); log != nil {
		return log.With(slog.String("component", componentName))
	}
	return h.logger
}

// execute runs one operation and writes its outcome. The error payload of a
// failed result is written byte for byte with a 500 status, otherwise the
// data payload with a 200 status (null when the operation returned none).
func (h *UserHandler) execute(
	w http.ResponseWriter,
	r *http.Request,
	operation string,
	operationID string,
	params any,
) {
	log := h.requestLogger(r).With(slog.String("operation", operation))

	result, err := h.executor.Execute(r.Context(), query.Request{
		OperationID: operationID,
		Context:     params,
	})
	if err == nil && result == nil {
		err = fmt.Errorf("%w: executor returned no result", query.ErrInvalidResult)
	}
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	if result.Failed() {
		log.ErrorContext(r.Context(), "query operation failed",
			slog.String("query_id", operationID),
			slog.String("error", redact.Payload(result.Payload())),
			slog.String("trace_id", shared.GetTraceID(r.Context())))
		shared.RespondWithRawJSON(w, r, http.StatusInternalServerError, result.Payload())
		return
	}

	log.DebugContext(r.Context(), "query operation succeeded", slog.String("query_id", operationID))
	shared.RespondWithRawJSON(w, r, http.StatusOK, result.Payload())
}
