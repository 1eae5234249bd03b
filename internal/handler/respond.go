package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/kadro-api/internal/domain"
	"github.com/kadro-api/internal/dto"
	"github.com/kadro-api/internal/middleware"
)

// actorHeader - заголовок, которым внешний шлюз передаёт автора изменения
const actorHeader = "X-Actor"

const defaultActor = "system"

// responder - общие для всех хендлеров разбор запроса и запись ответа
type responder struct {
	validator *validator.Validate
	logger    *slog.Logger
}

func newResponder(logger *slog.Logger) responder {
	return responder{validator: validator.New(), logger: logger}
}

// decode читает JSON тело и валидирует его; при ошибке ответ уже записан
func (h responder) decode(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return false
	}
	if err := h.validator.Struct(req); err != nil {
		h.respondError(w, http.StatusBadRequest, "validation error", err.Error())
		return false
	}
	return true
}

func actor(r *http.Request) string {
	if a := strings.TrimSpace(r.Header.Get(actorHeader)); a != "" {
		return a
	}
	return defaultActor
}

// extractID возвращает первый сегмент пути после префикса коллекции
func extractID(r *http.Request, prefix string) (string, error) {
	path := strings.Trim(strings.TrimPrefix(r.URL.Path, prefix), "/")
	id, _, _ := strings.Cut(path, "/")
	if id == "" {
		return "", errors.New("id is required")
	}
	return id, nil
}

func (h responder) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrPositionNotFound):
		h.respondError(w, http.StatusNotFound, "position not found", "")
	case errors.Is(err, domain.ErrPersonnelNotFound):
		h.respondError(w, http.StatusNotFound, "personnel not found", "")
	case errors.Is(err, domain.ErrManagerNotFound):
		h.respondError(w, http.StatusNotFound, "supervising position not found", "")
	case errors.Is(err, domain.ErrDuplicatePosition):
		h.respondError(w, http.StatusConflict, "position with the same department, title and duty location already exists", "")
	case errors.Is(err, domain.ErrDuplicateRegistry):
		h.respondError(w, http.StatusConflict, "registry number already exists in the organization", "")
	case errors.Is(err, domain.ErrSelfReference):
		h.respondError(w, http.StatusBadRequest, "position cannot report to itself", "")
	case errors.Is(err, domain.ErrCyclicReference):
		h.respondError(w, http.StatusConflict, "reporting line would create a cycle", "")
	case errors.Is(err, domain.ErrAssignmentOutsideScope):
		h.respondError(w, http.StatusBadRequest, "assigned personnel belongs to another organization", "")
	case errors.Is(err, domain.ErrInvalidOrganization):
		h.respondError(w, http.StatusBadRequest, "organization must be 'merkez' or 'tasra'", "")
	case errors.Is(err, domain.ErrUnsupportedFileType):
		h.respondError(w, http.StatusUnsupportedMediaType, "unsupported file type, use .xlsx or .csv", "")
	case errors.Is(err, domain.ErrUnreadableFile),
		errors.Is(err, domain.ErrMissingHeader),
		errors.Is(err, domain.ErrNoRecognizedColumns):
		h.respondError(w, http.StatusUnprocessableEntity, "file cannot be imported", err.Error())
	default:
		h.logger.Error("internal error",
			slog.Any("error", err),
			slog.String("request_id", middleware.RequestIDFrom(r.Context())),
		)
		h.respondError(w, http.StatusInternalServerError, "internal server error", "")
	}
}

func (h responder) respondJSON(w http.ResponseWriter, status int, data any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", slog.Any("error", err))
	}
}

func (h responder) respondError(w http.ResponseWriter, status int, errMsg, details string) {
	w.WriteHeader(status)
	resp := dto.ErrorResponse{Error: errMsg}
	if details != "" {
		resp.Message = details
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("failed to encode error response", slog.Any("error", err))
	}
}
