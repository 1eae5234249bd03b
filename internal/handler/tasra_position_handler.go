package handler

import (
	"log/slog"
	"net/http"

	"github.com/kadro-api/internal/dto"
	"github.com/kadro-api/internal/service"
)

type TasraPositionHandler struct {
	responder
	tasraService service.TasraPositionService
}

func NewTasraPositionHandler(tasraService service.TasraPositionService, logger *slog.Logger) *TasraPositionHandler {
	return &TasraPositionHandler{
		responder:    newResponder(logger),
		tasraService: tasraService,
	}
}

func (h *TasraPositionHandler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.tasraService.List(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	resp := make([]dto.TasraPositionResponse, len(rows))
	for i := range rows {
		resp[i] = toTasraPositionResponse(&rows[i].Position, rows[i].Holder)
	}
	h.respondJSON(w, http.StatusOK, resp)
}

func (h *TasraPositionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTasraPositionRequest
	if !h.decode(w, r, &req) {
		return
	}

	p, err := h.tasraService.Create(r.Context(), &req, actor(r))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, toTasraPositionResponse(p, nil))
}

func (h *TasraPositionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := extractID(r, "/tasra-positions")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid position id", err.Error())
		return
	}

	var req dto.UpdateTasraPositionRequest
	if !h.decode(w, r, &req) {
		return
	}

	p, err := h.tasraService.Update(r.Context(), id, &req, actor(r))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toTasraPositionResponse(p, nil))
}

func (h *TasraPositionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := extractID(r, "/tasra-positions")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid position id", err.Error())
		return
	}

	if err := h.tasraService.Delete(r.Context(), id); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
