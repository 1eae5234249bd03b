package handler

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/kadro-api/internal/dto"
	"github.com/kadro-api/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type PositionHandler struct {
	responder
	posService service.PositionService
}

func NewPositionHandler(posService service.PositionService, logger *slog.Logger) *PositionHandler {
	return &PositionHandler{
		responder:  newResponder(logger),
		posService: posService,
	}
}

func (h *PositionHandler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.posService.List(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	resp := make([]dto.PositionResponse, len(rows))
	for i := range rows {
		resp[i] = toPositionResponse(&rows[i].Position, rows[i].Holder)
	}
	h.respondJSON(w, http.StatusOK, resp)
}

func (h *PositionHandler) Tree(w http.ResponseWriter, r *http.Request) {
	roots, err := h.posService.Tree(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, toTreeResponse(roots))
}

func (h *PositionHandler) Export(w http.ResponseWriter, r *http.Request) {
	// Книга собирается целиком до записи заголовков, чтобы ошибка не оставила полуответ
	var buf bytes.Buffer
	if err := h.posService.Export(r.Context(), &buf); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="kadro.xlsx"`)
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Error("failed to write workbook", slog.Any("error", err))
	}
}

func (h *PositionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePositionRequest
	if !h.decode(w, r, &req) {
		return
	}

	p, err := h.posService.Create(r.Context(), &req, actor(r))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, toPositionResponse(p, nil))
}

func (h *PositionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := extractID(r, "/positions")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid position id", err.Error())
		return
	}

	var req dto.UpdatePositionRequest
	if !h.decode(w, r, &req) {
		return
	}

	p, err := h.posService.Update(r.Context(), id, &req, actor(r))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toPositionResponse(p, nil))
}

func (h *PositionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := extractID(r, "/positions")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid position id", err.Error())
		return
	}

	if err := h.posService.Delete(r.Context(), id); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
