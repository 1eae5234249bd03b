package handler

import (
	"log/slog"
	"net/http"

	"github.com/kadro-api/internal/domain"
	"github.com/kadro-api/internal/dto"
	"github.com/kadro-api/internal/service"
)

type PersonnelHandler struct {
	responder
	personService service.PersonnelService
}

func NewPersonnelHandler(personService service.PersonnelService, logger *slog.Logger) *PersonnelHandler {
	return &PersonnelHandler{
		responder:     newResponder(logger),
		personService: personService,
	}
}

// organization читает ?organization=; по умолчанию центральная организация
func organization(r *http.Request) domain.Organization {
	if org := r.URL.Query().Get("organization"); org != "" {
		return domain.Organization(org)
	}
	return domain.OrgMerkez
}

func (h *PersonnelHandler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.personService.List(r.Context(), organization(r))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	resp := make([]dto.PersonnelResponse, len(rows))
	for i := range rows {
		resp[i] = toPersonnelResponse(&rows[i].Personnel, rows[i].Primary)
	}
	h.respondJSON(w, http.StatusOK, resp)
}

func (h *PersonnelHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePersonnelRequest
	if !h.decode(w, r, &req) {
		return
	}

	p, err := h.personService.Create(r.Context(), &req, actor(r))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, toPersonnelResponse(p, nil))
}

func (h *PersonnelHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := extractID(r, "/personnel")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid personnel id", err.Error())
		return
	}

	if err := h.personService.Delete(r.Context(), id); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
