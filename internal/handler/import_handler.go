package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/kadro-api/internal/domain"
	"github.com/kadro-api/internal/dto"
	"github.com/kadro-api/internal/importer"
	"github.com/kadro-api/internal/service"
)

// uploadField - имя поля multipart формы с файлом
const uploadField = "file"

type ImportHandler struct {
	responder
	importService  service.ImportService
	maxUploadBytes int64
}

func NewImportHandler(importService service.ImportService, maxUploadBytes int64, logger *slog.Logger) *ImportHandler {
	return &ImportHandler{
		responder:      newResponder(logger),
		importService:  importService,
		maxUploadBytes: maxUploadBytes,
	}
}

// Handle возвращает обработчик импорта для указанного типа записей
func (h *ImportHandler) Handle(kind importer.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

		file, header, err := r.FormFile(uploadField)
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				h.respondError(w, http.StatusRequestEntityTooLarge, "file is too large", "")
				return
			}
			h.respondError(w, http.StatusBadRequest, "file is required", err.Error())
			return
		}
		defer file.Close()

		var org domain.Organization
		if kind == importer.KindPersonnel {
			org = organization(r)
		}

		report, err := h.importService.Import(r.Context(), kind, org, header.Filename, file, actor(r))
		if err != nil {
			h.handleServiceError(w, r, err)
			return
		}

		h.respondJSON(w, http.StatusOK, dto.ImportResponse{Kind: string(kind), Report: *report})
	}
}
