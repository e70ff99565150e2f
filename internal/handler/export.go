package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mmynk/moneysplits/internal/export"
)

// maxImportBytes caps the size of an uploaded backup.
const maxImportBytes = 10 << 20

// ExportHandler serves export and import endpoints.
type ExportHandler struct {
	exporter *export.Exporter
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(exporter *export.Exporter) *ExportHandler {
	return &ExportHandler{exporter: exporter}
}

// Routes mounts the export and import endpoints on r.
func (h *ExportHandler) Routes(r chi.Router) {
	r.Get("/groups/{groupID}/export.json", h.GroupJSON)
	r.Get("/groups/{groupID}/export.csv", h.GroupCSV)
	r.Get("/export", h.Backup)
	r.Post("/import", h.Import)
}

// GroupJSON handles GET /api/groups/{groupID}/export.json
func (h *ExportHandler) GroupJSON(w http.ResponseWriter, r *http.Request) {
	doc, err := h.exporter.GroupJSON(r.Context(), chi.URLParam(r, "groupID"))
	if err != nil {
		HandleError(w, r, err)
		return
	}
	writeDocument(w, doc)
}

// GroupCSV handles GET /api/groups/{groupID}/export.csv
func (h *ExportHandler) GroupCSV(w http.ResponseWriter, r *http.Request) {
	doc, err := h.exporter.GroupCSV(r.Context(), chi.URLParam(r, "groupID"))
	if err != nil {
		HandleError(w, r, err)
		return
	}
	writeDocument(w, doc)
}

// Backup handles GET /api/export
func (h *ExportHandler) Backup(w http.ResponseWriter, r *http.Request) {
	doc, err := h.exporter.Backup(r.Context())
	if err != nil {
		HandleError(w, r, err)
		return
	}
	writeDocument(w, doc)
}

// Import handles POST /api/import
func (h *ExportHandler) Import(w http.ResponseWriter, r *http.Request) {
	backup, err := export.ParseBackup(http.MaxBytesReader(w, r.Body, maxImportBytes))
	if err != nil {
		HandleError(w, r, err)
		return
	}

	result, err := h.exporter.Import(r.Context(), backup)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, result)
}

func writeDocument(w http.ResponseWriter, doc *export.Document) {
	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	w.WriteHeader(http.StatusOK)
	w.Write(doc.Data)
}
