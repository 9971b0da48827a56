package handler

import (
	"net/http"

	"github.com/templui/taskflow/internal/ctxkeys"
	"github.com/templui/taskflow/internal/service"
)

type ExportHandler struct {
	exportService *service.ExportService
}

func NewExportHandler(exportService *service.ExportService) *ExportHandler {
	return &ExportHandler{
		exportService: exportService,
	}
}

type exportLinkResponse struct {
	URL string `json:"url"`
}

// Export returns a download link when storage is configured, the snapshot itself
// otherwise. ?inline=true always returns the snapshot.
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	if h.exportService.StorageEnabled() && r.URL.Query().Get("inline") != "true" {
		url, err := h.exportService.Publish(r.Context(), user.ID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, exportLinkResponse{URL: url})
		return
	}

	snapshot, err := h.exportService.Snapshot(r.Context(), user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="taskflow-export.json"`)
	writeJSON(w, http.StatusOK, snapshot)
}
