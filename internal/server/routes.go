package server

import (
	"net/http"

	"tabnote/internal/server/handler"
	"tabnote/internal/server/middleware"
)

func NewMux(h *handler.Handler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/session", h.HandleCreateSession)
	mux.HandleFunc("POST /api/session/{id}/credential", h.HandleSetCredential)
	mux.HandleFunc("POST /api/session/{id}/dataset", h.HandleUploadDataset)
	mux.HandleFunc("GET /api/session/{id}/notebook", h.HandleNotebook)
	mux.HandleFunc("POST /api/session/{id}/cells", h.HandleCreateCell)
	mux.HandleFunc("PATCH /api/session/{id}/cells/{cellID}", h.HandleEditCell)
	mux.HandleFunc("POST /api/session/{id}/cells/{cellID}/run", h.HandleRunAnalysis)
	mux.HandleFunc("GET /api/session/{id}/cells/{cellID}/chart.svg", h.HandleCellChart)
	mux.HandleFunc("POST /api/session/{id}/templates/{templateID}/run", h.HandleApplyTemplate)
	mux.HandleFunc("GET /api/session/{id}/export", h.HandleExport)
	mux.HandleFunc("GET /api/session/{id}/runs", h.HandleRunHistory)
	mux.HandleFunc("GET /api/templates", h.HandleTemplates)

	// Streams
	mux.HandleFunc("GET /ws/session/{id}", h.HandleSessionWS)
	mux.HandleFunc("GET /api/session/{id}/watch/{runID}", h.HandleWatchRun)

	return middleware.CORS(mux)
}
