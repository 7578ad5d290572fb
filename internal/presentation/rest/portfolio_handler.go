package rest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"

	"github.com/SAHICA-Code/NovaBank/internal/application/dto"
)

const maxWorkbookSize = 10 << 20 // 10 MiB upload cap

type dashboardExecutor interface {
	Execute(ctx context.Context, ownerID string) (dto.DashboardResponse, error)
}

type exportExecutor interface {
	Execute(ctx context.Context, ownerID string) (dto.ExportData, error)
}

type importExecutor interface {
	Execute(ctx context.Context, ownerID string, rows []dto.ImportInstallmentRow) (dto.ImportResult, error)
}

type workbookCodec interface {
	Write(data dto.ExportData) ([]byte, error)
	Parse(content []byte) ([]dto.ImportInstallmentRow, error)
}

// PortfolioHandler serves the dashboard and workbook export/import.
type PortfolioHandler struct {
	dashboard dashboardExecutor
	exporter  exportExecutor
	importer  importExecutor
	codec     workbookCodec
	logger    *slog.Logger
}

// NewPortfolioHandler wires the dashboard and workbook use cases.
func NewPortfolioHandler(
	dashboard dashboardExecutor,
	exporter exportExecutor,
	importer importExecutor,
	codec workbookCodec,
	logger *slog.Logger,
) *PortfolioHandler {
	return &PortfolioHandler{
		dashboard: dashboard,
		exporter:  exporter,
		importer:  importer,
		codec:     codec,
		logger:    logger,
	}
}

func (h *PortfolioHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireUser(w, r)
	if !ok {
		return
	}
	resp, err := h.dashboard.Execute(r.Context(), ownerID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Export streams the owner's portfolio as an XLSX attachment.
func (h *PortfolioHandler) Export(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireUser(w, r)
	if !ok {
		return
	}
	data, err := h.exporter.Execute(r.Context(), ownerID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	content, err := h.codec.Write(data)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	filename := fmt.Sprintf("portfolio-%s.xlsx", data.GeneratedAt.Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(content)
}

// Import accepts a workbook upload, either as a multipart "file" field or as
// a raw request body, and recreates clients and loans from its rows.
func (h *PortfolioHandler) Import(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireUser(w, r)
	if !ok {
		return
	}

	content, err := readWorkbookUpload(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
		return
	}

	rows, err := h.codec.Parse(content)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "could not read workbook"})
		return
	}

	result, err := h.importer.Execute(r.Context(), ownerID, rows)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func readWorkbookUpload(r *http.Request) ([]byte, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(maxWorkbookSize); err != nil {
			return nil, fmt.Errorf("invalid upload")
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			return nil, fmt.Errorf("missing file field")
		}
		defer file.Close()
		return io.ReadAll(io.LimitReader(file, maxWorkbookSize))
	}
	return io.ReadAll(io.LimitReader(r.Body, maxWorkbookSize))
}
