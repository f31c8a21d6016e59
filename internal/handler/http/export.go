package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/utafrali/finsearch/internal/domain"
	"github.com/utafrali/finsearch/internal/export"
	"github.com/utafrali/finsearch/pkg/httputil"
)

// ExportHandler serves the XML catalog feed.
type ExportHandler struct {
	service        *export.Service
	baseCategoryID int64
	logger         *slog.Logger
}

// NewExportHandler creates a new export HTTP handler.
func NewExportHandler(svc *export.Service, baseCategoryID int64, logger *slog.Logger) *ExportHandler {
	return &ExportHandler{
		service:        svc,
		baseCategoryID: baseCategoryID,
		logger:         logger,
	}
}

// Export handles GET /export. With a productId query parameter only the
// matching product is exported; otherwise start/count page through the
// catalog (count=0 exports everything from start).
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	shopKey := strings.TrimSpace(r.URL.Query().Get("shopkey"))

	start, ok := httputil.ParseIntParam(w, r, "start", 0)
	if !ok {
		return
	}
	count, ok := httputil.ParseIntParam(w, r, "count", 0)
	if !ok {
		return
	}

	var (
		result *domain.ExportResult
		err    error
	)
	if productID := strings.TrimSpace(r.URL.Query().Get("productId")); productID != "" {
		result, err = h.service.ExportProduct(r.Context(), shopKey, h.baseCategoryID, productID)
	} else {
		result, err = h.service.Export(r.Context(), shopKey, h.baseCategoryID, start, count)
	}
	if err != nil {
		var argErr *domain.InvalidArgumentError
		if errors.As(err, &argErr) {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "INVALID_PARAMETER", Message: argErr.Reason},
			})
			return
		}
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	if len(result.GeneralErrors) > 0 {
		httputil.WriteJSON(w, http.StatusUnprocessableEntity, httputil.Response{
			Error: &httputil.ErrorResponse{
				Code:    "EXPORT_ERROR",
				Message: strings.Join(result.GeneralErrors, "; "),
			},
		})
		return
	}

	doc := export.NewFeedDocument(start, result)
	if err := httputil.WriteXML(w, http.StatusOK, doc); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to write feed", slog.String("error", err.Error()))
	}
}
