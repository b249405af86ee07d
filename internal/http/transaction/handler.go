package transaction

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/PUSHKARDEORE/Finalytics/internal/export"
	"github.com/PUSHKARDEORE/Finalytics/internal/stats"
	"github.com/PUSHKARDEORE/Finalytics/internal/transaction"
)

type Handler struct {
	svc      *transaction.Service
	stats    *stats.Service
	exporter *export.Service
}

func NewHandler(svc *transaction.Service, statsSvc *stats.Service, exporter *export.Service) *Handler {
	return &Handler{svc: svc, stats: statsSvc, exporter: exporter}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/stats", h.statistics)
	r.Get("/filters", h.filters)
	r.Post("/export", h.export)
}

func rawFilterFromQuery(q url.Values) transaction.RawFilter {
	return transaction.RawFilter{
		Category:  q.Get("category"),
		Status:    q.Get("status"),
		UserID:    q.Get("user_id"),
		Search:    q.Get("search"),
		StartDate: q.Get("startDate"),
		EndDate:   q.Get("endDate"),
		MinAmount: q.Get("minAmount"),
		MaxAmount: q.Get("maxAmount"),
	}
}

func intParam(q url.Values, name string) int {
	v, err := strconv.Atoi(q.Get(name))
	if err != nil {
		return 0
	}

	return v
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	sort := transaction.NormalizeSort(q.Get("sortBy"), q.Get("sortOrder"))
	page := transaction.NormalizePage(intParam(q, "page"), intParam(q, "limit"))

	res, err := h.svc.List(r.Context(), rawFilterFromQuery(q), sort, page)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toListResponse(res))
}

func (h *Handler) statistics(w http.ResponseWriter, r *http.Request) {
	st, err := h.stats.Compute(r.Context(), rawFilterFromQuery(r.URL.Query()))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toStatsResponse(st))
}

func (h *Handler) filters(w http.ResponseWriter, r *http.Request) {
	opts, err := h.svc.FilterOptions(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, filtersResponse{
		Categories: opts.Categories,
		Statuses:   opts.Statuses,
		UserIDs:    opts.UserIDs,
	})
}

type exportRequest struct {
	Columns []string `json:"columns"`
	Filters struct {
		Category  string `json:"category"`
		Status    string `json:"status"`
		UserID    string `json:"user_id"`
		Search    string `json:"search"`
		StartDate string `json:"startDate"`
		EndDate   string `json:"endDate"`
		MinAmount string `json:"minAmount"`
		MaxAmount string `json:"maxAmount"`
	} `json:"filters"`
}

func (h *Handler) export(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	columns := req.Columns
	if columns == nil {
		// Absent means "use the default set"; an explicit empty list is an error.
		columns = export.DefaultColumns
	}

	raw := transaction.RawFilter{
		Category:  req.Filters.Category,
		Status:    req.Filters.Status,
		UserID:    req.Filters.UserID,
		Search:    req.Filters.Search,
		StartDate: req.Filters.StartDate,
		EndDate:   req.Filters.EndDate,
		MinAmount: req.Filters.MinAmount,
		MaxAmount: req.Filters.MaxAmount,
	}

	res, err := h.exporter.CSV(r.Context(), columns, raw)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", res.Filename))

	if _, err := w.Write(res.Data); err != nil {
		slog.Error("failed to write csv response", "error", err)
	}
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if transaction.IsValidationError(err) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	slog.Error("transaction query failed", "path", r.URL.Path, "error", err)
	writeError(w, http.StatusInternalServerError, "server error")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}
