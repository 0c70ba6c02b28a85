package handler

import (
	"fmt"
	"net/http"

	"csv-manager/internal/chart"
	"csv-manager/internal/model"
	"csv-manager/internal/store"
	"csv-manager/internal/summary"
)

// GetSummary computes per-column statistics over a bounded row sample
// @Summary Summarize dataset columns
// @Description Type inference and descriptive stats over the first rows (sample estimates, not dataset-exact)
// @Tags analyze
// @Produce json
// @Param id path string true "Dataset ID"
// @Param limit query int false "Sample size cap (default 100)"
// @Success 200 {object} map[string]interface{} "Per-column statistics"
// @Failure 404 {object} map[string]interface{} "Dataset absent or not visible"
// @Router /datasets/{id}/summary [get]
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	id, err := datasetIDFromPath(r.URL.Path, "/summary")
	if err != nil {
		h.writeError(w, err)
		return
	}

	limit, err := parsePositive(r.URL.Query().Get("limit"), h.Cfg.SampleSize)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if limit > h.Cfg.SampleSize {
		limit = h.Cfg.SampleSize
	}

	ds, sample, err := h.sampleRows(user.ID, id, limit)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"datasetId":  id,
		"sampleSize": len(sample),
		"columns":    summary.Summarize(sample, ds.ColumnHeaders),
	})
}

// GetChart builds a chart series for one column
// @Summary Build chart data
// @Description Histogram, sorted line, or category counts depending on inferred type and chosen kind
// @Tags analyze
// @Produce json
// @Param id path string true "Dataset ID"
// @Param column query string true "Column name"
// @Param kind query string false "bar, line or pie; defaults to the first available kind"
// @Success 200 {object} map[string]interface{} "Chart series or explicit no-chart state"
// @Failure 400 {object} map[string]interface{} "Unknown column"
// @Failure 404 {object} map[string]interface{} "Dataset absent or not visible"
// @Router /datasets/{id}/chart [get]
func (h *Handler) GetChart(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	id, err := datasetIDFromPath(r.URL.Path, "/chart")
	if err != nil {
		h.writeError(w, err)
		return
	}

	column := r.URL.Query().Get("column")
	if column == "" {
		h.writeError(w, fmt.Errorf("%w: column is required", model.ErrInvalidInput))
		return
	}

	ds, sample, err := h.sampleRows(user.ID, id, h.Cfg.SampleSize)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if !hasColumn(ds.ColumnHeaders, column) {
		h.writeError(w, fmt.Errorf("%w: unknown column %q", model.ErrInvalidInput, column))
		return
	}

	stats := summary.Summarize(sample, []string{column})[column]
	available := chart.AvailableKinds(stats)
	kind, ok := chart.Reselect(chart.Kind(r.URL.Query().Get("kind")), available)
	if !ok {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"column":         column,
			"availableKinds": []chart.Kind{},
			"points":         nil,
			"message":        "no chart available for this column",
		})
		return
	}

	points := chart.Build(sample, column, stats, kind)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"column":         column,
		"kind":           kind,
		"availableKinds": available,
		"points":         points,
	})
}

// sampleRows loads the dataset and the first limit rows in stored order.
func (h *Handler) sampleRows(callerID, datasetID string, limit int) (model.Dataset, []model.Row, error) {
	ds, err := store.GetDataset(callerID, datasetID)
	if err != nil {
		return model.Dataset{}, nil, err
	}
	rows, err := store.ListRows(callerID, datasetID)
	if err != nil {
		return model.Dataset{}, nil, err
	}
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return ds, rows, nil
}
