package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"csv-manager/internal/model"
	"csv-manager/internal/query"
	"csv-manager/internal/store"
	"csv-manager/pkg/utils"
)

// ListRows returns one filtered, sorted page of rows
// @Summary Query dataset rows
// @Description Filter, sort and paginate rows in memory; total is the filtered pre-pagination count
// @Tags rows
// @Produce json
// @Param id path string true "Dataset ID"
// @Param page query int false "Page number (1-based)"
// @Param limit query int false "Page size"
// @Param sortColumn query string false "Column to sort by"
// @Param sortDirection query string false "asc or desc"
// @Param filters query string false "JSON object mapping column to substring"
// @Success 200 {object} query.Result "Page of rows plus total"
// @Failure 400 {object} map[string]interface{} "Malformed filters or paging"
// @Failure 404 {object} map[string]interface{} "Dataset absent or not visible"
// @Router /datasets/{id}/rows [get]
func (h *Handler) ListRows(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	id, err := datasetIDFromPath(r.URL.Path, "/rows")
	if err != nil {
		h.writeError(w, err)
		return
	}

	q := r.URL.Query()
	page, err := parsePositive(q.Get("page"), 1)
	if err != nil {
		h.writeError(w, err)
		return
	}
	limit, err := parsePositive(q.Get("limit"), h.Cfg.DefaultPageSize)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if limit > h.Cfg.MaxPageSize {
		limit = h.Cfg.MaxPageSize
	}

	filters := map[string]string{}
	if raw := q.Get("filters"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &filters); err != nil {
			h.writeError(w, fmt.Errorf("%w: malformed filters JSON", model.ErrInvalidInput))
			return
		}
	}

	rows, err := store.ListRows(user.ID, id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	result, err := query.Run(rows, query.Params{
		Page:          page,
		PageSize:      limit,
		SortColumn:    q.Get("sortColumn"),
		SortDirection: query.Direction(q.Get("sortDirection")),
		Filters:       filters,
	}, query.Options{
		CaseSensitive:  h.Cfg.CaseSensitiveFilters,
		NumericCompare: h.Cfg.NumericSort,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	if result.Rows == nil {
		result.Rows = []model.Row{}
	}
	writeJSON(w, http.StatusOK, result)
}

// UpdateCell replaces one column's value in one row
// @Summary Edit a cell
// @Description Replaces exactly one key of the row's data mapping; last write wins
// @Tags rows
// @Accept json
// @Produce json
// @Param id path string true "Dataset ID"
// @Success 200 {object} model.Row "Updated row"
// @Failure 400 {object} map[string]interface{} "Unknown column or malformed body"
// @Failure 404 {object} map[string]interface{} "Row not in dataset, or dataset not visible"
// @Router /datasets/{id}/rows [patch]
func (h *Handler) UpdateCell(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	id, err := datasetIDFromPath(r.URL.Path, "/rows")
	if err != nil {
		h.writeError(w, err)
		return
	}

	var body struct {
		RowID  string      `json:"rowId"`
		Column string      `json:"column"`
		Value  interface{} `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.writeError(w, fmt.Errorf("%w: malformed request body", model.ErrInvalidInput))
		return
	}
	if body.RowID == "" || body.Column == "" {
		h.writeError(w, fmt.Errorf("%w: rowId and column are required", model.ErrInvalidInput))
		return
	}

	// keys of row data must stay a subset of declared columns
	ds, err := store.GetDataset(user.ID, id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if !hasColumn(ds.ColumnHeaders, body.Column) {
		h.writeError(w, fmt.Errorf("%w: unknown column %q", model.ErrInvalidInput, body.Column))
		return
	}

	row, err := store.UpdateCell(user.ID, id, body.RowID, body.Column, utils.ParseScalar(body.Value))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, row)
}

func hasColumn(columns []string, name string) bool {
	for _, col := range columns {
		if col == name {
			return true
		}
	}
	return false
}
