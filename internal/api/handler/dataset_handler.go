package handler

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"

	"csv-manager/internal/ingest"
	"csv-manager/internal/model"
	"csv-manager/internal/store"
)

// UploadDataset creates a dataset from an uploaded CSV file
// @Summary Upload a CSV dataset
// @Description Parse a CSV file and store it as a new dataset owned by the caller
// @Tags datasets
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV file"
// @Param name formData string true "Display name"
// @Success 200 {object} model.Dataset "Created dataset"
// @Failure 400 {object} map[string]interface{} "Missing or invalid CSV"
// @Failure 401 {object} map[string]interface{} "No caller identity"
// @Router /datasets/upload [post]
func (h *Handler) UploadDataset(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.writeError(w, fmt.Errorf("%w: missing file field", model.ErrInvalidInput))
		return
	}
	defer file.Close()

	name := r.FormValue("name")
	if name == "" {
		h.writeError(w, fmt.Errorf("%w: missing name field", model.ErrInvalidInput))
		return
	}

	parsed, err := ingest.Parse(file)
	if err != nil {
		h.writeError(w, err)
		return
	}

	ds, err := store.CreateDataset(user.ID, name, parsed.Columns, parsed.Rows)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := store.RecordActivity(user.ID, "uploaded_csv", ds.ID, map[string]interface{}{
		"fileName": ds.Name,
		"rowCount": ds.RowCount,
	}); err != nil {
		h.Log.WithError(err).Warn("failed to record upload activity")
	}

	writeJSON(w, http.StatusOK, ds)
}

// ListDatasets lists datasets visible to the caller
// @Summary List datasets
// @Description Datasets owned by the caller or shared with the caller's team, newest first
// @Tags datasets
// @Produce json
// @Success 200 {array} model.Dataset "Visible datasets"
// @Failure 401 {object} map[string]interface{} "No caller identity"
// @Router /datasets [get]
func (h *Handler) ListDatasets(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	datasets, err := store.ListDatasets(user.ID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if datasets == nil {
		datasets = []model.Dataset{}
	}
	writeJSON(w, http.StatusOK, datasets)
}

// GetDataset returns one dataset's metadata
// @Summary Get dataset
// @Tags datasets
// @Produce json
// @Param id path string true "Dataset ID"
// @Success 200 {object} model.Dataset "Dataset metadata"
// @Failure 404 {object} map[string]interface{} "Dataset absent or not visible"
// @Router /datasets/{id} [get]
func (h *Handler) GetDataset(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	id, err := datasetIDFromPath(r.URL.Path, "")
	if err != nil {
		h.writeError(w, err)
		return
	}

	ds, err := store.GetDataset(user.ID, id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ds)
}

// RenameDataset changes a dataset's display name
// @Summary Rename dataset
// @Description Allowed for the owner, or a team owner of the sharing team
// @Tags datasets
// @Accept json
// @Produce json
// @Param id path string true "Dataset ID"
// @Success 200 {object} model.Dataset "Renamed dataset"
// @Failure 403 {object} map[string]interface{} "Caller may not rename"
// @Router /datasets/{id} [patch]
func (h *Handler) RenameDataset(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	id, err := datasetIDFromPath(r.URL.Path, "")
	if err != nil {
		h.writeError(w, err)
		return
	}

	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Name == "" {
		h.writeError(w, fmt.Errorf("%w: invalid name", model.ErrInvalidInput))
		return
	}

	ds, err := store.RenameDataset(user.ID, id, body.Name)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ds)
}

// DeleteDataset removes a dataset with its columns and rows
// @Summary Delete dataset
// @Description Owner only; cascades to rows and columns
// @Tags datasets
// @Produce json
// @Param id path string true "Dataset ID"
// @Success 200 {object} map[string]interface{} "Deletion confirmation"
// @Failure 404 {object} map[string]interface{} "Dataset absent or not owned"
// @Router /datasets/{id} [delete]
func (h *Handler) DeleteDataset(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	id, err := datasetIDFromPath(r.URL.Path, "")
	if err != nil {
		h.writeError(w, err)
		return
	}

	ds, err := store.GetDataset(user.ID, id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if err := store.DeleteDataset(user.ID, id); err != nil {
		h.writeError(w, err)
		return
	}

	if err := store.RecordActivity(user.ID, "deleted_csv", id, map[string]interface{}{
		"fileName": ds.Name,
	}); err != nil {
		h.Log.WithError(err).Warn("failed to record delete activity")
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Dataset deleted successfully",
		"id":      id,
	})
}

// ShareDataset shares a dataset with the caller's team
// @Summary Share dataset
// @Description Owner shares with their own team; idempotent when already shared
// @Tags datasets
// @Produce json
// @Param id path string true "Dataset ID"
// @Success 200 {object} map[string]interface{} "Share confirmation"
// @Failure 403 {object} map[string]interface{} "Caller is not a team owner"
// @Router /datasets/{id}/share [post]
func (h *Handler) ShareDataset(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	id, err := datasetIDFromPath(r.URL.Path, "/share")
	if err != nil {
		h.writeError(w, err)
		return
	}

	already, err := store.ShareDataset(user.ID, id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	message := "Dataset shared with team successfully"
	if already {
		message = "Dataset is already shared with your team"
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": message,
		"id":      id,
	})
}

// ExportDataset streams a dataset back as CSV
// @Summary Export dataset
// @Tags datasets
// @Produce text/csv
// @Param id path string true "Dataset ID"
// @Success 200 {file} file "CSV download"
// @Failure 404 {object} map[string]interface{} "Dataset absent or not visible"
// @Router /datasets/{id}/export [get]
func (h *Handler) ExportDataset(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	id, err := datasetIDFromPath(r.URL.Path, "/export")
	if err != nil {
		h.writeError(w, err)
		return
	}

	ds, err := store.GetDataset(user.ID, id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	rows, err := store.ListRows(user.ID, id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", ds.Name+".csv"))
	w.Header().Set("Content-Type", "text/csv")

	writer := csv.NewWriter(w)
	writer.Write(ds.ColumnHeaders)
	record := make([]string, len(ds.ColumnHeaders))
	for _, row := range rows {
		for i, col := range ds.ColumnHeaders {
			record[i] = row.Data[col].String()
		}
		writer.Write(record)
	}
	writer.Flush()
}
