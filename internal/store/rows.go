package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"csv-manager/internal/model"
)

// ListRows fetches all rows of a dataset visible to the caller, in
// stable insertion (row_index) order. Filtering, sorting and paging
// happen afterwards in the query package.
func ListRows(callerID, datasetID string) ([]model.Row, error) {
	// visibility check first so absent and invisible look the same
	if _, err := GetDataset(callerID, datasetID); err != nil {
		return nil, err
	}

	rows, err := db.Query(
		`SELECT id, dataset_id, row_index, data FROM dataset_rows
		 WHERE dataset_id = ? ORDER BY row_index ASC`, datasetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Row
	for rows.Next() {
		row, err := scanRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// UpdateCell replaces the value of exactly one column in one row.
// NotFound when the row does not belong to the dataset or the dataset is
// not visible to the caller. Team members of a shared dataset may edit;
// concurrent edits are last-write-wins with no conflict detection.
func UpdateCell(callerID, datasetID, rowID, column string, value model.Value) (model.Row, error) {
	if _, err := GetDataset(callerID, datasetID); err != nil {
		return model.Row{}, err
	}

	var dataJSON string
	var rowIndex int
	err := db.QueryRow(
		`SELECT row_index, data FROM dataset_rows WHERE id = ? AND dataset_id = ?`,
		rowID, datasetID).Scan(&rowIndex, &dataJSON)
	if err == sql.ErrNoRows {
		return model.Row{}, fmt.Errorf("%w: row %s in dataset %s", model.ErrNotFound, rowID, datasetID)
	}
	if err != nil {
		return model.Row{}, err
	}

	var data model.RowData
	if err := json.Unmarshal([]byte(dataJSON), &data); err != nil {
		return model.Row{}, err
	}
	data[column] = value

	updated, err := json.Marshal(data)
	if err != nil {
		return model.Row{}, err
	}
	if _, err := db.Exec(`UPDATE dataset_rows SET data = ? WHERE id = ?`, string(updated), rowID); err != nil {
		return model.Row{}, err
	}

	return model.Row{ID: rowID, DatasetID: datasetID, RowIndex: rowIndex, Data: data}, nil
}

func scanRow(rows *sql.Rows) (model.Row, error) {
	var row model.Row
	var dataJSON string
	if err := rows.Scan(&row.ID, &row.DatasetID, &row.RowIndex, &dataJSON); err != nil {
		return model.Row{}, err
	}
	if err := json.Unmarshal([]byte(dataJSON), &row.Data); err != nil {
		return model.Row{}, err
	}
	return row, nil
}
