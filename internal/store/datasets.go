package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"csv-manager/internal/model"
)

// CreateDataset persists a parsed CSV as a dataset with its columns and
// rows. Rows keep their zero-based upload order in row_index.
func CreateDataset(callerID, name string, columns []string, rows []model.RowData) (model.Dataset, error) {
	ds := model.Dataset{
		ID:            uuid.New().String(),
		Name:          name,
		OwnerID:       callerID,
		CreatedAt:     time.Now().UTC(),
		ColumnHeaders: columns,
		RowCount:      len(rows),
	}

	tx, err := db.Begin()
	if err != nil {
		return model.Dataset{}, err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO datasets (id, name, user_id, team_id, created_at) VALUES (?, ?, ?, NULL, ?)`,
		ds.ID, ds.Name, ds.OwnerID, ds.CreatedAt)
	if err != nil {
		return model.Dataset{}, err
	}

	for i, col := range columns {
		_, err = tx.Exec(`INSERT INTO dataset_columns (id, dataset_id, name, type, position) VALUES (?, ?, ?, ?, ?)`,
			uuid.New().String(), ds.ID, col, "string", i)
		if err != nil {
			return model.Dataset{}, err
		}
	}

	for i, data := range rows {
		dataJSON, err := json.Marshal(data)
		if err != nil {
			return model.Dataset{}, err
		}
		_, err = tx.Exec(`INSERT INTO dataset_rows (id, dataset_id, row_index, data) VALUES (?, ?, ?, ?)`,
			uuid.New().String(), ds.ID, i, string(dataJSON))
		if err != nil {
			return model.Dataset{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return model.Dataset{}, err
	}
	return ds, nil
}

// ListDatasets returns datasets visible to the caller (owned, or shared
// with the caller's team), newest first.
func ListDatasets(callerID string) ([]model.Dataset, error) {
	teamID, _, _ := teamOf(callerID)
	rows, err := db.Query(
		`SELECT id, name, user_id, team_id, created_at FROM datasets
		 WHERE user_id = ? OR (team_id IS NOT NULL AND team_id = ?)
		 ORDER BY created_at DESC`, callerID, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var datasets []model.Dataset
	for rows.Next() {
		ds, err := scanDataset(rows)
		if err != nil {
			return nil, err
		}
		datasets = append(datasets, ds)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range datasets {
		if err := attachMeta(&datasets[i]); err != nil {
			return nil, err
		}
	}
	return datasets, nil
}

// GetDataset fetches one dataset under the caller's access predicate.
// Invisible datasets are indistinguishable from absent ones.
func GetDataset(callerID, id string) (model.Dataset, error) {
	teamID, _, _ := teamOf(callerID)
	row := db.QueryRow(
		`SELECT id, name, user_id, team_id, created_at FROM datasets
		 WHERE id = ? AND (user_id = ? OR (team_id IS NOT NULL AND team_id = ?))`,
		id, callerID, teamID)

	ds, err := scanDataset(row)
	if err == sql.ErrNoRows {
		return model.Dataset{}, fmt.Errorf("%w: dataset %s", model.ErrNotFound, id)
	}
	if err != nil {
		return model.Dataset{}, err
	}
	if err := attachMeta(&ds); err != nil {
		return model.Dataset{}, err
	}
	return ds, nil
}

// RenameDataset changes the display name. Allowed for the owner, or for
// a team owner when the dataset is shared with that team.
func RenameDataset(callerID, id, name string) (model.Dataset, error) {
	var ownerID string
	var teamID sql.NullString
	err := db.QueryRow(`SELECT user_id, team_id FROM datasets WHERE id = ?`, id).
		Scan(&ownerID, &teamID)
	if err == sql.ErrNoRows {
		return model.Dataset{}, fmt.Errorf("%w: dataset %s", model.ErrNotFound, id)
	}
	if err != nil {
		return model.Dataset{}, err
	}

	callerTeam, role, inTeam := teamOf(callerID)
	isOwner := ownerID == callerID
	isTeamOwner := inTeam && role == model.RoleOwner && teamID.Valid && teamID.String == callerTeam
	if !isOwner && !isTeamOwner {
		return model.Dataset{}, fmt.Errorf("%w: not allowed to rename dataset %s", model.ErrForbidden, id)
	}

	if _, err := db.Exec(`UPDATE datasets SET name = ? WHERE id = ?`, name, id); err != nil {
		return model.Dataset{}, err
	}
	return GetDataset(callerID, id)
}

// DeleteDataset removes a dataset and its columns and rows. Owner only;
// anything else reports NotFound, the same as an absent dataset.
func DeleteDataset(callerID, id string) error {
	var ownerID string
	err := db.QueryRow(`SELECT user_id FROM datasets WHERE id = ? AND user_id = ?`, id, callerID).
		Scan(&ownerID)
	if err == sql.ErrNoRows {
		return fmt.Errorf("%w: dataset %s", model.ErrNotFound, id)
	}
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		`DELETE FROM dataset_rows WHERE dataset_id = ?`,
		`DELETE FROM dataset_columns WHERE dataset_id = ?`,
		`DELETE FROM datasets WHERE id = ?`,
	} {
		if _, err := tx.Exec(stmt, id); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// ShareDataset associates an owned dataset with the caller's team. The
// caller must be a team owner. Returns true when the dataset was already
// shared with that team.
func ShareDataset(callerID, id string) (alreadyShared bool, err error) {
	callerTeam, role, inTeam := teamOf(callerID)
	if !inTeam || role != model.RoleOwner {
		return false, fmt.Errorf("%w: caller is not the owner of a team", model.ErrForbidden)
	}

	var teamID sql.NullString
	err = db.QueryRow(`SELECT team_id FROM datasets WHERE id = ? AND user_id = ?`, id, callerID).
		Scan(&teamID)
	if err == sql.ErrNoRows {
		return false, fmt.Errorf("%w: dataset %s", model.ErrNotFound, id)
	}
	if err != nil {
		return false, err
	}

	if teamID.Valid && teamID.String == callerTeam {
		return true, nil
	}

	_, err = db.Exec(`UPDATE datasets SET team_id = ? WHERE id = ?`, callerTeam, id)
	return false, err
}

func scanDataset(row interface{ Scan(...interface{}) error }) (model.Dataset, error) {
	var ds model.Dataset
	var teamID sql.NullString
	if err := row.Scan(&ds.ID, &ds.Name, &ds.OwnerID, &teamID, &ds.CreatedAt); err != nil {
		return model.Dataset{}, err
	}
	if teamID.Valid {
		ds.TeamID = &teamID.String
	}
	return ds, nil
}

// attachMeta fills in the derived column headers and row count.
func attachMeta(ds *model.Dataset) error {
	rows, err := db.Query(
		`SELECT name FROM dataset_columns WHERE dataset_id = ? ORDER BY position`, ds.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	ds.ColumnHeaders = nil
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return err
		}
		ds.ColumnHeaders = append(ds.ColumnHeaders, name)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	return db.QueryRow(`SELECT COUNT(*) FROM dataset_rows WHERE dataset_id = ?`, ds.ID).
		Scan(&ds.RowCount)
}
