package store

import (
	"encoding/json"
	"time"

	"csv-manager/internal/model"
)

// RecordActivity appends a user activity entry (uploads, deletions).
// Failures here are reported but non-fatal to the triggering request.
func RecordActivity(userID, action, datasetID string, details map[string]interface{}) error {
	detailsJSON, err := json.Marshal(details)
	if err != nil {
		return err
	}
	_, err = db.Exec(
		`INSERT INTO user_activity (user_id, action, dataset_id, details, created_at) VALUES (?, ?, ?, ?, ?)`,
		userID, action, datasetID, string(detailsJSON), time.Now().UTC())
	return err
}

// ListActivity returns the user's most recent upload and delete entries,
// newest first. Other actions stay internal to the audit table.
func ListActivity(userID string, limit int) ([]model.Activity, error) {
	rows, err := db.Query(
		`SELECT id, user_id, action, dataset_id, details, created_at FROM user_activity
		 WHERE user_id = ? AND action IN ('uploaded_csv', 'deleted_csv')
		 ORDER BY created_at DESC, id DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Activity
	for rows.Next() {
		var entry model.Activity
		var detailsJSON string
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.Action, &entry.DatasetID, &detailsJSON, &entry.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(detailsJSON), &entry.Details); err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}
