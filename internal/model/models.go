package model

import "time"

// RowData maps column name to cell value. Keys are always a subset of
// the owning dataset's column names.
type RowData map[string]Value

// Row is a single CSV row with a stable zero-based position.
type Row struct {
	ID        string  `json:"id"`
	DatasetID string  `json:"datasetId"`
	RowIndex  int     `json:"rowIndex"`
	Data      RowData `json:"data"`
}

// Column is one declared CSV column. Columns are created at upload time
// from the header row and immutable afterwards; the stored type is
// always "string", the real type is inferred per request.
type Column struct {
	ID        string `json:"id"`
	DatasetID string `json:"datasetId"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Position  int    `json:"position"`
}

// Dataset is one uploaded CSV. TeamID is nil while the dataset is
// private; sharing sets it to the owner's team.
type Dataset struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	OwnerID       string    `json:"ownerId"`
	TeamID        *string   `json:"teamId"`
	CreatedAt     time.Time `json:"createdAt"`
	ColumnHeaders []string  `json:"columnHeaders"`
	RowCount      int       `json:"rowCount"`
}

// User is a registered account. Authentication itself happens outside
// this service; handlers only resolve an already-issued identity.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// Team groups users for dataset sharing.
type Team struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// TeamMember links a user to a team with a role.
type TeamMember struct {
	TeamID string `json:"teamId"`
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

const (
	RoleOwner  = "owner"
	RoleMember = "member"
)

// Activity is one audit entry for a user-visible dataset action.
type Activity struct {
	ID        int64                  `json:"id"`
	UserID    string                 `json:"userId"`
	Action    string                 `json:"action"`
	DatasetID string                 `json:"datasetId"`
	Details   map[string]interface{} `json:"details"`
	CreatedAt time.Time              `json:"createdAt"`
}
