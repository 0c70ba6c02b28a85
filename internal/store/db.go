package store

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

var db *sql.DB

// InitDB opens the SQLite database and creates the schema if needed.
func InitDB(dbPath string) error {
	var err error
	db, err = sql.Open("sqlite3", dbPath)
	if err != nil {
		return err
	}

	tables := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			email TEXT UNIQUE,
			name TEXT,
			created_at DATETIME
		);`,
		`CREATE TABLE IF NOT EXISTS teams (
			id TEXT PRIMARY KEY,
			name TEXT,
			created_at DATETIME
		);`,
		`CREATE TABLE IF NOT EXISTS team_members (
			team_id TEXT,
			user_id TEXT,
			role TEXT,
			PRIMARY KEY (team_id, user_id)
		);`,
		`CREATE TABLE IF NOT EXISTS datasets (
			id TEXT PRIMARY KEY,
			name TEXT,
			user_id TEXT,
			team_id TEXT,
			created_at DATETIME
		);`,
		`CREATE TABLE IF NOT EXISTS dataset_columns (
			id TEXT PRIMARY KEY,
			dataset_id TEXT,
			name TEXT,
			type TEXT,
			position INTEGER
		);`,
		`CREATE TABLE IF NOT EXISTS dataset_rows (
			id TEXT PRIMARY KEY,
			dataset_id TEXT,
			row_index INTEGER,
			data TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS user_activity (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id TEXT,
			action TEXT,
			dataset_id TEXT,
			details TEXT,
			created_at DATETIME
		);`,
		`CREATE INDEX IF NOT EXISTS idx_rows_dataset ON dataset_rows (dataset_id, row_index);`,
	}

	for _, table := range tables {
		if _, err := db.Exec(table); err != nil {
			return err
		}
	}
	return nil
}

// CloseDB closes the database connection.
func CloseDB() error {
	if db == nil {
		return nil
	}
	return db.Close()
}
