package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"csv-manager/internal/model"
)

// CreateUser registers an account. Password/session handling lives in
// the external auth service; the store only knows identities.
func CreateUser(email, name string) (model.User, error) {
	user := model.User{
		ID:        uuid.New().String(),
		Email:     email,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	_, err := db.Exec(`INSERT INTO users (id, email, name, created_at) VALUES (?, ?, ?, ?)`,
		user.ID, user.Email, user.Name, user.CreatedAt)
	if err != nil {
		return model.User{}, err
	}
	return user, nil
}

// GetUser resolves a caller identity. Unknown IDs map to Unauthorized,
// not NotFound: an unresolvable identity means the request has no valid
// caller at all.
func GetUser(id string) (model.User, error) {
	var user model.User
	err := db.QueryRow(`SELECT id, email, name, created_at FROM users WHERE id = ?`, id).
		Scan(&user.ID, &user.Email, &user.Name, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return model.User{}, fmt.Errorf("%w: unknown user", model.ErrUnauthorized)
	}
	if err != nil {
		return model.User{}, err
	}
	return user, nil
}

// CreateTeam creates a team with the given user as its owner.
func CreateTeam(name, ownerID string) (model.Team, error) {
	team := model.Team{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	_, err := db.Exec(`INSERT INTO teams (id, name, created_at) VALUES (?, ?, ?)`,
		team.ID, team.Name, team.CreatedAt)
	if err != nil {
		return model.Team{}, err
	}
	if err := AddTeamMember(team.ID, ownerID, model.RoleOwner); err != nil {
		return model.Team{}, err
	}
	return team, nil
}

// AddTeamMember links a user to a team. Re-adding an existing member is
// a no-op.
func AddTeamMember(teamID, userID, role string) error {
	_, err := db.Exec(`INSERT OR IGNORE INTO team_members (team_id, user_id, role) VALUES (?, ?, ?)`,
		teamID, userID, role)
	return err
}

// TeamRole returns the user's role in one specific team.
func TeamRole(teamID, userID string) (string, bool) {
	var role string
	err := db.QueryRow(`SELECT role FROM team_members WHERE team_id = ? AND user_id = ?`,
		teamID, userID).Scan(&role)
	if err != nil {
		return "", false
	}
	return role, true
}

// TeamMembership reports the user's primary team, if any.
func TeamMembership(userID string) (teamID string, role string, ok bool) {
	return teamOf(userID)
}

// teamOf returns the user's primary team membership. Users can in
// principle belong to several teams; like the original, the first
// membership wins for visibility checks.
func teamOf(userID string) (teamID string, role string, ok bool) {
	err := db.QueryRow(
		`SELECT team_id, role FROM team_members WHERE user_id = ? ORDER BY team_id LIMIT 1`,
		userID).Scan(&teamID, &role)
	if err != nil {
		return "", "", false
	}
	return teamID, role, true
}
