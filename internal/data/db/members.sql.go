package db

import "context"

const teamMemberColumns = `member_id, workspace_id, member_name, name_key, team, email, created_at`

const createTeamMember = `INSERT INTO team_members (` + teamMemberColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`

func (q *Queries) CreateTeamMember(ctx context.Context, arg TeamMember) error {
	_, err := q.db.ExecContext(ctx, createTeamMember,
		arg.MemberID, arg.WorkspaceID, arg.MemberName, arg.NameKey,
		arg.Team, arg.Email, arg.CreatedAt,
	)
	return err
}

const getTeamMemberByNameKey = `SELECT ` + teamMemberColumns + ` FROM team_members
WHERE workspace_id = ? AND name_key = ?`

func (q *Queries) GetTeamMemberByNameKey(ctx context.Context, workspaceID, nameKey string) (TeamMember, error) {
	row := q.db.QueryRowContext(ctx, getTeamMemberByNameKey, workspaceID, nameKey)
	return scanTeamMember(row)
}

const listTeamMembers = `SELECT ` + teamMemberColumns + ` FROM team_members
WHERE workspace_id = ? ORDER BY name_key ASC`

func (q *Queries) ListTeamMembers(ctx context.Context, workspaceID string) ([]TeamMember, error) {
	rows, err := q.db.QueryContext(ctx, listTeamMembers, workspaceID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var members []TeamMember
	for rows.Next() {
		m, err := scanTeamMember(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return members, nil
}

const deleteTeamMember = `DELETE FROM team_members WHERE workspace_id = ? AND member_id = ?`

// DeleteTeamMember removes a member and returns the number of rows removed.
func (q *Queries) DeleteTeamMember(ctx context.Context, workspaceID, memberID string) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteTeamMember, workspaceID, memberID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func scanTeamMember(row scanner) (TeamMember, error) {
	var m TeamMember
	err := row.Scan(&m.MemberID, &m.WorkspaceID, &m.MemberName, &m.NameKey, &m.Team, &m.Email, &m.CreatedAt)
	return m, err
}
