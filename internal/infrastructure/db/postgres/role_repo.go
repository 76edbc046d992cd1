package postgres

import (
	"context"
	"database/sql"
	"strings"

	"github.com/baechuer/real-time-ressys/services/admin-service/internal/domain"
)

type RoleRepo struct {
	db *sql.DB
}

func NewRoleRepo(db *sql.DB) *RoleRepo {
	return &RoleRepo{db: db}
}

func (r *RoleRepo) List(ctx context.Context) ([]domain.Role, error) {
	const q = `
SELECT id, name, COALESCE(description, '')
FROM roles
ORDER BY name;
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	defer rows.Close()

	var roles []domain.Role
	for rows.Next() {
		var role domain.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Description); err != nil {
			return nil, domain.ErrDBUnavailable(err)
		}
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	return roles, nil
}

func (r *RoleRepo) GetByName(ctx context.Context, name string) (domain.Role, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Role{}, domain.ErrRoleNotFound()
	}

	const q = `
SELECT id, name, COALESCE(description, '')
FROM roles
WHERE name = $1
LIMIT 1;
`
	var role domain.Role
	err := r.db.QueryRowContext(ctx, q, name).Scan(&role.ID, &role.Name, &role.Description)
	if err != nil {
		if isNoRows(err) {
			return domain.Role{}, domain.ErrRoleNotFound()
		}
		return domain.Role{}, domain.ErrDBUnavailable(err)
	}
	return role, nil
}

func (r *RoleRepo) Create(ctx context.Context, role domain.Role) (domain.Role, error) {
	const q = `
INSERT INTO roles (id, name, description)
VALUES ($1, $2, NULLIF($3, ''))
RETURNING id;
`
	err := r.db.QueryRowContext(ctx, q, role.ID, role.Name, role.Description).Scan(&role.ID)
	if err != nil {
		if _, ok := uniqueViolation(err); ok {
			return domain.Role{}, domain.ErrFieldConflict("roleName", "This role already exists")
		}
		return domain.Role{}, domain.ErrDBUnavailable(err)
	}
	return role, nil
}

// Delete removes the role row; user associations cascade with it.
func (r *RoleRepo) Delete(ctx context.Context, name string) error {
	const q = `DELETE FROM roles WHERE name = $1;`

	res, err := r.db.ExecContext(ctx, q, name)
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrRoleNotFound()
	}
	return nil
}
