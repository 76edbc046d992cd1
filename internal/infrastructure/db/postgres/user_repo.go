package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/baechuer/real-time-ressys/services/admin-service/internal/domain"
)

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// ---------- helpers ----------

func normalize(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// uniqueViolation maps a Postgres duplicate-key failure to the violated
// column. The pre-checks usually catch duplicates first; this is the
// safety net for concurrent writes racing past them.
func uniqueViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return "", false
	}
	switch {
	case strings.Contains(pgErr.ConstraintName, "email"):
		return "email", true
	case strings.Contains(pgErr.ConstraintName, "username"):
		return "username", true
	case strings.Contains(pgErr.ConstraintName, "name"):
		return "roleName", true
	}
	// unrecognized constraint: let the caller surface it as an
	// infrastructure failure instead of a conflict on no field
	return "", false
}

func toDomainUser(ur userRow, roles []string) domain.User {
	return domain.User{
		ID:        ur.ID,
		Email:     ur.Email,
		Username:  ur.Username,
		Name:      ur.Name,
		Roles:     roles,
		CreatedAt: ur.CreatedAt,
	}
}

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func loadRoleNames(ctx context.Context, q queryer, userID string) ([]string, error) {
	const qry = `
SELECT r.name
FROM roles r
JOIN user_roles ur ON ur.role_id = r.id
WHERE ur.user_id = $1
ORDER BY r.name;
`
	rows, err := q.QueryContext(ctx, qry, userID)
	if err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, domain.ErrDBUnavailable(err)
		}
		names = append(names, n)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	return names, nil
}

// linkRoles connects the user to each named role inside the transaction.
// Names without a matching role row are skipped (0 rows inserted).
func linkRoles(ctx context.Context, tx *sql.Tx, userID string, roles []string) error {
	const q = `
INSERT INTO user_roles (user_id, role_id)
SELECT $1, id FROM roles WHERE name = $2
ON CONFLICT DO NOTHING;
`
	for _, name := range roles {
		if _, err := tx.ExecContext(ctx, q, userID, name); err != nil {
			return err
		}
	}
	return nil
}

// ---------- admin.UserRepo ----------

func (r *UserRepo) List(ctx context.Context) ([]domain.User, error) {
	const q = `
SELECT u.id, u.email, u.username, u.name, u.created_at,
       COALESCE(string_agg(r.name, ',' ORDER BY r.name), '')
FROM users u
LEFT JOIN user_roles ur ON ur.user_id = u.id
LEFT JOIN roles r ON r.id = ur.role_id
GROUP BY u.id, u.email, u.username, u.name, u.created_at
ORDER BY u.created_at DESC;
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var ur userRow
		var joined string
		if err := rows.Scan(&ur.ID, &ur.Email, &ur.Username, &ur.Name, &ur.CreatedAt, &joined); err != nil {
			return nil, domain.ErrDBUnavailable(err)
		}
		roles := []string{}
		if joined != "" {
			roles = strings.Split(joined, ",")
		}
		users = append(users, toDomainUser(ur, roles))
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	return users, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (domain.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.User{}, domain.ErrUserNotFound()
	}

	const q = `
SELECT id, email, username, name, created_at
FROM users
WHERE id = $1
LIMIT 1;
`
	return r.getOne(ctx, q, id)
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	email = normalize(email)
	if email == "" {
		return domain.User{}, domain.ErrUserNotFound()
	}

	const q = `
SELECT id, email, username, name, created_at
FROM users
WHERE email = $1
LIMIT 1;
`
	return r.getOne(ctx, q, email)
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	username = normalize(username)
	if username == "" {
		return domain.User{}, domain.ErrUserNotFound()
	}

	const q = `
SELECT id, email, username, name, created_at
FROM users
WHERE username = $1
LIMIT 1;
`
	return r.getOne(ctx, q, username)
}

func (r *UserRepo) getOne(ctx context.Context, query, arg string) (domain.User, error) {
	var ur userRow
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&ur.ID, &ur.Email, &ur.Username, &ur.Name, &ur.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return domain.User{}, domain.ErrUserNotFound()
		}
		return domain.User{}, domain.ErrDBUnavailable(err)
	}

	roles, err := loadRoleNames(ctx, r.db, ur.ID)
	if err != nil {
		return domain.User{}, err
	}
	return toDomainUser(ur, roles), nil
}

func (r *UserRepo) Create(ctx context.Context, u domain.User, c domain.Credential) (domain.User, error) {
	u.Email = normalize(u.Email)
	u.Username = normalize(u.Username)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.User{}, domain.ErrDBUnavailable(err)
	}
	defer tx.Rollback()

	const insUser = `
INSERT INTO users (id, email, username, name)
VALUES ($1, $2, $3, $4)
RETURNING created_at;
`
	var ur userRow
	ur.ID, ur.Email, ur.Username, ur.Name = u.ID, u.Email, u.Username, u.Name
	if err := tx.QueryRowContext(ctx, insUser, u.ID, u.Email, u.Username, u.Name).Scan(&ur.CreatedAt); err != nil {
		if field, ok := uniqueViolation(err); ok {
			return domain.User{}, conflictFor(field)
		}
		return domain.User{}, domain.ErrDBUnavailable(err)
	}

	const insCred = `
INSERT INTO credentials (user_id, password_hash)
VALUES ($1, $2);
`
	if _, err := tx.ExecContext(ctx, insCred, u.ID, c.PasswordHash); err != nil {
		return domain.User{}, domain.ErrDBUnavailable(err)
	}

	if err := linkRoles(ctx, tx, u.ID, u.Roles); err != nil {
		return domain.User{}, domain.ErrDBUnavailable(err)
	}

	roles, err := loadRoleNames(ctx, tx, u.ID)
	if err != nil {
		return domain.User{}, err
	}

	if err := tx.Commit(); err != nil {
		return domain.User{}, domain.ErrDBUnavailable(err)
	}
	return toDomainUser(ur, roles), nil
}

func (r *UserRepo) Update(ctx context.Context, u domain.User) (domain.User, error) {
	u.Email = normalize(u.Email)
	u.Username = normalize(u.Username)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.User{}, domain.ErrDBUnavailable(err)
	}
	defer tx.Rollback()

	const upd = `
UPDATE users
SET email = $2, username = $3, name = $4
WHERE id = $1
RETURNING created_at;
`
	var ur userRow
	ur.ID, ur.Email, ur.Username, ur.Name = u.ID, u.Email, u.Username, u.Name
	if err := tx.QueryRowContext(ctx, upd, u.ID, u.Email, u.Username, u.Name).Scan(&ur.CreatedAt); err != nil {
		if isNoRows(err) {
			return domain.User{}, domain.ErrUserNotFound()
		}
		if field, ok := uniqueViolation(err); ok {
			return domain.User{}, conflictFor(field)
		}
		return domain.User{}, domain.ErrDBUnavailable(err)
	}

	// full replacement: clear, then reconnect exactly the submitted set
	if _, err := tx.ExecContext(ctx, `DELETE FROM user_roles WHERE user_id = $1;`, u.ID); err != nil {
		return domain.User{}, domain.ErrDBUnavailable(err)
	}
	if err := linkRoles(ctx, tx, u.ID, u.Roles); err != nil {
		return domain.User{}, domain.ErrDBUnavailable(err)
	}

	roles, err := loadRoleNames(ctx, tx, u.ID)
	if err != nil {
		return domain.User{}, err
	}

	if err := tx.Commit(); err != nil {
		return domain.User{}, domain.ErrDBUnavailable(err)
	}
	return toDomainUser(ur, roles), nil
}

func conflictFor(field string) *domain.Error {
	switch field {
	case "email":
		return domain.ErrFieldConflict("email", "A user with this email already exists")
	case "username":
		return domain.ErrFieldConflict("username", "A user with this username already exists")
	default:
		return domain.ErrFieldConflict(field, "Duplicate value")
	}
}
