package users

import (
	"errors"

	"github.com/dmitrijs2005/userauth/internal/dbx"
	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

const pgSelectUser = `SELECT id, email, hashed_password, session_id, reset_token, created_at FROM users`

var postgresDialect = dialect{
	insert: `INSERT INTO users (email, hashed_password)
		 VALUES ($1, $2)
		 RETURNING id, created_at`,
	selectByID:       pgSelectUser + ` WHERE id = $1`,
	selectByEmail:    pgSelectUser + ` WHERE email = $1`,
	selectBySession:  pgSelectUser + ` WHERE session_id = $1`,
	selectByToken:    pgSelectUser + ` WHERE reset_token = $1`,
	updateSession:    `UPDATE users SET session_id = $1 WHERE id = $2`,
	updateResetToken: `UPDATE users SET reset_token = $1 WHERE id = $2`,
	updatePassword:   `UPDATE users SET hashed_password = $1, reset_token = NULL WHERE id = $2 AND reset_token = $3`,

	isUniqueViolation: func(err error) bool {
		var pgErr *pgconn.PgError
		return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
	},
}

// NewPostgresRepository returns a Repository bound to a PostgreSQL handle
// opened with the pgx stdlib driver.
func NewPostgresRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db, d: postgresDialect}
}
