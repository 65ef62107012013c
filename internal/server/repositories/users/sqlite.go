package users

import (
	"errors"

	"github.com/dmitrijs2005/userauth/internal/dbx"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const sqliteSelectUser = `SELECT id, email, hashed_password, session_id, reset_token, created_at FROM users`

var sqliteDialect = dialect{
	insert: `INSERT INTO users (email, hashed_password)
		 VALUES (?, ?)
		 RETURNING id, created_at`,
	selectByID:       sqliteSelectUser + ` WHERE id = ?`,
	selectByEmail:    sqliteSelectUser + ` WHERE email = ?`,
	selectBySession:  sqliteSelectUser + ` WHERE session_id = ?`,
	selectByToken:    sqliteSelectUser + ` WHERE reset_token = ?`,
	updateSession:    `UPDATE users SET session_id = ? WHERE id = ?`,
	updateResetToken: `UPDATE users SET reset_token = ? WHERE id = ?`,
	updatePassword:   `UPDATE users SET hashed_password = ?, reset_token = NULL WHERE id = ? AND reset_token = ?`,

	isUniqueViolation: func(err error) bool {
		var sqlErr *sqlite.Error
		if !errors.As(err, &sqlErr) {
			return false
		}
		// primary code only when extended result codes are off
		code := sqlErr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT
	},
}

// NewSQLiteRepository returns a Repository bound to a handle opened with
// the modernc.org/sqlite driver.
func NewSQLiteRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db, d: sqliteDialect}
}
