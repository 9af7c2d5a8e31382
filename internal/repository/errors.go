// Package repository holds the raw-SQL data access layer.  Each
// repository wraps a *sql.DB, exposes sentinel errors for the failure
// modes handlers care about, and translates MySQL duplicate-key
// violations into package-level sentinels so callers never inspect
// driver errors themselves.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// mysqlDuplicateEntry is the server error number for a violated
// UNIQUE constraint.
const mysqlDuplicateEntry = 1062

// isDuplicateKey reports whether err is a MySQL duplicate-key
// violation. The schema's UNIQUE constraints on (hall_id, row_num,
// seat_number) and (session_id, seat_id) surface through here.
func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlDuplicateEntry
}
