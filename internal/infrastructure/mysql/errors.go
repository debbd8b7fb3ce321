package mysql

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

const (
	errDuplicateEntry     = 1062
	errRowIsReferenced    = 1451
	errReferencedRowIsNil = 1452
)

// IsDuplicateEntry reports whether err is a unique-constraint violation.
func IsDuplicateEntry(err error) bool {
	return mysqlErrNumber(err) == errDuplicateEntry
}

// IsRowReferenced reports whether err is a restricted delete of a row that
// other rows still reference.
func IsRowReferenced(err error) bool {
	return mysqlErrNumber(err) == errRowIsReferenced
}

// IsReferenceMissing reports whether err is an insert or update pointing at
// a row that does not exist.
func IsReferenceMissing(err error) bool {
	return mysqlErrNumber(err) == errReferencedRowIsNil
}

func mysqlErrNumber(err error) uint16 {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number
	}
	return 0
}
