package repository

import (
	"errors"

	"github.com/lib/pq"
)

const (
	undefinedTable            = "42P01"
	invalidTextRepresentation = "22P02"
)

// ErrMalformedID is returned when a key value cannot be parsed by the
// database, such as a user id that is not a UUID.
var ErrMalformedID = errors.New("malformed identifier")

func hasPQCode(err error, code string) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == code
}
