package repository

import (
	"strconv"

	"github.com/pulseapp/pulse/domain"
)

// DecodeCursor turns the wire cursor into a keyset boundary id.
// The sentinel "initial" (and the empty string) decode to 0, which means
// "no boundary, start from the newest row".
func DecodeCursor(cursor string) (int64, error) {
	if cursor == "" || cursor == domain.CursorInitial {
		return 0, nil
	}
	id, err := strconv.ParseInt(cursor, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrBadParamInput
	}
	return id, nil
}

// EncodeCursor renders a boundary id back into its wire form.
func EncodeCursor(id int64) string {
	return strconv.FormatInt(id, 10)
}
