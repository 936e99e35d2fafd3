package utils

import (
	"errors"
	"strconv"
	"strings"
)

var ErrInvalidID = errors.New("identificador inválido")

// ParseID parses a positive numeric route identifier.
func ParseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}
