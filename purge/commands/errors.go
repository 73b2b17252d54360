package commands

import (
	"errors"

	"github.com/beesaferoot/gorm-purge/purge"
)

func asRevocation(err error) (*purge.RevocationError, bool) {
	var revErr *purge.RevocationError
	if errors.As(err, &revErr) {
		return revErr, true
	}
	return nil, false
}
