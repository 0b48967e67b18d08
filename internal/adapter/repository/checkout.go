package repository

import (
	"ecofinds/pkg/errors"
)

// errCartChanged is returned by PlaceOrder when a staged cart line was removed
// or reduced after the order was built.
var errCartChanged = errors.Conflict("Your cart changed during checkout, please review it and try again")
