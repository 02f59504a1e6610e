package domain

import "errors"

// ErrCrossTenant is returned when a caller addresses a document owned by a
// different tenant or user. Detected by re-reading the target document and
// comparing its tenant/owner field, never by trusting route parameters.
var ErrCrossTenant = errors.New("cross-tenant access")
