package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these (optionally
// wrapped) so services can translate them into domain errors.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: entity or key does not exist in the store
// - ErrConflict: entity already exists or versions collided
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)
