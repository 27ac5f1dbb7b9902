package store

import "github.com/google/uuid"

// DeploymentIDSource produces identifiers that group the entries of a
// single apply run.
type DeploymentIDSource interface {
	NewDeploymentID() string
}

// UUIDSource generates time-ordered UUIDv7 deployment identifiers.
type UUIDSource struct{}

func (UUIDSource) NewDeploymentID() string {
	return uuid.Must(uuid.NewV7()).String()
}
