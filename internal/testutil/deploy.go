package testutil

// FixedIDSource returns the same deployment identifier every time.
//
// This enables deterministic apply runs and golden snapshot comparison:
// the same changelog applied with the same FixedIDSource produces
// byte-identical history output.
//
// Thread-safety: FixedIDSource is stateless after construction and safe
// for concurrent use.
type FixedIDSource struct {
	id string
}

// NewFixedIDSource creates a deployment ID source that always returns id.
//
// If id is empty, NewDeploymentID() returns "test-deploy-default".
func NewFixedIDSource(id string) *FixedIDSource {
	if id == "" {
		id = "test-deploy-default"
	}
	return &FixedIDSource{id: id}
}

// NewDeploymentID returns the fixed deployment identifier.
//
// Implements store.DeploymentIDSource.
func (s *FixedIDSource) NewDeploymentID() string {
	return s.id
}
