package models

// TestBaseRef names a host-project test base class, as discovered by the
// external analyzer (§3).
type TestBaseRef struct {
	SimpleName string
	Namespace  string
	FullName   string
}

// ProjectMetadata carries project-wide defaults that feature tags may
// override (§4.5).
type ProjectMetadata struct {
	GeneratedNamespace string
	DefaultTestBase    *TestBaseRef
}
