package ports

// Verifier defines the interface for verifying file existence.
//
//go:generate mockgen -destination=mocks/verifier_mock.go -package=mocks -source=verifier.go
type Verifier interface {
	// VerifyPresence reports whether at least one of the candidate paths
	// exists under the given root directory.
	VerifyPresence(root string, candidates []string) (bool, error)
}
