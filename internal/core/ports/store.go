package ports

import "go.trai.ch/rig/internal/core/domain"

// ReceiptStore defines the interface for storing and retrieving step
// receipts.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type ReceiptStore interface {
	// Get retrieves the receipt for a given step name.
	// Returns nil, nil if not found.
	Get(stepName string) (*domain.Receipt, error)

	// Put stores the receipt.
	Put(receipt domain.Receipt) error

	// Clear removes all stored receipts.
	Clear() error
}
