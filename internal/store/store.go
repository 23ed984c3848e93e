// Package store persists the two record collections as keyed JSON documents.
//
// Reads degrade: an absent or corrupt document loads as the empty collection
// and is logged, never fatal. Writes replace the whole document for a key;
// a failed write leaves the previously saved document intact.
package store

import (
	"context"

	"fondos/internal/core"
)

// Collection keys in the underlying document store.
const (
	KeyPrograms     = "programs"
	KeyTransactions = "transactions"
)

// Store is the record store the ledger depends on. Implementations own the
// serialization; callers own deciding what a save failure means.
type Store interface {
	LoadPrograms(ctx context.Context) ([]core.Program, error)
	SavePrograms(ctx context.Context, programs []core.Program) error
	LoadTransactions(ctx context.Context) ([]core.Transaction, error)
	SaveTransactions(ctx context.Context, txs []core.Transaction) error
	Close() error
}
