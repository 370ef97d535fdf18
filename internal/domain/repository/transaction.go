package repository

import "context"

// TransactionManager defines the interface for managing database transactions.
// It lets a use case run several repository operations atomically without
// knowing anything about the underlying storage engine.
type TransactionManager interface {
	// Execute runs fn inside a single transaction. If fn returns an error the
	// transaction is rolled back and the error is returned unchanged.
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory provides repository instances bound to one transaction.
type RepositoryFactory interface {
	UserRepo() UserRepository
	FavouriteRepo() FavouriteRepository
}
