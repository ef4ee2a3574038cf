package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary over the record store.
// It provides transaction control and hands out repositories bound to the
// current transaction. Client code must explicitly manage the transaction
// lifecycle.
//
// Two usage modes exist:
//   - Without Begin, repositories execute against the main connection with
//     immediate (auto-commit) effect. Media workflows use this mode: the
//     single RecordWrite step is the commit point, and blob effects around it
//     are undone by compensation rather than rollback.
//   - With Begin, every repository operation joins one transaction until
//     Commit or Rollback. Cascading soft deletes use this mode, and nested
//     workflow invocations join the already-open transaction by receiving the
//     same UnitOfWork.
type UnitOfWork interface {
	// Begin starts a new database transaction. Calling Begin on an instance
	// with an open transaction is a no-op, which is what lets nested workflow
	// invocations share their caller's transaction scope.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns an error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns an error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// UserRepository returns a UserRepository bound to the current transaction.
	UserRepository() UserRepository

	// ProfileRepository returns a ProfileRepository bound to the current transaction.
	ProfileRepository() ProfileRepository

	// StoreRepository returns a StoreRepository bound to the current transaction.
	StoreRepository() StoreRepository

	// ProductRepository returns a ProductRepository bound to the current transaction.
	ProductRepository() ProductRepository

	// AddressRepository returns an AddressRepository bound to the current transaction.
	AddressRepository() AddressRepository

	// BasketRepository returns a BasketRepository bound to the current transaction.
	BasketRepository() BasketRepository

	// OrderRepository returns an OrderRepository bound to the current transaction.
	OrderRepository() OrderRepository
}
