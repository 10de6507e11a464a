package domain

import "context"

// CustomerDirectory is the system of record for customers. The ledger core
// only ever reads it to resolve a document to a customer; registration
// writes go through the same interface so the directory owns its own rows.
type CustomerDirectory interface {
	GetByDocument(ctx context.Context, document string) (Customer, error)
	GetAll(ctx context.Context) ([]Customer, error)
	GetAllByCategory(ctx context.Context, category CustomerCategory) ([]Customer, error)
	Create(ctx context.Context, customer Customer) (Customer, error)
}
