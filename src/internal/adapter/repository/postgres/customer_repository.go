package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/api-sage/bank-backoffice/src/internal/domain"
)

// CustomerRepository is the postgres-backed CustomerDirectory.
type CustomerRepository struct {
	db *sql.DB
}

func NewCustomerRepository(db *sql.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

const customerColumns = `id, document, name, birth_date, category, status, created_at, updated_at`

func (r *CustomerRepository) Create(ctx context.Context, customer domain.Customer) (domain.Customer, error) {
	const query = `
INSERT INTO customers (
	document,
	name,
	birth_date,
	category,
	status
) VALUES ($1, $2, $3, $4, $5)
RETURNING id, created_at, updated_at`

	var birthDate sql.NullTime
	if customer.BirthDate != nil {
		birthDate = sql.NullTime{Time: *customer.BirthDate, Valid: true}
	}

	var id string
	var createdAt time.Time
	var updatedAt time.Time

	if err := r.db.QueryRowContext(
		ctx,
		query,
		customer.Document,
		customer.Name,
		birthDate,
		customer.Category,
		customer.Status,
	).Scan(&id, &createdAt, &updatedAt); err != nil {
		return domain.Customer{}, fmt.Errorf("create customer: %w", err)
	}

	customer.ID = id
	customer.CreatedAt = createdAt
	customer.UpdatedAt = updatedAt

	return customer, nil
}

func (r *CustomerRepository) GetByDocument(ctx context.Context, document string) (domain.Customer, error) {
	const query = `SELECT ` + customerColumns + ` FROM customers WHERE document = $1`

	customer, err := scanCustomer(r.db.QueryRowContext(ctx, query, document))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Customer{}, domain.ErrRecordNotFound
		}
		return domain.Customer{}, fmt.Errorf("get customer by document: %w", err)
	}

	return customer, nil
}

func (r *CustomerRepository) GetAll(ctx context.Context) ([]domain.Customer, error) {
	const query = `SELECT ` + customerColumns + ` FROM customers ORDER BY document`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get all customers: %w", err)
	}
	defer rows.Close()

	return collectCustomers(rows)
}

func (r *CustomerRepository) GetAllByCategory(ctx context.Context, category domain.CustomerCategory) ([]domain.Customer, error) {
	const query = `SELECT ` + customerColumns + ` FROM customers WHERE category = $1 ORDER BY document`

	rows, err := r.db.QueryContext(ctx, query, category)
	if err != nil {
		return nil, fmt.Errorf("get customers by category: %w", err)
	}
	defer rows.Close()

	return collectCustomers(rows)
}

func scanCustomer(row *sql.Row) (domain.Customer, error) {
	var customer domain.Customer
	var birthDate sql.NullTime

	if err := row.Scan(
		&customer.ID,
		&customer.Document,
		&customer.Name,
		&birthDate,
		&customer.Category,
		&customer.Status,
		&customer.CreatedAt,
		&customer.UpdatedAt,
	); err != nil {
		return domain.Customer{}, err
	}

	if birthDate.Valid {
		value := birthDate.Time
		customer.BirthDate = &value
	}

	return customer, nil
}

func collectCustomers(rows *sql.Rows) ([]domain.Customer, error) {
	customers := make([]domain.Customer, 0)
	for rows.Next() {
		var customer domain.Customer
		var birthDate sql.NullTime

		if err := rows.Scan(
			&customer.ID,
			&customer.Document,
			&customer.Name,
			&birthDate,
			&customer.Category,
			&customer.Status,
			&customer.CreatedAt,
			&customer.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan customer row: %w", err)
		}

		if birthDate.Valid {
			value := birthDate.Time
			customer.BirthDate = &value
		}

		customers = append(customers, customer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate customer rows: %w", err)
	}

	return customers, nil
}
