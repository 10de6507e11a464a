package domain

import "time"

type CustomerCategory string

const (
	CustomerCategoryIndividual   CustomerCategory = "INDIVIDUAL"
	CustomerCategoryOrganization CustomerCategory = "ORGANIZATION"
)

type CustomerStatus string

const (
	CustomerStatusActive   CustomerStatus = "ACTIVE"
	CustomerStatusInactive CustomerStatus = "INACTIVE"
)

type Customer struct {
	ID        string
	Document  string
	Name      string
	BirthDate *time.Time
	Category  CustomerCategory
	Status    CustomerStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}
