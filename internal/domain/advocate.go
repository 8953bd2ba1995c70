package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// Advocate is a listed record. Rows are immutable once created; every
// sortable column is indexed.
type Advocate struct {
	BaseModel
	FirstName         string   `gorm:"size:100;not null;index" json:"firstName"`
	LastName          string   `gorm:"size:100;not null;index" json:"lastName"`
	City              string   `gorm:"size:100;not null;index" json:"city"`
	Degree            string   `gorm:"size:50;not null;index" json:"degree"`
	Specialties       []string `gorm:"type:json;serializer:json" json:"specialties"`
	YearsOfExperience int      `gorm:"not null;index" json:"yearsOfExperience"`
	PhoneNumber       int64    `gorm:"not null;index" json:"phoneNumber"`
}

// BeforeCreate stores timestamps in UTC so that values bound from cursors
// compare consistently with stored values on text-backed drivers.
func (a *Advocate) BeforeCreate(_ *gorm.DB) error {
	now := time.Now().UTC()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	} else {
		a.CreatedAt = a.CreatedAt.UTC()
	}
	if a.UpdatedAt.IsZero() {
		a.UpdatedAt = a.CreatedAt
	} else {
		a.UpdatedAt = a.UpdatedAt.UTC()
	}
	return nil
}

// AdvocateRepository defines the data access interface for advocates.
type AdvocateRepository interface {
	Create(ctx context.Context, advocate *Advocate) error
	CreateBatch(ctx context.Context, advocates []Advocate) error
	GetByID(ctx context.Context, id uint) (*Advocate, error)
	Delete(ctx context.Context, id uint) error
	FindPage(ctx context.Context, q KeysetQuery) ([]Advocate, error)
	Exists(ctx context.Context, q KeysetQuery) (bool, error)
}

// AdvocateService defines the business logic interface for advocates.
type AdvocateService interface {
	CreateAdvocate(ctx context.Context, advocate *Advocate) (*Advocate, error)
	GetAdvocate(ctx context.Context, id uint) (*Advocate, error)
	DeleteAdvocate(ctx context.Context, id uint) error
	ListAdvocates(ctx context.Context, req CursorRequest) (*CursorPage[Advocate], error)
}
