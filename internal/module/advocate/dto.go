package advocate

import "github.com/simp-lee/advocates/internal/domain"

// CreateAdvocateRequest represents the input for creating a new advocate.
type CreateAdvocateRequest struct {
	FirstName         string   `json:"firstName" binding:"required,max=100"`
	LastName          string   `json:"lastName" binding:"required,max=100"`
	City              string   `json:"city" binding:"required,max=100"`
	Degree            string   `json:"degree" binding:"required,max=50"`
	Specialties       []string `json:"specialties" binding:"omitempty,dive,required"`
	YearsOfExperience int      `json:"yearsOfExperience" binding:"gte=0"`
	PhoneNumber       int64    `json:"phoneNumber" binding:"required,gt=0"`
}

func (r CreateAdvocateRequest) toDomain() *domain.Advocate {
	return &domain.Advocate{
		FirstName:         r.FirstName,
		LastName:          r.LastName,
		City:              r.City,
		Degree:            r.Degree,
		Specialties:       r.Specialties,
		YearsOfExperience: r.YearsOfExperience,
		PhoneNumber:       r.PhoneNumber,
	}
}
