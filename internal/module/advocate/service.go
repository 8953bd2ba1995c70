package advocate

import (
	"context"
	"strings"

	"github.com/simp-lee/advocates/internal/domain"
	"github.com/simp-lee/advocates/internal/pkg"
)

// advocateService implements domain.AdvocateService.
type advocateService struct {
	repo domain.AdvocateRepository
}

// NewAdvocateService creates a new AdvocateService with the given repository.
func NewAdvocateService(repo domain.AdvocateRepository) domain.AdvocateService {
	return &advocateService{repo: repo}
}

// CreateAdvocate trims text fields and persists the advocate.
func (s *advocateService) CreateAdvocate(ctx context.Context, advocate *domain.Advocate) (*domain.Advocate, error) {
	advocate.FirstName = strings.TrimSpace(advocate.FirstName)
	advocate.LastName = strings.TrimSpace(advocate.LastName)
	advocate.City = strings.TrimSpace(advocate.City)
	advocate.Degree = strings.TrimSpace(advocate.Degree)
	if advocate.Specialties == nil {
		advocate.Specialties = []string{}
	}

	if err := s.repo.Create(ctx, advocate); err != nil {
		return nil, err
	}
	return advocate, nil
}

// GetAdvocate retrieves an advocate by ID.
func (s *advocateService) GetAdvocate(ctx context.Context, id uint) (*domain.Advocate, error) {
	return s.repo.GetByID(ctx, id)
}

// DeleteAdvocate removes an advocate by ID.
func (s *advocateService) DeleteAdvocate(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

// ListAdvocates returns one cursor page of advocates.
func (s *advocateService) ListAdvocates(ctx context.Context, req domain.CursorRequest) (*domain.CursorPage[domain.Advocate], error) {
	return pkg.FetchPage(ctx, s.repo, Columns, req)
}
