package advocate

import (
	"context"
	"fmt"
	"time"

	"github.com/simp-lee/advocates/internal/domain"
)

var (
	seedFirstNames = []string{"John", "Jane", "Alice", "Michael", "Emily", "Chris", "Jessica", "David", "Laura", "Daniel", "Sarah", "James", "Megan", "Joshua", "Amanda"}
	seedLastNames  = []string{"Doe", "Smith", "Johnson", "Brown", "Davis", "Martinez", "Taylor", "Harris", "Clark", "Lewis", "Lee", "King", "Green", "Walker", "Hall"}
	seedCities     = []string{"New York", "Los Angeles", "Chicago", "Houston", "Phoenix", "Philadelphia", "San Antonio", "San Diego", "Dallas", "San Jose", "Austin", "Jacksonville", "San Francisco", "Columbus", "Fort Worth"}
	seedDegrees    = []string{"MD", "PhD", "MSW"}
)

var seedSpecialties = []string{
	"Bipolar",
	"LGBTQ",
	"Medication/Prescribing",
	"Suicide History/Attempts",
	"General Mental Health (anxiety, depression, stress, grief, life transitions)",
	"Men's issues",
	"Relationship Issues (family, friends, couple, etc)",
	"Trauma & PTSD",
	"Personality disorders",
	"Personal growth",
	"Substance use/abuse",
	"Pediatrics",
	"Women's issues (post-partum, infertility, family planning)",
	"Chronic pain",
	"Weight loss & nutrition",
	"Eating disorders",
	"Diabetic Diet and nutrition",
	"Coaching (leadership, career, academic and wellness)",
	"Life coaching",
	"Obsessive-compulsive disorders",
	"Neuropsychological evaluations & testing (ADHD testing)",
	"Attention and Hyperactivity (ADHD)",
	"Sleep issues",
	"Schizophrenia and psychotic disorders",
	"Learning disorders",
	"Domestic abuse",
}

// SampleAdvocates builds n deterministic advocates. Creation times are one
// minute apart starting at base, so created_at order matches insertion order.
func SampleAdvocates(n int, base time.Time) []domain.Advocate {
	advocates := make([]domain.Advocate, 0, n)
	for i := 0; i < n; i++ {
		start := (i * 3) % len(seedSpecialties)
		count := 1 + i%3
		specialties := make([]string, 0, count)
		for j := 0; j < count; j++ {
			specialties = append(specialties, seedSpecialties[(start+j)%len(seedSpecialties)])
		}

		advocates = append(advocates, domain.Advocate{
			BaseModel:         domain.BaseModel{CreatedAt: base.Add(time.Duration(i) * time.Minute)},
			FirstName:         seedFirstNames[i%len(seedFirstNames)],
			LastName:          seedLastNames[(i*7)%len(seedLastNames)],
			City:              seedCities[(i*4)%len(seedCities)],
			Degree:            seedDegrees[i%len(seedDegrees)],
			Specialties:       specialties,
			YearsOfExperience: 1 + (i*5)%30,
			PhoneNumber:       5551234567 + int64(i)*1111,
		})
	}
	return advocates
}

// Seed inserts n sample advocates in a single transaction.
func Seed(ctx context.Context, repo domain.AdvocateRepository, n int, base time.Time) error {
	if n < 1 {
		return fmt.Errorf("seed count must be positive, got %d", n)
	}
	if err := repo.CreateBatch(ctx, SampleAdvocates(n, base)); err != nil {
		return fmt.Errorf("seed advocates: %w", err)
	}
	return nil
}
