package advocate

import (
	"context"
	"testing"
	"time"
)

func TestSampleAdvocates_Deterministic(t *testing.T) {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	a := SampleAdvocates(30, base)
	b := SampleAdvocates(30, base)

	if len(a) != 30 {
		t.Fatalf("got %d advocates; want 30", len(a))
	}
	for i := range a {
		if a[i].FirstName != b[i].FirstName || a[i].PhoneNumber != b[i].PhoneNumber || !a[i].CreatedAt.Equal(b[i].CreatedAt) {
			t.Fatalf("row %d differs between runs", i)
		}
		if want := base.Add(time.Duration(i) * time.Minute); !a[i].CreatedAt.Equal(want) {
			t.Errorf("row %d CreatedAt = %v; want %v", i, a[i].CreatedAt, want)
		}
		if n := len(a[i].Specialties); n < 1 || n > 3 {
			t.Errorf("row %d has %d specialties", i, n)
		}
	}
}

func TestSeed_RejectsNonPositiveCount(t *testing.T) {
	repo := NewAdvocateRepository(setupTestDB(t))
	if err := Seed(context.Background(), repo, 0, time.Now()); err == nil {
		t.Fatal("expected error for zero count")
	}
}
