package advocate

import (
	"github.com/simp-lee/advocates/internal/domain"
	"github.com/simp-lee/advocates/internal/pkg"
)

// Columns is the allow-list of sortable advocate columns. Sort and cursor
// column names are only ever taken from here.
var Columns = pkg.NewColumnSet(
	func(a domain.Advocate) uint { return a.ID },
	pkg.Column[domain.Advocate]{Name: "first_name", Kind: pkg.KindString, Value: func(a domain.Advocate) any { return a.FirstName }},
	pkg.Column[domain.Advocate]{Name: "last_name", Kind: pkg.KindString, Value: func(a domain.Advocate) any { return a.LastName }},
	pkg.Column[domain.Advocate]{Name: "city", Kind: pkg.KindString, Value: func(a domain.Advocate) any { return a.City }},
	pkg.Column[domain.Advocate]{Name: "degree", Kind: pkg.KindString, Value: func(a domain.Advocate) any { return a.Degree }},
	pkg.Column[domain.Advocate]{Name: "years_of_experience", Kind: pkg.KindInt, Value: func(a domain.Advocate) any { return int64(a.YearsOfExperience) }},
	pkg.Column[domain.Advocate]{Name: "phone_number", Kind: pkg.KindInt, Value: func(a domain.Advocate) any { return a.PhoneNumber }},
	pkg.Column[domain.Advocate]{Name: "created_at", Kind: pkg.KindTime, Value: func(a domain.Advocate) any { return a.CreatedAt }},
)
