package pkg

import (
	"github.com/simp-lee/advocates/internal/domain"
	"gorm.io/gorm"
)

// Plan is the keyset query for one page request.
//
// Sort is the sort the page is presented in: the cursor's sort when a cursor
// was given, otherwise the requested one. Reverse is set for prev traversal,
// whose rows are fetched in inverted order and must be flipped back.
type Plan struct {
	Sort    domain.SortSpec
	Query   domain.KeysetQuery
	Reverse bool
}

// BuildPlan derives ordering and boundary predicate from the requested sort
// and an optional cursor. Without a cursor the plan reads the first page and
// traversal is ignored.
func BuildPlan(sort domain.SortSpec, cur *domain.Cursor, traversal domain.Traversal) Plan {
	if cur == nil {
		return Plan{
			Sort: sort,
			Query: domain.KeysetQuery{
				Order: domain.OrderSpec{Column: sort.Column, Direction: sort.Direction},
			},
		}
	}

	effective := cur.Sort()
	fetchDir := effective.Direction
	reverse := traversal == domain.TraversePrev
	if reverse {
		fetchDir = fetchDir.Invert()
	}

	return Plan{
		Sort: effective,
		Query: domain.KeysetQuery{
			Order: domain.OrderSpec{Column: effective.Column, Direction: fetchDir},
			Boundary: &domain.BoundaryPredicate{
				Column:   effective.Column,
				Operator: boundaryOperator(fetchDir),
				Value:    cur.Value,
				ID:       cur.ID,
			},
		},
		Reverse: reverse,
	}
}

// boundaryOperator picks the strict comparison that selects rows coming after
// the boundary in fetch order: next/desc and prev/asc read downward, next/asc
// and prev/desc read upward.
func boundaryOperator(fetchDir domain.SortDirection) string {
	if fetchDir == domain.SortAsc {
		return ">"
	}
	return "<"
}

// WithLimit returns a copy of the query bounded to n rows.
func (p Plan) WithLimit(n int) domain.KeysetQuery {
	q := p.Query
	q.Limit = n
	return q
}

// KeysetScope returns a GORM scope that applies the boundary predicate, the
// (column, id) ordering and the limit of q. Column names must come from a
// ColumnSet; they are interpolated into SQL.
func KeysetScope(q domain.KeysetQuery) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if b := q.Boundary; b != nil {
			if b.Column == IDColumn {
				db = db.Where(IDColumn+" "+b.Operator+" ?", b.ID)
			} else {
				db = db.Where(
					"("+b.Column+" "+b.Operator+" ?) OR ("+b.Column+" = ? AND "+IDColumn+" "+b.Operator+" ?)",
					b.Value, b.Value, b.ID,
				)
			}
		}

		dir := string(q.Order.Direction)
		if q.Order.Column != IDColumn {
			db = db.Order(q.Order.Column + " " + dir)
		}
		db = db.Order(IDColumn + " " + dir)

		if q.Limit > 0 {
			db = db.Limit(q.Limit)
		}
		return db
	}
}
