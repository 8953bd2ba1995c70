package domain

import "time"

// BaseModel is the common base struct for all domain models.
// It replaces gorm.Model to avoid the implicit soft delete behavior of DeletedAt.
type BaseModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SortDirection is the ordering of a sort column.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Valid reports whether d is asc or desc.
func (d SortDirection) Valid() bool {
	return d == SortAsc || d == SortDesc
}

// Invert returns the opposite direction.
func (d SortDirection) Invert() SortDirection {
	if d == SortAsc {
		return SortDesc
	}
	return SortAsc
}

// Traversal says which way a cursor is followed: next moves away from the
// start of the sort order, prev moves toward it.
type Traversal string

const (
	TraverseNext Traversal = "next"
	TraversePrev Traversal = "prev"
)

// Valid reports whether t is next or prev.
func (t Traversal) Valid() bool {
	return t == TraverseNext || t == TraversePrev
}

// SortSpec names one allow-listed column and its direction.
type SortSpec struct {
	Column    string
	Direction SortDirection
}

// Cursor marks the boundary row of a page under the sort it was minted for.
// Value holds the boundary row's sort column value (string, int64 or
// time.Time) and ID its primary key.
type Cursor struct {
	Column    string
	Direction SortDirection
	Value     any
	ID        uint
}

// Sort returns the sort the cursor was minted under.
func (c Cursor) Sort() SortSpec {
	return SortSpec{Column: c.Column, Direction: c.Direction}
}

// CursorRequest holds the parsed listing parameters.
// When Cursor is set, its embedded sort overrides Sort.
type CursorRequest struct {
	Sort      SortSpec
	Cursor    *Cursor
	Traversal Traversal
	PageSize  int
}

// OrderSpec is the fetch ordering of a keyset query.
type OrderSpec struct {
	Column    string
	Direction SortDirection
}

// BoundaryPredicate restricts a keyset query to rows strictly beyond a
// boundary row: (Column Operator Value) OR (Column = Value AND id Operator ID).
type BoundaryPredicate struct {
	Column   string
	Operator string
	Value    any
	ID       uint
}

// KeysetQuery is a storage-level description of one bounded, ordered read.
type KeysetQuery struct {
	Order    OrderSpec
	Boundary *BoundaryPredicate
	Limit    int
}

// CursorPage is one page of a cursor-paginated listing.
type CursorPage[T any] struct {
	Items       []T
	NextCursor  *string
	PrevCursor  *string
	HasNextPage bool
	HasPrevPage bool
}
