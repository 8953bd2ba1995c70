package pkg

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/simp-lee/advocates/internal/domain"
)

// IDColumn is the primary key column used as the tie-break of every sort.
const IDColumn = "id"

// ValueKind is the storage type of a sortable column.
type ValueKind string

const (
	KindString ValueKind = "str"
	KindInt    ValueKind = "int"
	KindTime   ValueKind = "ts"
)

var cursorEncoding = base64.RawURLEncoding

// Column describes one sortable column of T: its database name, its value
// kind, and how to read the value off a row.
type Column[T any] struct {
	Name  string
	Kind  ValueKind
	Value func(T) any
}

// KindResolver looks up the value kind of an allow-listed column.
type KindResolver interface {
	Kind(column string) (ValueKind, bool)
}

// ColumnSet is the allow-list of sortable columns for T.
type ColumnSet[T any] struct {
	id    func(T) uint
	byKey map[string]Column[T]
	names []string
}

// NewColumnSet builds an allow-list. id extracts the tie-break key; the id
// column is always included.
func NewColumnSet[T any](id func(T) uint, cols ...Column[T]) ColumnSet[T] {
	set := ColumnSet[T]{
		id:    id,
		byKey: make(map[string]Column[T], len(cols)+1),
	}
	set.add(Column[T]{Name: IDColumn, Kind: KindInt, Value: func(v T) any { return int64(id(v)) }})
	for _, c := range cols {
		set.add(c)
	}
	return set
}

func (s *ColumnSet[T]) add(c Column[T]) {
	if _, exists := s.byKey[c.Name]; !exists {
		s.names = append(s.names, c.Name)
	}
	s.byKey[c.Name] = c
}

// Lookup returns the column registered under name.
func (s ColumnSet[T]) Lookup(name string) (Column[T], bool) {
	c, ok := s.byKey[name]
	return c, ok
}

// Kind implements KindResolver.
func (s ColumnSet[T]) Kind(name string) (ValueKind, bool) {
	c, ok := s.byKey[name]
	return c.Kind, ok
}

// Allowed reports whether name is a sortable column.
func (s ColumnSet[T]) Allowed(name string) bool {
	_, ok := s.byKey[name]
	return ok
}

// Names returns the allow-listed column names in registration order.
func (s ColumnSet[T]) Names() []string {
	return append([]string(nil), s.names...)
}

// CursorAt mints a cursor pointing at row under sort.
func (s ColumnSet[T]) CursorAt(row T, sort domain.SortSpec) (domain.Cursor, error) {
	col, ok := s.byKey[sort.Column]
	if !ok {
		return domain.Cursor{}, fmt.Errorf("column %q is not sortable", sort.Column)
	}
	return domain.Cursor{
		Column:    sort.Column,
		Direction: sort.Direction,
		Value:     col.Value(row),
		ID:        s.id(row),
	}, nil
}

// ErrInvalidCursor is wrapped by every DecodeCursor failure.
var ErrInvalidCursor = errors.New("invalid cursor")

type cursorPayload struct {
	Column    string `json:"c"`
	Direction string `json:"d"`
	Kind      string `json:"k"`
	Value     string `json:"v"`
	ID        uint   `json:"i"`
}

// EncodeCursor serializes c into an opaque URL-safe token. The value keeps
// its exact type: strings verbatim, integers in base 10, timestamps in
// RFC 3339 with nanoseconds.
func EncodeCursor(c domain.Cursor) (string, error) {
	p := cursorPayload{
		Column:    c.Column,
		Direction: string(c.Direction),
		ID:        c.ID,
	}

	switch v := c.Value.(type) {
	case string:
		p.Kind, p.Value = string(KindString), v
	case int64:
		p.Kind, p.Value = string(KindInt), strconv.FormatInt(v, 10)
	case time.Time:
		p.Kind, p.Value = string(KindTime), v.Format(time.RFC3339Nano)
	default:
		return "", fmt.Errorf("encode cursor: unsupported value type %T", c.Value)
	}

	raw, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encode cursor: %w", err)
	}
	return cursorEncoding.EncodeToString(raw), nil
}

// DecodeCursor parses a token produced by EncodeCursor. The column must be
// known to cols and carry the kind recorded in the token.
func DecodeCursor(token string, cols KindResolver) (domain.Cursor, error) {
	raw, err := cursorEncoding.DecodeString(token)
	if err != nil {
		return domain.Cursor{}, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}

	var p cursorPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return domain.Cursor{}, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}

	kind, ok := cols.Kind(p.Column)
	if !ok {
		return domain.Cursor{}, fmt.Errorf("%w: unknown column %q", ErrInvalidCursor, p.Column)
	}
	if ValueKind(p.Kind) != kind {
		return domain.Cursor{}, fmt.Errorf("%w: kind %q does not match column %q", ErrInvalidCursor, p.Kind, p.Column)
	}

	dir := domain.SortDirection(p.Direction)
	if !dir.Valid() {
		return domain.Cursor{}, fmt.Errorf("%w: direction %q", ErrInvalidCursor, p.Direction)
	}

	var value any
	switch kind {
	case KindString:
		value = p.Value
	case KindInt:
		n, err := strconv.ParseInt(p.Value, 10, 64)
		if err != nil {
			return domain.Cursor{}, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
		}
		value = n
	case KindTime:
		t, err := time.Parse(time.RFC3339Nano, p.Value)
		if err != nil {
			return domain.Cursor{}, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
		}
		value = t
	default:
		return domain.Cursor{}, fmt.Errorf("%w: kind %q", ErrInvalidCursor, p.Kind)
	}

	return domain.Cursor{
		Column:    p.Column,
		Direction: dir,
		Value:     value,
		ID:        p.ID,
	}, nil
}
