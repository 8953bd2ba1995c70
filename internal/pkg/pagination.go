package pkg

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/simp-lee/advocates/internal/domain"
)

const (
	defaultPageSize = 5
	maxPageSize     = 100
)

// ListingOptions holds listing defaults and limits.
type ListingOptions struct {
	DefaultColumn   string
	DefaultSort     domain.SortDirection
	DefaultPageSize int
	MaxPageSize     int
	// StrictCursor rejects malformed cursors instead of serving the first page.
	StrictCursor bool
}

// DefaultListingOptions returns the options used when nothing is configured.
func DefaultListingOptions() ListingOptions {
	return ListingOptions{
		DefaultColumn:   IDColumn,
		DefaultSort:     domain.SortDesc,
		DefaultPageSize: defaultPageSize,
		MaxPageSize:     maxPageSize,
	}
}

// SortColumns is the allow-list consulted while parsing listing parameters.
type SortColumns interface {
	KindResolver
	Allowed(column string) bool
}

// ParseCursorRequest extracts column, sort, cursor, direction and pageSize
// from query params. Unknown column, sort, direction and page size values
// fall back to defaults. A valid cursor replaces the requested sort with the
// sort it was minted under. A malformed cursor yields the first page, or a
// domain.CodeInvalidCursor error when opts.StrictCursor is set.
func ParseCursorRequest(c *gin.Context, cols SortColumns, opts ListingOptions) (domain.CursorRequest, error) {
	opts = normalizeListingOptions(opts)

	column := strings.TrimSpace(c.Query("column"))
	if !cols.Allowed(column) {
		column = opts.DefaultColumn
	}

	dir := domain.SortDirection(strings.ToLower(strings.TrimSpace(c.Query("sort"))))
	if !dir.Valid() {
		dir = opts.DefaultSort
	}

	traversal := domain.Traversal(strings.ToLower(strings.TrimSpace(c.Query("direction"))))
	if !traversal.Valid() {
		traversal = domain.TraverseNext
	}

	pageSize, err := strconv.Atoi(c.Query("pageSize"))
	if err != nil || pageSize < 1 {
		pageSize = opts.DefaultPageSize
	}
	if pageSize > opts.MaxPageSize {
		pageSize = opts.MaxPageSize
	}

	req := domain.CursorRequest{
		Sort:      domain.SortSpec{Column: column, Direction: dir},
		Traversal: traversal,
		PageSize:  pageSize,
	}

	token := strings.TrimSpace(c.Query("cursor"))
	if token == "" {
		return req, nil
	}

	cur, err := DecodeCursor(token, cols)
	if err != nil {
		if opts.StrictCursor {
			return req, domain.NewAppError(domain.CodeInvalidCursor, "invalid cursor", err)
		}
		slog.WarnContext(c.Request.Context(), "ignoring malformed cursor, serving first page", slog.Any("error", err))
		return req, nil
	}

	if cur.Sort() != req.Sort && (c.Query("column") != "" || c.Query("sort") != "") {
		slog.DebugContext(c.Request.Context(), "cursor sort overrides requested sort",
			slog.String("cursor_column", cur.Column),
			slog.String("cursor_sort", string(cur.Direction)),
			slog.String("requested_column", column),
			slog.String("requested_sort", string(dir)),
		)
	}
	req.Sort = cur.Sort()
	req.Cursor = &cur

	return req, nil
}

func normalizeListingOptions(opts ListingOptions) ListingOptions {
	def := DefaultListingOptions()
	if opts.DefaultColumn == "" {
		opts.DefaultColumn = def.DefaultColumn
	}
	if !opts.DefaultSort.Valid() {
		opts.DefaultSort = def.DefaultSort
	}
	if opts.MaxPageSize < 1 {
		opts.MaxPageSize = def.MaxPageSize
	}
	if opts.DefaultPageSize < 1 {
		opts.DefaultPageSize = def.DefaultPageSize
	}
	if opts.DefaultPageSize > opts.MaxPageSize {
		opts.DefaultPageSize = opts.MaxPageSize
	}
	return opts
}

// KeysetSource is a store that can run keyset queries over T.
type KeysetSource[T any] interface {
	FindPage(ctx context.Context, q domain.KeysetQuery) ([]T, error)
	Exists(ctx context.Context, q domain.KeysetQuery) (bool, error)
}

// FetchPage runs one bounded fetch for req, mints boundary cursors from the
// first and last rows, and probes both sides for more rows. The two probes
// run concurrently once the fetch has returned. Any storage error is
// returned as is and no page is produced.
func FetchPage[T any](ctx context.Context, src KeysetSource[T], cols ColumnSet[T], req domain.CursorRequest) (*domain.CursorPage[T], error) {
	if req.PageSize < 1 {
		req.PageSize = defaultPageSize
	}

	plan := BuildPlan(req.Sort, req.Cursor, req.Traversal)

	items, err := src.FindPage(ctx, plan.WithLimit(req.PageSize))
	if err != nil {
		return nil, err
	}

	if len(items) == 0 {
		return &domain.CursorPage[T]{Items: []T{}}, nil
	}
	if plan.Reverse {
		slices.Reverse(items)
	}

	first, err := cols.CursorAt(items[0], plan.Sort)
	if err != nil {
		return nil, err
	}
	last, err := cols.CursorAt(items[len(items)-1], plan.Sort)
	if err != nil {
		return nil, err
	}

	var hasNext, hasPrev bool
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		probe := BuildPlan(plan.Sort, &last, domain.TraverseNext)
		ok, err := src.Exists(gctx, probe.WithLimit(1))
		hasNext = ok
		return err
	})
	g.Go(func() error {
		probe := BuildPlan(plan.Sort, &first, domain.TraversePrev)
		ok, err := src.Exists(gctx, probe.WithLimit(1))
		hasPrev = ok
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	next, err := EncodeCursor(last)
	if err != nil {
		return nil, fmt.Errorf("mint next cursor: %w", err)
	}
	prev, err := EncodeCursor(first)
	if err != nil {
		return nil, fmt.Errorf("mint prev cursor: %w", err)
	}

	return &domain.CursorPage[T]{
		Items:       items,
		NextCursor:  &next,
		PrevCursor:  &prev,
		HasNextPage: hasNext,
		HasPrevPage: hasPrev,
	}, nil
}
