package advocate

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"slices"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/advocates/internal/domain"
	"github.com/simp-lee/advocates/internal/pkg"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupHandlerRouter(t *testing.T, n int, opts pkg.ListingOptions) *gin.Engine {
	t.Helper()
	var repo domain.AdvocateRepository
	if n > 0 {
		repo = seededRepo(t, n)
	} else {
		repo = NewAdvocateRepository(setupTestDB(t))
	}
	h := NewAdvocateHandler(NewAdvocateService(repo), opts)

	r := gin.New()
	NewModule(h).RegisterRoutes(r.Group("/api/v1"), r.Group("/"))
	return r
}

type listResponse struct {
	Data       []domain.Advocate `json:"data"`
	Pagination pkg.PageInfo      `json:"pagination"`
}

func doJSON(t *testing.T, r http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func list(t *testing.T, r http.Handler, path string, q url.Values) listResponse {
	t.Helper()
	w := doJSON(t, r, http.MethodGet, path+"?"+q.Encode(), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET %s?%s = %d: %s", path, q.Encode(), w.Code, w.Body.String())
	}
	var resp listResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal listing: %v", err)
	}
	return resp
}

func TestHandler_List_Defaults(t *testing.T) {
	r := setupHandlerRouter(t, 7, pkg.DefaultListingOptions())

	resp := list(t, r, "/listing", nil)
	if !slices.Equal(advocateIDs(resp.Data), []uint{7, 6, 5, 4, 3}) {
		t.Errorf("ids = %v; want newest five by id", advocateIDs(resp.Data))
	}
	if !resp.Pagination.HasNextPage || resp.Pagination.HasPrevPage {
		t.Errorf("flags = %+v", resp.Pagination)
	}
	if resp.Pagination.NextCursor == nil || resp.Pagination.PrevCursor == nil {
		t.Error("expected both cursors on a non-empty page")
	}
}

func TestHandler_List_BothRoutesServeListing(t *testing.T) {
	r := setupHandlerRouter(t, 3, pkg.DefaultListingOptions())

	a := list(t, r, "/listing", url.Values{"column": {"city"}, "sort": {"asc"}})
	b := list(t, r, "/api/v1/advocates", url.Values{"column": {"city"}, "sort": {"asc"}})
	if !slices.Equal(advocateIDs(a.Data), advocateIDs(b.Data)) {
		t.Errorf("/listing %v differs from /api/v1/advocates %v", advocateIDs(a.Data), advocateIDs(b.Data))
	}
}

func TestHandler_List_CursorNavigation(t *testing.T) {
	r := setupHandlerRouter(t, 12, pkg.DefaultListingOptions())

	first := list(t, r, "/listing", url.Values{"column": {"created_at"}, "sort": {"desc"}, "pageSize": {"5"}})
	second := list(t, r, "/listing", url.Values{"cursor": {*first.Pagination.NextCursor}, "direction": {"next"}, "pageSize": {"5"}})
	if !slices.Equal(advocateIDs(second.Data), []uint{7, 6, 5, 4, 3}) {
		t.Fatalf("second page = %v", advocateIDs(second.Data))
	}

	// A conflicting column and sort are ignored once a cursor is present.
	override := list(t, r, "/listing", url.Values{
		"cursor":    {*first.Pagination.NextCursor},
		"column":    {"first_name"},
		"sort":      {"asc"},
		"direction": {"next"},
		"pageSize":  {"5"},
	})
	if !slices.Equal(advocateIDs(override.Data), advocateIDs(second.Data)) {
		t.Fatalf("override page = %v; want %v", advocateIDs(override.Data), advocateIDs(second.Data))
	}

	back := list(t, r, "/listing", url.Values{"cursor": {*second.Pagination.PrevCursor}, "direction": {"prev"}, "pageSize": {"5"}})
	if !slices.Equal(advocateIDs(back.Data), advocateIDs(first.Data)) {
		t.Fatalf("back page = %v; want %v", advocateIDs(back.Data), advocateIDs(first.Data))
	}
	if back.Pagination.HasPrevPage {
		t.Error("first page reached via prev must not report a previous page")
	}
}

func TestHandler_List_MalformedCursor(t *testing.T) {
	q := url.Values{"cursor": {"not-a-real-cursor"}}

	t.Run("lenient", func(t *testing.T) {
		r := setupHandlerRouter(t, 6, pkg.DefaultListingOptions())
		resp := list(t, r, "/listing", q)
		if !slices.Equal(advocateIDs(resp.Data), []uint{6, 5, 4, 3, 2}) {
			t.Errorf("ids = %v; want first page", advocateIDs(resp.Data))
		}
	})

	t.Run("strict", func(t *testing.T) {
		opts := pkg.DefaultListingOptions()
		opts.StrictCursor = true
		r := setupHandlerRouter(t, 6, opts)

		w := doJSON(t, r, http.MethodGet, "/listing?"+q.Encode(), nil)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d; want 400", w.Code)
		}
		if !strings.Contains(w.Body.String(), "invalid cursor") {
			t.Errorf("body = %s", w.Body.String())
		}
	})
}

func TestHandler_List_PageSizeCap(t *testing.T) {
	r := setupHandlerRouter(t, 8, pkg.ListingOptions{DefaultPageSize: 2, MaxPageSize: 3})

	if got := len(list(t, r, "/listing", nil).Data); got != 2 {
		t.Errorf("default page size = %d; want 2", got)
	}
	if got := len(list(t, r, "/listing", url.Values{"pageSize": {"50"}}).Data); got != 3 {
		t.Errorf("capped page size = %d; want 3", got)
	}
}

func TestHandler_Create(t *testing.T) {
	r := setupHandlerRouter(t, 0, pkg.DefaultListingOptions())

	w := doJSON(t, r, http.MethodPost, "/api/v1/advocates", map[string]any{
		"firstName":         "Jane",
		"lastName":          "Doe",
		"city":              "Austin",
		"degree":            "MD",
		"specialties":       []string{"Bipolar"},
		"yearsOfExperience": 5,
		"phoneNumber":       5551234567,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Data domain.Advocate `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Data.ID == 0 || resp.Data.City != "Austin" {
		t.Errorf("created = %+v", resp.Data)
	}

	w = doJSON(t, r, http.MethodGet, "/api/v1/advocates/1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET created advocate = %d", w.Code)
	}
}

func TestHandler_Create_Validation(t *testing.T) {
	r := setupHandlerRouter(t, 0, pkg.DefaultListingOptions())

	w := doJSON(t, r, http.MethodPost, "/api/v1/advocates", map[string]any{
		"firstName":         "Jane",
		"yearsOfExperience": -2,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d; want 400", w.Code)
	}
	var resp pkg.ValidationErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, field := range []string{"lastName", "city", "degree", "phoneNumber", "yearsOfExperience"} {
		if _, ok := resp.Errors[field]; !ok {
			t.Errorf("expected validation error for %s, got %v", field, resp.Errors)
		}
	}
}

func TestHandler_GetAndDelete(t *testing.T) {
	r := setupHandlerRouter(t, 2, pkg.DefaultListingOptions())

	tests := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodGet, "/api/v1/advocates/1", http.StatusOK},
		{http.MethodGet, "/api/v1/advocates/99", http.StatusNotFound},
		{http.MethodGet, "/api/v1/advocates/abc", http.StatusBadRequest},
		{http.MethodGet, "/api/v1/advocates/0", http.StatusBadRequest},
		{http.MethodDelete, "/api/v1/advocates/2", http.StatusOK},
		{http.MethodDelete, "/api/v1/advocates/2", http.StatusNotFound},
		{http.MethodGet, "/api/v1/advocates/2", http.StatusNotFound},
	}
	for _, tt := range tests {
		w := doJSON(t, r, tt.method, tt.path, nil)
		if w.Code != tt.status {
			t.Errorf("%s %s = %d; want %d (%s)", tt.method, tt.path, w.Code, tt.status, w.Body.String())
		}
	}
}
