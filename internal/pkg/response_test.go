package pkg

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/advocates/internal/domain"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newResponseTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func newResponseTestContextWithBody(body string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func TestSuccessAndCreated(t *testing.T) {
	tests := []struct {
		name   string
		send   func(*gin.Context, any)
		status int
	}{
		{"success", Success, http.StatusOK},
		{"created", Created, http.StatusCreated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newResponseTestContext()
			tt.send(c, gin.H{"city": "Austin"})

			if w.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, w.Code)
			}
			var resp struct {
				Code    int               `json:"code"`
				Message string            `json:"message"`
				Data    map[string]string `json:"data"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to unmarshal response: %v", err)
			}
			if resp.Code != tt.status || resp.Message != "success" || resp.Data["city"] != "Austin" {
				t.Errorf("unexpected response %+v", resp)
			}
		})
	}
}

func TestError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"not found", domain.NewAppError(domain.CodeNotFound, "advocate not found", nil), http.StatusNotFound, "advocate not found"},
		{"invalid cursor", domain.NewAppError(domain.CodeInvalidCursor, "invalid cursor", errors.New("bad base64")), http.StatusBadRequest, "invalid cursor"},
		{"internal hides cause", domain.NewAppError(domain.CodeInternal, "database error", errors.New("disk I/O error")), http.StatusInternalServerError, "database error"},
		{"generic error", errors.New("secret details"), http.StatusInternalServerError, "internal error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newResponseTestContext()
			Error(c, tt.err)

			if w.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, w.Code)
			}
			var resp map[string]any
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to unmarshal response: %v", err)
			}
			if resp["message"] != tt.message {
				t.Errorf("message = %v; want %q", resp["message"], tt.message)
			}
			if v, ok := resp["data"]; !ok || v != nil {
				t.Errorf("expected null data, got %v", v)
			}
			if strings.Contains(w.Body.String(), "disk I/O") || strings.Contains(w.Body.String(), "secret") {
				t.Errorf("response leaks the cause: %s", w.Body.String())
			}
		})
	}
}

func TestCursorList(t *testing.T) {
	next, prev := "n-token", "p-token"

	t.Run("page with cursors", func(t *testing.T) {
		c, w := newResponseTestContext()
		CursorList(c, &domain.CursorPage[testRow]{
			Items:       []testRow{{ID: 2, Name: "Austin"}},
			NextCursor:  &next,
			PrevCursor:  &prev,
			HasNextPage: true,
		})

		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", w.Code)
		}
		var resp map[string]json.RawMessage
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
		if _, ok := resp["data"]; !ok {
			t.Error("expected top-level data")
		}
		var info map[string]any
		if err := json.Unmarshal(resp["pagination"], &info); err != nil {
			t.Fatalf("failed to unmarshal pagination: %v", err)
		}
		want := map[string]any{"nextCursor": "n-token", "prevCursor": "p-token", "hasNextPage": true, "hasPrevPage": false}
		for k, v := range want {
			if info[k] != v {
				t.Errorf("pagination.%s = %v; want %v", k, info[k], v)
			}
		}
	})

	t.Run("empty page", func(t *testing.T) {
		c, w := newResponseTestContext()
		CursorList(c, &domain.CursorPage[testRow]{})

		body := w.Body.String()
		for _, want := range []string{`"data":[]`, `"nextCursor":null`, `"prevCursor":null`, `"hasNextPage":false`, `"hasPrevPage":false`} {
			if !strings.Contains(body, want) {
				t.Errorf("body %s does not contain %s", body, want)
			}
		}
	})
}

type bindInput struct {
	Name  string `json:"name" binding:"required,max=10"`
	Years int    `json:"yearsOfExperience" binding:"gte=0"`
}

func TestBindAndValidate(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		ok         bool
		message    string
		fieldError map[string]string
	}{
		{"valid", `{"name":"Jane","yearsOfExperience":3}`, true, "", nil},
		{"malformed json", `{"name":`, false, "bad request", nil},
		{"missing name", `{}`, false, "validation error", map[string]string{"name": "required"}},
		{"too long and negative", `{"name":"Bartholomew Jr","yearsOfExperience":-1}`, false, "validation error", map[string]string{"name": "max=10", "yearsOfExperience": "gte=0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newResponseTestContextWithBody(tt.body)
			var input bindInput
			ok := BindAndValidate(c, &input)

			if ok != tt.ok {
				t.Fatalf("BindAndValidate() = %v; want %v", ok, tt.ok)
			}
			if ok {
				if w.Body.Len() != 0 {
					t.Errorf("expected no response on success, got %q", w.Body.String())
				}
				return
			}
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d", w.Code)
			}

			var resp ValidationErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to unmarshal response: %v", err)
			}
			if resp.Message != tt.message {
				t.Errorf("message = %q; want %q", resp.Message, tt.message)
			}
			for field, msg := range tt.fieldError {
				if resp.Errors[field] != msg {
					t.Errorf("errors[%s] = %q; want %q", field, resp.Errors[field], msg)
				}
			}
		})
	}
}
