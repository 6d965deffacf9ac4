package vendors

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/vds-erp/vds-erp/internal/rbac"
	"github.com/vds-erp/vds-erp/internal/shared"
)

func newVendorTestServer(t *testing.T, repo Repository) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewHandler(logger, NewService(repo, &recordedAudit{}, nil), rbac.Middleware{Logger: logger})

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			sess := &shared.Session{ID: "test-session"}
			sess.SetUser("user-1", rbac.RoleAccountant)
			next.ServeHTTP(w, req.WithContext(shared.ContextWithSession(req.Context(), sess)))
		})
	})
	r.Route("/vendors", handler.MountRoutes)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url, body string) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	return resp, payload
}

func TestVendorLifecycleOverHTTP(t *testing.T) {
	srv := newVendorTestServer(t, newMemoryVendorRepo())

	// Create.
	resp, body := doJSON(t, http.MethodPost, srv.URL+"/vendors", `{"name": "Acme Traders"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created Vendor
	require.NoError(t, json.Unmarshal(body, &created))
	require.Equal(t, "Acme Traders", created.Name)
	require.NotEmpty(t, created.ID)

	// Same name again conflicts.
	resp, body = doJSON(t, http.MethodPost, srv.URL+"/vendors", `{"name": "Acme Traders"}`)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	var conflict struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(body, &conflict))
	require.Equal(t, "A vendor with this name already exists", conflict.Error)

	// Exactly one vendor listed.
	resp, body = doJSON(t, http.MethodGet, srv.URL+"/vendors", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var listed []Vendor
	require.NoError(t, json.Unmarshal(body, &listed))
	require.Len(t, listed, 1)
	require.NotNil(t, listed[0].Count)
	require.Equal(t, 0, listed[0].Count.Expenses)

	// Delete succeeds with the exact message.
	resp, body = doJSON(t, http.MethodDelete, srv.URL+"/vendors/"+created.ID, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var deleted struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(body, &deleted))
	require.Equal(t, "Vendor deleted successfully", deleted.Message)

	// Listing is empty again.
	resp, body = doJSON(t, http.MethodGet, srv.URL+"/vendors", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	listed = nil
	require.NoError(t, json.Unmarshal(body, &listed))
	require.Empty(t, listed)
}

func TestVendorValidationFailureEnvelope(t *testing.T) {
	srv := newVendorTestServer(t, newMemoryVendorRepo())

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/vendors", `{"name": "", "email": "nope"}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var failure struct {
		Error  string `json:"error"`
		Errors []struct {
			Path    string `json:"path"`
			Message string `json:"message"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(body, &failure))
	require.Equal(t, "Validation failed", failure.Error)
	require.Len(t, failure.Errors, 2)
}

func TestVendorDeleteGuardOverHTTP(t *testing.T) {
	repo := newMemoryVendorRepo()
	srv := newVendorTestServer(t, repo)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/vendors", `{"name": "Acme"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created Vendor
	require.NoError(t, json.Unmarshal(body, &created))
	repo.expenses[created.ID] = 2

	resp, body = doJSON(t, http.MethodDelete, srv.URL+"/vendors/"+created.ID, "")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var conflict struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(body, &conflict))
	require.Equal(t, "Cannot delete vendor with 2 linked expense(s)", conflict.Error)
}
