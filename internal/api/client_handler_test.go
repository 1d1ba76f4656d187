package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acmebank/clientms/internal/api"
	"github.com/acmebank/clientms/internal/domain"
	"github.com/acmebank/clientms/internal/mocks"
	"github.com/acmebank/clientms/internal/service"
	"github.com/acmebank/clientms/internal/store"
)

// newTestRouter wires the handler onto the routes the server exposes.
func newTestRouter(svc service.ClientService) http.Handler {
	handler := api.NewClientHandler(svc)

	r := chi.NewRouter()
	r.Route("/clientes", func(r chi.Router) {
		r.Post("/", handler.Create)
		r.Get("/", handler.List)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", handler.Get)
			r.Put("/", handler.Update)
			r.Patch("/", handler.Patch)
			r.Delete("/", handler.Delete)
		})
	})
	return r
}

func sampleClient(t *testing.T) *domain.Client {
	t.Helper()
	client, err := domain.NewClient("Ada", "Lovelace", "12345678A", "ada@example.com")
	require.NoError(t, err)
	return client
}

func doJSON(t *testing.T, router http.Handler, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestClientHandler_Create(t *testing.T) {
	t.Run("valid request returns 200 with client body", func(t *testing.T) {
		client := sampleClient(t)
		svc := &mocks.MockClientService{
			RegisterFn: func(ctx context.Context, firstName, lastName, dni, email string) (*domain.Client, error) {
				assert.Equal(t, "Ada", firstName)
				assert.Equal(t, "ada@example.com", email)
				return client, nil
			},
		}
		router := newTestRouter(svc)

		rec := doJSON(t, router, http.MethodPost, "/clientes", map[string]string{
			"firstName": "Ada",
			"lastName":  "Lovelace",
			"dni":       "12345678A",
			"email":     "ada@example.com",
		})

		assert.Equal(t, http.StatusOK, rec.Code)

		var body api.ClientResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, client.ID.String(), body.ID)
		assert.Equal(t, "Ada", body.FirstName)
		assert.Equal(t, "12345678A", body.DNI)
	})

	t.Run("wire field names are camelCase", func(t *testing.T) {
		client := sampleClient(t)
		svc := &mocks.MockClientService{
			RegisterFn: func(ctx context.Context, firstName, lastName, dni, email string) (*domain.Client, error) {
				return client, nil
			},
		}
		router := newTestRouter(svc)

		rec := doJSON(t, router, http.MethodPost, "/clientes", map[string]string{
			"firstName": "Ada",
			"lastName":  "Lovelace",
			"dni":       "12345678A",
			"email":     "ada@example.com",
		})

		var raw map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
		for _, key := range []string{"id", "firstName", "lastName", "dni", "email", "createdAt", "updatedAt"} {
			assert.Contains(t, raw, key)
		}
		assert.NotContains(t, raw, "created_at")
		assert.NotContains(t, raw, "updated_at")
	})

	t.Run("malformed JSON returns 400", func(t *testing.T) {
		router := newTestRouter(&mocks.MockClientService{})

		req := httptest.NewRequest(http.MethodPost, "/clientes", bytes.NewBufferString("{not json"))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing field returns 400 before reaching the service", func(t *testing.T) {
		svc := &mocks.MockClientService{
			RegisterFn: func(ctx context.Context, firstName, lastName, dni, email string) (*domain.Client, error) {
				t.Fatal("service should not be called for an invalid request")
				return nil, nil
			},
		}
		router := newTestRouter(svc)

		rec := doJSON(t, router, http.MethodPost, "/clientes", map[string]string{
			"firstName": "Ada",
			"lastName":  "Lovelace",
			"email":     "ada@example.com",
		})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "DNI")
	})

	t.Run("invalid email shape returns 400", func(t *testing.T) {
		router := newTestRouter(&mocks.MockClientService{})

		rec := doJSON(t, router, http.MethodPost, "/clientes", map[string]string{
			"firstName": "Ada",
			"lastName":  "Lovelace",
			"dni":       "12345678A",
			"email":     "not-an-email",
		})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("dni conflict returns 409", func(t *testing.T) {
		svc := &mocks.MockClientService{
			RegisterFn: func(ctx context.Context, firstName, lastName, dni, email string) (*domain.Client, error) {
				return nil, store.ErrDNIExists
			},
		}
		router := newTestRouter(svc)

		rec := doJSON(t, router, http.MethodPost, "/clientes", map[string]string{
			"firstName": "Ada",
			"lastName":  "Lovelace",
			"dni":       "12345678A",
			"email":     "ada@example.com",
		})

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), "DNI is already in use")
	})

	t.Run("email conflict returns 409", func(t *testing.T) {
		svc := &mocks.MockClientService{
			RegisterFn: func(ctx context.Context, firstName, lastName, dni, email string) (*domain.Client, error) {
				return nil, store.ErrEmailExists
			},
		}
		router := newTestRouter(svc)

		rec := doJSON(t, router, http.MethodPost, "/clientes", map[string]string{
			"firstName": "Ada",
			"lastName":  "Lovelace",
			"dni":       "12345678A",
			"email":     "ada@example.com",
		})

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), "Email is already in use")
	})

	t.Run("unexpected service error returns 500 without detail", func(t *testing.T) {
		svc := &mocks.MockClientService{
			RegisterFn: func(ctx context.Context, firstName, lastName, dni, email string) (*domain.Client, error) {
				return nil, service.NewClientServiceError("register", "failed to save client",
					assert.AnError)
			},
		}
		router := newTestRouter(svc)

		rec := doJSON(t, router, http.MethodPost, "/clientes", map[string]string{
			"firstName": "Ada",
			"lastName":  "Lovelace",
			"dni":       "12345678A",
			"email":     "ada@example.com",
		})

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "failed to save client")
		assert.Contains(t, rec.Body.String(), "An unexpected error occurred")
	})
}

func TestClientHandler_Get(t *testing.T) {
	t.Run("existing client returns 200", func(t *testing.T) {
		client := sampleClient(t)
		svc := &mocks.MockClientService{
			GetByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
				assert.Equal(t, client.ID, id)
				return client, nil
			},
		}
		router := newTestRouter(svc)

		rec := doJSON(t, router, http.MethodGet, "/clientes/"+client.ID.String(), nil)

		assert.Equal(t, http.StatusOK, rec.Code)

		var body api.ClientResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, client.Email, body.Email)
	})

	t.Run("unknown client returns 404", func(t *testing.T) {
		svc := &mocks.MockClientService{
			GetByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
				return nil, store.ErrClientNotFound
			},
		}
		router := newTestRouter(svc)

		rec := doJSON(t, router, http.MethodGet, "/clientes/"+uuid.New().String(), nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "Client not found")
	})

	t.Run("malformed id returns 400 without reaching the service", func(t *testing.T) {
		router := newTestRouter(&mocks.MockClientService{})

		rec := doJSON(t, router, http.MethodGet, "/clientes/not-a-uuid", nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid client ID")
	})
}

func TestClientHandler_List(t *testing.T) {
	t.Run("returns all clients", func(t *testing.T) {
		first := sampleClient(t)
		second, err := domain.NewClient("Grace", "Hopper", "99999999Z", "grace@example.com")
		require.NoError(t, err)

		svc := &mocks.MockClientService{
			ListAllFn: func(ctx context.Context) ([]*domain.Client, error) {
				return []*domain.Client{first, second}, nil
			},
		}
		router := newTestRouter(svc)

		rec := doJSON(t, router, http.MethodGet, "/clientes", nil)

		assert.Equal(t, http.StatusOK, rec.Code)

		var body []api.ClientResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Len(t, body, 2)
	})

	t.Run("empty store serializes as empty array", func(t *testing.T) {
		svc := &mocks.MockClientService{
			ListAllFn: func(ctx context.Context) ([]*domain.Client, error) {
				return nil, nil
			},
		}
		router := newTestRouter(svc)

		rec := doJSON(t, router, http.MethodGet, "/clientes", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", rec.Body.String())
	})
}

func TestClientHandler_Update(t *testing.T) {
	t.Run("valid request returns 200", func(t *testing.T) {
		client := sampleClient(t)
		svc := &mocks.MockClientService{
			UpdateFn: func(ctx context.Context, id uuid.UUID, firstName, lastName, dni, email string) (*domain.Client, error) {
				updated := *client
				updated.FirstName = firstName
				return &updated, nil
			},
		}
		router := newTestRouter(svc)

		rec := doJSON(t, router, http.MethodPut, "/clientes/"+client.ID.String(), map[string]string{
			"firstName": "Augusta",
			"lastName":  "King",
			"dni":       "12345678A",
			"email":     "ada@example.com",
		})

		assert.Equal(t, http.StatusOK, rec.Code)

		var body api.ClientResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Augusta", body.FirstName)
	})

	t.Run("missing required field returns 400", func(t *testing.T) {
		router := newTestRouter(&mocks.MockClientService{})

		rec := doJSON(t, router, http.MethodPut, "/clientes/"+uuid.New().String(), map[string]string{
			"firstName": "Augusta",
		})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("email conflict returns 409", func(t *testing.T) {
		svc := &mocks.MockClientService{
			UpdateFn: func(ctx context.Context, id uuid.UUID, firstName, lastName, dni, email string) (*domain.Client, error) {
				return nil, store.ErrEmailExists
			},
		}
		router := newTestRouter(svc)

		rec := doJSON(t, router, http.MethodPut, "/clientes/"+uuid.New().String(), map[string]string{
			"firstName": "Ada",
			"lastName":  "Lovelace",
			"dni":       "12345678A",
			"email":     "taken@example.com",
		})

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("unknown client returns 404", func(t *testing.T) {
		svc := &mocks.MockClientService{
			UpdateFn: func(ctx context.Context, id uuid.UUID, firstName, lastName, dni, email string) (*domain.Client, error) {
				return nil, store.ErrClientNotFound
			},
		}
		router := newTestRouter(svc)

		rec := doJSON(t, router, http.MethodPut, "/clientes/"+uuid.New().String(), map[string]string{
			"firstName": "Ada",
			"lastName":  "Lovelace",
			"dni":       "12345678A",
			"email":     "ada@example.com",
		})

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestClientHandler_Patch(t *testing.T) {
	t.Run("absent fields arrive as nil, supplied ones as pointers", func(t *testing.T) {
		client := sampleClient(t)
		svc := &mocks.MockClientService{
			PatchFn: func(ctx context.Context, id uuid.UUID, patch service.ClientPatch) (*domain.Client, error) {
				require.NotNil(t, patch.LastName)
				assert.Equal(t, "King", *patch.LastName)
				assert.Nil(t, patch.FirstName)
				assert.Nil(t, patch.DNI)
				assert.Nil(t, patch.Email)

				updated := *client
				updated.LastName = *patch.LastName
				return &updated, nil
			},
		}
		router := newTestRouter(svc)

		rec := doJSON(t, router, http.MethodPatch, "/clientes/"+client.ID.String(), map[string]string{
			"lastName": "King",
		})

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("supplied blank field returns 400", func(t *testing.T) {
		svc := &mocks.MockClientService{
			PatchFn: func(ctx context.Context, id uuid.UUID, patch service.ClientPatch) (*domain.Client, error) {
				return nil, domain.ErrEmptyFirstName
			},
		}
		router := newTestRouter(svc)

		rec := doJSON(t, router, http.MethodPatch, "/clientes/"+uuid.New().String(), map[string]string{
			"firstName": "   ",
		})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("patched email with invalid shape returns 400", func(t *testing.T) {
		router := newTestRouter(&mocks.MockClientService{})

		rec := doJSON(t, router, http.MethodPatch, "/clientes/"+uuid.New().String(), map[string]string{
			"email": "not-an-email",
		})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("email conflict returns 409", func(t *testing.T) {
		svc := &mocks.MockClientService{
			PatchFn: func(ctx context.Context, id uuid.UUID, patch service.ClientPatch) (*domain.Client, error) {
				return nil, store.ErrEmailExists
			},
		}
		router := newTestRouter(svc)

		rec := doJSON(t, router, http.MethodPatch, "/clientes/"+uuid.New().String(), map[string]string{
			"email": "taken@example.com",
		})

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestClientHandler_Delete(t *testing.T) {
	t.Run("successful delete returns 204 with empty body", func(t *testing.T) {
		id := uuid.New()
		svc := &mocks.MockClientService{
			DeleteFn: func(ctx context.Context, got uuid.UUID) error {
				assert.Equal(t, id, got)
				return nil
			},
		}
		router := newTestRouter(svc)

		rec := doJSON(t, router, http.MethodDelete, "/clientes/"+id.String(), nil)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.Bytes())
	})

	t.Run("active accounts returns 400", func(t *testing.T) {
		svc := &mocks.MockClientService{
			DeleteFn: func(ctx context.Context, id uuid.UUID) error {
				return service.ErrActiveAccounts
			},
		}
		router := newTestRouter(svc)

		rec := doJSON(t, router, http.MethodDelete, "/clientes/"+uuid.New().String(), nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "cannot be deleted")
	})

	t.Run("accounts lookup outage returns 503", func(t *testing.T) {
		svc := &mocks.MockClientService{
			DeleteFn: func(ctx context.Context, id uuid.UUID) error {
				return service.NewClientServiceError("delete", "accounts lookup failed",
					service.ErrAccountsUnavailable)
			},
		}
		router := newTestRouter(svc)

		rec := doJSON(t, router, http.MethodDelete, "/clientes/"+uuid.New().String(), nil)

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), "Accounts service is unavailable")
	})

	t.Run("unknown client returns 404", func(t *testing.T) {
		svc := &mocks.MockClientService{
			DeleteFn: func(ctx context.Context, id uuid.UUID) error {
				return store.ErrClientNotFound
			},
		}
		router := newTestRouter(svc)

		rec := doJSON(t, router, http.MethodDelete, "/clientes/"+uuid.New().String(), nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
