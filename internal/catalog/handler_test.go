package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tobaccoform/internal/api"
	"tobaccoform/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type memoryStore struct {
	records []models.TobaccoRecord
	err     error
}

func (s *memoryStore) InsertTobacco(ctx context.Context, record models.TobaccoRecord) error {
	if s.err != nil {
		return s.err
	}
	for _, r := range s.records {
		if r == record {
			return ErrDuplicate
		}
	}
	s.records = append(s.records, record)
	return nil
}

func (s *memoryStore) ListBrands(ctx context.Context) ([]models.Brand, error) {
	if s.err != nil {
		return nil, s.err
	}
	seen := map[models.Brand]bool{}
	var brands []models.Brand
	for _, r := range s.records {
		if !seen[r.Brand] {
			seen[r.Brand] = true
			brands = append(brands, r.Brand)
		}
	}
	return brands, nil
}

func (s *memoryStore) ListTobacco(ctx context.Context) ([]models.TobaccoRecord, error) {
	return s.records, s.err
}

func (s *memoryStore) TobaccoByBrand(ctx context.Context, brand models.Brand) ([]models.TobaccoRecord, error) {
	var out []models.TobaccoRecord
	for _, r := range s.records {
		if r.Brand == brand {
			out = append(out, r)
		}
	}
	return out, s.err
}

type panicStore struct {
	memoryStore
}

func (s *panicStore) ListBrands(ctx context.Context) ([]models.Brand, error) {
	panic("cursor exploded")
}

func do(t *testing.T, store Store, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := NewServer(store, nil)
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHandler_CreateAndBrands(t *testing.T) {
	store := &memoryStore{}

	rec := do(t, store, http.MethodPost, "/api/tobacco/", `{"brand":"Fumari","taste":"sweet","flavour":"mint"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, MsgAdded, rec.Body.String())

	do(t, store, http.MethodPost, "/api/tobacco/", `{"brand":"Adalya","taste":"sour","flavour":"lemon"}`)
	do(t, store, http.MethodPost, "/api/tobacco/", `{"brand":"Fumari","taste":"dessert","flavour":"cake"}`)

	rec = do(t, store, http.MethodGet, "/api/tobacco/brands", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var brands []string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &brands))
	assert.Equal(t, []string{"Fumari", "Adalya"}, brands)
}

func TestHandler_BrandsEmptyIsArray(t *testing.T) {
	rec := do(t, &memoryStore{}, http.MethodGet, "/api/tobacco/brands", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestHandler_CreateRejections(t *testing.T) {
	store := &memoryStore{records: []models.TobaccoRecord{{Brand: "Fumari", Taste: "sweet", Flavour: "mint"}}}

	tests := []struct {
		name   string
		body   string
		status int
		text   string
	}{
		{"duplicate", `{"brand":"Fumari","taste":"sweet","flavour":"mint"}`, http.StatusConflict, MsgDuplicate},
		{"blank brand", `{"brand":"  ","taste":"sweet","flavour":"mint"}`, http.StatusBadRequest, "Brand is required"},
		{"unknown taste", `{"brand":"Fumari","taste":"bitter","flavour":"mint"}`, http.StatusBadRequest, "Unknown taste: bitter"},
		{"malformed", `{"brand":`, http.StatusBadRequest, "Invalid tobacco payload"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, store, http.MethodPost, "/api/tobacco/", tt.body)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.text, rec.Body.String())
		})
	}
	assert.Len(t, store.records, 1)
}

func TestHandler_StoreFailure(t *testing.T) {
	store := &memoryStore{err: errors.New("mongo down")}

	rec := do(t, store, http.MethodPost, "/api/tobacco/", `{"brand":"Fumari","taste":"sweet","flavour":"mint"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = do(t, store, http.MethodGet, "/api/tobacco/brands", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandler_ListAndByBrand(t *testing.T) {
	store := &memoryStore{}

	rec := do(t, store, http.MethodGet, "/api/tobacco/", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	store.records = []models.TobaccoRecord{
		{Brand: "Fumari", Taste: "sweet", Flavour: "mint"},
		{Brand: "Adalya", Taste: "sour", Flavour: "lemon"},
	}

	rec = do(t, store, http.MethodGet, "/api/tobacco/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var all struct {
		Data []models.TobaccoRecord `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	assert.Len(t, all.Data, 2)

	rec = do(t, store, http.MethodGet, "/api/tobacco/Adalya", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "lemon")

	rec = do(t, store, http.MethodGet, "/api/tobacco/Tangiers", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// The entry form's client against the real handler.
func TestHandler_WithClient(t *testing.T) {
	store := &memoryStore{}
	srv := httptest.NewServer(NewServer(store, nil))
	defer srv.Close()

	client := api.NewClient(srv.URL)
	ctx := context.Background()

	text, err := client.CreateTobacco(ctx, models.TobaccoRecord{Brand: "Darkside", Taste: models.TasteDrink, Flavour: "cola"})
	require.NoError(t, err)
	assert.Equal(t, MsgAdded, text)

	text, err = client.CreateTobacco(ctx, models.TobaccoRecord{Brand: "Darkside", Taste: models.TasteDrink, Flavour: "cola"})
	require.NoError(t, err)
	assert.Equal(t, MsgDuplicate, text)

	brands, err := client.Brands(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Darkside"}, brands)
}

func TestServer_RecoveredPanicIsRequestLogged(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	e := NewServer(&panicStore{}, zap.New(core))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/tobacco/brands", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	assert.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
	requests := logs.FilterMessage("request").All()
	require.Len(t, requests, 1)
	fields := requests[0].ContextMap()
	assert.Equal(t, int64(http.StatusInternalServerError), fields["status"])
	assert.Equal(t, "/api/tobacco/brands", fields["path"])
}
