package customers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mytheresa/warehouse-service/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mock Repository ---

type MockCustomerRepo struct {
	Customers []models.Customer
	Err       error
	LastSaved *models.Customer
	lastPage  models.Page
}

func (m *MockCustomerRepo) GetAllCustomers(ctx context.Context, page models.Page) ([]models.Customer, int64, error) {
	m.lastPage = page
	if m.Err != nil {
		return nil, 0, m.Err
	}
	return m.Customers, int64(len(m.Customers)), nil
}

func (m *MockCustomerRepo) GetByID(ctx context.Context, id uint) (*models.Customer, error) {
	for _, c := range m.Customers {
		if c.ID == id {
			customer := c
			return &customer, nil
		}
	}
	return nil, models.ErrCustomerNotFound
}

func (m *MockCustomerRepo) GetByUsername(ctx context.Context, username string) (*models.Customer, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, c := range m.Customers {
		if c.Username == username {
			customer := c
			return &customer, nil
		}
	}
	return nil, models.ErrCustomerNotFound
}

func (m *MockCustomerRepo) CreateCustomer(ctx context.Context, c *models.Customer) error {
	m.LastSaved = c
	if m.Err != nil {
		return m.Err
	}
	if err := c.Validate(); err != nil {
		return err
	}
	c.ID = 7
	return nil
}

func (m *MockCustomerRepo) UpdateCustomer(ctx context.Context, c *models.Customer) error {
	m.LastSaved = c
	if m.Err != nil {
		return m.Err
	}
	return c.Validate()
}

func (m *MockCustomerRepo) DeleteCustomer(ctx context.Context, id uint) error {
	_, err := m.GetByID(ctx, id)
	return err
}

func strPtr(s string) *string { return &s }

// --- Tests ---

func TestHandleGetAll(t *testing.T) {
	repo := &MockCustomerRepo{Customers: []models.Customer{
		{ID: 1, Principal: models.Principal{Username: "jdoe"}},
		{ID: 2, Principal: models.Principal{Username: "jsmith", FirstName: "John", LastName: "Smith"}},
	}}
	handler := NewCustomerHandler(repo)
	rec := httptest.NewRecorder()

	handler.HandleGetAll(rec, httptest.NewRequest("GET", "/customers?limit=5", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp ListResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, "jdoe", resp.Customers[0].DisplayName)
	assert.Equal(t, "Smith John", resp.Customers[1].DisplayName)
	assert.Equal(t, 5, repo.lastPage.Limit)
}

func TestHandleGetAllByUsername(t *testing.T) {
	repo := &MockCustomerRepo{Customers: []models.Customer{
		{ID: 1, Principal: models.Principal{Username: "jdoe"}},
		{ID: 2, Principal: models.Principal{Username: "jsmith"}},
	}}

	testCases := []struct {
		name               string
		url                string
		repo               *MockCustomerRepo
		expectedStatusCode int
		expectedIDs        []uint
	}{
		{"Match", "/customers?username=jsmith", repo, http.StatusOK, []uint{2}},
		{"No match", "/customers?username=nobody", repo, http.StatusOK, []uint{}},
		{"Repository error", "/customers?username=jdoe", &MockCustomerRepo{Err: errors.New("db down")}, http.StatusInternalServerError, nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			NewCustomerHandler(tc.repo).HandleGetAll(rec, httptest.NewRequest("GET", tc.url, nil))

			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			if tc.expectedIDs == nil {
				return
			}
			var resp ListResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, len(tc.expectedIDs), resp.Total)
			ids := []uint{}
			for _, c := range resp.Customers {
				ids = append(ids, c.ID)
			}
			assert.Equal(t, tc.expectedIDs, ids)
		})
	}
}

func TestHandleCreate(t *testing.T) {
	testCases := []struct {
		name               string
		requestBody        string
		repo               *MockCustomerRepo
		expectedStatusCode int
		check              func(t *testing.T, rec *httptest.ResponseRecorder, repo *MockCustomerRepo)
	}{
		{
			name:               "Success",
			requestBody:        `{"username":"jdoe","password":"s3cret","first_name":"John","last_name":"Doe","email":"jdoe@example.com","postal_code":"10115"}`,
			repo:               &MockCustomerRepo{},
			expectedStatusCode: http.StatusCreated,
			check: func(t *testing.T, rec *httptest.ResponseRecorder, repo *MockCustomerRepo) {
				body := rec.Body.String()
				assert.NotContains(t, body, "s3cret")
				assert.NotContains(t, body, repo.LastSaved.PasswordHash)

				var resp CustomerResponse
				require.NoError(t, json.Unmarshal([]byte(body), &resp))
				assert.Equal(t, uint(7), resp.ID)
				assert.Equal(t, "Doe John", resp.DisplayName)
				assert.True(t, resp.IsActive, "customers are active by default")
				assert.Equal(t, "10115", *resp.PostalCode)
				assert.True(t, repo.LastSaved.CheckPassword("s3cret"))
			},
		},
		{
			name:               "Missing password",
			requestBody:        `{"username":"jdoe"}`,
			repo:               &MockCustomerRepo{},
			expectedStatusCode: http.StatusBadRequest,
			check: func(t *testing.T, rec *httptest.ResponseRecorder, repo *MockCustomerRepo) {
				assert.Nil(t, repo.LastSaved)
			},
		},
		{
			name:               "Negative age",
			requestBody:        `{"username":"jdoe","password":"pw","age":-3}`,
			repo:               &MockCustomerRepo{},
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name:               "Apartment too long",
			requestBody:        `{"username":"jdoe","password":"pw","apartment":"` + strings.Repeat("A", models.ApartmentLength+1) + `"}`,
			repo:               &MockCustomerRepo{},
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name:               "Username taken",
			requestBody:        `{"username":"jdoe","password":"pw"}`,
			repo:               &MockCustomerRepo{Err: models.ErrDuplicate},
			expectedStatusCode: http.StatusConflict,
		},
		{
			name:               "Inactive on request",
			requestBody:        `{"username":"jdoe","password":"pw","is_active":false}`,
			repo:               &MockCustomerRepo{},
			expectedStatusCode: http.StatusCreated,
			check: func(t *testing.T, rec *httptest.ResponseRecorder, repo *MockCustomerRepo) {
				assert.False(t, repo.LastSaved.IsActive)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewCustomerHandler(tc.repo)
			req := httptest.NewRequest("POST", "/customers", strings.NewReader(tc.requestBody))
			rec := httptest.NewRecorder()

			handler.HandleCreate(rec, req)

			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			if tc.check != nil {
				tc.check(t, rec, tc.repo)
			}
		})
	}
}

func TestHandleUpdateKeepsPassword(t *testing.T) {
	existing := models.NewCustomer("jdoe")
	existing.ID = 3
	require.NoError(t, existing.SetPassword("original"))
	repo := &MockCustomerRepo{Customers: []models.Customer{*existing}}
	handler := NewCustomerHandler(repo)

	req := httptest.NewRequest("PUT", "/customers/3", strings.NewReader(`{"username":"jdoe","middle_name":"Q"}`))
	req.SetPathValue("id", "3")
	rec := httptest.NewRecorder()

	handler.HandleUpdate(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, repo.LastSaved.CheckPassword("original"))
	assert.Equal(t, strPtr("Q"), repo.LastSaved.MiddleName)
	assert.True(t, repo.LastSaved.IsActive)
}

func TestHandleUpdateNotFound(t *testing.T) {
	handler := NewCustomerHandler(&MockCustomerRepo{})
	req := httptest.NewRequest("PUT", "/customers/3", strings.NewReader(`{"username":"jdoe"}`))
	req.SetPathValue("id", "3")
	rec := httptest.NewRecorder()

	handler.HandleUpdate(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleGetAndDelete(t *testing.T) {
	repo := &MockCustomerRepo{Customers: []models.Customer{{ID: 1, Principal: models.Principal{Username: "jdoe"}}}}
	handler := NewCustomerHandler(repo)

	testCases := []struct {
		name    string
		id      string
		handler http.HandlerFunc
		want    int
	}{
		{"Get found", "1", handler.HandleGet, http.StatusOK},
		{"Get missing", "2", handler.HandleGet, http.StatusNotFound},
		{"Get invalid", "-1", handler.HandleGet, http.StatusBadRequest},
		{"Delete found", "1", handler.HandleDelete, http.StatusNoContent},
		{"Delete missing", "2", handler.HandleDelete, http.StatusNotFound},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/customers/"+tc.id, nil)
			req.SetPathValue("id", tc.id)
			rec := httptest.NewRecorder()

			tc.handler(rec, req)

			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestHandleGetAllRepositoryError(t *testing.T) {
	handler := NewCustomerHandler(&MockCustomerRepo{Err: errors.New("db down")})
	rec := httptest.NewRecorder()

	handler.HandleGetAll(rec, httptest.NewRequest("GET", "/customers", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
