package customers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/mytheresa/warehouse-service/app/api"
	"github.com/mytheresa/warehouse-service/models"
)

type CustomerResponse struct {
	ID          uint       `json:"id"`
	Username    string     `json:"username"`
	DisplayName string     `json:"display_name"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	MiddleName  *string    `json:"middle_name"`
	Email       string     `json:"email"`
	IsActive    bool       `json:"is_active"`
	IsStaff     bool       `json:"is_staff"`
	IsSuperuser bool       `json:"is_superuser"`
	DateJoined  time.Time  `json:"date_joined"`
	LastLogin   *time.Time `json:"last_login"`
	Age         *int       `json:"age"`
	Country     *string    `json:"country"`
	Street      *string    `json:"street"`
	Building    *string    `json:"building"`
	Apartment   *string    `json:"apartment"`
	PostalCode  *string    `json:"postal_code"`
}

type ListResponse struct {
	Total     int                `json:"total"`
	Customers []CustomerResponse `json:"customers"`
}

// CustomerInput is the writable part of a customer. Password is required on
// create and optional on update, where an empty value keeps the current one.
type CustomerInput struct {
	Username    string  `json:"username"`
	Password    string  `json:"password"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	MiddleName  *string `json:"middle_name"`
	Email       string  `json:"email"`
	IsActive    *bool   `json:"is_active"`
	IsStaff     bool    `json:"is_staff"`
	IsSuperuser bool    `json:"is_superuser"`
	Age         *int    `json:"age"`
	Country     *string `json:"country"`
	Street      *string `json:"street"`
	Building    *string `json:"building"`
	Apartment   *string `json:"apartment"`
	PostalCode  *string `json:"postal_code"`
}

type CustomerProvider interface {
	GetAllCustomers(ctx context.Context, page models.Page) ([]models.Customer, int64, error)
	GetByID(ctx context.Context, id uint) (*models.Customer, error)
	GetByUsername(ctx context.Context, username string) (*models.Customer, error)
	CreateCustomer(ctx context.Context, c *models.Customer) error
	UpdateCustomer(ctx context.Context, c *models.Customer) error
	DeleteCustomer(ctx context.Context, id uint) error
}

type CustomerHandler struct {
	repo CustomerProvider
}

func NewCustomerHandler(r CustomerProvider) *CustomerHandler {
	return &CustomerHandler{repo: r}
}

func toResponse(c *models.Customer) CustomerResponse {
	return CustomerResponse{
		ID:          c.ID,
		Username:    c.Username,
		DisplayName: c.DisplayName(),
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		MiddleName:  c.MiddleName,
		Email:       c.Email,
		IsActive:    c.IsActive,
		IsStaff:     c.IsStaff,
		IsSuperuser: c.IsSuperuser,
		DateJoined:  c.DateJoined,
		LastLogin:   c.LastLogin,
		Age:         c.Age,
		Country:     c.Country,
		Street:      c.Street,
		Building:    c.Building,
		Apartment:   c.Apartment,
		PostalCode:  c.PostalCode,
	}
}

// apply copies the input onto c, hashing the password when one is given.
func (in CustomerInput) apply(c *models.Customer) error {
	c.Username = in.Username
	c.FirstName = in.FirstName
	c.LastName = in.LastName
	c.MiddleName = in.MiddleName
	c.Email = in.Email
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}
	c.IsStaff = in.IsStaff
	c.IsSuperuser = in.IsSuperuser
	c.Age = in.Age
	c.Country = in.Country
	c.Street = in.Street
	c.Building = in.Building
	c.Apartment = in.Apartment
	c.PostalCode = in.PostalCode
	if in.Password != "" {
		return c.SetPassword(in.Password)
	}
	return nil
}

// HandleGetAll lists customers page by page. With ?username= it returns the
// single matching customer, or an empty list.
func (h *CustomerHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	if username := r.URL.Query().Get("username"); username != "" {
		h.handleGetByUsername(w, r, username)
		return
	}

	customers, total, err := h.repo.GetAllCustomers(r.Context(), api.ParsePage(r))
	if err != nil {
		api.WriteRepoError(w, r, err, "failed to fetch customers")
		return
	}

	response := ListResponse{Total: int(total), Customers: make([]CustomerResponse, len(customers))}
	for i := range customers {
		response.Customers[i] = toResponse(&customers[i])
	}
	api.WriteJSON(w, http.StatusOK, response)
}

func (h *CustomerHandler) handleGetByUsername(w http.ResponseWriter, r *http.Request, username string) {
	response := ListResponse{Customers: []CustomerResponse{}}
	customer, err := h.repo.GetByUsername(r.Context(), username)
	switch {
	case err == nil:
		response.Total = 1
		response.Customers = append(response.Customers, toResponse(customer))
	case !errors.Is(err, models.ErrNotFound):
		api.WriteRepoError(w, r, err, "failed to fetch customers")
		return
	}
	api.WriteJSON(w, http.StatusOK, response)
}

func (h *CustomerHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(r, "id")
	if !ok {
		api.WriteError(w, http.StatusBadRequest, "Invalid customer id")
		return
	}
	customer, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		api.WriteRepoError(w, r, err, "failed to fetch customer")
		return
	}
	api.WriteJSON(w, http.StatusOK, toResponse(customer))
}

func (h *CustomerHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input CustomerInput
	if err := api.DecodeJSON(r, &input); err != nil {
		api.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if input.Username == "" || input.Password == "" {
		api.WriteError(w, http.StatusBadRequest, "Missing username or password")
		return
	}

	customer := models.NewCustomer(input.Username)
	if err := input.apply(customer); err != nil {
		api.WriteRepoError(w, r, err, "Failed to create customer")
		return
	}
	if err := h.repo.CreateCustomer(r.Context(), customer); err != nil {
		api.WriteRepoError(w, r, err, "Failed to create customer")
		return
	}
	api.WriteJSON(w, http.StatusCreated, toResponse(customer))
}

func (h *CustomerHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(r, "id")
	if !ok {
		api.WriteError(w, http.StatusBadRequest, "Invalid customer id")
		return
	}
	var input CustomerInput
	if err := api.DecodeJSON(r, &input); err != nil {
		api.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	customer, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		api.WriteRepoError(w, r, err, "Failed to update customer")
		return
	}
	if err := input.apply(customer); err != nil {
		api.WriteRepoError(w, r, err, "Failed to update customer")
		return
	}
	if err := h.repo.UpdateCustomer(r.Context(), customer); err != nil {
		api.WriteRepoError(w, r, err, "Failed to update customer")
		return
	}
	api.WriteJSON(w, http.StatusOK, toResponse(customer))
}

func (h *CustomerHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(r, "id")
	if !ok {
		api.WriteError(w, http.StatusBadRequest, "Invalid customer id")
		return
	}
	if err := h.repo.DeleteCustomer(r.Context(), id); err != nil {
		api.WriteRepoError(w, r, err, "Failed to delete customer")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
