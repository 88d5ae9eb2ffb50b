package suppliers

import (
	"context"
	"net/http"
	"time"

	"github.com/mytheresa/warehouse-service/app/api"
	"github.com/mytheresa/warehouse-service/models"
)

type SupplierResponse struct {
	ID               uint      `json:"id"`
	NameOrganization string    `json:"name_organization"`
	Country          string    `json:"country"`
	City             string    `json:"city"`
	Street           string    `json:"street"`
	Building         string    `json:"building"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type SupplierInput struct {
	NameOrganization string `json:"name_organization"`
	Country          string `json:"country"`
	City             string `json:"city"`
	Street           string `json:"street"`
	Building         string `json:"building"`
}

type SupplierProvider interface {
	GetAllSuppliers(ctx context.Context) ([]models.Supplier, error)
	GetByID(ctx context.Context, id uint) (*models.Supplier, error)
	CreateSupplier(ctx context.Context, s *models.Supplier) error
	UpdateSupplier(ctx context.Context, s *models.Supplier) error
	DeleteSupplier(ctx context.Context, id uint) error
}

type SupplierHandler struct {
	repo SupplierProvider
}

func NewSupplierHandler(r SupplierProvider) *SupplierHandler {
	return &SupplierHandler{repo: r}
}

func toResponse(s *models.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:               s.ID,
		NameOrganization: s.NameOrganization,
		Country:          s.Country,
		City:             s.City,
		Street:           s.Street,
		Building:         s.Building,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}

func (in SupplierInput) model() *models.Supplier {
	return &models.Supplier{
		NameOrganization: in.NameOrganization,
		Country:          in.Country,
		City:             in.City,
		Street:           in.Street,
		Building:         in.Building,
	}
}

func (h *SupplierHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	suppliers, err := h.repo.GetAllSuppliers(r.Context())
	if err != nil {
		api.WriteRepoError(w, r, err, "failed to fetch suppliers")
		return
	}

	response := make([]SupplierResponse, len(suppliers))
	for i := range suppliers {
		response[i] = toResponse(&suppliers[i])
	}
	api.WriteJSON(w, http.StatusOK, response)
}

func (h *SupplierHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(r, "id")
	if !ok {
		api.WriteError(w, http.StatusBadRequest, "Invalid supplier id")
		return
	}
	supplier, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		api.WriteRepoError(w, r, err, "failed to fetch supplier")
		return
	}
	api.WriteJSON(w, http.StatusOK, toResponse(supplier))
}

func (h *SupplierHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input SupplierInput
	if err := api.DecodeJSON(r, &input); err != nil {
		api.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	supplier := input.model()
	if err := h.repo.CreateSupplier(r.Context(), supplier); err != nil {
		api.WriteRepoError(w, r, err, "Failed to create supplier")
		return
	}
	api.WriteJSON(w, http.StatusCreated, toResponse(supplier))
}

func (h *SupplierHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(r, "id")
	if !ok {
		api.WriteError(w, http.StatusBadRequest, "Invalid supplier id")
		return
	}
	var input SupplierInput
	if err := api.DecodeJSON(r, &input); err != nil {
		api.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	supplier := input.model()
	supplier.ID = id
	if err := h.repo.UpdateSupplier(r.Context(), supplier); err != nil {
		api.WriteRepoError(w, r, err, "Failed to update supplier")
		return
	}
	api.WriteJSON(w, http.StatusOK, toResponse(supplier))
}

func (h *SupplierHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(r, "id")
	if !ok {
		api.WriteError(w, http.StatusBadRequest, "Invalid supplier id")
		return
	}
	if err := h.repo.DeleteSupplier(r.Context(), id); err != nil {
		api.WriteRepoError(w, r, err, "Failed to delete supplier")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
