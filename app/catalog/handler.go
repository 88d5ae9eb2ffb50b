package catalog

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mytheresa/warehouse-service/app/api"
	"github.com/mytheresa/warehouse-service/models"
)

type Response struct {
	Total    int       `json:"total"`
	Products []Product `json:"products"`
}

type Category struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type Supplier struct {
	ID               uint   `json:"id"`
	NameOrganization string `json:"name_organization"`
}

type Product struct {
	ID        uint            `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Category  Category        `json:"category"`
	Supplier  Supplier        `json:"supplier"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ProductDetail is a product together with its on-hand quantity, which is
// null when the product has no stock record yet.
type ProductDetail struct {
	Product
	Stock *int `json:"stock"`
}

type ProductInput struct {
	Name       string           `json:"name"`
	SupplierID uint             `json:"supplier_id"`
	CategoryID uint             `json:"category_id"`
	Price      *decimal.Decimal `json:"price"`
}

type ProductProvider interface {
	GetFilteredProducts(ctx context.Context, page models.Page, filters models.ProductFilters) ([]models.Product, int64, error)
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	CreateProduct(ctx context.Context, p *models.Product) error
	UpdateProduct(ctx context.Context, p *models.Product) error
	DeleteProduct(ctx context.Context, id uint) error
}

type CatalogHandler struct {
	repo  ProductProvider
	stock StockProvider
}

func NewCatalogHandler(r ProductProvider, s StockProvider) *CatalogHandler {
	return &CatalogHandler{
		repo:  r,
		stock: s,
	}
}

func toProduct(p *models.Product) Product {
	return Product{
		ID:    p.ID,
		Name:  p.Name,
		Price: p.PricePerUnit,
		Category: Category{
			ID:   p.Category.ID,
			Name: p.Category.Name,
		},
		Supplier: Supplier{
			ID:               p.Supplier.ID,
			NameOrganization: p.Supplier.NameOrganization,
		},
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (h *CatalogHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	// Parse pagination query params
	page := api.ParsePage(r)

	// Parse filters
	var filters models.ProductFilters
	var ok bool
	if filters.CategoryID, ok = api.QueryID(r, "category"); !ok {
		api.WriteError(w, http.StatusBadRequest, "Invalid category id")
		return
	}
	if filters.SupplierID, ok = api.QueryID(r, "supplier"); !ok {
		api.WriteError(w, http.StatusBadRequest, "Invalid supplier id")
		return
	}
	if priceStr := r.URL.Query().Get("price_lt"); priceStr != "" {
		val, err := decimal.NewFromString(priceStr)
		if err != nil {
			api.WriteError(w, http.StatusBadRequest, "Invalid price_lt")
			return
		}
		filters.PriceLessThan = &val
	}

	res, total, err := h.repo.GetFilteredProducts(r.Context(), page, filters)
	if err != nil {
		api.WriteRepoError(w, r, err, "failed to get products")
		return
	}

	products := make([]Product, len(res))
	for i := range res {
		products[i] = toProduct(&res[i])
	}

	api.WriteJSON(w, http.StatusOK, Response{
		Total:    int(total),
		Products: products,
	})
}

func (h *CatalogHandler) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(r, "id")
	if !ok {
		api.WriteError(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	product, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			api.WriteError(w, http.StatusNotFound, "Product not found")
			return
		}
		api.WriteRepoError(w, r, err, "Failed to retrieve product")
		return
	}

	detail := ProductDetail{Product: toProduct(product)}
	stock, err := h.stock.GetByProduct(r.Context(), id)
	switch {
	case err == nil:
		detail.Stock = &stock.Quantity
	case !errors.Is(err, models.ErrStockNotFound):
		api.WriteRepoError(w, r, err, "Failed to retrieve product")
		return
	}

	api.WriteJSON(w, http.StatusOK, detail)
}

func (in ProductInput) model() (*models.Product, error) {
	if in.Price == nil {
		return nil, &models.ValidationError{Field: "price", Message: "is required"}
	}
	return &models.Product{
		Name:         in.Name,
		SupplierID:   in.SupplierID,
		CategoryID:   in.CategoryID,
		PricePerUnit: *in.Price,
	}, nil
}

func (h *CatalogHandler) HandleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var input ProductInput
	if err := api.DecodeJSON(r, &input); err != nil {
		api.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	product, err := input.model()
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.repo.CreateProduct(r.Context(), product); err != nil {
		api.WriteRepoError(w, r, err, "Failed to create product")
		return
	}
	api.WriteJSON(w, http.StatusCreated, toProduct(product))
}

func (h *CatalogHandler) HandleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(r, "id")
	if !ok {
		api.WriteError(w, http.StatusBadRequest, "Invalid product id")
		return
	}
	var input ProductInput
	if err := api.DecodeJSON(r, &input); err != nil {
		api.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	product, err := input.model()
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	product.ID = id
	if err := h.repo.UpdateProduct(r.Context(), product); err != nil {
		api.WriteRepoError(w, r, err, "Failed to update product")
		return
	}
	api.WriteJSON(w, http.StatusOK, toProduct(product))
}

func (h *CatalogHandler) HandleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(r, "id")
	if !ok {
		api.WriteError(w, http.StatusBadRequest, "Invalid product id")
		return
	}
	if err := h.repo.DeleteProduct(r.Context(), id); err != nil {
		api.WriteRepoError(w, r, err, "Failed to delete product")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
