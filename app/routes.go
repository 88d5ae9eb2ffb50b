package app

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/mytheresa/warehouse-service/app/api"
	"github.com/mytheresa/warehouse-service/app/catalog"
	"github.com/mytheresa/warehouse-service/app/categories"
	"github.com/mytheresa/warehouse-service/app/customers"
	"github.com/mytheresa/warehouse-service/app/orders"
	"github.com/mytheresa/warehouse-service/app/suppliers"
	"github.com/mytheresa/warehouse-service/models"
)

// Handlers groups every HTTP handler the service exposes.
type Handlers struct {
	Suppliers  *suppliers.SupplierHandler
	Categories *categories.CategoryHandler
	Catalog    *catalog.CatalogHandler
	Customers  *customers.CustomerHandler
	Orders     *orders.OrderHandler
}

// NewHandlers wires the gorm backed repositories into their handlers.
func NewHandlers(db *gorm.DB) *Handlers {
	return &Handlers{
		Suppliers:  suppliers.NewSupplierHandler(models.NewSuppliersRepository(db)),
		Categories: categories.NewCategoryHandler(models.NewCategoriesRepository(db)),
		Catalog:    catalog.NewCatalogHandler(models.NewProductsRepository(db), models.NewStockRepository(db)),
		Customers:  customers.NewCustomerHandler(models.NewCustomersRepository(db)),
		Orders:     orders.NewOrderHandler(models.NewOrdersRepository(db)),
	}
}

// Routes builds the route table wrapped in request id and access log middleware.
func (h *Handlers) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /suppliers", h.Suppliers.HandleGetAll)
	mux.HandleFunc("POST /suppliers", h.Suppliers.HandleCreate)
	mux.HandleFunc("GET /suppliers/{id}", h.Suppliers.HandleGet)
	mux.HandleFunc("PUT /suppliers/{id}", h.Suppliers.HandleUpdate)
	mux.HandleFunc("DELETE /suppliers/{id}", h.Suppliers.HandleDelete)

	mux.HandleFunc("GET /categories", h.Categories.HandleGetAll)
	mux.HandleFunc("POST /categories", h.Categories.HandleCreate)
	mux.HandleFunc("GET /categories/{id}", h.Categories.HandleGet)
	mux.HandleFunc("PUT /categories/{id}", h.Categories.HandleUpdate)
	mux.HandleFunc("DELETE /categories/{id}", h.Categories.HandleDelete)
	mux.HandleFunc("GET /categories/{id}/tree", h.Categories.HandleTree)

	mux.HandleFunc("GET /products", h.Catalog.HandleGet)
	mux.HandleFunc("POST /products", h.Catalog.HandleCreateProduct)
	mux.HandleFunc("GET /products/{id}", h.Catalog.HandleGetProduct)
	mux.HandleFunc("PUT /products/{id}", h.Catalog.HandleUpdateProduct)
	mux.HandleFunc("DELETE /products/{id}", h.Catalog.HandleDeleteProduct)
	mux.HandleFunc("GET /products/{id}/stock", h.Catalog.HandleGetStock)
	mux.HandleFunc("PUT /products/{id}/stock", h.Catalog.HandleSetStock)
	mux.HandleFunc("POST /products/{id}/stock/restock", h.Catalog.HandleRestock)

	mux.HandleFunc("GET /customers", h.Customers.HandleGetAll)
	mux.HandleFunc("POST /customers", h.Customers.HandleCreate)
	mux.HandleFunc("GET /customers/{id}", h.Customers.HandleGet)
	mux.HandleFunc("PUT /customers/{id}", h.Customers.HandleUpdate)
	mux.HandleFunc("DELETE /customers/{id}", h.Customers.HandleDelete)

	mux.HandleFunc("GET /orders", h.Orders.HandleGetAll)
	mux.HandleFunc("POST /orders", h.Orders.HandleCreate)
	mux.HandleFunc("GET /orders/{id}", h.Orders.HandleGet)
	mux.HandleFunc("PUT /orders/{id}", h.Orders.HandleUpdate)
	mux.HandleFunc("DELETE /orders/{id}", h.Orders.HandleDelete)
	mux.HandleFunc("POST /orders/{id}/items", h.Orders.HandleAddItem)
	mux.HandleFunc("PUT /orders/{id}/items/{itemID}", h.Orders.HandleUpdateItem)
	mux.HandleFunc("DELETE /orders/{id}/items/{itemID}", h.Orders.HandleDeleteItem)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		api.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return api.WithRequestID(api.AccessLog(mux))
}
