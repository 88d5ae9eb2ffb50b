package catalog

import (
	"context"
	"net/http"

	"github.com/mytheresa/warehouse-service/app/api"
	"github.com/mytheresa/warehouse-service/models"
)

type StockResponse struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

type StockProvider interface {
	GetByProduct(ctx context.Context, productID uint) (*models.Stock, error)
	SetQuantity(ctx context.Context, productID uint, quantity int) (*models.Stock, error)
	Restock(ctx context.Context, productID uint, amount int) (*models.Stock, error)
}

func (h *CatalogHandler) HandleGetStock(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(r, "id")
	if !ok {
		api.WriteError(w, http.StatusBadRequest, "Invalid product id")
		return
	}
	stock, err := h.stock.GetByProduct(r.Context(), id)
	if err != nil {
		api.WriteRepoError(w, r, err, "Failed to retrieve stock")
		return
	}
	api.WriteJSON(w, http.StatusOK, StockResponse{ProductID: stock.ProductID, Quantity: stock.Quantity})
}

// HandleSetStock stores an absolute quantity. Omitting quantity resets the
// product to the default stock level.
func (h *CatalogHandler) HandleSetStock(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(r, "id")
	if !ok {
		api.WriteError(w, http.StatusBadRequest, "Invalid product id")
		return
	}
	var input struct {
		Quantity *int `json:"quantity"`
	}
	if err := api.DecodeJSON(r, &input); err != nil {
		api.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	quantity := models.DefaultStockQuantity
	if input.Quantity != nil {
		quantity = *input.Quantity
	}

	stock, err := h.stock.SetQuantity(r.Context(), id, quantity)
	if err != nil {
		api.WriteRepoError(w, r, err, "Failed to update stock")
		return
	}
	api.WriteJSON(w, http.StatusOK, StockResponse{ProductID: stock.ProductID, Quantity: stock.Quantity})
}

func (h *CatalogHandler) HandleRestock(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(r, "id")
	if !ok {
		api.WriteError(w, http.StatusBadRequest, "Invalid product id")
		return
	}
	var input struct {
		Amount int `json:"amount"`
	}
	if err := api.DecodeJSON(r, &input); err != nil {
		api.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	stock, err := h.stock.Restock(r.Context(), id, input.Amount)
	if err != nil {
		api.WriteRepoError(w, r, err, "Failed to restock")
		return
	}
	api.WriteJSON(w, http.StatusOK, StockResponse{ProductID: stock.ProductID, Quantity: stock.Quantity})
}
