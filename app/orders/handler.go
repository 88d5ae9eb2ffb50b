package orders

import (
	"context"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mytheresa/warehouse-service/app/api"
	"github.com/mytheresa/warehouse-service/models"
)

type ItemResponse struct {
	ID            uint            `json:"id"`
	ProductID     uint            `json:"product_id"`
	ProductName   string          `json:"product_name"`
	Quantity      int             `json:"quantity"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	Subtotal      decimal.Decimal `json:"subtotal"`
}

type OrderResponse struct {
	ID         uint             `json:"id"`
	CustomerID uint             `json:"customer_id"`
	Customer   string           `json:"customer"`
	OrderDate  time.Time        `json:"order_date"`
	Items      []ItemResponse   `json:"items,omitempty"`
	Total      *decimal.Decimal `json:"total,omitempty"`
}

type ListResponse struct {
	Total  int             `json:"total"`
	Orders []OrderResponse `json:"orders"`
}

type LineInput struct {
	ProductID     uint             `json:"product_id"`
	Quantity      *int             `json:"quantity"`
	PurchasePrice *decimal.Decimal `json:"purchase_price"`
}

type OrderInput struct {
	CustomerID uint        `json:"customer_id"`
	Items      []LineInput `json:"items"`
}

type OrderProvider interface {
	GetOrders(ctx context.Context, page models.Page, filters models.OrderFilters) ([]models.Order, int64, error)
	GetByID(ctx context.Context, id uint) (*models.Order, error)
	PlaceOrder(ctx context.Context, customerID uint, lines []models.OrderLine) (*models.Order, error)
	ReassignOrder(ctx context.Context, id, customerID uint) (*models.Order, error)
	DeleteOrder(ctx context.Context, id uint) error
	AddItem(ctx context.Context, item *models.OrderItem) error
	UpdateItemQuantity(ctx context.Context, orderID, itemID uint, quantity int) (*models.OrderItem, error)
	DeleteItem(ctx context.Context, orderID, itemID uint) error
}

type OrderHandler struct {
	repo OrderProvider
}

func NewOrderHandler(r OrderProvider) *OrderHandler {
	return &OrderHandler{repo: r}
}

func toItem(i *models.OrderItem) ItemResponse {
	return ItemResponse{
		ID:            i.ID,
		ProductID:     i.ProductID,
		ProductName:   i.Product.Name,
		Quantity:      i.Quantity,
		PurchasePrice: i.PurchasePrice,
		Subtotal:      i.Subtotal(),
	}
}

// toResponse renders the order; items and total are included only when
// withItems is set.
func toResponse(o *models.Order, withItems bool) OrderResponse {
	resp := OrderResponse{
		ID:         o.ID,
		CustomerID: o.CustomerID,
		Customer:   o.Customer.DisplayName(),
		OrderDate:  o.OrderDate,
	}
	if withItems {
		resp.Items = make([]ItemResponse, len(o.Items))
		for i := range o.Items {
			resp.Items[i] = toItem(&o.Items[i])
		}
		total := o.Total()
		resp.Total = &total
	}
	return resp
}

func (h *OrderHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	var filters models.OrderFilters
	customerID, ok := api.QueryID(r, "customer")
	if !ok {
		api.WriteError(w, http.StatusBadRequest, "Invalid customer id")
		return
	}
	filters.CustomerID = customerID

	orders, total, err := h.repo.GetOrders(r.Context(), api.ParsePage(r), filters)
	if err != nil {
		api.WriteRepoError(w, r, err, "failed to fetch orders")
		return
	}

	response := ListResponse{Total: int(total), Orders: make([]OrderResponse, len(orders))}
	for i := range orders {
		response.Orders[i] = toResponse(&orders[i], false)
	}
	api.WriteJSON(w, http.StatusOK, response)
}

func (h *OrderHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(r, "id")
	if !ok {
		api.WriteError(w, http.StatusBadRequest, "Invalid order id")
		return
	}
	order, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		api.WriteRepoError(w, r, err, "failed to fetch order")
		return
	}
	api.WriteJSON(w, http.StatusOK, toResponse(order, true))
}

// HandleCreate places an order with all of its lines in one step.
func (h *OrderHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input OrderInput
	if err := api.DecodeJSON(r, &input); err != nil {
		api.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if input.CustomerID == 0 || len(input.Items) == 0 {
		api.WriteError(w, http.StatusBadRequest, "Missing customer_id or items")
		return
	}

	lines := make([]models.OrderLine, len(input.Items))
	for i, item := range input.Items {
		lines[i] = models.OrderLine{
			ProductID:     item.ProductID,
			Quantity:      item.Quantity,
			PurchasePrice: item.PurchasePrice,
		}
	}

	order, err := h.repo.PlaceOrder(r.Context(), input.CustomerID, lines)
	if err != nil {
		api.WriteRepoError(w, r, err, "Failed to place order")
		return
	}
	api.WriteJSON(w, http.StatusCreated, toResponse(order, true))
}

func (h *OrderHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(r, "id")
	if !ok {
		api.WriteError(w, http.StatusBadRequest, "Invalid order id")
		return
	}
	var input struct {
		CustomerID uint `json:"customer_id"`
	}
	if err := api.DecodeJSON(r, &input); err != nil {
		api.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	order, err := h.repo.ReassignOrder(r.Context(), id, input.CustomerID)
	if err != nil {
		api.WriteRepoError(w, r, err, "Failed to update order")
		return
	}
	api.WriteJSON(w, http.StatusOK, toResponse(order, true))
}

func (h *OrderHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(r, "id")
	if !ok {
		api.WriteError(w, http.StatusBadRequest, "Invalid order id")
		return
	}
	if err := h.repo.DeleteOrder(r.Context(), id); err != nil {
		api.WriteRepoError(w, r, err, "Failed to delete order")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleAddItem adds a product line to an existing order. It records the line
// only; stock is taken when the order is placed.
func (h *OrderHandler) HandleAddItem(w http.ResponseWriter, r *http.Request) {
	orderID, ok := api.PathID(r, "id")
	if !ok {
		api.WriteError(w, http.StatusBadRequest, "Invalid order id")
		return
	}
	var input LineInput
	if err := api.DecodeJSON(r, &input); err != nil {
		api.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if input.PurchasePrice == nil {
		api.WriteError(w, http.StatusBadRequest, "Missing purchase_price")
		return
	}

	item := models.NewOrderItem(orderID, input.ProductID, *input.PurchasePrice)
	if input.Quantity != nil {
		item.Quantity = *input.Quantity
	}
	if err := h.repo.AddItem(r.Context(), item); err != nil {
		api.WriteRepoError(w, r, err, "Failed to add order item")
		return
	}
	api.WriteJSON(w, http.StatusCreated, toItem(item))
}

func (h *OrderHandler) HandleUpdateItem(w http.ResponseWriter, r *http.Request) {
	orderID, ok := api.PathID(r, "id")
	itemID, ok2 := api.PathID(r, "itemID")
	if !ok || !ok2 {
		api.WriteError(w, http.StatusBadRequest, "Invalid order or item id")
		return
	}
	var input struct {
		Quantity int `json:"quantity"`
	}
	if err := api.DecodeJSON(r, &input); err != nil {
		api.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	item, err := h.repo.UpdateItemQuantity(r.Context(), orderID, itemID, input.Quantity)
	if err != nil {
		api.WriteRepoError(w, r, err, "Failed to update order item")
		return
	}
	api.WriteJSON(w, http.StatusOK, toItem(item))
}

func (h *OrderHandler) HandleDeleteItem(w http.ResponseWriter, r *http.Request) {
	orderID, ok := api.PathID(r, "id")
	itemID, ok2 := api.PathID(r, "itemID")
	if !ok || !ok2 {
		api.WriteError(w, http.StatusBadRequest, "Invalid order or item id")
		return
	}
	if err := h.repo.DeleteItem(r.Context(), orderID, itemID); err != nil {
		api.WriteRepoError(w, r, err, "Failed to delete order item")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
