package categories

import (
	"context"
	"net/http"

	"github.com/mytheresa/warehouse-service/app/api"
	"github.com/mytheresa/warehouse-service/models"
)

type CategoryResponse struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	ParentID *uint  `json:"parent_id"`
}

type NodeResponse struct {
	CategoryResponse
	Depth int `json:"depth"`
}

type CategoryInput struct {
	Name     string `json:"name"`
	ParentID *uint  `json:"parent_id"`
}

type CategoryProvider interface {
	GetAllCategories(ctx context.Context) ([]models.Category, error)
	GetByID(ctx context.Context, id uint) (*models.Category, error)
	CreateCategory(ctx context.Context, category *models.Category) error
	UpdateCategory(ctx context.Context, category *models.Category) error
	DeleteCategory(ctx context.Context, id uint) error
	Subtree(ctx context.Context, id uint) ([]models.CategoryNode, error)
}

type CategoryHandler struct {
	repo CategoryProvider
}

func NewCategoryHandler(r CategoryProvider) *CategoryHandler {
	return &CategoryHandler{repo: r}
}

func toResponse(c *models.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name, ParentID: c.ParentID}
}

func (h *CategoryHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	categories, err := h.repo.GetAllCategories(r.Context())
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "failed to fetch categories")
		return
	}

	response := make([]CategoryResponse, len(categories))
	for i := range categories {
		response[i] = toResponse(&categories[i])
	}
	api.WriteJSON(w, http.StatusOK, response)
}

func (h *CategoryHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(r, "id")
	if !ok {
		api.WriteError(w, http.StatusBadRequest, "Invalid category id")
		return
	}
	category, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		api.WriteRepoError(w, r, err, "failed to fetch category")
		return
	}
	api.WriteJSON(w, http.StatusOK, toResponse(category))
}

func (h *CategoryHandler) HandleTree(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(r, "id")
	if !ok {
		api.WriteError(w, http.StatusBadRequest, "Invalid category id")
		return
	}
	nodes, err := h.repo.Subtree(r.Context(), id)
	if err != nil {
		api.WriteRepoError(w, r, err, "failed to fetch category tree")
		return
	}

	response := make([]NodeResponse, len(nodes))
	for i, n := range nodes {
		response[i] = NodeResponse{
			CategoryResponse: CategoryResponse{ID: n.ID, Name: n.Name, ParentID: n.ParentID},
			Depth:            n.Depth,
		}
	}
	api.WriteJSON(w, http.StatusOK, response)
}

func (h *CategoryHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input CategoryInput
	if err := api.DecodeJSON(r, &input); err != nil {
		api.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if input.Name == "" {
		api.WriteError(w, http.StatusBadRequest, "Missing name")
		return
	}

	category := &models.Category{
		Name:     input.Name,
		ParentID: input.ParentID,
	}

	if err := h.repo.CreateCategory(r.Context(), category); err != nil {
		api.WriteRepoError(w, r, err, "Failed to create category")
		return
	}

	api.WriteJSON(w, http.StatusCreated, toResponse(category))
}

func (h *CategoryHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(r, "id")
	if !ok {
		api.WriteError(w, http.StatusBadRequest, "Invalid category id")
		return
	}
	var input CategoryInput
	if err := api.DecodeJSON(r, &input); err != nil {
		api.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	category := &models.Category{ID: id, Name: input.Name, ParentID: input.ParentID}
	if err := h.repo.UpdateCategory(r.Context(), category); err != nil {
		api.WriteRepoError(w, r, err, "Failed to update category")
		return
	}
	api.WriteJSON(w, http.StatusOK, toResponse(category))
}

func (h *CategoryHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(r, "id")
	if !ok {
		api.WriteError(w, http.StatusBadRequest, "Invalid category id")
		return
	}
	if err := h.repo.DeleteCategory(r.Context(), id); err != nil {
		api.WriteRepoError(w, r, err, "Failed to delete category")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
