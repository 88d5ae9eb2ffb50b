package models

import (
	"context"
	"slices"

	"gorm.io/gorm"
)

type CategoriesRepository struct {
	db *gorm.DB
}

func NewCategoriesRepository(db *gorm.DB) *CategoriesRepository {
	return &CategoriesRepository{db: db}
}

const ancestorsQuery = `
WITH RECURSIVE ancestors AS (
	SELECT id, parent_id FROM categories WHERE id = ?
	UNION
	SELECT c.id, c.parent_id FROM categories c JOIN ancestors a ON c.id = a.parent_id
)
SELECT id FROM ancestors`

const subtreeQuery = `
WITH RECURSIVE subtree AS (
	SELECT id, name, parent_id, 0 AS depth FROM categories WHERE id = ?
	UNION ALL
	SELECT c.id, c.name, c.parent_id, s.depth + 1
	FROM categories c JOIN subtree s ON c.parent_id = s.id
)
SELECT id, name, parent_id, depth FROM subtree ORDER BY depth, name, id`

func (r *CategoriesRepository) GetAllCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := r.db.WithContext(ctx).Order("name").Order("id").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *CategoriesRepository) GetByID(ctx context.Context, id uint) (*Category, error) {
	var category Category
	if err := r.db.WithContext(ctx).Preload("Parent").First(&category, id).Error; err != nil {
		return nil, translateError(err, ErrCategoryNotFound)
	}
	return &category, nil
}

func (r *CategoriesRepository) CreateCategory(ctx context.Context, category *Category) error {
	category.ID = 0
	if err := category.Validate(); err != nil {
		return err
	}
	return translateError(
		r.db.WithContext(ctx).Omit("Parent").Create(category).Error,
		ErrCategoryNotFound,
	)
}

// UpdateCategory renames and re-parents a category. Placing a category under
// itself or any of its descendants fails with ErrCategoryCycle.
func (r *CategoriesRepository) UpdateCategory(ctx context.Context, category *Category) error {
	if err := requireID("id", category.ID); err != nil {
		return err
	}
	if err := category.Validate(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if category.ParentID != nil {
			if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", categoryTreeLock).Error; err != nil {
				return err
			}
			if err := checkParent(tx, category.ID, *category.ParentID); err != nil {
				return err
			}
		}
		res := tx.Model(category).Select("name", "parent_id").Updates(category)
		if res.Error != nil {
			return translateError(res.Error, ErrCategoryNotFound)
		}
		if res.RowsAffected == 0 {
			return ErrCategoryNotFound
		}
		return nil
	})
}

// categoryTreeLock is the advisory lock key held while a category is re-parented.
const categoryTreeLock = 0x636174

// checkParent rejects parentID when it is id itself or lies below id.
func checkParent(tx *gorm.DB, id, parentID uint) error {
	if id == parentID {
		return ErrCategoryCycle
	}
	var ancestors []uint
	if err := tx.Raw(ancestorsQuery, parentID).Scan(&ancestors).Error; err != nil {
		return err
	}
	if len(ancestors) == 0 {
		return ErrReferenceNotFound
	}
	if slices.Contains(ancestors, id) {
		return ErrCategoryCycle
	}
	return nil
}

// DeleteCategory removes the category with its whole subtree and their products.
func (r *CategoriesRepository) DeleteCategory(ctx context.Context, id uint) error {
	return deleteRecord(r.db.WithContext(ctx), &Category{}, id, ErrCategoryNotFound)
}

// Subtree returns the category and every descendant, ordered by depth then name.
func (r *CategoriesRepository) Subtree(ctx context.Context, id uint) ([]CategoryNode, error) {
	var nodes []CategoryNode
	if err := r.db.WithContext(ctx).Raw(subtreeQuery, id).Scan(&nodes).Error; err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, ErrCategoryNotFound
	}
	return nodes, nil
}
