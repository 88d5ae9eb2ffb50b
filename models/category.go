package models

// Category represents a product category.
// Categories form a tree through ParentID; removing a category removes its
// whole subtree together with the products filed under it.
type Category struct {
	ID       uint      `gorm:"primaryKey"`
	Name     string    `gorm:"type:varchar(255);not null"`
	ParentID *uint     `gorm:"index"`
	Parent   *Category `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE"`
}

func (c *Category) TableName() string {
	return "categories"
}

func (c *Category) String() string {
	return c.Name
}

func (c *Category) Validate() error {
	if err := requireText("name", c.Name, CategoryNameLength); err != nil {
		return err
	}
	if c.ParentID != nil && c.ID != 0 && *c.ParentID == c.ID {
		return ErrCategoryCycle
	}
	return nil
}

// CategoryNode is a category annotated with its depth below a subtree root.
type CategoryNode struct {
	ID       uint
	Name     string
	ParentID *uint
	Depth    int
}
