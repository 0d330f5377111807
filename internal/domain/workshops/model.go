package workshops

import (
	"errors"
	"strings"
	"time"
)

// Workshop: цех, выпускающий продукцию одной категории.
type Workshop struct {
	ID                int64  `json:"id"`
	Name              string `json:"name"`
	ProductCategoryID int64  `json:"product_category_id"`
}

// Brigade: бригада цеха, закреплённая за продуктом.
type Brigade struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	WorkshopID int64  `json:"workshop_id"`
	ProductID  int64  `json:"product_id"`
}

func (w Workshop) EntityID() int64    { return w.ID }
func (w Workshop) EntityName() string { return w.Name }

func (b Brigade) EntityID() int64    { return b.ID }
func (b Brigade) EntityName() string { return b.Name }

type CreateWorkshop struct {
	Name              string `json:"name"`
	ProductCategoryID int64  `json:"product_category_id"`
}

type UpdateWorkshop struct {
	ID                int64   `json:"id"`
	Name              *string `json:"name"`
	ProductCategoryID *int64  `json:"product_category_id"`
}

type CreateBrigade struct {
	Name       string `json:"name"`
	WorkshopID int64  `json:"workshop_id"`
	ProductID  int64  `json:"product_id"`
}

type UpdateBrigade struct {
	ID         int64   `json:"id"`
	Name       *string `json:"name"`
	WorkshopID *int64  `json:"workshop_id"`
	ProductID  *int64  `json:"product_id"`
}

var errNameRequired = errors.New("поле name обязательно")

func requireRef(field string, id int64) error {
	if id <= 0 {
		return errors.New("поле " + field + " обязательно")
	}
	return nil
}

func (c CreateWorkshop) EntityName() string { return c.Name }

func (c CreateWorkshop) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errNameRequired
	}
	return requireRef("product_category_id", c.ProductCategoryID)
}

func (c CreateWorkshop) Build(id int64, _ time.Time) Workshop {
	return Workshop{ID: id, Name: c.Name, ProductCategoryID: c.ProductCategoryID}
}

func (u UpdateWorkshop) EntityID() int64 { return u.ID }

func (u UpdateWorkshop) Validate() error {
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		return errNameRequired
	}
	if u.ProductCategoryID != nil {
		return requireRef("product_category_id", *u.ProductCategoryID)
	}
	return nil
}

func (u UpdateWorkshop) Apply(w *Workshop) {
	if u.Name != nil {
		w.Name = *u.Name
	}
	if u.ProductCategoryID != nil {
		w.ProductCategoryID = *u.ProductCategoryID
	}
}

func (c CreateBrigade) EntityName() string { return c.Name }

func (c CreateBrigade) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errNameRequired
	}
	if err := requireRef("workshop_id", c.WorkshopID); err != nil {
		return err
	}
	return requireRef("product_id", c.ProductID)
}

func (c CreateBrigade) Build(id int64, _ time.Time) Brigade {
	return Brigade{ID: id, Name: c.Name, WorkshopID: c.WorkshopID, ProductID: c.ProductID}
}

func (u UpdateBrigade) EntityID() int64 { return u.ID }

func (u UpdateBrigade) Validate() error {
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		return errNameRequired
	}
	if u.WorkshopID != nil {
		if err := requireRef("workshop_id", *u.WorkshopID); err != nil {
			return err
		}
	}
	if u.ProductID != nil {
		return requireRef("product_id", *u.ProductID)
	}
	return nil
}

func (u UpdateBrigade) Apply(b *Brigade) {
	if u.Name != nil {
		b.Name = *u.Name
	}
	if u.WorkshopID != nil {
		b.WorkshopID = *u.WorkshopID
	}
	if u.ProductID != nil {
		b.ProductID = *u.ProductID
	}
}
