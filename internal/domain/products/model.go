package products

import (
	"errors"
	"strings"
	"time"
)

type Product struct {
	ID                int64      `json:"id"`
	Name              string     `json:"name"`
	Count             *int32     `json:"count"`
	ProcessStart      time.Time  `json:"process_start"`
	ProcessFinish     *time.Time `json:"process_finish"`
	ProductCategoryID int64      `json:"product_category_id"`
	LaboratoryID      *int64     `json:"laboratory_id"` // лаборатория, где продукт проходит испытания
}

// WorkItem: работа, выполняемая над продуктом (таблица works_with_product).
type WorkItem struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ProductID int64  `json:"product_id"`
}

func (p Product) EntityID() int64    { return p.ID }
func (p Product) EntityName() string { return p.Name }

func (w WorkItem) EntityID() int64    { return w.ID }
func (w WorkItem) EntityName() string { return w.Name }

type CreateProduct struct {
	Name              string `json:"name"`
	Count             *int32 `json:"count"`
	ProductCategoryID int64  `json:"product_category_id"`
	LaboratoryID      *int64 `json:"laboratory_id"`
}

type UpdateProduct struct {
	ID                int64      `json:"id"`
	Name              *string    `json:"name"`
	Count             *int32     `json:"count"`
	ProcessStart      *time.Time `json:"process_start"`
	ProcessFinish     *time.Time `json:"process_finish"`
	ProductCategoryID *int64     `json:"product_category_id"`
	LaboratoryID      *int64     `json:"laboratory_id"`
}

type CreateWorkItem struct {
	Name      string `json:"name"`
	ProductID int64  `json:"product_id"`
}

type UpdateWorkItem struct {
	ID        int64   `json:"id"`
	Name      *string `json:"name"`
	ProductID *int64  `json:"product_id"`
}

var (
	errNameRequired     = errors.New("поле name обязательно")
	errCategoryRequired = errors.New("поле product_category_id обязательно")
	errProductRequired  = errors.New("поле product_id обязательно")
	errBadLaboratory    = errors.New("laboratory_id должен быть положительным")
	errNegativeCount    = errors.New("count не может быть отрицательным")
)

func (c CreateProduct) EntityName() string { return c.Name }

func (c CreateProduct) Validate() error {
	switch {
	case strings.TrimSpace(c.Name) == "":
		return errNameRequired
	case c.ProductCategoryID <= 0:
		return errCategoryRequired
	case c.Count != nil && *c.Count < 0:
		return errNegativeCount
	case c.LaboratoryID != nil && *c.LaboratoryID <= 0:
		return errBadLaboratory
	}
	return nil
}

// Build собирает строку с серверными значениями по умолчанию (process_start = now).
func (c CreateProduct) Build(id int64, now time.Time) Product {
	return Product{
		ID:                id,
		Name:              c.Name,
		Count:             c.Count,
		ProcessStart:      now,
		ProductCategoryID: c.ProductCategoryID,
		LaboratoryID:      c.LaboratoryID,
	}
}

func (u UpdateProduct) EntityID() int64 { return u.ID }

func (u UpdateProduct) Validate() error {
	switch {
	case u.Name != nil && strings.TrimSpace(*u.Name) == "":
		return errNameRequired
	case u.ProductCategoryID != nil && *u.ProductCategoryID <= 0:
		return errCategoryRequired
	case u.Count != nil && *u.Count < 0:
		return errNegativeCount
	case u.LaboratoryID != nil && *u.LaboratoryID <= 0:
		return errBadLaboratory
	}
	return nil
}

// Apply переносит в p только переданные поля.
func (u UpdateProduct) Apply(p *Product) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Count != nil {
		p.Count = u.Count
	}
	if u.ProcessStart != nil {
		p.ProcessStart = *u.ProcessStart
	}
	if u.ProcessFinish != nil {
		p.ProcessFinish = u.ProcessFinish
	}
	if u.ProductCategoryID != nil {
		p.ProductCategoryID = *u.ProductCategoryID
	}
	if u.LaboratoryID != nil {
		p.LaboratoryID = u.LaboratoryID
	}
}

func (c CreateWorkItem) EntityName() string { return c.Name }

func (c CreateWorkItem) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errNameRequired
	}
	if c.ProductID <= 0 {
		return errProductRequired
	}
	return nil
}

func (c CreateWorkItem) Build(id int64, _ time.Time) WorkItem {
	return WorkItem{ID: id, Name: c.Name, ProductID: c.ProductID}
}

func (u UpdateWorkItem) EntityID() int64 { return u.ID }

func (u UpdateWorkItem) Validate() error {
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		return errNameRequired
	}
	if u.ProductID != nil && *u.ProductID <= 0 {
		return errProductRequired
	}
	return nil
}

func (u UpdateWorkItem) Apply(w *WorkItem) {
	if u.Name != nil {
		w.Name = *u.Name
	}
	if u.ProductID != nil {
		w.ProductID = *u.ProductID
	}
}
