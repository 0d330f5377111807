package catalog

import (
	"errors"
	"strings"
	"time"
)

// ProductCategory: категория продукции (двигатели, кузова, ...).
type ProductCategory struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// PersonalCategory: категория персонала.
type PersonalCategory struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func (c ProductCategory) EntityID() int64    { return c.ID }
func (c ProductCategory) EntityName() string { return c.Name }

func (c PersonalCategory) EntityID() int64    { return c.ID }
func (c PersonalCategory) EntityName() string { return c.Name }

type CreateProductCategory struct {
	Name string `json:"name"`
}

type CreatePersonalCategory struct {
	Name string `json:"name"`
}

type UpdateProductCategory struct {
	ID   int64   `json:"id"`
	Name *string `json:"name"`
}

type UpdatePersonalCategory struct {
	ID   int64   `json:"id"`
	Name *string `json:"name"`
}

var errNameRequired = errors.New("поле name обязательно")

func validName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errNameRequired
	}
	return nil
}

func (c CreateProductCategory) EntityName() string { return c.Name }
func (c CreateProductCategory) Validate() error    { return validName(c.Name) }

func (c CreateProductCategory) Build(id int64, _ time.Time) ProductCategory {
	return ProductCategory{ID: id, Name: c.Name}
}

func (c CreatePersonalCategory) EntityName() string { return c.Name }
func (c CreatePersonalCategory) Validate() error    { return validName(c.Name) }

func (c CreatePersonalCategory) Build(id int64, _ time.Time) PersonalCategory {
	return PersonalCategory{ID: id, Name: c.Name}
}

func (u UpdateProductCategory) EntityID() int64 { return u.ID }

func (u UpdateProductCategory) Validate() error {
	if u.Name != nil {
		return validName(*u.Name)
	}
	return nil
}

func (u UpdateProductCategory) Apply(c *ProductCategory) {
	if u.Name != nil {
		c.Name = *u.Name
	}
}

func (u UpdatePersonalCategory) EntityID() int64 { return u.ID }

func (u UpdatePersonalCategory) Validate() error {
	if u.Name != nil {
		return validName(*u.Name)
	}
	return nil
}

func (u UpdatePersonalCategory) Apply(c *PersonalCategory) {
	if u.Name != nil {
		c.Name = *u.Name
	}
}
