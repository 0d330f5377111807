// Package staff описывает персонал завода: инженеры и рабочие цехов, сотрудники
// испытательных лабораторий. У персонала нет уникального имени, строки
// различаются только по id.
package staff

import (
	"errors"
	"strings"
	"time"
)

// Person: сотрудник цеха. Инженеры (engineer_personal) и рабочие
// (personal_workers) хранятся в разных таблицах одинаковой структуры.
type Person struct {
	ID                 int64  `json:"id"`
	FullName           string `json:"full_name"`
	Birthday           string `json:"birthday"`
	Status             string `json:"status"`
	PersonalCategoryID int64  `json:"personal_category_id"`
	WorkshopID         int64  `json:"workshop_id"`
}

// LabMember: сотрудник испытательной лаборатории.
type LabMember struct {
	ID           int64  `json:"id"`
	FullName     string `json:"full_name"`
	Birthday     string `json:"birthday"`
	Status       string `json:"status"`
	LaboratoryID int64  `json:"laboratory_id"`
}

func (p Person) EntityID() int64    { return p.ID }
func (p Person) EntityName() string { return p.FullName }

func (m LabMember) EntityID() int64    { return m.ID }
func (m LabMember) EntityName() string { return m.FullName }

type CreatePerson struct {
	FullName           string `json:"full_name"`
	Birthday           string `json:"birthday"`
	Status             string `json:"status"`
	PersonalCategoryID int64  `json:"personal_category_id"`
	WorkshopID         int64  `json:"workshop_id"`
}

type UpdatePerson struct {
	ID                 int64   `json:"id"`
	FullName           *string `json:"full_name"`
	Birthday           *string `json:"birthday"`
	Status             *string `json:"status"`
	PersonalCategoryID *int64  `json:"personal_category_id"`
	WorkshopID         *int64  `json:"workshop_id"`
}

type CreateLabMember struct {
	FullName     string `json:"full_name"`
	Birthday     string `json:"birthday"`
	Status       string `json:"status"`
	LaboratoryID int64  `json:"laboratory_id"`
}

type UpdateLabMember struct {
	ID           int64   `json:"id"`
	FullName     *string `json:"full_name"`
	Birthday     *string `json:"birthday"`
	Status       *string `json:"status"`
	LaboratoryID *int64  `json:"laboratory_id"`
}

func required(field, v string) error {
	if strings.TrimSpace(v) == "" {
		return errors.New("поле " + field + " обязательно")
	}
	return nil
}

func optional(field string, v *string) error {
	if v == nil {
		return nil
	}
	return required(field, *v)
}

func positive(field string, id int64) error {
	if id <= 0 {
		return errors.New("поле " + field + " обязательно")
	}
	return nil
}

func optionalRef(field string, id *int64) error {
	if id == nil {
		return nil
	}
	return positive(field, *id)
}

func (c CreatePerson) EntityName() string { return c.FullName }

func (c CreatePerson) Validate() error {
	return errors.Join(
		required("full_name", c.FullName),
		required("birthday", c.Birthday),
		required("status", c.Status),
		positive("personal_category_id", c.PersonalCategoryID),
		positive("workshop_id", c.WorkshopID),
	)
}

func (c CreatePerson) Build(id int64, _ time.Time) Person {
	return Person{
		ID:                 id,
		FullName:           c.FullName,
		Birthday:           c.Birthday,
		Status:             c.Status,
		PersonalCategoryID: c.PersonalCategoryID,
		WorkshopID:         c.WorkshopID,
	}
}

func (u UpdatePerson) EntityID() int64 { return u.ID }

func (u UpdatePerson) Validate() error {
	return errors.Join(
		optional("full_name", u.FullName),
		optional("birthday", u.Birthday),
		optional("status", u.Status),
		optionalRef("personal_category_id", u.PersonalCategoryID),
		optionalRef("workshop_id", u.WorkshopID),
	)
}

func (u UpdatePerson) Apply(p *Person) {
	if u.FullName != nil {
		p.FullName = *u.FullName
	}
	if u.Birthday != nil {
		p.Birthday = *u.Birthday
	}
	if u.Status != nil {
		p.Status = *u.Status
	}
	if u.PersonalCategoryID != nil {
		p.PersonalCategoryID = *u.PersonalCategoryID
	}
	if u.WorkshopID != nil {
		p.WorkshopID = *u.WorkshopID
	}
}

func (c CreateLabMember) EntityName() string { return c.FullName }

func (c CreateLabMember) Validate() error {
	return errors.Join(
		required("full_name", c.FullName),
		required("birthday", c.Birthday),
		required("status", c.Status),
		positive("laboratory_id", c.LaboratoryID),
	)
}

func (c CreateLabMember) Build(id int64, _ time.Time) LabMember {
	return LabMember{
		ID:           id,
		FullName:     c.FullName,
		Birthday:     c.Birthday,
		Status:       c.Status,
		LaboratoryID: c.LaboratoryID,
	}
}

func (u UpdateLabMember) EntityID() int64 { return u.ID }

func (u UpdateLabMember) Validate() error {
	return errors.Join(
		optional("full_name", u.FullName),
		optional("birthday", u.Birthday),
		optional("status", u.Status),
		optionalRef("laboratory_id", u.LaboratoryID),
	)
}

func (u UpdateLabMember) Apply(m *LabMember) {
	if u.FullName != nil {
		m.FullName = *u.FullName
	}
	if u.Birthday != nil {
		m.Birthday = *u.Birthday
	}
	if u.Status != nil {
		m.Status = *u.Status
	}
	if u.LaboratoryID != nil {
		m.LaboratoryID = *u.LaboratoryID
	}
}
