package laboratories

import (
	"errors"
	"strings"
	"time"
)

// Laboratory: испытательная лаборатория (таблица test_laboratories).
type Laboratory struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	TestDateStart time.Time `json:"test_date_start"`
	// Окончание испытаний хранится свободным текстом ("после сертификации" и т.п.).
	TestDateFinish *string `json:"test_date_finish"`
}

type Tool struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	LaboratoryID int64  `json:"laboratory_id"`
}

func (l Laboratory) EntityID() int64    { return l.ID }
func (l Laboratory) EntityName() string { return l.Name }

func (t Tool) EntityID() int64    { return t.ID }
func (t Tool) EntityName() string { return t.Name }

type CreateLaboratory struct {
	Name           string  `json:"name"`
	TestDateFinish *string `json:"test_date_finish"`
}

type UpdateLaboratory struct {
	ID             int64      `json:"id"`
	Name           *string    `json:"name"`
	TestDateStart  *time.Time `json:"test_date_start"`
	TestDateFinish *string    `json:"test_date_finish"`
}

type CreateTool struct {
	Name         string `json:"name"`
	LaboratoryID int64  `json:"laboratory_id"`
}

type UpdateTool struct {
	ID           int64   `json:"id"`
	Name         *string `json:"name"`
	LaboratoryID *int64  `json:"laboratory_id"`
}

var (
	errNameRequired       = errors.New("поле name обязательно")
	errLaboratoryRequired = errors.New("поле laboratory_id обязательно")
)

func (c CreateLaboratory) EntityName() string { return c.Name }

func (c CreateLaboratory) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errNameRequired
	}
	return nil
}

func (c CreateLaboratory) Build(id int64, now time.Time) Laboratory {
	return Laboratory{ID: id, Name: c.Name, TestDateStart: now, TestDateFinish: c.TestDateFinish}
}

func (u UpdateLaboratory) EntityID() int64 { return u.ID }

func (u UpdateLaboratory) Validate() error {
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		return errNameRequired
	}
	return nil
}

func (u UpdateLaboratory) Apply(l *Laboratory) {
	if u.Name != nil {
		l.Name = *u.Name
	}
	if u.TestDateStart != nil {
		l.TestDateStart = *u.TestDateStart
	}
	if u.TestDateFinish != nil {
		l.TestDateFinish = u.TestDateFinish
	}
}

func (c CreateTool) EntityName() string { return c.Name }

func (c CreateTool) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errNameRequired
	}
	if c.LaboratoryID <= 0 {
		return errLaboratoryRequired
	}
	return nil
}

func (c CreateTool) Build(id int64, _ time.Time) Tool {
	return Tool{ID: id, Name: c.Name, LaboratoryID: c.LaboratoryID}
}

func (u UpdateTool) EntityID() int64 { return u.ID }

func (u UpdateTool) Validate() error {
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		return errNameRequired
	}
	if u.LaboratoryID != nil && *u.LaboratoryID <= 0 {
		return errLaboratoryRequired
	}
	return nil
}

func (u UpdateTool) Apply(t *Tool) {
	if u.Name != nil {
		t.Name = *u.Name
	}
	if u.LaboratoryID != nil {
		t.LaboratoryID = *u.LaboratoryID
	}
}
