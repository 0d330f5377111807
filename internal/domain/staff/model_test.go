package staff

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCreatePerson_ValidateReportsAllFields(t *testing.T) {
	err := CreatePerson{FullName: "Иванов И.И."}.Validate()
	if assert.Error(t, err) {
		for _, field := range []string{"birthday", "status", "personal_category_id", "workshop_id"} {
			assert.Contains(t, err.Error(), field)
		}
		assert.NotContains(t, err.Error(), "full_name")
	}

	ok := CreatePerson{FullName: "Иванов И.И.", Birthday: "1980-01-01", Status: "работает", PersonalCategoryID: 1, WorkshopID: 1}
	assert.NoError(t, ok.Validate())
}

func TestUpdatePerson(t *testing.T) {
	blank := ""
	assert.Error(t, UpdatePerson{Status: &blank}.Validate())
	assert.NoError(t, UpdatePerson{}.Validate())

	p := CreatePerson{FullName: "Иванов И.И.", Birthday: "1980-01-01", Status: "работает", PersonalCategoryID: 1, WorkshopID: 2}.
		Build(5, time.Time{})
	status := "уволен"
	UpdatePerson{Status: &status}.Apply(&p)

	assert.Equal(t, Person{
		ID: 5, FullName: "Иванов И.И.", Birthday: "1980-01-01", Status: "уволен",
		PersonalCategoryID: 1, WorkshopID: 2,
	}, p)
	assert.Equal(t, "Иванов И.И.", p.EntityName())
}

func TestLabMember(t *testing.T) {
	assert.Error(t, CreateLabMember{FullName: "Сидоров", Birthday: "1985", Status: "работает"}.Validate())

	m := CreateLabMember{FullName: "Сидоров", Birthday: "1985", Status: "работает", LaboratoryID: 1}.Build(1, time.Time{})
	lab := int64(3)
	UpdateLabMember{LaboratoryID: &lab}.Apply(&m)
	assert.Equal(t, int64(3), m.LaboratoryID)
	assert.Equal(t, "работает", m.Status)
}
