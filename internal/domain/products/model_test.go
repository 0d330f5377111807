package products

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func TestCreateProduct_Validate(t *testing.T) {
	ok := CreateProduct{Name: "Engine-X", ProductCategoryID: 1}
	assert.NoError(t, ok.Validate())

	assert.ErrorIs(t, CreateProduct{Name: " ", ProductCategoryID: 1}.Validate(), errNameRequired)
	assert.ErrorIs(t, CreateProduct{Name: "A"}.Validate(), errCategoryRequired)
	assert.ErrorIs(t, CreateProduct{Name: "A", ProductCategoryID: 1, Count: ptr(int32(-1))}.Validate(), errNegativeCount)
	assert.ErrorIs(t, CreateProduct{Name: "A", ProductCategoryID: 1, LaboratoryID: ptr(int64(0))}.Validate(), errBadLaboratory)
}

func TestCreateProduct_Build(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	p := CreateProduct{Name: "Engine-X", Count: ptr(int32(10)), ProductCategoryID: 2}.Build(7, now)

	assert.Equal(t, int64(7), p.ID)
	assert.Equal(t, now, p.ProcessStart)
	assert.Nil(t, p.ProcessFinish)
	assert.Nil(t, p.LaboratoryID)
	assert.Equal(t, int32(10), *p.Count)
}

func TestUpdateProduct_Apply(t *testing.T) {
	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	p := Product{ID: 1, Name: "Engine-X", Count: ptr(int32(10)), ProcessStart: start, ProductCategoryID: 2, LaboratoryID: ptr(int64(3))}

	UpdateProduct{Count: ptr(int32(12))}.Apply(&p)
	assert.Equal(t, int32(12), *p.Count)
	assert.Equal(t, "Engine-X", p.Name)
	assert.Equal(t, start, p.ProcessStart)
	assert.Equal(t, int64(3), *p.LaboratoryID)

	finish := start.Add(48 * time.Hour)
	UpdateProduct{Name: ptr("Engine-Z"), ProcessFinish: &finish}.Apply(&p)
	assert.Equal(t, "Engine-Z", p.Name)
	assert.Equal(t, finish, *p.ProcessFinish)
	assert.Equal(t, int32(12), *p.Count)
}

func TestWorkItem_ValidateApply(t *testing.T) {
	assert.ErrorIs(t, CreateWorkItem{Name: "Сборка"}.Validate(), errProductRequired)
	assert.NoError(t, CreateWorkItem{Name: "Сборка", ProductID: 1}.Validate())
	assert.ErrorIs(t, UpdateWorkItem{Name: ptr("")}.Validate(), errNameRequired)

	w := CreateWorkItem{Name: "Сборка", ProductID: 1}.Build(4, time.Time{})
	UpdateWorkItem{ProductID: ptr(int64(2))}.Apply(&w)
	assert.Equal(t, WorkItem{ID: 4, Name: "Сборка", ProductID: 2}, w)
}
