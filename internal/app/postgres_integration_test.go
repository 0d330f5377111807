//go:build integration

package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/Spok95/car-factory/internal/app"
	"github.com/Spok95/car-factory/internal/domain/catalog"
	"github.com/Spok95/car-factory/internal/domain/laboratories"
	"github.com/Spok95/car-factory/internal/domain/products"
	"github.com/Spok95/car-factory/internal/domain/staff"
	"github.com/Spok95/car-factory/internal/domain/workshops"
	"github.com/Spok95/car-factory/internal/infra/db/dbtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestPostgresStores(t *testing.T) {
	ctx := context.Background()
	s := app.PostgresStores(dbtest.Pool(t))

	cat, err := s.ProductCategories.Create(ctx, catalog.CreateProductCategory{Name: "Двигатели"})
	require.NoError(t, err)
	lab, err := s.Laboratories.Create(ctx, laboratories.CreateLaboratory{Name: "Стенд", TestDateFinish: ptr("после сертификации")})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), lab.TestDateStart, time.Minute)

	t.Run("round trip with defaults", func(t *testing.T) {
		p, err := s.Products.Create(ctx, products.CreateProduct{
			Name: "Engine-X", Count: ptr(int32(10)), ProductCategoryID: cat.ID, LaboratoryID: &lab.ID,
		})
		require.NoError(t, err)
		assert.NotZero(t, p.ID)
		assert.False(t, p.ProcessStart.IsZero())
		assert.Nil(t, p.ProcessFinish)

		got, err := s.Products.Get(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, p.Name, got.Name)
		assert.Equal(t, int32(10), *got.Count)
		assert.Equal(t, lab.ID, *got.LaboratoryID)

		missing, err := s.Products.Get(ctx, 9999)
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("partial update keeps omitted fields", func(t *testing.T) {
		p, err := s.Products.Create(ctx, products.CreateProduct{Name: "Engine-Y", Count: ptr(int32(1)), ProductCategoryID: cat.ID})
		require.NoError(t, err)

		upd, err := s.Products.Update(ctx, p.ID, products.UpdateProduct{Count: ptr(int32(12))})
		require.NoError(t, err)
		assert.Equal(t, int32(12), *upd.Count)
		assert.Equal(t, "Engine-Y", upd.Name)
		assert.True(t, p.ProcessStart.Equal(upd.ProcessStart))

		none, err := s.Products.Update(ctx, 9999, products.UpdateProduct{Count: ptr(int32(1))})
		require.NoError(t, err)
		assert.Nil(t, none)

		c, err := s.ProductCategories.Update(ctx, cat.ID, catalog.UpdateProductCategory{})
		require.NoError(t, err)
		assert.Equal(t, "Двигатели", c.Name)
	})

	t.Run("laboratory finish is free text", func(t *testing.T) {
		upd, err := s.Laboratories.Update(ctx, lab.ID, laboratories.UpdateLaboratory{TestDateFinish: ptr("2025-12-31")})
		require.NoError(t, err)
		assert.Equal(t, "2025-12-31", *upd.TestDateFinish)
		assert.Equal(t, "Стенд", upd.Name)
	})

	t.Run("foreign keys are enforced", func(t *testing.T) {
		_, err := s.Tools.Create(ctx, laboratories.CreateTool{Name: "Динамометр", LaboratoryID: 9999})
		assert.Error(t, err)
	})

	t.Run("cascades", func(t *testing.T) {
		p, err := s.Products.Create(ctx, products.CreateProduct{Name: "Body-1", ProductCategoryID: cat.ID, LaboratoryID: &lab.ID})
		require.NoError(t, err)
		_, err = s.Works.Create(ctx, products.CreateWorkItem{Name: "Сборка", ProductID: p.ID})
		require.NoError(t, err)

		shop, err := s.Workshops.Create(ctx, workshops.CreateWorkshop{Name: "Цех 1", ProductCategoryID: cat.ID})
		require.NoError(t, err)
		_, err = s.Brigades.Create(ctx, workshops.CreateBrigade{Name: "Бригада 1", WorkshopID: shop.ID, ProductID: p.ID})
		require.NoError(t, err)

		pc, err := s.PersonalCategories.Create(ctx, catalog.CreatePersonalCategory{Name: "Сборщики"})
		require.NoError(t, err)
		_, err = s.Workers.Create(ctx, staff.CreatePerson{
			FullName: "Петров П.П.", Birthday: "1990-05-05", Status: "работает",
			PersonalCategoryID: pc.ID, WorkshopID: shop.ID,
		})
		require.NoError(t, err)
		_, err = s.LabMembers.Create(ctx, staff.CreateLabMember{
			FullName: "Сидоров С.С.", Birthday: "1985-03-03", Status: "работает", LaboratoryID: lab.ID,
		})
		require.NoError(t, err)

		require.NoError(t, s.Products.Delete(ctx, p.ID))
		works, err := s.Works.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, works)
		brigades, err := s.Brigades.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, brigades)

		require.NoError(t, s.Workshops.Delete(ctx, shop.ID))
		workers, err := s.Workers.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, workers)

		require.NoError(t, s.Laboratories.Delete(ctx, lab.ID))
		members, err := s.LabMembers.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, members)

		all, err := s.Products.List(ctx)
		require.NoError(t, err)
		require.NotEmpty(t, all)
		for _, p := range all {
			assert.Nil(t, p.LaboratoryID, p.Name)
		}
	})
}
