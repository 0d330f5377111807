// Package app собирает хранилища для выбранного драйвера.
package app

import (
	"github.com/Spok95/car-factory/internal/api"
	"github.com/Spok95/car-factory/internal/domain/catalog"
	"github.com/Spok95/car-factory/internal/domain/laboratories"
	"github.com/Spok95/car-factory/internal/domain/products"
	"github.com/Spok95/car-factory/internal/domain/staff"
	"github.com/Spok95/car-factory/internal/domain/workshops"
	"github.com/Spok95/car-factory/internal/infra/memory"
	"github.com/jackc/pgx/v5/pgxpool"
)

func PostgresStores(pool *pgxpool.Pool) api.Stores {
	return api.Stores{
		Products:           products.NewProductRepo(pool),
		ProductCategories:  catalog.NewProductCategoryRepo(pool),
		PersonalCategories: catalog.NewPersonalCategoryRepo(pool),
		Engineers:          staff.NewEngineerRepo(pool),
		Workers:            staff.NewWorkerRepo(pool),
		Brigades:           workshops.NewBrigadeRepo(pool),
		Workshops:          workshops.NewWorkshopRepo(pool),
		Laboratories:       laboratories.NewLaboratoryRepo(pool),
		LabMembers:         staff.NewLabMemberRepo(pool),
		Tools:              laboratories.NewToolRepo(pool),
		Works:              products.NewWorkItemRepo(pool),
	}
}

// MemoryStores собирает хранилища в памяти с теми же внешними ключами и каскадами,
// что и в схеме postgres.
func MemoryStores() api.Stores {
	productCategories := memory.NewTable[catalog.ProductCategory, catalog.CreateProductCategory, catalog.UpdateProductCategory](
		"product_categories", catalog.CreateProductCategory.Build, catalog.UpdateProductCategory.Apply)
	personalCategories := memory.NewTable[catalog.PersonalCategory, catalog.CreatePersonalCategory, catalog.UpdatePersonalCategory](
		"personal_categories", catalog.CreatePersonalCategory.Build, catalog.UpdatePersonalCategory.Apply)
	labs := memory.NewTable[laboratories.Laboratory, laboratories.CreateLaboratory, laboratories.UpdateLaboratory](
		"test_laboratories", laboratories.CreateLaboratory.Build, laboratories.UpdateLaboratory.Apply)
	prods := memory.NewTable[products.Product, products.CreateProduct, products.UpdateProduct](
		"product", products.CreateProduct.Build, products.UpdateProduct.Apply)
	works := memory.NewTable[products.WorkItem, products.CreateWorkItem, products.UpdateWorkItem](
		"works_with_product", products.CreateWorkItem.Build, products.UpdateWorkItem.Apply)
	shops := memory.NewTable[workshops.Workshop, workshops.CreateWorkshop, workshops.UpdateWorkshop](
		"workshop", workshops.CreateWorkshop.Build, workshops.UpdateWorkshop.Apply)
	brigades := memory.NewTable[workshops.Brigade, workshops.CreateBrigade, workshops.UpdateBrigade](
		"brigades", workshops.CreateBrigade.Build, workshops.UpdateBrigade.Apply)
	engineers := memory.NewTable[staff.Person, staff.CreatePerson, staff.UpdatePerson](
		"engineer_personal", staff.CreatePerson.Build, staff.UpdatePerson.Apply)
	workers := memory.NewTable[staff.Person, staff.CreatePerson, staff.UpdatePerson](
		"personal_workers", staff.CreatePerson.Build, staff.UpdatePerson.Apply)
	members := memory.NewTable[staff.LabMember, staff.CreateLabMember, staff.UpdateLabMember](
		"personal_laboratories", staff.CreateLabMember.Build, staff.UpdateLabMember.Apply)
	tools := memory.NewTable[laboratories.Tool, laboratories.CreateTool, laboratories.UpdateTool](
		"tools", laboratories.CreateTool.Build, laboratories.UpdateTool.Apply)

	// внешние ключи
	prods.Check(func(p products.Product) error {
		if err := productCategories.Ref(p.ProductCategoryID); err != nil {
			return err
		}
		if p.LaboratoryID != nil {
			return labs.Ref(*p.LaboratoryID)
		}
		return nil
	})
	works.Check(func(w products.WorkItem) error { return prods.Ref(w.ProductID) })
	shops.Check(func(w workshops.Workshop) error { return productCategories.Ref(w.ProductCategoryID) })
	brigades.Check(func(b workshops.Brigade) error {
		if err := shops.Ref(b.WorkshopID); err != nil {
			return err
		}
		return prods.Ref(b.ProductID)
	})
	personRefs := func(p staff.Person) error {
		if err := personalCategories.Ref(p.PersonalCategoryID); err != nil {
			return err
		}
		return shops.Ref(p.WorkshopID)
	}
	engineers.Check(personRefs)
	workers.Check(personRefs)
	members.Check(func(m staff.LabMember) error { return labs.Ref(m.LaboratoryID) })
	tools.Check(func(t laboratories.Tool) error { return labs.Ref(t.LaboratoryID) })

	// каскадное удаление
	productCategories.OnDelete(func(c catalog.ProductCategory) {
		prods.DeleteWhere(func(p products.Product) bool { return p.ProductCategoryID == c.ID })
		shops.DeleteWhere(func(w workshops.Workshop) bool { return w.ProductCategoryID == c.ID })
	})
	prods.OnDelete(func(p products.Product) {
		works.DeleteWhere(func(w products.WorkItem) bool { return w.ProductID == p.ID })
		brigades.DeleteWhere(func(b workshops.Brigade) bool { return b.ProductID == p.ID })
	})
	shops.OnDelete(func(w workshops.Workshop) {
		byShop := func(p staff.Person) bool { return p.WorkshopID == w.ID }
		engineers.DeleteWhere(byShop)
		workers.DeleteWhere(byShop)
		brigades.DeleteWhere(func(b workshops.Brigade) bool { return b.WorkshopID == w.ID })
	})
	personalCategories.OnDelete(func(c catalog.PersonalCategory) {
		byCategory := func(p staff.Person) bool { return p.PersonalCategoryID == c.ID }
		engineers.DeleteWhere(byCategory)
		workers.DeleteWhere(byCategory)
	})
	labs.OnDelete(func(l laboratories.Laboratory) {
		tools.DeleteWhere(func(t laboratories.Tool) bool { return t.LaboratoryID == l.ID })
		members.DeleteWhere(func(m staff.LabMember) bool { return m.LaboratoryID == l.ID })
		prods.UpdateWhere(
			func(p products.Product) bool { return p.LaboratoryID != nil && *p.LaboratoryID == l.ID },
			func(p *products.Product) { p.LaboratoryID = nil },
		)
	})

	return api.Stores{
		Products:           prods,
		ProductCategories:  productCategories,
		PersonalCategories: personalCategories,
		Engineers:          engineers,
		Workers:            workers,
		Brigades:           brigades,
		Workshops:          shops,
		Laboratories:       labs,
		LabMembers:         members,
		Tools:              tools,
		Works:              works,
	}
}
