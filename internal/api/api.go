// Package api содержит HTTP-маршруты завода, по группе на каждую таблицу.
package api

import (
	"log/slog"
	"net/http"

	"github.com/Spok95/car-factory/internal/crud"
	"github.com/Spok95/car-factory/internal/domain/catalog"
	"github.com/Spok95/car-factory/internal/domain/laboratories"
	"github.com/Spok95/car-factory/internal/domain/products"
	"github.com/Spok95/car-factory/internal/domain/staff"
	"github.com/Spok95/car-factory/internal/domain/workshops"
	httpx "github.com/Spok95/car-factory/internal/infra/http"
	"github.com/gorilla/schema"
)

// Stores: хранилища всех таблиц (postgres или memory).
type Stores struct {
	Products           crud.Store[products.Product, products.CreateProduct, products.UpdateProduct]
	ProductCategories  crud.Store[catalog.ProductCategory, catalog.CreateProductCategory, catalog.UpdateProductCategory]
	PersonalCategories crud.Store[catalog.PersonalCategory, catalog.CreatePersonalCategory, catalog.UpdatePersonalCategory]
	Engineers          crud.Store[staff.Person, staff.CreatePerson, staff.UpdatePerson]
	Workers            crud.Store[staff.Person, staff.CreatePerson, staff.UpdatePerson]
	Brigades           crud.Store[workshops.Brigade, workshops.CreateBrigade, workshops.UpdateBrigade]
	Workshops          crud.Store[workshops.Workshop, workshops.CreateWorkshop, workshops.UpdateWorkshop]
	Laboratories       crud.Store[laboratories.Laboratory, laboratories.CreateLaboratory, laboratories.UpdateLaboratory]
	LabMembers         crud.Store[staff.LabMember, staff.CreateLabMember, staff.UpdateLabMember]
	Tools              crud.Store[laboratories.Tool, laboratories.CreateTool, laboratories.UpdateTool]
	Works              crud.Store[products.WorkItem, products.CreateWorkItem, products.UpdateWorkItem]
}

type API struct {
	log     *slog.Logger
	metrics *httpx.Metrics
	forms   *schema.Decoder
}

// New создаёт API; metrics может быть nil.
func New(log *slog.Logger, metrics *httpx.Metrics) *API {
	return &API{log: log, metrics: metrics, forms: newFormDecoder()}
}

// Register вешает все группы маршрутов на mux.
func (a *API) Register(mux *http.ServeMux, s Stores) {
	resource[products.Product, products.CreateProduct, products.UpdateProduct]{
		path:    "products",
		label:   crud.Label{Name: "Продукт"},
		store:   s.Products,
		byName:  true,
		columns: []string{"id", "name", "count", "process_start", "process_finish", "product_category_id", "laboratory_id"},
	}.register(a, mux)

	resource[catalog.ProductCategory, catalog.CreateProductCategory, catalog.UpdateProductCategory]{
		path:    "product_categories",
		label:   crud.Label{Name: "Категория", Feminine: true},
		store:   s.ProductCategories,
		columns: []string{"id", "name"},
	}.register(a, mux)

	resource[catalog.PersonalCategory, catalog.CreatePersonalCategory, catalog.UpdatePersonalCategory]{
		path: "personal_categories",
		label: crud.Label{
			Name:     "Категория персонала",
			Feminine: true,
			Empty:    "Ни одной категории персонала не существует",
		},
		store:   s.PersonalCategories,
		columns: []string{"id", "name"},
	}.register(a, mux)

	personColumns := []string{"id", "full_name", "birthday", "status", "personal_category_id", "workshop_id"}

	resource[staff.Person, staff.CreatePerson, staff.UpdatePerson]{
		path:      "engineer_personal",
		label:     crud.Label{Name: "Инженер", Empty: "Работников-инженеров не существует"},
		store:     s.Engineers,
		unguarded: true,
		columns:   personColumns,
	}.register(a, mux)

	resource[staff.Person, staff.CreatePerson, staff.UpdatePerson]{
		path:      "personal_workers",
		label:     crud.Label{Name: "Работник", Empty: "Список работников пуст"},
		store:     s.Workers,
		unguarded: true,
		columns:   personColumns,
	}.register(a, mux)

	resource[workshops.Brigade, workshops.CreateBrigade, workshops.UpdateBrigade]{
		path: "brigades",
		label: crud.Label{
			Name:         "Бригада",
			Feminine:     true,
			ConflictText: "Бригада с таким названием уже существует",
			Empty:        "Бригад не существует",
		},
		store:   s.Brigades,
		columns: []string{"id", "name", "workshop_id", "product_id"},
	}.register(a, mux)

	resource[workshops.Workshop, workshops.CreateWorkshop, workshops.UpdateWorkshop]{
		path: "workshops",
		label: crud.Label{
			Name:         "Цех",
			ConflictText: "Цех с таким названием уже существует",
			Empty:        "Список цехов пуст",
		},
		store:   s.Workshops,
		columns: []string{"id", "name", "product_category_id"},
	}.register(a, mux)

	resource[laboratories.Laboratory, laboratories.CreateLaboratory, laboratories.UpdateLaboratory]{
		path:    "laboratories",
		label:   crud.Label{Name: "Лаборатория", Feminine: true},
		store:   s.Laboratories,
		byName:  true,
		columns: []string{"id", "name", "test_date_start", "test_date_finish"},
	}.register(a, mux)

	resource[staff.LabMember, staff.CreateLabMember, staff.UpdateLabMember]{
		path:      "personal_laboratories",
		label:     crud.Label{Name: "Работник лаборатории", Empty: "Работников для лабораторий не существует"},
		store:     s.LabMembers,
		unguarded: true,
		columns:   []string{"id", "full_name", "birthday", "status", "laboratory_id"},
	}.register(a, mux)

	resource[laboratories.Tool, laboratories.CreateTool, laboratories.UpdateTool]{
		path:    "tools",
		label:   crud.Label{Name: "Инструмент", Empty: "Инструментов не существует"},
		store:   s.Tools,
		columns: []string{"id", "name", "laboratory_id"},
	}.register(a, mux)

	resource[products.WorkItem, products.CreateWorkItem, products.UpdateWorkItem]{
		path: "works_with_product",
		label: crud.Label{
			Name:         "Работа с продуктом",
			Feminine:     true,
			ConflictText: "Работа для продукта с таким названием уже существует",
			Empty:        "Работ для продуктов не существует",
		},
		store:   s.Works,
		columns: []string{"id", "name", "product_id"},
	}.register(a, mux)
}
