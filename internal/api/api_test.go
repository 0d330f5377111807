package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/Spok95/car-factory/internal/api"
	"github.com/Spok95/car-factory/internal/app"
	httpx "github.com/Spok95/car-factory/internal/infra/http"
	"github.com/Spok95/car-factory/internal/infra/logger"
	"github.com/Spok95/car-factory/internal/infra/xlsx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type client struct {
	t *testing.T
	h http.Handler
}

func newClient(t *testing.T) *client {
	t.Helper()
	m := httpx.NewMetrics()
	mux := httpx.NewMux(m)
	api.New(logger.Discard(), m).Register(mux, app.MemoryStores())
	return &client{t: t, h: httpx.Wrap(mux, httpx.Options{Log: logger.Discard(), Metrics: m})}
}

func (c *client) do(method, path, body string) *httptest.ResponseRecorder {
	c.t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	c.h.ServeHTTP(rec, req)
	return rec
}

func (c *client) form(path string, values url.Values) *httptest.ResponseRecorder {
	c.t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	c.h.ServeHTTP(rec, req)
	return rec
}

// must выполняет запрос, ожидая 200, и разбирает ответ.
func (c *client) must(method, path, body string) map[string]any {
	c.t.Helper()
	rec := c.do(method, path, body)
	require.Equal(c.t, http.StatusOK, rec.Code, rec.Body.String())
	var out map[string]any
	require.NoError(c.t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func detail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	s, _ := body["detail"].(string)
	return s
}

func TestProductLifecycle(t *testing.T) {
	c := newClient(t)
	c.must(http.MethodPost, "/product_categories/", `{"name":"Двигатели"}`)

	p := c.must(http.MethodPost, "/products/", `{"name":"Engine-X","count":10,"product_category_id":1}`)
	assert.Equal(t, float64(1), p["id"])
	assert.Equal(t, float64(10), p["count"])
	assert.Nil(t, p["process_finish"])
	assert.NotEmpty(t, p["process_start"])

	dup := c.do(http.MethodPost, "/products/", `{"name":"Engine-X","count":3,"product_category_id":1}`)
	assert.Equal(t, http.StatusBadRequest, dup.Code)
	assert.Equal(t, "Продукт уже существует", detail(t, dup))

	upd := c.do(http.MethodPatch, "/products/1", `{"id":1,"count":12}`)
	require.Equal(t, http.StatusOK, upd.Code)
	assert.JSONEq(t, `{"detail":"Продукт успешно изменен"}`, upd.Body.String())

	got := c.must(http.MethodGet, "/products/Engine-X", "")
	assert.Equal(t, float64(12), got["count"])
	assert.Equal(t, "Engine-X", got["name"])
	assert.Equal(t, p["process_start"], got["process_start"])

	missing := c.do(http.MethodDelete, "/products/99", "")
	assert.Equal(t, http.StatusNotFound, missing.Code)
	assert.Equal(t, "Продукт не найден", detail(t, missing))

	del := c.do(http.MethodDelete, "/products/1", "")
	require.Equal(t, http.StatusOK, del.Code)
	assert.Equal(t, "Продукт успешно удален", detail(t, del))

	assert.Equal(t, http.StatusNotFound, c.do(http.MethodGet, "/products/1", "").Code)
}

func TestUpdateUnknownIDLeavesRowsUntouched(t *testing.T) {
	c := newClient(t)
	c.must(http.MethodPost, "/product_categories", `{"name":"Кузова"}`)

	rec := c.do(http.MethodPatch, "/product_categories/5", `{"name":"Шасси"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Категория не найдена", detail(t, rec))

	list := c.do(http.MethodGet, "/product_categories", "")
	assert.JSONEq(t, `[{"id":1,"name":"Кузова"}]`, list.Body.String())
}

func TestListEmpty(t *testing.T) {
	c := newClient(t)

	rec := c.do(http.MethodGet, "/products/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	cases := map[string]string{
		"/personal_categories/":   "Ни одной категории персонала не существует",
		"/engineer_personal/":     "Работников-инженеров не существует",
		"/personal_workers/":      "Список работников пуст",
		"/brigades/":              "Бригад не существует",
		"/workshops/":             "Список цехов пуст",
		"/personal_laboratories/": "Работников для лабораторий не существует",
		"/tools/":                 "Инструментов не существует",
		"/works_with_product/":    "Работ для продуктов не существует",
	}
	for path, want := range cases {
		rec := c.do(http.MethodGet, path, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
		assert.Equal(t, want, detail(t, rec), path)
	}
}

func TestCascadeProductToWorks(t *testing.T) {
	c := newClient(t)
	c.must(http.MethodPost, "/product_categories/", `{"name":"Двигатели"}`)
	c.must(http.MethodPost, "/products/", `{"name":"Engine-X","product_category_id":1}`)
	c.must(http.MethodPost, "/products/", `{"name":"Engine-Y","product_category_id":1}`)
	c.must(http.MethodPost, "/works_with_product/", `{"name":"Сборка","product_id":1}`)
	c.must(http.MethodPost, "/works_with_product/", `{"name":"Покраска","product_id":2}`)

	dup := c.do(http.MethodPost, "/works_with_product/", `{"name":"Сборка","product_id":2}`)
	assert.Equal(t, http.StatusBadRequest, dup.Code)
	assert.Equal(t, "Работа для продукта с таким названием уже существует", detail(t, dup))

	c.must(http.MethodDelete, "/products/1", "")

	rec := c.do(http.MethodGet, "/works_with_product/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"id":2,"name":"Покраска","product_id":2}]`, rec.Body.String())
}

func TestLaboratoryDeleteClearsProductReference(t *testing.T) {
	c := newClient(t)
	c.must(http.MethodPost, "/product_categories/", `{"name":"Двигатели"}`)
	lab := c.must(http.MethodPost, "/laboratories/", `{"name":"Стенд","test_date_finish":"после сертификации"}`)
	assert.Equal(t, "после сертификации", lab["test_date_finish"])
	assert.NotEmpty(t, lab["test_date_start"])

	c.must(http.MethodPost, "/products/", `{"name":"Engine-X","product_category_id":1,"laboratory_id":1}`)
	c.must(http.MethodPost, "/tools/", `{"name":"Динамометр","laboratory_id":1}`)

	byName := c.must(http.MethodGet, "/laboratories/"+url.PathEscape("Стенд"), "")
	assert.Equal(t, float64(1), byName["id"])

	del := c.do(http.MethodDelete, "/laboratories/1", "")
	require.Equal(t, http.StatusOK, del.Code)
	assert.Equal(t, "Лаборатория успешно удалена", detail(t, del))

	p := c.must(http.MethodGet, "/products/1", "")
	assert.Nil(t, p["laboratory_id"])
	assert.Equal(t, http.StatusBadRequest, c.do(http.MethodGet, "/tools/", "").Code)
}

func TestPersonnelCreateIsUnguarded(t *testing.T) {
	c := newClient(t)
	c.must(http.MethodPost, "/product_categories/", `{"name":"Двигатели"}`)
	c.must(http.MethodPost, "/personal_categories/", `{"name":"Сборщики"}`)
	c.must(http.MethodPost, "/workshops/", `{"name":"Цех 1","product_category_id":1}`)

	body := `{"full_name":"Иванов И.И.","birthday":"1980-01-01","status":"работает","personal_category_id":1,"workshop_id":1}`
	first := c.must(http.MethodPost, "/engineer_personal/", body)
	second := c.must(http.MethodPost, "/engineer_personal/", body)
	assert.NotEqual(t, first["id"], second["id"])

	upd := c.do(http.MethodPatch, "/engineer_personal/2", `{"status":"уволен"}`)
	require.Equal(t, http.StatusOK, upd.Code)
	assert.Equal(t, "Инженер успешно изменен", detail(t, upd))

	got := c.must(http.MethodGet, "/engineer_personal/2", "")
	assert.Equal(t, "уволен", got["status"])
	assert.Equal(t, "Иванов И.И.", got["full_name"])

	// удаление цеха уносит его персонал
	c.must(http.MethodDelete, "/workshops/1", "")
	assert.Equal(t, http.StatusBadRequest, c.do(http.MethodGet, "/engineer_personal/", "").Code)
}

func TestValidation(t *testing.T) {
	c := newClient(t)
	c.must(http.MethodPost, "/product_categories/", `{"name":"Двигатели"}`)

	cases := []struct {
		name, method, path, body string
	}{
		{"missing name", http.MethodPost, "/products/", `{"product_category_id":1}`},
		{"unknown field", http.MethodPost, "/product_categories/", `{"name":"A","color":"red"}`},
		{"broken json", http.MethodPost, "/product_categories/", `{"name":`},
		{"empty body", http.MethodPost, "/product_categories/", ``},
		{"bad path id", http.MethodPatch, "/product_categories/abc", `{"name":"B"}`},
		{"id mismatch", http.MethodPatch, "/product_categories/1", `{"id":2,"name":"B"}`},
		{"blank patch name", http.MethodPatch, "/product_categories/1", `{"name":" "}`},
		{"non-numeric key", http.MethodGet, "/tools/abc", ``},
		{"bad delete id", http.MethodDelete, "/tools/0", ``},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var req *http.Request
			if tc.body == "" {
				req = httptest.NewRequest(tc.method, tc.path, nil)
			} else {
				req = httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
			}
			if tc.method != http.MethodGet && tc.method != http.MethodDelete {
				req.Header.Set("Content-Type", "application/json")
			}
			rec := httptest.NewRecorder()
			c.h.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
			assert.NotEmpty(t, detail(t, rec))
		})
	}
}

func TestForeignKeyViolationIsInternal(t *testing.T) {
	c := newClient(t)

	rec := c.do(http.MethodPost, "/products/", `{"name":"Engine-X","product_category_id":42}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Ошибка на стороне сервера", body["detail"])
	assert.Len(t, body["error_id"], 36)
	assert.NotContains(t, rec.Body.String(), "foreign key")
}

func TestFormBody(t *testing.T) {
	c := newClient(t)

	rec := c.form("/product_categories/", url.Values{"name": {"Кузова"}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"id":1,"name":"Кузова"}`, rec.Body.String())

	rec = c.form("/products", url.Values{
		"name":                {"Body-1"},
		"count":               {"4"},
		"product_category_id": {"1"},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	got := c.must(http.MethodGet, "/products/Body-1", "")
	assert.Equal(t, float64(4), got["count"])
}

func TestExport(t *testing.T) {
	c := newClient(t)
	c.must(http.MethodPost, "/product_categories/", `{"name":"Двигатели"}`)
	c.must(http.MethodPost, "/product_categories/", `{"name":"Кузова"}`)

	rec := c.do(http.MethodGet, "/product_categories/export.xlsx", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsx.ContentType, rec.Header().Get("Content-Type"))

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("product_categories")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"id", "name"}, {"1", "Двигатели"}, {"2", "Кузова"}}, rows)
}

func TestServiceRoutes(t *testing.T) {
	c := newClient(t)
	c.do(http.MethodPost, "/products/", `{"name":"X","product_category_id":9}`)

	assert.Equal(t, http.StatusOK, c.do(http.MethodGet, "/health", "").Code)

	rec := c.do(http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `factory_crud_errors_total{entity="products",kind="internal"} 1`)
	assert.Contains(t, rec.Body.String(), `route="POST /products/{$}"`)
}
