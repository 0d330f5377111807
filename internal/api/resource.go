package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Spok95/car-factory/internal/crud"
	"github.com/Spok95/car-factory/internal/infra/xlsx"
)

// resource: группа маршрутов одной таблицы.
type resource[T crud.Record, C crud.Payload, U crud.Patch] struct {
	path      string
	label     crud.Label
	store     crud.Store[T, C, U]
	unguarded bool     // без проверки дубликата имени (персонал)
	byName    bool     // GET /{path}/{key} принимает и имя
	columns   []string // колонки выгрузки, имена JSON-полей
}

// nameLookup реализуют postgres-репозитории, умеющие искать по имени.
type nameLookup[T any] interface {
	GetByName(ctx context.Context, name string) (*T, error)
}

func (res resource[T, C, U]) register(a *API, mux *http.ServeMux) {
	base := "/" + res.path
	for _, p := range []string{base, base + "/{$}"} {
		mux.HandleFunc("GET "+p, res.list(a))
		mux.HandleFunc("POST "+p, res.create(a))
	}
	mux.HandleFunc("GET "+base+"/export.xlsx", res.export(a))
	mux.HandleFunc("GET "+base+"/{key}", res.get(a))
	mux.HandleFunc("PATCH "+base+"/{id}", res.patch(a))
	mux.HandleFunc("DELETE "+base+"/{id}", res.delete(a))
}

func (res resource[T, C, U]) list(a *API) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := crud.List(r.Context(), res.store.List, res.label)
		if err != nil {
			a.fail(w, r, res.path, err)
			return
		}
		writeJSON(w, http.StatusOK, items)
	}
}

func (res resource[T, C, U]) create(a *API) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in C
		if err := a.decodeBody(r, &in); err != nil {
			a.fail(w, r, res.path, err)
			return
		}
		if err := in.Validate(); err != nil {
			a.fail(w, r, res.path, invalid(err))
			return
		}

		var (
			out *T
			err error
		)
		if res.unguarded {
			out, err = crud.CreateUnguarded(r.Context(), res.store.Create, in)
		} else {
			out, err = crud.Create(r.Context(), res.store.List, res.store.Create, in, res.label)
		}
		if err != nil {
			a.fail(w, r, res.path, err)
			return
		}
		a.log.Info("created", "entity", res.path, "id", (*out).EntityID())
		writeJSON(w, http.StatusOK, out)
	}
}

func (res resource[T, C, U]) get(a *API) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := r.PathValue("key")
		out, err := res.lookup(r.Context(), key)
		if err != nil {
			a.fail(w, r, res.path, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// lookup ищет строку по id, а для групп с byName также по имени.
func (res resource[T, C, U]) lookup(ctx context.Context, key string) (*T, error) {
	id, perr := strconv.ParseInt(key, 10, 64)
	if perr != nil && !res.byName {
		return nil, crud.Invalid("некорректный id: %s", key)
	}

	var (
		out *T
		err error
	)
	if perr == nil {
		out, err = res.store.Get(ctx, id)
	} else if nl, ok := res.store.(nameLookup[T]); ok {
		out, err = nl.GetByName(ctx, key)
	} else {
		out, err = res.scanName(ctx, key)
	}
	if err != nil {
		return nil, crud.Internal(err)
	}
	if out == nil {
		return nil, crud.NotFound(res.label)
	}
	return out, nil
}

func (res resource[T, C, U]) scanName(ctx context.Context, name string) (*T, error) {
	items, err := res.store.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].EntityName() == name {
			return &items[i], nil
		}
	}
	return nil, nil
}

func (res resource[T, C, U]) patch(a *API) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r.PathValue("id"))
		if err != nil {
			a.fail(w, r, res.path, err)
			return
		}
		var p U
		if err := a.decodeBody(r, &p); err != nil {
			a.fail(w, r, res.path, err)
			return
		}
		if err := checkPatchID(id, p.EntityID()); err != nil {
			a.fail(w, r, res.path, err)
			return
		}
		if err := p.Validate(); err != nil {
			a.fail(w, r, res.path, invalid(err))
			return
		}

		d, err := crud.Update(r.Context(), res.store.List, res.store.Update, id, p, res.label)
		if err != nil {
			a.fail(w, r, res.path, err)
			return
		}
		a.log.Info("updated", "entity", res.path, "id", id)
		writeJSON(w, http.StatusOK, d)
	}
}

func (res resource[T, C, U]) delete(a *API) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r.PathValue("id"))
		if err != nil {
			a.fail(w, r, res.path, err)
			return
		}
		d, err := crud.Delete(r.Context(), res.store.List, res.store.Delete, id, res.label)
		if err != nil {
			a.fail(w, r, res.path, err)
			return
		}
		a.log.Info("deleted", "entity", res.path, "id", id)
		writeJSON(w, http.StatusOK, d)
	}
}

// export отдаёт всю таблицу в .xlsx. Пустая таблица выгружается
// с одной строкой заголовка.
func (res resource[T, C, U]) export(a *API) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := res.store.List(r.Context())
		if err != nil {
			a.fail(w, r, res.path, crud.Internal(err))
			return
		}
		rows, err := res.cells(items)
		if err != nil {
			a.fail(w, r, res.path, crud.Internal(err))
			return
		}
		data, err := xlsx.Write(res.path, res.columns, rows)
		if err != nil {
			a.fail(w, r, res.path, crud.Internal(err))
			return
		}
		w.Header().Set("Content-Type", xlsx.ContentType)
		w.Header().Set("Content-Disposition", `attachment; filename="`+res.path+`.xlsx"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}

// cells раскладывает строки по колонкам через их JSON-представление.
func (res resource[T, C, U]) cells(items []T) ([][]any, error) {
	out := make([][]any, 0, len(items))
	for _, it := range items {
		raw, err := json.Marshal(it)
		if err != nil {
			return nil, err
		}
		var m map[string]any
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, err
		}
		row := make([]any, len(res.columns))
		for i, c := range res.columns {
			row[i] = m[c]
		}
		out = append(out, row)
	}
	return out, nil
}
