// Package crud содержит общую политику создания, изменения и удаления:
// проверку дубликатов по имени и проверку существования по полному списку.
package crud

import (
	"context"
	"slices"
)

// Record: строка таблицы.
type Record interface {
	EntityID() int64
	EntityName() string
}

// Payload: тело запроса на создание.
type Payload interface {
	EntityName() string
	Validate() error
}

// Patch: тело запроса на частичное изменение.
type Patch interface {
	EntityID() int64
	Validate() error
}

// Store объединяет операции над одной таблицей. Get и Update возвращают (nil, nil),
// если строки нет.
type Store[T Record, C Payload, U Patch] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id int64) (*T, error)
	Create(ctx context.Context, in C) (*T, error)
	Update(ctx context.Context, id int64, patch U) (*T, error)
	Delete(ctx context.Context, id int64) error
}

type (
	ListFunc[T any]          func(ctx context.Context) ([]T, error)
	CreateFunc[T any, C any] func(ctx context.Context, in C) (*T, error)
	UpdateFunc[T any, U any] func(ctx context.Context, id int64, patch U) (*T, error)
	DeleteFunc               func(ctx context.Context, id int64) error
)

// Detail: ответ на успешное изменение/удаление.
type Detail struct {
	Detail string `json:"detail"`
}

// Create создаёт строку, если в таблице ещё нет строки с таким же именем.
// Проверка идёт по полному списку, поэтому два параллельных запроса
// с одинаковым именем могут пройти её оба.
func Create[T Record, C Payload](ctx context.Context, list ListFunc[T], create CreateFunc[T, C], in C, l Label) (*T, error) {
	items, err := list(ctx)
	if err != nil {
		return nil, Internal(err)
	}
	name := in.EntityName()
	if slices.ContainsFunc(items, func(it T) bool { return it.EntityName() == name }) {
		return nil, Conflict(l)
	}
	return CreateUnguarded(ctx, create, in)
}

// CreateUnguarded создаёт строку без проверки имени (персонал).
func CreateUnguarded[T any, C Payload](ctx context.Context, create CreateFunc[T, C], in C) (*T, error) {
	out, err := create(ctx, in)
	if err != nil {
		return nil, Internal(err)
	}
	return out, nil
}

func Update[T Record, U Patch](ctx context.Context, list ListFunc[T], update UpdateFunc[T, U], id int64, patch U, l Label) (Detail, error) {
	if err := mustExist(ctx, list, id, l); err != nil {
		return Detail{}, err
	}
	out, err := update(ctx, id, patch)
	if err != nil {
		return Detail{}, Internal(err)
	}
	if out == nil {
		// строку удалили между проверкой и изменением
		return Detail{}, NotFound(l)
	}
	return Detail{Detail: l.Updated()}, nil
}

func Delete[T Record](ctx context.Context, list ListFunc[T], del DeleteFunc, id int64, l Label) (Detail, error) {
	if err := mustExist(ctx, list, id, l); err != nil {
		return Detail{}, err
	}
	if err := del(ctx, id); err != nil {
		return Detail{}, Internal(err)
	}
	return Detail{Detail: l.Deleted()}, nil
}

// List возвращает все строки; для групп, где список обязан быть непустым,
// пустой список считается ошибкой.
func List[T any](ctx context.Context, list ListFunc[T], l Label) ([]T, error) {
	items, err := list(ctx)
	if err != nil {
		return nil, Internal(err)
	}
	if len(items) == 0 && l.RequireRows() {
		return nil, Empty(l)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func mustExist[T Record](ctx context.Context, list ListFunc[T], id int64, l Label) error {
	items, err := list(ctx)
	if err != nil {
		return Internal(err)
	}
	if !slices.ContainsFunc(items, func(it T) bool { return it.EntityID() == id }) {
		return NotFound(l)
	}
	return nil
}
