// Package memory реализует хранилище в памяти процесса с теми же правилами, что и
// схема Postgres: внешние ключи проверяются при записи, удаление родителя
// каскадно удаляет зависимые строки.
package memory

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"
)

// ErrForeignKey: ссылка на несуществующую строку.
var ErrForeignKey = errors.New("memory: foreign key violation")

type Row interface {
	EntityID() int64
}

type (
	BuildFunc[T any, C any] func(in C, id int64, now time.Time) T
	ApplyFunc[T any, U any] func(patch U, row *T)
)

// Table: одна таблица. Идентификаторы выдаются по возрастанию с 1 и не
// переиспользуются (как у BIGSERIAL), строки идут в порядке вставки.
type Table[T Row, C any, U any] struct {
	name  string
	build BuildFunc[T, C]
	apply ApplyFunc[T, U]
	now   func() time.Time

	mu     sync.RWMutex
	rows   []T
	lastID int64

	checks   []func(T) error
	onDelete []func(T)
}

func NewTable[T Row, C any, U any](name string, build BuildFunc[T, C], apply ApplyFunc[T, U]) *Table[T, C, U] {
	return &Table[T, C, U]{name: name, build: build, apply: apply, now: time.Now}
}

// Check добавляет проверку строки перед вставкой и изменением.
func (t *Table[T, C, U]) Check(fn func(T) error) { t.checks = append(t.checks, fn) }

// OnDelete добавляет обработчик, вызываемый для каждой удалённой строки.
func (t *Table[T, C, U]) OnDelete(fn func(T)) { t.onDelete = append(t.onDelete, fn) }

// Ref возвращает проверку "id существует в таблице t" для Check дочерних таблиц.
func (t *Table[T, C, U]) Ref(id int64) error {
	if !t.Exists(id) {
		return fmt.Errorf("%w: %s.id=%d", ErrForeignKey, t.name, id)
	}
	return nil
}

func (t *Table[T, C, U]) Exists(id int64) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.index(id) >= 0
}

func (t *Table[T, C, U]) List(_ context.Context) ([]T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Clone(t.rows), nil
}

func (t *Table[T, C, U]) Get(_ context.Context, id int64) (*T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	i := t.index(id)
	if i < 0 {
		return nil, nil
	}
	row := t.rows[i]
	return &row, nil
}

func (t *Table[T, C, U]) Create(_ context.Context, in C) (*T, error) {
	t.mu.Lock()
	t.lastID++
	id := t.lastID
	t.mu.Unlock()

	// id расходуется даже при ошибке проверки, как значение последовательности
	row := t.build(in, id, t.now())
	if err := t.check(row); err != nil {
		return nil, err
	}

	t.mu.Lock()
	t.rows = append(t.rows, row)
	t.mu.Unlock()
	return &row, nil
}

func (t *Table[T, C, U]) Update(_ context.Context, id int64, patch U) (*T, error) {
	t.mu.RLock()
	i := t.index(id)
	if i < 0 {
		t.mu.RUnlock()
		return nil, nil
	}
	row := t.rows[i]
	t.mu.RUnlock()

	t.apply(patch, &row)
	if err := t.check(row); err != nil {
		return nil, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if i = t.index(id); i < 0 {
		return nil, nil
	}
	t.rows[i] = row
	return &row, nil
}

func (t *Table[T, C, U]) Delete(_ context.Context, id int64) error {
	t.DeleteWhere(func(row T) bool { return row.EntityID() == id })
	return nil
}

// DeleteWhere удаляет подходящие строки и запускает каскады.
// Обработчики вызываются без блокировки таблицы.
func (t *Table[T, C, U]) DeleteWhere(match func(T) bool) int {
	t.mu.Lock()
	var removed []T
	t.rows = slices.DeleteFunc(t.rows, func(row T) bool {
		if match(row) {
			removed = append(removed, row)
			return true
		}
		return false
	})
	t.mu.Unlock()

	for _, row := range removed {
		for _, fn := range t.onDelete {
			fn(row)
		}
	}
	return len(removed)
}

// UpdateWhere изменяет подходящие строки без проверок (ON DELETE SET NULL).
func (t *Table[T, C, U]) UpdateWhere(match func(T) bool, mutate func(*T)) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for i := range t.rows {
		if match(t.rows[i]) {
			mutate(&t.rows[i])
			n++
		}
	}
	return n
}

func (t *Table[T, C, U]) check(row T) error {
	for _, fn := range t.checks {
		if err := fn(row); err != nil {
			return err
		}
	}
	return nil
}

func (t *Table[T, C, U]) index(id int64) int {
	return slices.IndexFunc(t.rows, func(row T) bool { return row.EntityID() == id })
}
