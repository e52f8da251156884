package service

import (
	"sync"

	"github.com/google/uuid"
)

// keyedMutex - точка сериализации операций по идентификатору агрегата.
// Хронология и журнал оповещений одной тревоги должны иметь единый порядок записей,
// поэтому все операции над одним id выполняются под одним мьютексом.
// Записи считают держателей и удаляются при освобождении последнего,
// чтобы карта не росла на каждый новый id до конца жизни процесса.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*lockEntry
}

type lockEntry struct {
	mu      sync.Mutex
	holders int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[uuid.UUID]*lockEntry)}
}

// Lock захватывает мьютекс для id и возвращает функцию освобождения
func (k *keyedMutex) Lock(id uuid.UUID) func() {
	k.mu.Lock()
	e, ok := k.locks[id]
	if !ok {
		e = &lockEntry{}
		k.locks[id] = e
	}
	e.holders++
	k.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		k.mu.Lock()
		e.holders--
		if e.holders == 0 {
			delete(k.locks, id)
		}
		k.mu.Unlock()
	}
}
