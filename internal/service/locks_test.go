package service

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestKeyedMutex_SerializesSameKey(t *testing.T) {
	// Подготовка
	km := newKeyedMutex()
	id := uuid.New()

	counter := 0
	var wg sync.WaitGroup

	// Действие: конкурентные инкременты под одним ключом
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := km.Lock(id)
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	// Проверки
	assert.Equal(t, 50, counter)
}

func TestKeyedMutex_EvictsReleasedEntries(t *testing.T) {
	// Подготовка
	km := newKeyedMutex()

	// Действие: много разных агрегатов, каждый захватывается и освобождается
	for i := 0; i < 100; i++ {
		unlock := km.Lock(uuid.New())
		unlock()
	}

	// Проверки: карта не хранит мьютексы завершенных операций
	km.mu.Lock()
	defer km.mu.Unlock()
	assert.Empty(t, km.locks)
}

func TestKeyedMutex_KeepsEntryWhileHeld(t *testing.T) {
	// Подготовка
	km := newKeyedMutex()
	id := uuid.New()

	// Действие
	unlock := km.Lock(id)

	// Проверки: запись живет, пока последний держатель не освободил мьютекс
	km.mu.Lock()
	assert.Len(t, km.locks, 1)
	km.mu.Unlock()

	unlock()

	km.mu.Lock()
	assert.Empty(t, km.locks)
	km.mu.Unlock()
}
