package storage

import (
	"context"
	"fmt"

	"golang.org/x/sync/semaphore"
)

// Bounded ограничивает число одновременных операций с хранилищем.
type Bounded struct {
	inner Store
	sem   *semaphore.Weighted
}

// NewBounded оборачивает store бюджетом из limit одновременных операций.
func NewBounded(store Store, limit int64) *Bounded {
	if limit < 1 {
		limit = 1
	}
	return &Bounded{inner: store, sem: semaphore.NewWeighted(limit)}
}

func (b *Bounded) acquire(ctx context.Context) error {
	if err := b.sem.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("ожидание слота хранилища: %w", err)
	}
	return nil
}

func (b *Bounded) Save(ctx context.Context, data []byte, ext string) (string, error) {
	if err := b.acquire(ctx); err != nil {
		return "", err
	}
	defer b.sem.Release(1)
	return b.inner.Save(ctx, data, ext)
}

func (b *Bounded) Read(ctx context.Context, path string) ([]byte, error) {
	if err := b.acquire(ctx); err != nil {
		return nil, err
	}
	defer b.sem.Release(1)
	return b.inner.Read(ctx, path)
}

// Delete ждёт слот без учёта отмены ctx: компенсирующее удаление
// должно выполниться и после отключения клиента.
func (b *Bounded) Delete(ctx context.Context, path string) error {
	ctx = context.WithoutCancel(ctx)
	if err := b.acquire(ctx); err != nil {
		return err
	}
	defer b.sem.Release(1)
	return b.inner.Delete(ctx, path)
}

func (b *Bounded) List(ctx context.Context) ([]ObjectInfo, error) {
	if err := b.acquire(ctx); err != nil {
		return nil, err
	}
	defer b.sem.Release(1)
	return b.inner.List(ctx)
}

func (b *Bounded) Ping(ctx context.Context) error {
	return b.inner.Ping(ctx)
}
