package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/bigkaa/goartstore/qr-studio/internal/domain/model"
)

// OwnerRepository — чтение плана владельца из таблицы owners
// (таблицей владеет сервис аккаунтов). План читается только при создании
// артефакта, под блокировкой строки.
type OwnerRepository interface {
	// LockPlan возвращает план и блокирует строку владельца (FOR UPDATE)
	// до конца транзакции. Вызывается только внутри транзакции.
	LockPlan(ctx context.Context, ownerID string) (model.Plan, error)
}

type ownerRepo struct {
	db DBTX
}

// NewOwnerRepository создаёт репозиторий владельцев.
func NewOwnerRepository(db DBTX) OwnerRepository {
	return &ownerRepo{db: db}
}

func (r *ownerRepo) LockPlan(ctx context.Context, ownerID string) (model.Plan, error) {
	var plan string
	err := r.db.QueryRow(ctx, `SELECT plan FROM owners WHERE id = $1 FOR UPDATE`, ownerID).Scan(&plan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("ошибка получения плана владельца: %w", err)
	}
	return model.Plan(plan), nil
}
