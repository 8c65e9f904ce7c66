package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/bigkaa/goartstore/qr-studio/internal/domain/model"
)

// CreationLogRepository — журнал созданий qr_creation_log (только добавление).
type CreationLogRepository interface {
	Append(ctx context.Context, e *model.CreationLogEntry) error
}

type creationLogRepo struct {
	db DBTX
}

// NewCreationLogRepository создаёт репозиторий журнала созданий.
func NewCreationLogRepository(db DBTX) CreationLogRepository {
	return &creationLogRepo{db: db}
}

func (r *creationLogRepo) Append(ctx context.Context, e *model.CreationLogEntry) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO qr_creation_log (artifact_id, owner_id, kind, created_at) VALUES ($1, $2, $3, $4)`,
		e.ArtifactID, e.OwnerID, string(e.Kind), e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("ошибка записи журнала созданий: %w", err)
	}
	return nil
}

// CreationTx — операции, выполняемые в транзакции создания артефакта.
type CreationTx interface {
	// LockOwnerPlan блокирует строку владельца и возвращает его план.
	// Отсутствующий владелец — ErrNotFound.
	LockOwnerPlan(ctx context.Context, ownerID string) (model.Plan, error)
	CountCreatedSince(ctx context.Context, ownerID string, since time.Time) (int, error)
	InsertArtifact(ctx context.Context, a *model.Artifact) error
	AppendCreationLog(ctx context.Context, e *model.CreationLogEntry) error
}

// CreationRunner выполняет fn в транзакции создания:
// коммит при nil, откат при ошибке fn или коммита.
type CreationRunner interface {
	RunCreation(ctx context.Context, fn func(tx CreationTx) error) error
}

// RunCreation реализует CreationRunner поверх RunInTx.
func (r *TxRunner) RunCreation(ctx context.Context, fn func(tx CreationTx) error) error {
	return r.RunInTx(ctx, func(tx pgx.Tx) error {
		return fn(newCreationTx(tx))
	})
}

type creationTx struct {
	owners    OwnerRepository
	artifacts ArtifactRepository
	log       CreationLogRepository
}

func newCreationTx(db DBTX) *creationTx {
	return &creationTx{
		owners:    NewOwnerRepository(db),
		artifacts: NewArtifactRepository(db),
		log:       NewCreationLogRepository(db),
	}
}

func (t *creationTx) LockOwnerPlan(ctx context.Context, ownerID string) (model.Plan, error) {
	return t.owners.LockPlan(ctx, ownerID)
}

func (t *creationTx) CountCreatedSince(ctx context.Context, ownerID string, since time.Time) (int, error) {
	return t.artifacts.CountCreatedSince(ctx, ownerID, since)
}

func (t *creationTx) InsertArtifact(ctx context.Context, a *model.Artifact) error {
	return t.artifacts.Insert(ctx, a)
}

func (t *creationTx) AppendCreationLog(ctx context.Context, e *model.CreationLogEntry) error {
	return t.log.Append(ctx, e)
}
