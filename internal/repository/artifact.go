package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/bigkaa/goartstore/qr-studio/internal/domain/model"
)

// artifactColumns — список столбцов qr_artifacts для SELECT и RETURNING.
const artifactColumns = `id, owner_id, kind, structured_data, canonical_payload,
	artifact_path, label, created_at, tracking_enabled, scan_count`

// ArtifactRepository — доступ к таблице qr_artifacts.
type ArtifactRepository interface {
	// Insert создаёт запись. Дубликат artifact_path — ErrConflict.
	Insert(ctx context.Context, a *model.Artifact) error
	// GetByID возвращает артефакт по UUID или ErrNotFound.
	GetByID(ctx context.Context, id string) (*model.Artifact, error)
	// GetByOwner возвращает артефакт владельца или ErrNotFound.
	GetByOwner(ctx context.Context, ownerID, id string) (*model.Artifact, error)
	// ListByOwner возвращает страницу артефактов владельца (новые первыми)
	// и общее количество.
	ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*model.Artifact, int, error)
	// CountCreatedSince считает артефакты владельца с created_at >= since.
	CountCreatedSince(ctx context.Context, ownerID string, since time.Time) (int, error)
	// UpdateLabel меняет метку артефакта владельца. nil снимает метку.
	UpdateLabel(ctx context.Context, ownerID, id string, label *string) (*model.Artifact, error)
	// DeleteByOwner удаляет запись владельца и возвращает путь её файла.
	DeleteByOwner(ctx context.Context, ownerID, id string) (string, error)
	// ExistingPaths возвращает подмножество paths, на которые ссылаются записи.
	ExistingPaths(ctx context.Context, paths []string) (map[string]bool, error)
}

type artifactRepo struct {
	db DBTX
}

// NewArtifactRepository создаёт репозиторий артефактов.
func NewArtifactRepository(db DBTX) ArtifactRepository {
	return &artifactRepo{db: db}
}

func (r *artifactRepo) Insert(ctx context.Context, a *model.Artifact) error {
	query := `
		INSERT INTO qr_artifacts (id, owner_id, kind, structured_data, canonical_payload,
			artifact_path, label, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.Exec(ctx, query,
		a.ID, a.OwnerID, string(a.Kind), []byte(a.StructuredData), a.CanonicalPayload,
		a.ArtifactPath, a.Label, a.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return fmt.Errorf("ошибка создания артефакта: %w", err)
	}
	return nil
}

func (r *artifactRepo) GetByID(ctx context.Context, id string) (*model.Artifact, error) {
	query := fmt.Sprintf(`SELECT %s FROM qr_artifacts WHERE id = $1`, artifactColumns)
	return scanArtifact(r.db.QueryRow(ctx, query, id))
}

func (r *artifactRepo) GetByOwner(ctx context.Context, ownerID, id string) (*model.Artifact, error) {
	query := fmt.Sprintf(`SELECT %s FROM qr_artifacts WHERE id = $1 AND owner_id = $2`, artifactColumns)
	return scanArtifact(r.db.QueryRow(ctx, query, id, ownerID))
}

func (r *artifactRepo) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*model.Artifact, int, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM qr_artifacts
		WHERE owner_id = $1
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3`, artifactColumns)

	rows, err := r.db.Query(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка получения списка артефактов: %w", err)
	}
	defer rows.Close()

	var result []*model.Artifact
	for rows.Next() {
		a, err := scanArtifact(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("ошибка итерации результатов: %w", err)
	}

	var total int
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM qr_artifacts WHERE owner_id = $1`, ownerID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ошибка подсчёта артефактов: %w", err)
	}

	return result, total, nil
}

func (r *artifactRepo) CountCreatedSince(ctx context.Context, ownerID string, since time.Time) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM qr_artifacts WHERE owner_id = $1 AND created_at >= $2`,
		ownerID, since,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("ошибка подсчёта артефактов за период: %w", err)
	}
	return n, nil
}

func (r *artifactRepo) UpdateLabel(ctx context.Context, ownerID, id string, label *string) (*model.Artifact, error) {
	query := fmt.Sprintf(`
		UPDATE qr_artifacts SET label = $3
		WHERE id = $1 AND owner_id = $2
		RETURNING %s`, artifactColumns)
	return scanArtifact(r.db.QueryRow(ctx, query, id, ownerID, label))
}

func (r *artifactRepo) DeleteByOwner(ctx context.Context, ownerID, id string) (string, error) {
	var path string
	err := r.db.QueryRow(ctx,
		`DELETE FROM qr_artifacts WHERE id = $1 AND owner_id = $2 RETURNING artifact_path`,
		id, ownerID,
	).Scan(&path)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("ошибка удаления артефакта: %w", err)
	}
	return path, nil
}

func (r *artifactRepo) ExistingPaths(ctx context.Context, paths []string) (map[string]bool, error) {
	result := make(map[string]bool, len(paths))
	if len(paths) == 0 {
		return result, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT artifact_path FROM qr_artifacts WHERE artifact_path = ANY($1)`, paths)
	if err != nil {
		return nil, fmt.Errorf("ошибка проверки путей артефактов: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("ошибка сканирования пути: %w", err)
		}
		result[p] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка итерации результатов: %w", err)
	}
	return result, nil
}

// scanArtifact читает строку artifactColumns.
func scanArtifact(row pgx.Row) (*model.Artifact, error) {
	var (
		a    model.Artifact
		kind string
		data []byte
	)
	err := row.Scan(
		&a.ID, &a.OwnerID, &kind, &data, &a.CanonicalPayload,
		&a.ArtifactPath, &a.Label, &a.CreatedAt, &a.TrackingEnabled, &a.ScanCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка чтения артефакта: %w", err)
	}
	a.Kind = model.Kind(kind)
	a.StructuredData = data
	a.CreatedAt = a.CreatedAt.UTC()
	return &a, nil
}
