package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/bigkaa/goartstore/qr-studio/internal/domain/model"
	"github.com/bigkaa/goartstore/qr-studio/internal/repository"
	"github.com/bigkaa/goartstore/qr-studio/internal/storage"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- fakeDB: in-memory реализация CreationRunner и ArtifactRepository ---

// fakeDB хранит владельцев и артефакты в памяти. Блокировка владельца
// держится от LockOwnerPlan до коммита или отката, как FOR UPDATE.
type fakeDB struct {
	mu         sync.Mutex
	owners     map[string]model.Plan
	ownerLocks map[string]*sync.Mutex
	artifacts  map[string]*model.Artifact
	log        []model.CreationLogEntry

	insertErr    error
	commitErr    error
	existingErr  error
	getByIDCalls int
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		owners:     make(map[string]model.Plan),
		ownerLocks: make(map[string]*sync.Mutex),
		artifacts:  make(map[string]*model.Artifact),
	}
}

func (db *fakeDB) addOwner(id string, plan model.Plan) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.owners[id] = plan
}

func (db *fakeDB) count() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.artifacts)
}

func (db *fakeDB) logLen() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.log)
}

func (db *fakeDB) RunCreation(ctx context.Context, fn func(tx repository.CreationTx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tx := &fakeTx{db: db}
	defer tx.release()

	if err := fn(tx); err != nil {
		return err
	}

	db.mu.Lock()
	defer db.mu.Unlock()
	if db.commitErr != nil {
		return db.commitErr
	}
	for _, a := range tx.staged {
		db.artifacts[a.ID] = a
	}
	db.log = append(db.log, tx.stagedLog...)
	return nil
}

type fakeTx struct {
	db        *fakeDB
	locked    []*sync.Mutex
	staged    []*model.Artifact
	stagedLog []model.CreationLogEntry
}

func (tx *fakeTx) release() {
	for _, l := range tx.locked {
		l.Unlock()
	}
}

func (tx *fakeTx) LockOwnerPlan(_ context.Context, ownerID string) (model.Plan, error) {
	tx.db.mu.Lock()
	if _, ok := tx.db.owners[ownerID]; !ok {
		tx.db.mu.Unlock()
		return "", repository.ErrNotFound
	}
	l, ok := tx.db.ownerLocks[ownerID]
	if !ok {
		l = &sync.Mutex{}
		tx.db.ownerLocks[ownerID] = l
	}
	tx.db.mu.Unlock()

	l.Lock()
	tx.locked = append(tx.locked, l)

	tx.db.mu.Lock()
	defer tx.db.mu.Unlock()
	return tx.db.owners[ownerID], nil
}

func (tx *fakeTx) CountCreatedSince(ctx context.Context, ownerID string, since time.Time) (int, error) {
	n, _ := tx.db.CountCreatedSince(ctx, ownerID, since)
	for _, a := range tx.staged {
		if a.OwnerID == ownerID && !a.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (tx *fakeTx) InsertArtifact(_ context.Context, a *model.Artifact) error {
	tx.db.mu.Lock()
	defer tx.db.mu.Unlock()
	if tx.db.insertErr != nil {
		return tx.db.insertErr
	}
	for _, existing := range tx.db.artifacts {
		if existing.ArtifactPath == a.ArtifactPath {
			return repository.ErrConflict
		}
	}
	cp := *a
	tx.staged = append(tx.staged, &cp)
	return nil
}

func (tx *fakeTx) AppendCreationLog(_ context.Context, e *model.CreationLogEntry) error {
	tx.stagedLog = append(tx.stagedLog, *e)
	return nil
}

func (db *fakeDB) Insert(_ context.Context, a *model.Artifact) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	cp := *a
	db.artifacts[a.ID] = &cp
	return nil
}

func (db *fakeDB) GetByID(_ context.Context, id string) (*model.Artifact, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.getByIDCalls++
	a, ok := db.artifacts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (db *fakeDB) GetByOwner(ctx context.Context, ownerID, id string) (*model.Artifact, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	a, ok := db.artifacts[id]
	if !ok || a.OwnerID != ownerID {
		return nil, repository.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (db *fakeDB) ListByOwner(_ context.Context, ownerID string, limit, offset int) ([]*model.Artifact, int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var all []*model.Artifact
	for _, a := range db.artifacts {
		if a.OwnerID == ownerID {
			cp := *a
			all = append(all, &cp)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID < all[j].ID
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	total := len(all)
	if offset >= total {
		return nil, total, nil
	}
	end := min(offset+limit, total)
	return all[offset:end], total, nil
}

func (db *fakeDB) CountCreatedSince(_ context.Context, ownerID string, since time.Time) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	n := 0
	for _, a := range db.artifacts {
		if a.OwnerID == ownerID && !a.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (db *fakeDB) UpdateLabel(_ context.Context, ownerID, id string, label *string) (*model.Artifact, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	a, ok := db.artifacts[id]
	if !ok || a.OwnerID != ownerID {
		return nil, repository.ErrNotFound
	}
	a.Label = label
	cp := *a
	return &cp, nil
}

func (db *fakeDB) DeleteByOwner(_ context.Context, ownerID, id string) (string, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	a, ok := db.artifacts[id]
	if !ok || a.OwnerID != ownerID {
		return "", repository.ErrNotFound
	}
	delete(db.artifacts, id)
	return a.ArtifactPath, nil
}

func (db *fakeDB) ExistingPaths(_ context.Context, paths []string) (map[string]bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.existingErr != nil {
		return nil, db.existingErr
	}
	result := make(map[string]bool, len(paths))
	for _, p := range paths {
		for _, a := range db.artifacts {
			if a.ArtifactPath == p {
				result[p] = true
				break
			}
		}
	}
	return result, nil
}

// --- memStore: in-memory storage.Store ---

type memStore struct {
	mu       sync.Mutex
	files    map[string][]byte
	modTimes map[string]time.Time

	saveErr   error
	readErr   error
	deleteErr error
	listErr   error
	// afterSave вызывается после успешной записи
	afterSave func()

	saves   int
	deletes int
}

func newMemStore() *memStore {
	return &memStore{
		files:    make(map[string][]byte),
		modTimes: make(map[string]time.Time),
	}
}

func (s *memStore) Save(_ context.Context, data []byte, ext string) (string, error) {
	s.mu.Lock()
	s.saves++
	if s.saveErr != nil {
		s.mu.Unlock()
		return "", s.saveErr
	}
	name, err := storage.NewName(ext)
	if err != nil {
		s.mu.Unlock()
		return "", err
	}
	s.files[name] = append([]byte(nil), data...)
	s.modTimes[name] = time.Now()
	hook := s.afterSave
	s.mu.Unlock()

	if hook != nil {
		hook()
	}
	return name, nil
}

func (s *memStore) Read(_ context.Context, path string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.readErr != nil {
		return nil, s.readErr
	}
	data, ok := s.files[path]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return data, nil
}

func (s *memStore) Delete(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deletes++
	if s.deleteErr != nil {
		return s.deleteErr
	}
	delete(s.files, path)
	delete(s.modTimes, path)
	return nil
}

func (s *memStore) List(_ context.Context) ([]storage.ObjectInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	result := make([]storage.ObjectInfo, 0, len(s.files))
	for name, data := range s.files {
		result = append(result, storage.ObjectInfo{
			Path:    name,
			Size:    int64(len(data)),
			ModTime: s.modTimes[name],
		})
	}
	return result, nil
}

func (s *memStore) Ping(context.Context) error { return nil }

func (s *memStore) fileCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.files)
}

// put кладёт файл с заданным временем изменения в обход Save.
func (s *memStore) put(name string, modTime time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[name] = []byte("x")
	s.modTimes[name] = modTime
}

func (s *memStore) has(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.files[name]
	return ok
}

var errInjected = errors.New("внедрённый сбой")
