// Package memory is an in-process backend for the repository interfaces.
// It is selected when no DATABASE_URL is configured and backs the service
// and handler tests.
package memory

import (
	"context"
	"sync"

	"cloudstore/internal/domain/models"
	fsModels "cloudstore/internal/domain/models/filesystem"
	"cloudstore/internal/domain/repositories"
)

// Store holds all rows. Transactions run one at a time under mu and work on
// the live dataset; a rollback restores the snapshot taken at begin.
type Store struct {
	mu   sync.Mutex
	data *dataset
}

type fileRow struct {
	file fsModels.File
	seq  int64
}

type dataset struct {
	users   map[string]models.User
	tokens  map[string]string
	folders map[string]fsModels.Folder
	files   map[string]fileRow
	seq     int64
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{data: &dataset{
		users:   map[string]models.User{},
		tokens:  map[string]string{},
		folders: map[string]fsModels.Folder{},
		files:   map[string]fileRow{},
	}}
}

func (d *dataset) clone() *dataset {
	c := &dataset{
		users:   make(map[string]models.User, len(d.users)),
		tokens:  make(map[string]string, len(d.tokens)),
		folders: make(map[string]fsModels.Folder, len(d.folders)),
		files:   make(map[string]fileRow, len(d.files)),
		seq:     d.seq,
	}
	for k, v := range d.users {
		c.users[k] = v
	}
	for k, v := range d.tokens {
		c.tokens[k] = v
	}
	for k, v := range d.folders {
		c.folders[k] = v
	}
	for k, v := range d.files {
		c.files[k] = v
	}
	return c
}

func (d *dataset) next() int64 {
	d.seq++
	return d.seq
}

type txKey struct{}

func (s *Store) inTx(ctx context.Context) bool {
	owner, _ := ctx.Value(txKey{}).(*Store)
	return owner == s
}

// do runs fn against the dataset, taking the lock unless ctx already holds
// it through ExecTx.
func (s *Store) do(ctx context.Context, fn func(d *dataset) error) error {
	if s.inTx(ctx) {
		return fn(s.data)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.data)
}

// TransactionManager implements repositories.TransactionManager for a Store
type TransactionManager struct {
	store *Store
}

// NewTransactionManager creates a transaction manager over the store
func NewTransactionManager(store *Store) repositories.TransactionManager {
	return &TransactionManager{store: store}
}

// ExecTx runs fn with exclusive access to the store. Any error or panic
// restores the state from before the transaction.
func (tm *TransactionManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	s := tm.store
	if s.inTx(ctx) {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	committed := false
	defer func() {
		if !committed {
			s.data = snapshot
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, s)); err != nil {
		return err
	}
	committed = true
	return nil
}

func copyParent(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
