// Package dbtest cung cấp fake pgx.Tx / TxBeginner cho unit test
// Query thật không được hỗ trợ: gọi Exec/Query trên Tx sẽ panic (nil embedded interface)
package dbtest

import (
	"context"
	"errors"
	"sync"

	"github.com/jackc/pgx/v5"
)

var ErrTxClosed = errors.New("dbtest: transaction already closed")

// Tx ghi lại commit/rollback
type Tx struct {
	pgx.Tx

	mu         sync.Mutex
	committed  bool
	rolledBack bool
	CommitErr  error
}

func (t *Tx) Commit(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.committed || t.rolledBack {
		return ErrTxClosed
	}
	if t.CommitErr != nil {
		return t.CommitErr
	}
	t.committed = true
	return nil
}

func (t *Tx) Rollback(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.committed || t.rolledBack {
		return ErrTxClosed
	}
	t.rolledBack = true
	return nil
}

func (t *Tx) Committed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.committed
}

func (t *Tx) RolledBack() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.rolledBack
}

// Beginner implement database.TxBeginner
type Beginner struct {
	mu        sync.Mutex
	txs       []*Tx
	BeginErr  error
	CommitErr error
}

func (b *Beginner) Begin(ctx context.Context) (pgx.Tx, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.BeginErr != nil {
		return nil, b.BeginErr
	}
	tx := &Tx{CommitErr: b.CommitErr}
	b.txs = append(b.txs, tx)
	return tx, nil
}

// Txs trả về các transaction đã mở theo thứ tự
func (b *Beginner) Txs() []*Tx {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]*Tx(nil), b.txs...)
}

// Last trả về transaction mở gần nhất, nil nếu chưa có
func (b *Beginner) Last() *Tx {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.txs) == 0 {
		return nil
	}
	return b.txs[len(b.txs)-1]
}
