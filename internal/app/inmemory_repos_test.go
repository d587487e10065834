package app_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"subra-settlement/internal/core/domain"
	"subra-settlement/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

// --- In-Memory Agent Repo ---

type inMemoryAgentRepo struct {
	mu     sync.RWMutex
	agents map[uuid.UUID]*domain.Agent
}

func newInMemoryAgentRepo() *inMemoryAgentRepo {
	return &inMemoryAgentRepo{agents: make(map[uuid.UUID]*domain.Agent)}
}

func (r *inMemoryAgentRepo) add(a *domain.Agent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.agents[a.ID] = a
}

func (r *inMemoryAgentRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Agent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.agents[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

// --- In-Memory Agent Wallet Repo ---

type inMemoryWalletRepo struct {
	mu      sync.RWMutex
	wallets map[uuid.UUID]*domain.AgentWallet
}

func newInMemoryWalletRepo() *inMemoryWalletRepo {
	return &inMemoryWalletRepo{wallets: make(map[uuid.UUID]*domain.AgentWallet)}
}

func (r *inMemoryWalletRepo) Create(_ context.Context, w *domain.AgentWallet) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.wallets[w.AgentID]; exists {
		return false, nil
	}
	cp := *w
	r.wallets[w.AgentID] = &cp
	return true, nil
}

func (r *inMemoryWalletRepo) GetByAgentID(_ context.Context, agentID uuid.UUID) (*domain.AgentWallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.wallets[agentID]
	if !ok {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

func (r *inMemoryWalletRepo) UpdateBalance(_ context.Context, agentID uuid.UUID, balance decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if w, ok := r.wallets[agentID]; ok {
		w.Balance = balance
		w.UpdatedAt = time.Now().UTC()
	}
	return nil
}

// --- In-Memory Transaction Repo ---

type inMemoryTransactionRepo struct {
	mu           sync.RWMutex
	transactions map[uuid.UUID]*domain.Transaction
}

func newInMemoryTransactionRepo() *inMemoryTransactionRepo {
	return &inMemoryTransactionRepo{transactions: make(map[uuid.UUID]*domain.Transaction)}
}

func (r *inMemoryTransactionRepo) Create(_ context.Context, txn *domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if txn.TaskID != nil {
		for _, t := range r.transactions {
			if t.TaskID != nil && *t.TaskID == *txn.TaskID {
				return ports.ErrDuplicateTask
			}
		}
	}
	cp := *txn
	r.transactions[txn.ID] = &cp
	return nil
}

func (r *inMemoryTransactionRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.transactions[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *inMemoryTransactionRepo) GetByTaskID(_ context.Context, taskID string) (*domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, t := range r.transactions {
		if t.TaskID != nil && *t.TaskID == taskID {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *inMemoryTransactionRepo) AttachSignature(_ context.Context, id uuid.UUID, signature string, lastValidBlockHeight uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.transactions[id]; ok {
		t.Signature = &signature
		t.LastValidBlockHeight = &lastValidBlockHeight
		t.UpdatedAt = time.Now().UTC()
	}
	return nil
}

func (r *inMemoryTransactionRepo) UpdateOutcome(_ context.Context, id uuid.UUID, outcome domain.TransactionOutcome) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.transactions[id]
	if !ok || t.IsTerminal() {
		return nil
	}
	t.Status = outcome.Status
	if outcome.Signature != nil {
		t.Signature = outcome.Signature
	}
	t.FailureReason = outcome.FailureReason
	t.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *inMemoryTransactionRepo) ListUnsettled(_ context.Context, olderThan time.Time, limit int) ([]domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Transaction
	for _, t := range r.transactions {
		switch {
		case t.Status == domain.TransactionStatusUnconfirmed:
		case t.Status == domain.TransactionStatusPending && t.CreatedAt.Before(olderThan):
		default:
			continue
		}
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *inMemoryTransactionRepo) ListByAgent(_ context.Context, agentID uuid.UUID, limit, offset int) ([]domain.Transaction, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var all []domain.Transaction
	for _, t := range r.transactions {
		if t.AgentID == agentID {
			all = append(all, *t)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	total := int64(len(all))
	if offset >= len(all) {
		return []domain.Transaction{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

// --- In-Memory Skill Repo ---

type skillKey struct {
	agentID uuid.UUID
	skill   domain.SkillType
}

// inMemorySkillRepo serializes GetForUpdate..Update with a mutex held by the
// transaction, standing in for the row lock.
type inMemorySkillRepo struct {
	rowLock sync.Mutex
	mu      sync.RWMutex
	skills  map[skillKey]*domain.AgentSkill
}

func newInMemorySkillRepo() *inMemorySkillRepo {
	return &inMemorySkillRepo{skills: make(map[skillKey]*domain.AgentSkill)}
}

func (r *inMemorySkillRepo) GetForUpdate(_ context.Context, tx pgx.Tx, agentID uuid.UUID, skill domain.SkillType) (*domain.AgentSkill, error) {
	if lt, ok := tx.(*lockingTx); ok {
		lt.hold(&r.rowLock)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.skills[skillKey{agentID, skill}]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *inMemorySkillRepo) Update(_ context.Context, _ pgx.Tx, s *domain.AgentSkill) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	r.skills[skillKey{s.AgentID, s.SkillType}] = &cp
	return nil
}

func (r *inMemorySkillRepo) ListByAgent(_ context.Context, agentID uuid.UUID) ([]domain.AgentSkill, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.AgentSkill
	for k, s := range r.skills {
		if k.agentID == agentID {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SkillType < out[j].SkillType })
	return out, nil
}

// --- In-Memory Transactor ---

type inMemoryTransactor struct{}

func (inMemoryTransactor) Begin(context.Context) (pgx.Tx, error) {
	return &lockingTx{}, nil
}

// lockingTx is a pgx.Tx that releases the row lock taken during the
// transaction on commit or rollback.
type lockingTx struct {
	mu     sync.Mutex
	locked *sync.Mutex
}

func (t *lockingTx) hold(m *sync.Mutex) {
	m.Lock()
	t.mu.Lock()
	t.locked = m
	t.mu.Unlock()
}

func (t *lockingTx) release() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.locked != nil {
		t.locked.Unlock()
		t.locked = nil
	}
}

func (t *lockingTx) Begin(context.Context) (pgx.Tx, error) { return t, nil }
func (t *lockingTx) Commit(context.Context) error          { t.release(); return nil }
func (t *lockingTx) Rollback(context.Context) error        { t.release(); return nil }
func (t *lockingTx) CopyFrom(context.Context, pgx.Identifier, []string, pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *lockingTx) SendBatch(context.Context, *pgx.Batch) pgx.BatchResults { return nil }
func (t *lockingTx) LargeObjects() pgx.LargeObjects                         { return pgx.LargeObjects{} }
func (t *lockingTx) Prepare(context.Context, string, string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *lockingTx) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag(""), nil
}
func (t *lockingTx) Query(context.Context, string, ...any) (pgx.Rows, error) { return nil, nil }
func (t *lockingTx) QueryRow(context.Context, string, ...any) pgx.Row        { return nil }
func (t *lockingTx) Conn() *pgx.Conn                                         { return nil }
