package users

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/userauth/internal/common"
	"github.com/dmitrijs2005/userauth/internal/server/models"
)

// MemoryRepository keeps users in process memory. Unique indexes on email,
// session id and reset token are maintained alongside the records.
type MemoryRepository struct {
	mu        sync.RWMutex
	nextID    int64
	byID      map[int64]*models.User
	byEmail   map[string]int64
	bySession map[string]int64
	byToken   map[string]int64
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:      make(map[int64]*models.User),
		byEmail:   make(map[string]int64),
		bySession: make(map[string]int64),
		byToken:   make(map[string]int64),
	}
}

func cloneUser(u *models.User) *models.User {
	c := *u
	if u.SessionID != nil {
		s := *u.SessionID
		c.SessionID = &s
	}
	if u.ResetToken != nil {
		t := *u.ResetToken
		c.ResetToken = &t
	}
	return &c
}

func (r *MemoryRepository) Create(ctx context.Context, email, hashedPassword string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[email]; ok {
		return nil, common.ErrorAlreadyExists
	}

	r.nextID++
	u := &models.User{
		ID:             r.nextID,
		Email:          email,
		HashedPassword: hashedPassword,
		CreatedAt:      time.Now().UTC(),
	}
	r.byID[u.ID] = u
	r.byEmail[email] = u.ID

	return cloneUser(u), nil
}

func (r *MemoryRepository) lookup(index map[string]int64, key string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := index[key]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return cloneUser(r.byID[id]), nil
}

func (r *MemoryRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return cloneUser(u), nil
}

func (r *MemoryRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.lookup(r.byEmail, email)
}

func (r *MemoryRepository) FindBySessionID(ctx context.Context, sessionID string) (*models.User, error) {
	return r.lookup(r.bySession, sessionID)
}

func (r *MemoryRepository) FindByResetToken(ctx context.Context, token string) (*models.User, error) {
	return r.lookup(r.byToken, token)
}

func (r *MemoryRepository) SetSessionID(ctx context.Context, id int64, sessionID *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	if sessionID != nil {
		if owner, taken := r.bySession[*sessionID]; taken && owner != id {
			return common.ErrorAlreadyExists
		}
	}

	if u.SessionID != nil {
		delete(r.bySession, *u.SessionID)
	}
	u.SessionID = nil
	if sessionID != nil {
		s := *sessionID
		u.SessionID = &s
		r.bySession[s] = id
	}
	return nil
}

func (r *MemoryRepository) SetResetToken(ctx context.Context, id int64, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	if owner, taken := r.byToken[token]; taken && owner != id {
		return common.ErrorAlreadyExists
	}

	if u.ResetToken != nil {
		delete(r.byToken, *u.ResetToken)
	}
	u.ResetToken = &token
	r.byToken[token] = id
	return nil
}

func (r *MemoryRepository) SetPasswordAndClearResetToken(ctx context.Context, id int64, token, hashedPassword string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok || u.ResetToken == nil || *u.ResetToken != token {
		return common.ErrorNotFound
	}

	delete(r.byToken, token)
	u.ResetToken = nil
	u.HashedPassword = hashedPassword
	return nil
}
