package service

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/storefront/shop-api/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byName    map[string]*domain.User
	nextID    uint
	createErr error
	findCalls int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byName: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	if _, exists := r.byName[user.Username]; exists {
		return nil, domain.ErrUserExists
	}
	r.nextID++
	stored := cloneUser(user)
	stored.ID = r.nextID
	stored.Version = 1
	r.byName[stored.Username] = stored
	return cloneUser(stored), nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.findCalls++
	u, ok := r.byName[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.byName))
	for _, u := range r.byName {
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	var current *domain.User
	for _, u := range r.byName {
		if u.ID == user.ID {
			current = u
		}
	}
	if current == nil {
		return nil, domain.ErrUserNotFound
	}
	if user.Version != 0 && user.Version != current.Version {
		return nil, domain.ErrConflict
	}
	if other, ok := r.byName[user.Username]; ok && other.ID != user.ID {
		return nil, domain.ErrUserExists
	}
	delete(r.byName, current.Username)
	stored := cloneUser(user)
	stored.Version = current.Version + 1
	r.byName[stored.Username] = stored
	return cloneUser(stored), nil
}

type stubCategoryRepo struct {
	rows      map[uint]*domain.Category
	nextID    uint
	deleteErr error
}

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{rows: make(map[uint]*domain.Category)}
}

func (r *stubCategoryRepo) List(_ context.Context) ([]*domain.Category, error) {
	out := make([]*domain.Category, 0, len(r.rows))
	for _, c := range r.rows {
		clone := *c
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubCategoryRepo) FindByID(_ context.Context, id uint) (*domain.Category, error) {
	c, ok := r.rows[id]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCategoryRepo) Create(_ context.Context, c *domain.Category) (*domain.Category, error) {
	r.nextID++
	stored := &domain.Category{ID: r.nextID, Title: c.Title, Version: 1}
	r.rows[stored.ID] = stored
	clone := *stored
	return &clone, nil
}

func (r *stubCategoryRepo) Update(_ context.Context, c *domain.Category) (*domain.Category, error) {
	current, ok := r.rows[c.ID]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	if c.Version != 0 && c.Version != current.Version {
		return nil, domain.ErrConflict
	}
	current.Title = c.Title
	current.Version++
	clone := *current
	return &clone, nil
}

func (r *stubCategoryRepo) Delete(_ context.Context, id uint) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	if _, ok := r.rows[id]; !ok {
		return domain.ErrCategoryNotFound
	}
	delete(r.rows, id)
	return nil
}

type stubProductRepo struct {
	rows   map[uint]*domain.Product
	nextID uint
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{rows: make(map[uint]*domain.Product)}
}

func (r *stubProductRepo) List(_ context.Context) ([]*domain.Product, error) {
	out := make([]*domain.Product, 0, len(r.rows))
	for _, p := range r.rows {
		clone := *p
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubProductRepo) ListByCategory(ctx context.Context, categoryID uint) ([]*domain.Product, error) {
	all, _ := r.List(ctx)
	out := make([]*domain.Product, 0)
	for _, p := range all {
		if p.CategoryID == categoryID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uint) (*domain.Product, error) {
	p, ok := r.rows[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProductRepo) Create(_ context.Context, p *domain.Product) (*domain.Product, error) {
	r.nextID++
	stored := *p
	stored.ID = r.nextID
	stored.Version = 1
	r.rows[stored.ID] = &stored
	clone := stored
	return &clone, nil
}

func (r *stubProductRepo) Update(_ context.Context, p *domain.Product) (*domain.Product, error) {
	current, ok := r.rows[p.ID]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	if p.Version != 0 && p.Version != current.Version {
		return nil, domain.ErrConflict
	}
	updated := *p
	updated.Version = current.Version + 1
	r.rows[p.ID] = &updated
	clone := updated
	return &clone, nil
}

func (r *stubProductRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.rows[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.rows, id)
	return nil
}

// ---------------------------------------------------------------------------
// Collaborator stubs
// ---------------------------------------------------------------------------

type stubCodec struct {
	issued []*domain.User
	err    error
}

func (c *stubCodec) Issue(user *domain.User) (string, error) {
	if c.err != nil {
		return "", c.err
	}
	c.issued = append(c.issued, cloneUser(user))
	return "token-for-" + user.Username, nil
}

func (c *stubCodec) Verify(string) (domain.Claims, error) {
	return domain.Claims{}, errors.New("not used")
}

type stubThrottle struct {
	failures map[string]int
	max      int
	resets   int
	err      error
}

func newStubThrottle(max int) *stubThrottle {
	return &stubThrottle{failures: make(map[string]int), max: max}
}

func (t *stubThrottle) Blocked(_ context.Context, username string) (bool, error) {
	if t.err != nil {
		return false, t.err
	}
	return t.failures[username] >= t.max, nil
}

func (t *stubThrottle) Fail(_ context.Context, username string) error {
	t.failures[username]++
	return nil
}

func (t *stubThrottle) Reset(_ context.Context, username string) error {
	t.resets++
	delete(t.failures, username)
	return nil
}

type captureRecorder struct {
	mu      sync.Mutex
	entries []domain.AuditEntry
}

func (r *captureRecorder) Record(_ context.Context, e domain.AuditEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, e)
}

func (r *captureRecorder) last() domain.AuditEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.entries) == 0 {
		return domain.AuditEntry{}
	}
	return r.entries[len(r.entries)-1]
}

type stubAuditRepo struct {
	entries   []*domain.AuditEntry
	lastLimit int
}

func (r *stubAuditRepo) Insert(_ context.Context, e *domain.AuditEntry) error {
	r.entries = append(r.entries, e)
	return nil
}

func (r *stubAuditRepo) Recent(_ context.Context, limit int) ([]*domain.AuditEntry, error) {
	r.lastLimit = limit
	if limit > len(r.entries) {
		limit = len(r.entries)
	}
	return r.entries[:limit], nil
}
