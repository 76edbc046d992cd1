package admin

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/baechuer/real-time-ressys/services/admin-service/internal/domain"
)

/*
Shared audit capture
*/

type auditEntry struct {
	action string
	fields map[string]string
}

type auditRecorder struct {
	mu      sync.Mutex
	entries []auditEntry
}

func (a *auditRecorder) record(action string, fields map[string]string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, auditEntry{action: action, fields: fields})
}

func (a *auditRecorder) last(t *testing.T) auditEntry {
	t.Helper()
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.entries) == 0 {
		t.Fatalf("expected at least one audit entry")
	}
	return a.entries[len(a.entries)-1]
}

/*
Fakes for ports
*/

type fakeUserRepo struct {
	mu sync.Mutex

	byID        map[string]domain.User
	credentials map[string]domain.Credential

	// injected errors (if set, method returns error)
	listErr          error
	getByIDErr       error
	getByEmailErr    error
	getByUsernameErr error
	createErr        error
	updateErr        error

	// record calls
	created []domain.User
	updated []domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:        map[string]domain.User{},
		credentials: map[string]domain.Credential{},
	}
}

func (f *fakeUserRepo) put(u domain.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[u.ID] = u
}

func (f *fakeUserRepo) List(ctx context.Context) ([]domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]domain.User, 0, len(f.byID))
	for _, u := range f.byID {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getByIDErr != nil {
		return domain.User{}, f.getByIDErr
	}
	u, ok := f.byID[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getByEmailErr != nil {
		return domain.User{}, f.getByEmailErr
	}
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrUserNotFound()
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getByUsernameErr != nil {
		return domain.User{}, f.getByUsernameErr
	}
	for _, u := range f.byID {
		if u.Username == username {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrUserNotFound()
}

func (f *fakeUserRepo) Create(ctx context.Context, u domain.User, c domain.Credential) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return domain.User{}, f.createErr
	}
	f.byID[u.ID] = u
	f.credentials[u.ID] = c
	f.created = append(f.created, u)
	return u, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, u domain.User) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.updateErr != nil {
		return domain.User{}, f.updateErr
	}
	prev, ok := f.byID[u.ID]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	u.CreatedAt = prev.CreatedAt
	f.byID[u.ID] = u
	f.updated = append(f.updated, u)
	return u, nil
}

type fakeRoleRepo struct {
	mu sync.Mutex

	byName map[string]domain.Role

	listErr      error
	getByNameErr error
	createErr    error
	deleteErr    error

	deleted []string
}

func newFakeRoleRepo() *fakeRoleRepo {
	return &fakeRoleRepo{byName: map[string]domain.Role{}}
}

func (f *fakeRoleRepo) put(r domain.Role) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byName[r.Name] = r
}

func (f *fakeRoleRepo) List(ctx context.Context) ([]domain.Role, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]domain.Role, 0, len(f.byName))
	for _, r := range f.byName {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeRoleRepo) GetByName(ctx context.Context, name string) (domain.Role, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getByNameErr != nil {
		return domain.Role{}, f.getByNameErr
	}
	r, ok := f.byName[name]
	if !ok {
		return domain.Role{}, domain.ErrRoleNotFound()
	}
	return r, nil
}

func (f *fakeRoleRepo) Create(ctx context.Context, r domain.Role) (domain.Role, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return domain.Role{}, f.createErr
	}
	f.byName[r.Name] = r
	return r, nil
}

func (f *fakeRoleRepo) Delete(ctx context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.byName[name]; !ok {
		return domain.ErrRoleNotFound()
	}
	delete(f.byName, name)
	f.deleted = append(f.deleted, name)
	return nil
}

type fakeHasher struct {
	hashFn func(pw string) (string, error)
}

func (f *fakeHasher) Hash(pw string) (string, error) {
	if f.hashFn != nil {
		return f.hashFn(pw)
	}
	return "hash:" + pw, nil
}

type fakePublisher struct {
	mu sync.Mutex

	userCreated []UserEvent
	userUpdated []UserEvent
	roleCreated []RoleEvent
	roleDeleted []RoleEvent
}

func (f *fakePublisher) PublishUserCreated(ctx context.Context, evt UserEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.userCreated = append(f.userCreated, evt)
	return nil
}

func (f *fakePublisher) PublishUserUpdated(ctx context.Context, evt UserEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.userUpdated = append(f.userUpdated, evt)
	return nil
}

func (f *fakePublisher) PublishRoleCreated(ctx context.Context, evt RoleEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.roleCreated = append(f.roleCreated, evt)
	return nil
}

func (f *fakePublisher) PublishRoleDeleted(ctx context.Context, evt RoleEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.roleDeleted = append(f.roleDeleted, evt)
	return nil
}

/*
Wiring
*/

func newSvcForTest(t *testing.T) (*Service, *fakeUserRepo, *fakeRoleRepo, *fakeHasher, *fakePublisher, *auditRecorder) {
	t.Helper()

	users := newFakeUserRepo()
	roles := newFakeRoleRepo()
	hasher := &fakeHasher{}
	pub := &fakePublisher{}
	audit := &auditRecorder{}

	svc := NewService(users, roles, hasher, pub).WithAudit(audit.record)
	return svc, users, roles, hasher, pub, audit
}

func requireDomainCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error code=%q, got nil", code)
	}
	if !domain.Is(err, code) {
		t.Fatalf("expected code=%q, got err=%v", code, err)
	}
}
