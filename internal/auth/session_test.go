package auth

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/propdesk/property-api/internal/model"
)

// fakeStore is an in-memory UserStore with the same conditional-update
// semantics as the SQL repository.
type fakeStore struct {
	mu    sync.Mutex
	seq   uint64
	users map[uint64]*model.User
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: map[uint64]*model.User{}}
}

func (s *fakeStore) Create(_ context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return ErrEmailTaken
		}
	}
	s.seq++
	u.ID = s.seq
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *fakeStore) GetByEmail(_ context.Context, email string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return *u, nil
		}
	}
	return model.User{}, ErrUserNotFound
}

func (s *fakeStore) GetByID(_ context.Context, id uint64) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		return *u, nil
	}
	return model.User{}, ErrUserNotFound
}

func (s *fakeStore) GetByRefreshToken(_ context.Context, token string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token == "" {
		return model.User{}, ErrUserNotFound
	}
	for _, u := range s.users {
		if u.RefreshToken == token {
			return *u, nil
		}
	}
	return model.User{}, ErrUserNotFound
}

func (s *fakeStore) SetRefreshToken(_ context.Context, userID uint64, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return ErrUserNotFound
	}
	u.RefreshToken = token
	return nil
}

func (s *fakeStore) RotateRefreshToken(_ context.Context, userID uint64, old, next string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok || u.RefreshToken != old {
		return ErrStaleToken
	}
	u.RefreshToken = next
	return nil
}

func (s *fakeStore) ClearRefreshToken(_ context.Context, userID uint64, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok || u.RefreshToken != token {
		return ErrStaleToken
	}
	u.RefreshToken = ""
	return nil
}

func testManager() (*Manager, *fakeStore) {
	store := newFakeStore()
	m := NewManager(Config{
		AccessSecret:   "test-access-secret",
		RefreshSecret:  "test-refresh-secret",
		AccessTTLMin:   15,
		RefreshTTLDays: 7,
		BcryptCost:     4, // minimum cost keeps the suite fast
	}, store)
	return m, store
}

func signupAlice(t *testing.T, m *Manager) Result {
	t.Helper()
	res, err := m.Signup(context.Background(), SignupInput{
		Email:     "a@b.com",
		Password:  "Secret1",
		FirstName: "Alice",
		LastName:  "Baker",
	})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	return res
}

func TestSignupIssuesSessionAndDefaultsRole(t *testing.T) {
	m, store := testManager()
	res := signupAlice(t, m)

	if res.AccessToken == "" || res.RefreshToken == "" {
		t.Fatal("expected non-empty token pair")
	}
	if res.User.Role != model.RoleTenant {
		t.Fatalf("role = %q, want %q", res.User.Role, model.RoleTenant)
	}
	u, err := store.GetByID(context.Background(), res.User.ID)
	if err != nil {
		t.Fatalf("load user: %v", err)
	}
	if u.RefreshToken != res.RefreshToken {
		t.Fatal("stored refresh token does not match the issued one")
	}
	if u.PasswordHash == "Secret1" {
		t.Fatal("password stored in plaintext")
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	m, _ := testManager()
	signupAlice(t, m)

	_, err := m.Signup(context.Background(), SignupInput{
		Email: "A@B.com", Password: "Other12", FirstName: "A", LastName: "B",
	})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("err = %v, want ErrEmailTaken", err)
	}
}

func TestLoginRotatesSessionAndStalesOldToken(t *testing.T) {
	m, _ := testManager()
	signup := signupAlice(t, m)

	login, err := m.Login(context.Background(), "a@b.com", "Secret1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if login.RefreshToken == signup.RefreshToken {
		t.Fatal("login must issue a refresh token distinct from signup's")
	}

	// The signup-era token no longer matches the stored value.
	if _, err := m.Refresh(context.Background(), signup.RefreshToken); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("refresh with stale token: err = %v, want ErrInvalidToken", err)
	}
	if _, err := m.Refresh(context.Background(), login.RefreshToken); err != nil {
		t.Fatalf("refresh with current token: %v", err)
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	m, store := testManager()
	res := signupAlice(t, m)

	if _, err := m.Login(context.Background(), "a@b.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := m.Login(context.Background(), "nobody@b.com", "Secret1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email: err = %v, want ErrInvalidCredentials", err)
	}

	store.mu.Lock()
	store.users[res.User.ID].IsActive = false
	store.mu.Unlock()
	if _, err := m.Login(context.Background(), "a@b.com", "Secret1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("inactive account: err = %v, want ErrInvalidCredentials", err)
	}
}

func TestRefreshRotationIsSingleUse(t *testing.T) {
	m, _ := testManager()
	res := signupAlice(t, m)

	first, err := m.Refresh(context.Background(), res.RefreshToken)
	if err != nil {
		t.Fatalf("first refresh: %v", err)
	}
	if first.RefreshToken == res.RefreshToken {
		t.Fatal("refresh must rotate the token")
	}

	if _, err := m.Refresh(context.Background(), res.RefreshToken); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("replayed token: err = %v, want ErrInvalidToken", err)
	}
	if _, err := m.Refresh(context.Background(), first.RefreshToken); err != nil {
		t.Fatalf("rotated token: %v", err)
	}
}

func TestRefreshRejectsForgedAndExpiredTokens(t *testing.T) {
	m, store := testManager()
	res := signupAlice(t, m)

	if _, err := m.Refresh(context.Background(), "not-a-jwt"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("garbage token: err = %v, want ErrInvalidToken", err)
	}

	// Signed with the access secret instead of the refresh secret.
	forged, err := NewRefreshToken("test-access-secret", res.User.ID, 7)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.Refresh(context.Background(), forged); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("wrong-secret token: err = %v, want ErrInvalidToken", err)
	}

	// Properly signed but already expired; plant it as the stored value so
	// only expiry can be the reason for rejection.
	expired, err := NewRefreshToken("test-refresh-secret", res.User.ID, -1)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.SetRefreshToken(context.Background(), res.User.ID, expired); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Refresh(context.Background(), expired); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expired token: err = %v, want ErrInvalidToken", err)
	}
}

func TestRefreshRejectsInactiveUser(t *testing.T) {
	m, store := testManager()
	res := signupAlice(t, m)

	store.mu.Lock()
	store.users[res.User.ID].IsActive = false
	store.mu.Unlock()

	if _, err := m.Refresh(context.Background(), res.RefreshToken); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
}

func TestLogoutClearsSessionAndIsIdempotent(t *testing.T) {
	m, store := testManager()
	res := signupAlice(t, m)

	if err := m.Logout(context.Background(), res.RefreshToken); err != nil {
		t.Fatalf("logout: %v", err)
	}
	u, err := store.GetByID(context.Background(), res.User.ID)
	if err != nil {
		t.Fatal(err)
	}
	if u.RefreshToken != "" {
		t.Fatal("logout must clear the stored refresh token")
	}
	if _, err := m.Refresh(context.Background(), res.RefreshToken); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("refresh after logout: err = %v, want ErrInvalidToken", err)
	}

	// Second logout with the same token: nothing to end, still success.
	if err := m.Logout(context.Background(), res.RefreshToken); err != nil {
		t.Fatalf("repeated logout: %v", err)
	}
	if err := m.Logout(context.Background(), "never-issued"); err != nil {
		t.Fatalf("logout with unknown token: %v", err)
	}
}

func TestConcurrentRefreshExactlyOneWins(t *testing.T) {
	m, _ := testManager()
	res := signupAlice(t, m)

	const callers = 2
	errs := make(chan error, callers)
	var start sync.WaitGroup
	start.Add(1)
	for i := 0; i < callers; i++ {
		go func() {
			start.Wait()
			_, err := m.Refresh(context.Background(), res.RefreshToken)
			errs <- err
		}()
	}
	start.Done()

	var ok, rejected int
	for i := 0; i < callers; i++ {
		switch err := <-errs; {
		case err == nil:
			ok++
		case errors.Is(err, ErrInvalidToken):
			rejected++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if ok != 1 || rejected != 1 {
		t.Fatalf("got %d successes and %d rejections, want exactly 1 and 1", ok, rejected)
	}
}
