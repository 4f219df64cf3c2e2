package service

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/homeharbor/harbor-api/internal/core/domain"
	"github.com/homeharbor/harbor-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubAccountRepo struct {
	pending  []domain.PendingUser
	approved []domain.User
	addErr   error
}

func (r *stubAccountRepo) AddPending(_ context.Context, p *domain.PendingUser) error {
	r.pending = append(r.pending, *p)
	return nil
}

func (r *stubAccountRepo) FindPendingByEmail(_ context.Context, email string) (*domain.PendingUser, error) {
	for _, p := range r.pending {
		if p.Email == email {
			clone := p
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubAccountRepo) TakePending(_ context.Context, id string) (*domain.PendingUser, error) {
	for i, p := range r.pending {
		if p.ID == id {
			r.pending = append(r.pending[:i:i], r.pending[i+1:]...)
			return &p, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubAccountRepo) ListPending(_ context.Context) ([]domain.PendingUser, error) {
	return append([]domain.PendingUser(nil), r.pending...), nil
}

func (r *stubAccountRepo) AddApproved(_ context.Context, u *domain.User) error {
	if r.addErr != nil {
		return r.addErr
	}
	r.approved = append(r.approved, *u)
	return nil
}

func (r *stubAccountRepo) FindApproved(_ context.Context, email string) ([]domain.User, error) {
	var out []domain.User
	for _, u := range r.approved {
		if u.Email == email {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *stubAccountRepo) ListApproved(_ context.Context) ([]domain.User, error) {
	return append([]domain.User(nil), r.approved...), nil
}

// plainHasher keeps tests fast; the bcrypt adapter has its own tests.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }
func (plainHasher) Compare(hash, password string) bool   { return hash == "hashed:"+password }

type recordingNotifier struct {
	mu   sync.Mutex
	sent []ports.NotificationInput
}

func (n *recordingNotifier) Enqueue(in ports.NotificationInput) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, in)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func newAuthSvc(t *testing.T, repo *stubAccountRepo, notifier ports.Notifier) *AuthService {
	t.Helper()
	svc, err := NewAuthService(repo, plainHasher{}, notifier, AuthConfig{JWTSecret: "secret", TokenTTL: time.Hour}, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewAuthService: %v", err)
	}
	return svc
}

func signupResident(t *testing.T, svc *AuthService, email string) *domain.PendingUser {
	t.Helper()
	p, err := svc.Signup(context.Background(), ports.SignupInput{
		Name:            "Ada Tenant",
		Email:           email,
		Password:        "pw",
		ApartmentNumber: "101",
		Role:            domain.RoleResident,
	})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	return p
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestAuthService_Login_DemoAccounts(t *testing.T) {
	cases := []struct {
		email string
		role  domain.Role
		name  string
	}{
		{"admin@example.com", domain.RoleAdmin, "Admin User"},
		{"resident@example.com", domain.RoleResident, "John Resident"},
		{"staff@example.com", domain.RoleStaff, "Staff Member"},
	}

	for _, tc := range cases {
		t.Run(string(tc.role), func(t *testing.T) {
			svc := newAuthSvc(t, &stubAccountRepo{}, nil)

			sess, err := svc.Login(context.Background(), tc.email, domain.DemoPassword)
			if err != nil {
				t.Fatalf("login: %v", err)
			}
			if !sess.Authenticated || sess.Role != tc.role {
				t.Fatalf("unexpected session: %+v", sess)
			}
			if sess.User == nil || sess.User.Name != tc.name {
				t.Fatalf("unexpected user: %+v", sess.User)
			}
			if svc.CurrentRole() != tc.role || !svc.IsAuthenticated() {
				t.Fatalf("observers not updated")
			}
		})
	}
}

func TestAuthService_Login_DemoResidentHasApartment(t *testing.T) {
	svc := newAuthSvc(t, &stubAccountRepo{}, nil)

	sess, err := svc.Login(context.Background(), "resident@example.com", domain.DemoPassword)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if sess.User.ApartmentNumber != "304" {
		t.Fatalf("expected apartment 304, got %q", sess.User.ApartmentNumber)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc := newAuthSvc(t, &stubAccountRepo{}, nil)

	for _, pw := range []string{"", "x", domain.DemoPassword} {
		if _, err := svc.Login(context.Background(), "ghost@example.com", pw); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("password %q: expected ErrInvalidCredentials, got %v", pw, err)
		}
	}
	if svc.IsAuthenticated() {
		t.Fatalf("session must stay unauthenticated")
	}
}

func TestAuthService_Login_DemoWrongPassword(t *testing.T) {
	svc := newAuthSvc(t, &stubAccountRepo{}, nil)

	if _, err := svc.Login(context.Background(), "admin@example.com", "nope"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_PendingSignup(t *testing.T) {
	repo := &stubAccountRepo{}
	svc := newAuthSvc(t, repo, nil)
	signupResident(t, svc, "a@b.com")

	if _, err := svc.Login(context.Background(), "a@b.com", "pw"); !errors.Is(err, domain.ErrPendingApproval) {
		t.Fatalf("expected ErrPendingApproval, got %v", err)
	}
	// Pending wins even with a wrong password.
	if _, err := svc.Login(context.Background(), "a@b.com", "wrong"); !errors.Is(err, domain.ErrPendingApproval) {
		t.Fatalf("expected ErrPendingApproval, got %v", err)
	}
	if svc.IsAuthenticated() {
		t.Fatalf("session must stay unauthenticated")
	}
}

func TestAuthService_Login_PendingShadowsDemoAccount(t *testing.T) {
	svc := newAuthSvc(t, &stubAccountRepo{}, nil)
	signupResident(t, svc, "admin@example.com")

	if _, err := svc.Login(context.Background(), "admin@example.com", domain.DemoPassword); !errors.Is(err, domain.ErrPendingApproval) {
		t.Fatalf("expected ErrPendingApproval, got %v", err)
	}
}

func TestAuthService_ApproveThenLogin(t *testing.T) {
	repo := &stubAccountRepo{}
	notifier := &recordingNotifier{}
	svc := newAuthSvc(t, repo, notifier)
	p := signupResident(t, svc, "a@b.com")

	pendingBefore, _ := svc.PendingUsers(context.Background())
	approvedBefore, _ := svc.ApprovedUsers(context.Background())

	if err := svc.ApproveUser(context.Background(), p.ID); err != nil {
		t.Fatalf("approve: %v", err)
	}

	pendingAfter, _ := svc.PendingUsers(context.Background())
	approvedAfter, _ := svc.ApprovedUsers(context.Background())
	if len(pendingAfter) != len(pendingBefore)-1 {
		t.Fatalf("pending: expected %d, got %d", len(pendingBefore)-1, len(pendingAfter))
	}
	if len(approvedAfter) != len(approvedBefore)+1 {
		t.Fatalf("approved: expected %d, got %d", len(approvedBefore)+1, len(approvedAfter))
	}
	if svc.IsAuthenticated() {
		t.Fatalf("approve must not log anyone in")
	}

	sess, err := svc.Login(context.Background(), "a@b.com", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	u := sess.User
	if u.ID != p.ID || u.Name != "Ada Tenant" || u.Email != "a@b.com" || u.ApartmentNumber != "101" || u.Role != domain.RoleResident {
		t.Fatalf("round trip mismatch: %+v", u)
	}
	if sess.Role != domain.RoleResident {
		t.Fatalf("expected resident role, got %s", sess.Role)
	}

	if len(notifier.sent) != 1 || notifier.sent[0].Recipient != "a@b.com" || notifier.sent[0].Title != "Account Approved" {
		t.Fatalf("unexpected notifications: %+v", notifier.sent)
	}
}

func TestAuthService_ApproveDoesNotTouchAdminSession(t *testing.T) {
	svc := newAuthSvc(t, &stubAccountRepo{}, nil)
	p := signupResident(t, svc, "a@b.com")

	if _, err := svc.Login(context.Background(), "admin@example.com", domain.DemoPassword); err != nil {
		t.Fatalf("admin login: %v", err)
	}
	if err := svc.ApproveUser(context.Background(), p.ID); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if svc.CurrentRole() != domain.RoleAdmin {
		t.Fatalf("admin session changed: %s", svc.CurrentRole())
	}
}

func TestAuthService_Login_ApprovedWrongPassword(t *testing.T) {
	svc := newAuthSvc(t, &stubAccountRepo{}, nil)
	p := signupResident(t, svc, "a@b.com")
	_ = svc.ApproveUser(context.Background(), p.ID)

	if _, err := svc.Login(context.Background(), "a@b.com", "bad"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_RejectThenLogin(t *testing.T) {
	repo := &stubAccountRepo{}
	notifier := &recordingNotifier{}
	svc := newAuthSvc(t, repo, notifier)
	p := signupResident(t, svc, "a@b.com")

	if err := svc.RejectUser(context.Background(), p.ID); err != nil {
		t.Fatalf("reject: %v", err)
	}
	if len(repo.pending) != 0 || len(repo.approved) != 0 {
		t.Fatalf("expected empty collections, got %d pending %d approved", len(repo.pending), len(repo.approved))
	}
	if _, err := svc.Login(context.Background(), "a@b.com", "pw"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if len(notifier.sent) != 1 || notifier.sent[0].Title != "Signup Declined" {
		t.Fatalf("unexpected notifications: %+v", notifier.sent)
	}
}

func TestAuthService_ApproveReject_UnknownIDIsNoop(t *testing.T) {
	repo := &stubAccountRepo{}
	notifier := &recordingNotifier{}
	svc := newAuthSvc(t, repo, notifier)
	signupResident(t, svc, "a@b.com")

	if err := svc.ApproveUser(context.Background(), "missing"); err != nil {
		t.Fatalf("approve unknown: %v", err)
	}
	if err := svc.RejectUser(context.Background(), "missing"); err != nil {
		t.Fatalf("reject unknown: %v", err)
	}
	if len(repo.pending) != 1 || len(repo.approved) != 0 || len(notifier.sent) != 0 {
		t.Fatalf("state changed on unknown id")
	}
}

func TestAuthService_Approve_RestoresPendingOnStoreFailure(t *testing.T) {
	repo := &stubAccountRepo{}
	svc := newAuthSvc(t, repo, nil)
	p := signupResident(t, svc, "a@b.com")
	repo.addErr = errors.New("disk full")

	if err := svc.ApproveUser(context.Background(), p.ID); err == nil {
		t.Fatalf("expected error")
	}
	if len(repo.pending) != 1 || repo.pending[0].ID != p.ID {
		t.Fatalf("pending request lost: %+v", repo.pending)
	}
}

func TestAuthService_Signup_RejectsAdminRole(t *testing.T) {
	repo := &stubAccountRepo{}
	svc := newAuthSvc(t, repo, nil)

	for _, role := range []domain.Role{domain.RoleAdmin, "", "janitor"} {
		_, err := svc.Signup(context.Background(), ports.SignupInput{Name: "x", Email: "x@y.z", Password: "pw", Role: role})
		if !errors.Is(err, domain.ErrInvalidRole) {
			t.Fatalf("role %q: expected ErrInvalidRole, got %v", role, err)
		}
	}
	if len(repo.pending) != 0 {
		t.Fatalf("nothing should be queued")
	}
}

func TestAuthService_Signup_DoesNotAuthenticate(t *testing.T) {
	svc := newAuthSvc(t, &stubAccountRepo{}, nil)
	p := signupResident(t, svc, "a@b.com")

	if svc.IsAuthenticated() {
		t.Fatalf("signup must not authenticate")
	}
	if p.ID == "" || p.PasswordHash == "pw" {
		t.Fatalf("unexpected pending record: %+v", p)
	}
}

func TestAuthService_Signup_AllowsDuplicateEmails(t *testing.T) {
	repo := &stubAccountRepo{}
	svc := newAuthSvc(t, repo, nil)
	a := signupResident(t, svc, "a@b.com")
	b := signupResident(t, svc, "a@b.com")

	if a.ID == b.ID {
		t.Fatalf("ids must differ")
	}
	if len(repo.pending) != 2 {
		t.Fatalf("expected 2 pending, got %d", len(repo.pending))
	}
}

func TestAuthService_Logout_Idempotent(t *testing.T) {
	svc := newAuthSvc(t, &stubAccountRepo{}, nil)
	sess, err := svc.Login(context.Background(), "staff@example.com", domain.DemoPassword)
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	svc.Logout(context.Background())
	first := svc.Session()
	svc.Logout(context.Background())
	second := svc.Session()

	if first.Authenticated || first.User != nil || first.Role != "" {
		t.Fatalf("logout left state: %+v", first)
	}
	if first != second {
		t.Fatalf("second logout changed state: %+v vs %+v", first, second)
	}
	if svc.IsActiveToken(sess.Token) {
		t.Fatalf("token must be inactive after logout")
	}
}

func TestAuthService_FailedLoginKeepsExistingSession(t *testing.T) {
	svc := newAuthSvc(t, &stubAccountRepo{}, nil)
	if _, err := svc.Login(context.Background(), "admin@example.com", domain.DemoPassword); err != nil {
		t.Fatalf("login: %v", err)
	}

	_, _ = svc.Login(context.Background(), "ghost@example.com", "x")

	if svc.CurrentRole() != domain.RoleAdmin {
		t.Fatalf("session lost on failed login")
	}
}

func TestAuthService_Login_TokenClaims(t *testing.T) {
	svc := newAuthSvc(t, &stubAccountRepo{}, nil)

	sess, err := svc.Login(context.Background(), "admin@example.com", domain.DemoPassword)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if !svc.IsActiveToken(sess.Token) {
		t.Fatalf("expected active token")
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(sess.Token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["role"] != "admin" || claims["email"] != "admin@example.com" || claims["sub"] != "1" {
		t.Fatalf("unexpected claims: %v", claims)
	}
}

func TestAuthService_Login_ReplacesSessionToken(t *testing.T) {
	svc := newAuthSvc(t, &stubAccountRepo{}, nil)
	first, _ := svc.Login(context.Background(), "admin@example.com", domain.DemoPassword)
	second, _ := svc.Login(context.Background(), "staff@example.com", domain.DemoPassword)

	if svc.IsActiveToken(first.Token) {
		t.Fatalf("previous token must be inactive")
	}
	if !svc.IsActiveToken(second.Token) {
		t.Fatalf("new token must be active")
	}
}

func TestAuthService_Login_LoadingDuringLatency(t *testing.T) {
	repo := &stubAccountRepo{}
	svc, err := NewAuthService(repo, plainHasher{}, nil, AuthConfig{JWTSecret: "s", Latency: 200 * time.Millisecond}, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewAuthService: %v", err)
	}

	done := make(chan error, 1)
	go func() {
		_, err := svc.Login(context.Background(), "admin@example.com", domain.DemoPassword)
		done <- err
	}()

	deadline := time.Now().Add(150 * time.Millisecond)
	for !svc.IsLoading() && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if !svc.IsLoading() {
		t.Fatalf("expected loading during simulated latency")
	}

	if err := <-done; err != nil {
		t.Fatalf("login: %v", err)
	}
	if svc.IsLoading() {
		t.Fatalf("loading must be cleared once login resolves")
	}
}

func TestAuthService_Login_ContextCancelled(t *testing.T) {
	svc, err := NewAuthService(&stubAccountRepo{}, plainHasher{}, nil, AuthConfig{JWTSecret: "s", Latency: time.Minute}, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewAuthService: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if _, err := svc.Login(ctx, "admin@example.com", domain.DemoPassword); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected DeadlineExceeded, got %v", err)
	}
	if svc.IsAuthenticated() || svc.IsLoading() {
		t.Fatalf("unexpected session after cancel: %+v", svc.Session())
	}
}

func TestAuthService_Restore_AlwaysUnauthenticated(t *testing.T) {
	svc := newAuthSvc(t, &stubAccountRepo{}, nil)

	sess, err := svc.Restore(context.Background())
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if sess.Authenticated || sess.User != nil || sess.Loading {
		t.Fatalf("unexpected restored session: %+v", sess)
	}
}

func TestAuthService_ConcurrentApprovals(t *testing.T) {
	repo := &stubAccountRepo{}
	svc := newAuthSvc(t, repo, nil)

	const n = 50
	ids := make([]string, n)
	for i := 0; i < n; i++ {
		ids[i] = signupResident(t, svc, "u"+strconv.Itoa(i)+"@example.com").ID
	}

	var g errgroup.Group
	for _, id := range ids {
		id := id
		// Each id is approved twice; the second call must be a no-op.
		g.Go(func() error { return svc.ApproveUser(context.Background(), id) })
		g.Go(func() error { return svc.ApproveUser(context.Background(), id) })
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("approve: %v", err)
	}

	if len(repo.pending) != 0 {
		t.Fatalf("expected no pending, got %d", len(repo.pending))
	}
	if len(repo.approved) != n {
		t.Fatalf("expected %d approved, got %d", n, len(repo.approved))
	}
}
