package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/homeharbor/harbor-api/internal/api/metrics"
	"github.com/homeharbor/harbor-api/internal/core/domain"
	"github.com/homeharbor/harbor-api/internal/core/ports"
)

// AuthConfig tunes token issuing and the simulated round trip of login.
type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
	// Latency is waited before login and restore resolve. Zero disables it.
	Latency time.Duration
}

// AuthService is the sole arbiter of who is signed in and with what role.
// It owns the process-wide session; the pending queue and approved list live
// in the repository but are only mutated through this type.
type AuthService struct {
	repo     ports.AccountRepository
	hasher   ports.PasswordHasher
	notifier ports.Notifier
	cfg      AuthConfig
	log      zerolog.Logger
	demo     []domain.User
	now      func() time.Time

	// loginMu keeps a single login or restore in flight.
	loginMu sync.Mutex
	// mu guards session and serialises every pending/approved mutation.
	mu      sync.Mutex
	session domain.Session
}

// NewAuthService builds the authority. The demo password is hashed once here.
// A nil notifier disables approval notices.
func NewAuthService(
	repo ports.AccountRepository,
	hasher ports.PasswordHasher,
	notifier ports.Notifier,
	cfg AuthConfig,
	log zerolog.Logger,
) (*AuthService, error) {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	if notifier == nil {
		notifier = discardNotifier{}
	}

	hash, err := hasher.Hash(domain.DemoPassword)
	if err != nil {
		return nil, fmt.Errorf("hash demo password: %w", err)
	}
	demo := domain.DemoAccounts()
	for i := range demo {
		demo[i].PasswordHash = hash
	}

	return &AuthService{
		repo:     repo,
		hasher:   hasher,
		notifier: notifier,
		cfg:      cfg,
		log:      log,
		demo:     demo,
		now:      time.Now,
	}, nil
}

// Login authenticates email/password and makes that account the current
// session. Checks run in order and the first match wins: pending request,
// approved account, demo account. A failed login leaves the session as it was.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	s.loginMu.Lock()
	defer s.loginMu.Unlock()

	s.setLoading(true)
	if err := s.simulateLatency(ctx); err != nil {
		s.setLoading(false)
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.Loading = false

	user, err := s.authenticate(ctx, email, password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(loginResult(err)).Inc()
		s.log.Info().Err(err).Str("email", email).Msg("login rejected")
		return nil, err
	}

	token, expiresAt, err := s.generateToken(user)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	s.session = domain.Session{
		User:          &user,
		Role:          user.Role,
		Authenticated: true,
		Token:         token,
		ExpiresAt:     expiresAt,
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("login succeeded")

	out := copySession(s.session)
	return &out, nil
}

func (s *AuthService) authenticate(ctx context.Context, email, password string) (domain.User, error) {
	_, err := s.repo.FindPendingByEmail(ctx, email)
	switch {
	case err == nil:
		return domain.User{}, domain.ErrPendingApproval
	case !errors.Is(err, domain.ErrUserNotFound):
		return domain.User{}, fmt.Errorf("login: find pending: %w", err)
	}

	approved, err := s.repo.FindApproved(ctx, email)
	if err != nil {
		return domain.User{}, fmt.Errorf("login: find approved: %w", err)
	}
	for _, u := range approved {
		if s.hasher.Compare(u.PasswordHash, password) {
			return u, nil
		}
	}

	for _, u := range s.demo {
		if u.Email == email && s.hasher.Compare(u.PasswordHash, password) {
			return u, nil
		}
	}

	return domain.User{}, domain.ErrInvalidCredentials
}

// Signup enqueues a request for admin approval. It never authenticates the
// caller and does not check the email against existing accounts.
func (s *AuthService) Signup(ctx context.Context, in ports.SignupInput) (*domain.PendingUser, error) {
	if !in.Role.CanSelfRegister() {
		return nil, domain.ErrInvalidRole
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("signup: hash password: %w", err)
	}
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("signup: generate id: %w", err)
	}

	pending := &domain.PendingUser{
		ID:              id.String(),
		Name:            in.Name,
		Email:           in.Email,
		ApartmentNumber: in.ApartmentNumber,
		Role:            in.Role,
		PasswordHash:    hash,
		RequestedAt:     s.now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.AddPending(ctx, pending); err != nil {
		return nil, fmt.Errorf("signup: %w", err)
	}

	metrics.SignupsTotal.WithLabelValues(string(in.Role)).Inc()
	metrics.PendingUsers.Inc()
	s.log.Info().Str("pending_id", pending.ID).Str("role", string(in.Role)).Msg("signup queued for approval")

	out := *pending
	return &out, nil
}

// ApproveUser promotes a pending request to an approved account. An unknown
// id is a no-op. The current session is not touched.
func (s *AuthService) ApproveUser(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pending, err := s.repo.TakePending(ctx, id)
	if errors.Is(err, domain.ErrUserNotFound) {
		s.log.Debug().Str("pending_id", id).Msg("approve: no pending request")
		return nil
	}
	if err != nil {
		return fmt.Errorf("approve user: %w", err)
	}

	user := pending.Approve()
	if err := s.repo.AddApproved(ctx, &user); err != nil {
		if restoreErr := s.repo.AddPending(ctx, pending); restoreErr != nil {
			s.log.Error().Err(restoreErr).Str("pending_id", id).Msg("approve: could not restore pending request")
		}
		return fmt.Errorf("approve user: %w", err)
	}

	metrics.ApprovalsTotal.WithLabelValues("approved").Inc()
	metrics.PendingUsers.Dec()
	s.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("signup approved")

	s.notifier.Enqueue(ports.NotificationInput{
		Recipient: user.Email,
		Title:     "Account Approved",
		Body:      fmt.Sprintf("Welcome %s, your %s account is ready. You can now log in.", user.Name, user.Role),
		Kind:      domain.KindAccount,
	})
	return nil
}

// RejectUser discards a pending request. An unknown id is a no-op.
func (s *AuthService) RejectUser(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pending, err := s.repo.TakePending(ctx, id)
	if errors.Is(err, domain.ErrUserNotFound) {
		s.log.Debug().Str("pending_id", id).Msg("reject: no pending request")
		return nil
	}
	if err != nil {
		return fmt.Errorf("reject user: %w", err)
	}

	metrics.ApprovalsTotal.WithLabelValues("rejected").Inc()
	metrics.PendingUsers.Dec()
	s.log.Info().Str("pending_id", id).Msg("signup rejected")

	s.notifier.Enqueue(ports.NotificationInput{
		Recipient: pending.Email,
		Title:     "Signup Declined",
		Body:      "Your account request was not approved. Please contact the building office.",
		Kind:      domain.KindAccount,
	})
	return nil
}

// Logout clears the current session. Calling it repeatedly is harmless.
func (s *AuthService) Logout(_ context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	loading := s.session.Loading
	s.session = domain.Session{Loading: loading}
}

// Restore is the start-up check for a stored session. Nothing is persisted,
// so after the simulated delay it always resolves to an unauthenticated session.
func (s *AuthService) Restore(ctx context.Context) (*domain.Session, error) {
	s.loginMu.Lock()
	defer s.loginMu.Unlock()

	s.setLoading(true)
	err := s.simulateLatency(ctx)
	s.setLoading(false)
	if err != nil {
		return nil, err
	}

	out := s.Session()
	return &out, nil
}

// Session returns a copy of the current session.
func (s *AuthService) Session() domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copySession(s.session)
}

// CurrentUser returns the signed-in account or nil.
func (s *AuthService) CurrentUser() *domain.User {
	return s.Session().User
}

// CurrentRole returns the signed-in role, empty when nobody is signed in.
func (s *AuthService) CurrentRole() domain.Role {
	return s.Session().Role
}

func (s *AuthService) IsAuthenticated() bool {
	return s.Session().Authenticated
}

func (s *AuthService) IsLoading() bool {
	return s.Session().Loading
}

// IsActiveToken reports whether token belongs to the current, unexpired session.
func (s *AuthService) IsActiveToken(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.Authenticated &&
		token != "" &&
		s.session.Token == token &&
		s.now().Before(s.session.ExpiresAt)
}

func (s *AuthService) PendingUsers(ctx context.Context) ([]domain.PendingUser, error) {
	return s.repo.ListPending(ctx)
}

func (s *AuthService) ApprovedUsers(ctx context.Context) ([]domain.User, error) {
	return s.repo.ListApproved(ctx)
}

func (s *AuthService) setLoading(v bool) {
	s.mu.Lock()
	s.session.Loading = v
	s.mu.Unlock()
}

func (s *AuthService) simulateLatency(ctx context.Context) error {
	if s.cfg.Latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(s.cfg.Latency)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (s *AuthService) generateToken(user domain.User) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.cfg.TokenTTL)
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"name":  user.Name,
		"role":  string(user.Role),
		"iat":   now.Unix(),
		"exp":   expiresAt.Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

func copySession(in domain.Session) domain.Session {
	out := in
	if in.User != nil {
		u := *in.User
		out.User = &u
	}
	return out
}

func loginResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrPendingApproval):
		return "pending"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid"
	default:
		return "error"
	}
}

type discardNotifier struct{}

func (discardNotifier) Enqueue(ports.NotificationInput) {}
