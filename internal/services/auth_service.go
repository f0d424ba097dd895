package services

import (
	"context"
	"strings"

	"github.com/anonto42/careerpulse/backend/internal/models"
	"github.com/anonto42/careerpulse/backend/internal/repositories"
	"github.com/anonto42/careerpulse/backend/pkg/firebase"
	"go.uber.org/zap"
)

// PasswordHasher is the credential store
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// TokenIssuer signs tokens for a user id
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// IdentityVerifier checks an ID token issued by an external identity provider
type IdentityVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*firebase.Identity, error)
}

// AuthService handles signup, login and profile edits
type AuthService struct {
	users      repositories.UserRepository
	hasher     PasswordHasher
	tokens     TokenIssuer
	identities IdentityVerifier
	log        *zap.Logger
	clock      Clock
}

// NewAuthService creates an AuthService. identities may be nil when no provider is configured.
func NewAuthService(users repositories.UserRepository, hasher PasswordHasher, tokens TokenIssuer, identities IdentityVerifier, log *zap.Logger, clock Clock) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens, identities: identities, log: log, clock: clock}
}

// NormalizeEmail trims and lower-cases an address before it is stored or looked up
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup creates a user and returns a token for it
func (s *AuthService) Signup(ctx context.Context, req models.SignupRequest) (*models.AuthResponse, error) {
	email := NormalizeEmail(req.Email)
	if _, err := s.users.GetUserByEmail(ctx, email); err == nil {
		return nil, models.NewInvalidRequestError("Email already registered")
	} else if models.KindOf(err) != models.KindNotFound {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:        s.clock.NewID(),
		Email:     email,
		Name:      strings.TrimSpace(req.Name),
		Password:  hash,
		Headline:  req.Headline,
		Following: []string{},
		Followers: []string{},
		Bookmarks: []string{},
		CreatedAt: models.NewTimestamp(s.clock.Now()),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	s.log.Info("User signed up", zap.String("user_id", user.ID))
	return s.respond(user)
}

// Login verifies credentials. Unknown email and wrong password fail identically.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	invalid := models.NewUnauthenticatedError("Invalid email or password")

	user, err := s.users.GetUserByEmail(ctx, NormalizeEmail(req.Email))
	if err != nil {
		if models.KindOf(err) == models.KindNotFound {
			return nil, invalid
		}
		return nil, err
	}
	if !s.hasher.Verify(req.Password, user.Password) {
		return nil, invalid
	}
	return s.respond(user)
}

// FirebaseLogin exchanges a verified provider ID token for a local token,
// creating a password-less user on first sight of the email. The provider must
// have verified the email, and an account that has a password is never linked.
func (s *AuthService) FirebaseLogin(ctx context.Context, idToken string) (*models.AuthResponse, error) {
	if s.identities == nil {
		return nil, models.NewNotFoundError("Identity provider")
	}
	identity, err := s.identities.VerifyIDToken(ctx, idToken)
	if err != nil {
		s.log.Info("Firebase token rejected", zap.Error(err))
		return nil, models.NewUnauthenticatedError("Invalid Firebase ID token")
	}

	if !identity.EmailVerified {
		return nil, models.NewUnauthenticatedError("Firebase email not verified")
	}

	email := NormalizeEmail(identity.Email)
	user, err := s.users.GetUserByEmail(ctx, email)
	if err == nil {
		if user.Password != "" {
			s.log.Warn("Firebase login refused for password account", zap.String("user_id", user.ID), zap.String("firebase_uid", identity.UID))
			return nil, models.NewConflictError("Email already registered, log in with your password")
		}
		return s.respond(user)
	}
	if models.KindOf(err) != models.KindNotFound {
		return nil, err
	}

	name := identity.Name
	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}
	user = &models.User{
		ID:        s.clock.NewID(),
		Email:     email,
		Name:      name,
		Avatar:    identity.Picture,
		Following: []string{},
		Followers: []string{},
		Bookmarks: []string{},
		CreatedAt: models.NewTimestamp(s.clock.Now()),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	s.log.Info("User created from Firebase identity", zap.String("user_id", user.ID))
	return s.respond(user)
}

// UpdateProfile sets the provided profile fields of user
func (s *AuthService) UpdateProfile(ctx context.Context, user *models.User, req models.UpdateProfileRequest) (*models.User, error) {
	return s.users.UpdateProfile(ctx, user.ID, req.Fields())
}

func (s *AuthService) respond(user *models.User) (*models.AuthResponse, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{Token: token, User: user}, nil
}
