package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/anonto42/faithconnect/backend/internal/apperr"
	"github.com/anonto42/faithconnect/backend/internal/models"
	"github.com/anonto42/faithconnect/backend/internal/repositories"
	"github.com/anonto42/faithconnect/backend/internal/tokens"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/cases"
	"gorm.io/gorm"
)

// IDTokenVerifier is the slice of the Firebase auth client used here.
type IDTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

type AuthService struct {
	users    repositories.UserRepository
	issuer   *tokens.Issuer
	verifier IDTokenVerifier
	log      *slog.Logger
}

// NewAuthService builds the service; verifier may be nil when Firebase is
// not configured.
func NewAuthService(users repositories.UserRepository, issuer *tokens.Issuer, verifier IDTokenVerifier, log *slog.Logger) *AuthService {
	return &AuthService{users: users, issuer: issuer, verifier: verifier, log: log}
}

// NormalizeEmail trims and case-folds an address.
func NormalizeEmail(email string) string {
	return cases.Fold().String(strings.TrimSpace(email))
}

func (s *AuthService) Signup(ctx context.Context, req *models.SignupRequest) (*models.TokenResponse, error) {
	email := NormalizeEmail(req.Email)
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperr.Validation("name cannot be empty")
	}
	if !req.Role.Valid() {
		return nil, apperr.Validation("role must be one of: worshiper, leader")
	}
	faith := trimmedOrNil(req.Faith)
	if req.Role == models.RoleWorshiper && faith == nil {
		return nil, apperr.Validation("faith is required for worshipers")
	}

	if _, err := s.users.GetUserByEmail(ctx, email); err == nil {
		return nil, apperr.Conflict("Email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.FromStore(err, "User not found")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Internal("Failed to hash password", err)
	}

	user := &models.User{
		Email:        email,
		Password:     string(hash),
		Name:         name,
		Role:         req.Role,
		Faith:        faith,
		Bio:          trimmedOrNil(req.Bio),
		ProfilePhoto: trimmedOrNil(req.ProfilePhoto),
		IsActive:     true,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if apperr.KindOf(apperr.FromStore(err, "")) == apperr.KindConflict {
			return nil, apperr.Conflict("Email already registered")
		}
		return nil, apperr.FromStore(err, "User not found")
	}
	s.log.Info("user registered", "user_id", user.ID, "role", user.Role)
	return s.token(user)
}

func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.TokenResponse, error) {
	user, err := s.users.GetUserByEmail(ctx, NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Unauthorized("Incorrect email or password")
		}
		return nil, apperr.FromStore(err, "User not found")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return nil, apperr.Unauthorized("Incorrect email or password")
	}
	if !user.IsActive {
		return nil, apperr.Forbidden("Account is inactive")
	}
	return s.token(user)
}

// FirebaseLogin verifies a Firebase ID token, links it to an existing
// account by email or creates a new worshiper, and issues a local token.
func (s *AuthService) FirebaseLogin(ctx context.Context, idToken string) (*models.TokenResponse, error) {
	if s.verifier == nil {
		return nil, apperr.Validation("Firebase login is not configured")
	}
	fbToken, err := s.verifier.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid Firebase token")
	}

	user, err := s.users.GetUserByFirebaseUID(ctx, fbToken.UID)
	if err == nil {
		return s.activeToken(user)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.FromStore(err, "User not found")
	}

	email, _ := fbToken.Claims["email"].(string)
	email = NormalizeEmail(email)
	if email == "" {
		return nil, apperr.Validation("Firebase account has no email")
	}
	uid := fbToken.UID

	user, err = s.users.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		user.FirebaseUID = &uid
		if err := s.users.UpdateUser(ctx, user); err != nil {
			return nil, apperr.FromStore(err, "User not found")
		}
		return s.activeToken(user)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, apperr.FromStore(err, "User not found")
	}

	name, _ := fbToken.Claims["name"].(string)
	if strings.TrimSpace(name) == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Internal("Failed to hash password", err)
	}
	user = &models.User{
		Email:       email,
		Password:    string(hash),
		Name:        strings.TrimSpace(name),
		Role:        models.RoleWorshiper,
		FirebaseUID: &uid,
		IsActive:    true,
	}
	if picture, ok := fbToken.Claims["picture"].(string); ok && picture != "" {
		user.ProfilePhoto = &picture
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, apperr.FromStore(err, "User not found")
	}
	s.log.Info("user registered via firebase", "user_id", user.ID)
	return s.token(user)
}

// Authenticate resolves a bearer token to an active user.
func (s *AuthService) Authenticate(ctx context.Context, bearer string) (*models.User, error) {
	claims, err := s.issuer.Parse(bearer)
	if err != nil {
		return nil, apperr.Unauthorized("Could not validate credentials")
	}
	id, _ := claims.UserID()
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Unauthorized("Could not validate credentials")
		}
		return nil, apperr.FromStore(err, "User not found")
	}
	if !user.IsActive {
		return nil, apperr.Unauthorized("Inactive user")
	}
	return user, nil
}

// UpdateProfile changes only the fields present in req.
func (s *AuthService) UpdateProfile(ctx context.Context, user *models.User, req *models.UpdateProfileRequest) (*models.User, error) {
	if req.Faith != nil {
		faith := trimmedOrNil(req.Faith)
		if faith == nil && user.IsWorshiper() {
			return nil, apperr.Validation("faith is required for worshipers")
		}
		user.Faith = faith
	}
	if req.Bio != nil {
		user.Bio = trimmedOrNil(req.Bio)
	}
	if req.ProfilePhoto != nil {
		user.ProfilePhoto = trimmedOrNil(req.ProfilePhoto)
	}
	if err := s.users.UpdateUser(ctx, user); err != nil {
		return nil, apperr.FromStore(err, "User not found")
	}
	return user, nil
}

func (s *AuthService) activeToken(user *models.User) (*models.TokenResponse, error) {
	if !user.IsActive {
		return nil, apperr.Forbidden("Account is inactive")
	}
	return s.token(user)
}

func (s *AuthService) token(user *models.User) (*models.TokenResponse, error) {
	signed, err := s.issuer.Issue(user.ID, user.Role)
	if err != nil {
		return nil, apperr.Internal("Failed to issue token", err)
	}
	return &models.TokenResponse{
		AccessToken: signed,
		TokenType:   "bearer",
		UserID:      user.ID,
		Role:        user.Role,
	}, nil
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
