package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"innerventory/internal/config"
	"innerventory/internal/utils/crypto"
	"innerventory/internal/utils/sanitize"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/v2/bson"
	"golang.org/x/crypto/bcrypt"
)

// Service handles credential business logic
type Service struct {
	repo   UsersRepo
	config config.Config
	log    *slog.Logger
}

// NewService creates a new auth service
func NewService(repo UsersRepo, cfg config.Config, log *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		config: cfg,
		log:    log,
	}
}

// RegisterRequest represents a user registration request
type RegisterRequest struct {
	FirstName string `json:"first_name" example:"Dana"`
	LastName  string `json:"last_name" example:"Reyes"`
	Username  string `json:"username" validate:"required" example:"dreyes"`
	Email     string `json:"email" validate:"required,email" example:"dana@example.com"`
	Password  string `json:"password" validate:"required,password" example:"Password123"`
	Role      Role   `json:"role" validate:"omitempty,oneof=Admin Volunteer" example:"Volunteer"`
}

// SignInRequest carries the credentials for an existing account.
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email" example:"dana@example.com"`
	Password string `json:"password" validate:"required" example:"Password123"`
}

// AuthResponse is the body of every successful sign-up or sign-in: the
// stored user plus a fresh access token.
type AuthResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// Both flows answer with the same shape.
type (
	RegisterResponse = AuthResponse
	SignInResponse   = AuthResponse
)

// Register creates a new user account. The plaintext password is hashed
// exactly once, here, before anything is handed to the repository.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	email := normalizeEmail(req.Email)

	existing, err := s.repo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, ErrDuplicate
	}

	role := req.Role
	if role == "" {
		role = RoleVolunteer
	}
	if !role.Valid() {
		return nil, errors.New("unknown role")
	}

	hashedPassword, err := crypto.HashPassword(req.Password, s.config.BcryptCost)
	if err != nil {
		return nil, ErrHashPassword
	}

	now := time.Now()
	user := &User{
		ID:           bson.NewObjectID(),
		FirstName:    sanitize.Clean(req.FirstName),
		LastName:     sanitize.Clean(req.LastName),
		Username:     sanitize.Clean(req.Username),
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, ErrDuplicate) {
			return nil, ErrDuplicate
		}
		return nil, errors.New("failed to create user")
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return nil, ErrGenAccessToken
	}

	return &AuthResponse{
		User:  user,
		Token: token,
	}, nil
}

// SignIn authenticates a user
func (s *Service) SignIn(ctx context.Context, req SignInRequest) (*AuthResponse, error) {
	email := normalizeEmail(req.Email)

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		s.log.Info("sign-in for unknown email", "email", email)
		return nil, ErrInvalidCredentials
	}

	ok, err := s.VerifyPassword(user, req.Password)
	if err != nil {
		s.log.Error("password verification failed", "error", err, "user_id", user.ID.Hex())
		return nil, ErrHashPassword
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	token, err := s.generateJWT(user)
	if err != nil {
		s.log.Error(ErrGenAccessToken.Error(), "error", err)
		return nil, ErrGenAccessToken
	}

	return &AuthResponse{
		User:  user,
		Token: token,
	}, nil
}

// VerifyPassword reports whether candidate matches the user's stored hash.
// A mismatch is (false, nil); an error means the hash primitive itself failed.
func (s *Service) VerifyPassword(user *User, candidate string) (bool, error) {
	err := crypto.CheckPassword(candidate, user.PasswordHash)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, err
}

// UpdateUser applies a partial profile update. The stored password hash is
// replaced only when the patch carries a password whose value actually
// differs from the current one; re-saving a user without touching the
// password always carries the existing hash through unchanged.
func (s *Service) UpdateUser(ctx context.Context, userID bson.ObjectID, req UpdateUser) (*User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		s.log.Error("failed to load user for update", "error", err, "user_id", userID.Hex())
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = sanitize.Clean(*req.FirstName)
	}
	if req.LastName != nil {
		user.LastName = sanitize.Clean(*req.LastName)
	}
	if req.Username != nil {
		user.Username = sanitize.Clean(*req.Username)
	}
	if req.Role != nil {
		if !req.Role.Valid() {
			return nil, errors.New("unknown role")
		}
		user.Role = *req.Role
	}

	if req.Password != nil {
		changed, err := s.applyPassword(user, *req.Password)
		if err != nil {
			return nil, ErrHashPassword
		}
		if changed {
			s.log.Info("password changed", "user_id", userID.Hex())
		}
	}

	user.UpdatedAt = time.Now()

	if err := s.repo.Save(ctx, user); err != nil {
		s.log.Error("failed to save user", "error", err, "user_id", userID.Hex())
		return nil, err
	}

	return user, nil
}

// applyPassword replaces user.PasswordHash with a fresh hash of plain,
// skipping the hash step entirely when the value has not really changed.
// Without the skip, a write that carries the already-hashed value (or the
// unchanged plaintext) would hash the hash and lock the account out.
func (s *Service) applyPassword(user *User, plain string) (bool, error) {
	if crypto.IsHash(plain) && plain == user.PasswordHash {
		// Caller round-tripped the stored hash; nothing was modified.
		return false, nil
	}
	if err := crypto.CheckPassword(plain, user.PasswordHash); err == nil {
		// Same plaintext as before; keep the existing hash (and its salt).
		return false, nil
	}

	hashed, err := crypto.HashPassword(plain, s.config.BcryptCost)
	if err != nil {
		return false, err
	}
	user.PasswordHash = hashed
	return true, nil
}

func (s *Service) generateJWT(user *User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID.Hex(),
		"email":   user.Email,
		"role":    string(user.Role),
		"exp":     time.Now().Add(time.Duration(s.config.AccessTokenMinutes) * time.Minute).Unix(),
		"iat":     time.Now().Unix(),
	}

	alg := strings.ToUpper(s.config.JWTAlgorithm)
	var method jwt.SigningMethod
	switch alg {
	case "HS256":
		method = jwt.SigningMethodHS256
	case "RS256":
		method = jwt.SigningMethodRS256
	default:
		return "", ErrUnsupportedJWTAlg
	}

	token := jwt.NewWithClaims(method, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
