package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"

	"github.com/cloudscheduler/console/internal/user/domain/aggregate"
	"github.com/cloudscheduler/console/internal/user/domain/repository"
	"github.com/cloudscheduler/console/pkg/cache"
	"github.com/cloudscheduler/console/pkg/cache/client"
	"github.com/cloudscheduler/console/pkg/domain"
	"github.com/cloudscheduler/console/pkg/util"
)

var (
	ErrInvalidCredentials = errors.New("[UserDomainService] invalid username or password")
	ErrUserExists         = errors.New("[UserDomainService] username already exists")
	ErrUserNotFound       = errors.New("[UserDomainService] user not found")
	ErrInvalidEmail       = errors.New("[UserDomainService] invalid email address")
	ErrInvalidToken       = errors.New("[UserDomainService] invalid token")
	ErrTokenRevoked       = errors.New("[UserDomainService] token revoked")
)

// Claims is the JWT payload of an access token.
type Claims struct {
	Username  string `json:"username"`
	Role      string `json:"role"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// TokenStore remembers revoked tokens until they expire on their own.
type TokenStore = cache.MultiCache[string]

type UserDomainService struct {
	*domain.Service
	users   repository.UserRepository
	revoked TokenStore
	secret  []byte
	expire  time.Duration
}

func NewUserService(
	conf *viper.Viper,
	srv *domain.Service,
	users repository.UserRepository,
	revoked TokenStore,
) *UserDomainService {
	expire := conf.GetDuration("app.security.token_expire")
	if expire <= 0 {
		expire = 12 * time.Hour
	}
	return &UserDomainService{
		Service: srv,
		users:   users,
		revoked: revoked,
		secret:  []byte(conf.GetString("app.security.jwt_secret")),
		expire:  expire,
	}
}

// Signup creates an account with the default user role.
func (s *UserDomainService) Signup(ctx context.Context, username, password, email string) (*aggregate.User, error) {
	if !util.ValidateEmail(email) {
		return nil, ErrInvalidEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &aggregate.User{
		Username: username,
		Email:    email,
		Role:     aggregate.RoleUser,
		Password: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return nil, ErrUserExists
		}
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and issues an access token.
func (s *UserDomainService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	claims := &Claims{
		Username:  user.Username,
		Role:      string(user.Role),
		TokenType: "access",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expire)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify parses a token and rejects revoked or non-access tokens.
func (s *UserDomainService) Verify(ctx context.Context, token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != "access" {
		return nil, ErrInvalidToken
	}

	if _, err := s.revoked.Get(ctx, token); err == nil {
		return nil, ErrTokenRevoked
	} else if !errors.Is(err, client.ErrNotFound) {
		// Fail closed only on positive hits; a cache outage must not
		// lock every user out.
		s.Logger.WithContext(ctx).Sugar().Warnf("revocation check failed: %v", err)
	}

	return claims, nil
}

// Logout revokes the token for its remaining lifetime.
func (s *UserDomainService) Logout(ctx context.Context, token string) error {
	claims, err := s.Verify(ctx, token)
	if err != nil {
		if errors.Is(err, ErrTokenRevoked) {
			return nil
		}
		return err
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	return s.revoked.Set(ctx, token, "revoked", ttl)
}

func (s *UserDomainService) Profile(ctx context.Context, username string) (*aggregate.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile changes the caller's password and/or email. Blank values
// keep the stored ones.
func (s *UserDomainService) UpdateProfile(ctx context.Context, username, password, email string) (*aggregate.User, error) {
	user, err := s.Profile(ctx, username)
	if err != nil {
		return nil, err
	}

	if email != "" {
		if !util.ValidateEmail(email) {
			return nil, ErrInvalidEmail
		}
		user.Email = email
	}
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hash)
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
