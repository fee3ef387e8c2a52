package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"

	"github.com/Sanketpujari33/todo-list-azguards-technolabs-assignment/db"
	"github.com/Sanketpujari33/todo-list-azguards-technolabs-assignment/models"
)

// TokenTTL is how long an issued token stays valid. Tokens are stateless and
// cannot be revoked before they expire; logout only clears the client cookie.
const TokenTTL = 24 * time.Hour

const bcryptCost = 10

var (
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

// dummyHash is compared against when the username is unknown, so a failed
// login costs one bcrypt comparison whether or not the user exists.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("timing-equalizer"), bcryptCost)

// Claims is the JWT payload: the user id plus the standard expiry.
type Claims struct {
	UserID string `json:"userId"`
	jwt.StandardClaims
}

// Service issues and verifies credentials. The signing key is injected at
// construction instead of being read from the environment at call sites.
type Service struct {
	users  db.UserRepository
	jwtKey []byte
}

func NewService(users db.UserRepository, jwtKey []byte) *Service {
	return &Service{users: users, jwtKey: jwtKey}
}

// Register creates a new user with a bcrypt-hashed password. Registration
// fails with ErrUserExists when the username or email is already taken.
func (s *Service) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	_, err := s.users.FindByUsernameOrEmail(ctx, username, email)
	if err == nil {
		return nil, ErrUserExists
	}
	if !errors.Is(err, db.ErrNotFound) {
		return nil, fmt.Errorf("error checking for existing user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hash),
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		// Lost a race against a concurrent registration
		if errors.Is(err, db.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return created, nil
}

// Login verifies the credentials and issues a signed token. Unknown usernames
// and wrong passwords both return ErrInvalidCredentials after a bcrypt
// comparison.
func (s *Service) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			// Burn a comparison so response time does not leak user existence
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("error finding user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.GenerateToken(user.ID)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// GenerateToken signs a token carrying the user id, valid for TokenTTL.
func (s *Service) GenerateToken(userID string) (string, error) {
	claims := &Claims{
		UserID: userID,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(TokenTTL).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtKey)
	if err != nil {
		return "", fmt.Errorf("error signing token: %w", err)
	}

	return signed, nil
}

// VerifyToken validates the signature and expiry, then confirms the referenced
// user still exists. Every failure mode collapses to ErrInvalidToken.
func (s *Service) VerifyToken(ctx context.Context, tokenStr string) (*models.User, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtKey, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, ErrInvalidToken
	}

	return user, nil
}
