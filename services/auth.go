package services

import (
	"context"
	"crypto/subtle"
	"log"
	"strings"
	"time"

	"MetOptix/config/jwt"
	"MetOptix/config/redis"
	"MetOptix/models"
	"MetOptix/role"
	"MetOptix/util"

	"golang.org/x/crypto/bcrypt"
)

type Identity struct {
	Username string
	Role     string
}

// CredentialVerifier checks a username and password and returns who they belong to.
type CredentialVerifier interface {
	Verify(ctx context.Context, username, password string) (Identity, error)
}

// StaticCredentials is a single configured account, the password kept only as a bcrypt hash.
type StaticCredentials struct {
	username string
	hash     []byte
	role     string
}

// NewStaticCredentials uses passwordHash when set, otherwise hashes password.
func NewStaticCredentials(username, password, passwordHash string) (*StaticCredentials, error) {
	var hash []byte
	if passwordHash != "" {
		if _, err := bcrypt.Cost([]byte(passwordHash)); err != nil {
			return nil, err
		}
		hash = []byte(passwordHash)
	} else {
		h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		hash = h
	}
	return &StaticCredentials{username: username, hash: hash, role: role.Admin}, nil
}

// WithRole sets the role the account signs in with. The default is ADMIN.
func (s *StaticCredentials) WithRole(code string) (*StaticCredentials, error) {
	if _, ok := role.Lookup(code); !ok {
		return nil, ErrUnknownRole
	}
	s.role = code
	return s, nil
}

func (s *StaticCredentials) Verify(ctx context.Context, username, password string) (Identity, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	passErr := bcrypt.CompareHashAndPassword(s.hash, []byte(password))
	if !userOK || passErr != nil {
		return Identity{}, ErrInvalidCredentials
	}
	return Identity{Username: s.username, Role: s.role}, nil
}

type AuthService struct {
	verifier CredentialVerifier
	secret   []byte
	ttl      time.Duration
	now      func() time.Time
}

func NewAuthService(verifier CredentialVerifier, secret []byte, ttl time.Duration) *AuthService {
	return &AuthService{verifier: verifier, secret: secret, ttl: ttl, now: time.Now}
}

/*
* Both fields are required
* Verify through the injected verifier
* Issue a signed session token
 */
func (a *AuthService) Login(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return models.LoginResponse{}, ErrCredentialsMissing
	}
	identity, err := a.verifier.Verify(ctx, username, req.Password)
	if err != nil {
		log.Println("Login failed for", username)
		return models.LoginResponse{}, err
	}
	token, session, err := jwt.GenerateToken(a.secret, identity.Username, identity.Role, a.ttl, a.now())
	if err != nil {
		log.Println("Error from generateToken:", err)
		return models.LoginResponse{}, err
	}
	log.Println("Login successful:", identity.Username)
	return models.LoginResponse{
		Token:     token,
		ExpiresAt: session.ExpiresAt,
		Username:  session.Username,
		Role:      session.Role,
	}, nil
}

// Logout revokes the session's token until it would have expired. Without redis the token stays valid.
func (a *AuthService) Logout(ctx context.Context, sess *models.Session) error {
	if err := requireSession(sess); err != nil {
		return err
	}
	if !redis.Enabled() {
		log.Println("Logout without cache: token for", sess.Username, "remains valid until expiry")
		return nil
	}
	remaining := sess.ExpiresAt.Sub(a.now())
	if remaining <= 0 {
		return nil
	}
	if err := redis.SetCache(ctx, util.RevokedTokenKey+sess.TokenID, true, remaining); err != nil {
		log.Println("Error revoking token:", err)
		return err
	}
	log.Println("Logged out:", sess.Username)
	return nil
}
