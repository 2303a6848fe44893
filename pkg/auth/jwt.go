package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrMissingToken   = errors.New("missing authorization header")
	ErrInvalidFormat  = errors.New("invalid authorization format")
	ErrInvalidToken   = errors.New("invalid access token")
	ErrInvalidSubject = errors.New("token does not carry a user id")
)

type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
}

type JWT struct {
	Secret  string
	Expires time.Duration
	// Now is overridable in tests.
	Now func() time.Time
}

func NewJWT(secret string, expires time.Duration) *JWT {
	return &JWT{Secret: secret, Expires: expires, Now: time.Now}
}

func (j *JWT) now() time.Time {
	if j.Now == nil {
		return time.Now()
	}
	return j.Now()
}

func (j *JWT) CreateToken(userID uuid.UUID) (string, error) {
	issuedAt := j.now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(j.Expires)),
		},
		UserID: userID.String(),
	})

	return token.SignedString([]byte(j.Secret))
}

func (j *JWT) VerifyToken(tokenString string) (uuid.UUID, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(j.Secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)

	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !token.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.UserID)

	if err != nil {
		return uuid.Nil, ErrInvalidSubject
	}

	return userID, nil
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" value.
func BearerToken(header string) (string, error) {
	if header == "" {
		return "", ErrMissingToken
	}

	scheme, token, found := strings.Cut(header, " ")

	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", ErrInvalidFormat
	}

	token = strings.TrimSpace(token)

	if token == "" {
		return "", ErrInvalidFormat
	}

	return token, nil
}
