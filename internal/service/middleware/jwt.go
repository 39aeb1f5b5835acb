package middleware

import (
	"fmt"
	"gamestore/domain"
	"net/http"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt"
)

const (
	TokenHeader  = "JWT-Token"
	bearerPrefix = "Bearer "
)

type JwtTokenService interface {
	Create(principal domain.Principal, tokenExpTime int64) (string, error)
	Validate(tokenString string) (*SessionClaims, error)
	ParseSecretGetter(token *jwt.Token) (interface{}, error)
}

type JwtToken struct {
	Secret []byte
}

func NewJwtToken(secret string) (JwtTokenService, error) {
	if secret == "" {
		return nil, fmt.Errorf("empty jwt secret")
	}
	return &JwtToken{
		Secret: []byte(secret),
	}, nil
}

// SessionClaims carries the principal; Role is filled for staff only.
type SessionClaims struct {
	UserId uint                 `json:"userID"`
	Kind   domain.PrincipalKind `json:"kind"`
	Role   string               `json:"role,omitempty"`
	jwt.StandardClaims
}

func (c *SessionClaims) Principal() domain.Principal {
	return domain.Principal{
		ID:            c.UserId,
		Authenticated: true,
		Kind:          c.Kind,
		RoleName:      c.Role,
	}
}

func (tk *JwtToken) Create(principal domain.Principal, tokenExpTime int64) (string, error) {
	data := SessionClaims{
		UserId: principal.ID,
		Kind:   principal.Kind,
		Role:   principal.RoleName,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: tokenExpTime,
			IssuedAt:  time.Now().Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, data)
	return token.SignedString(tk.Secret)
}

func (tk *JwtToken) Validate(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, tk.ParseSecretGetter)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	if claims.ExpiresAt < time.Now().Unix() {
		return nil, fmt.Errorf("token has expired")
	}

	if claims.UserId == 0 || (claims.Kind != domain.KindGamer && claims.Kind != domain.KindStaff) {
		return nil, fmt.Errorf("invalid token subject")
	}

	return claims, nil
}

func (tk *JwtToken) ParseSecretGetter(token *jwt.Token) (interface{}, error) {
	method, ok := token.Method.(*jwt.SigningMethodHMAC)
	if !ok || method.Alg() != "HS256" {
		return nil, fmt.Errorf("bad sign method")
	}
	return tk.Secret, nil
}

// PrincipalFromRequest resolves the caller from the "JWT-Token: Bearer <token>" header.
func PrincipalFromRequest(r *http.Request, tokens JwtTokenService) (domain.Principal, error) {
	authHeader := r.Header.Get(TokenHeader)
	if authHeader == "" {
		return domain.Principal{}, fmt.Errorf("%w: missing %s header", domain.ErrUnauthorized, TokenHeader)
	}
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return domain.Principal{}, fmt.Errorf("%w: malformed %s header", domain.ErrUnauthorized, TokenHeader)
	}

	claims, err := tokens.Validate(strings.TrimPrefix(authHeader, bearerPrefix))
	if err != nil {
		return domain.Principal{}, fmt.Errorf("%w: invalid jwt token", domain.ErrUnauthorized)
	}
	return claims.Principal(), nil
}
