package httpserver

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
)

const (
	RoleVecino    = "vecino"
	RoleDirectiva = "directiva"
)

var errInvalidToken = errors.New("httpserver: invalid bearer token")

// Claims are the authorization claims carried by a bearer token. Subject is
// the user id.
type Claims struct {
	jwt.StandardClaims
	Role string `json:"role,omitempty"`
	Name string `json:"name,omitempty"`
}

// IssueToken signs a token for the given user. The API itself never issues
// tokens in production; this exists for tooling and tests.
func IssueToken(secret []byte, userID string, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		StandardClaims: jwt.StandardClaims{
			Subject:   userID,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(ttl).Unix(),
		},
		Role: role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func (s *Server) parseBearer(r *http.Request) (*Claims, error) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return nil, errInvalidToken
	}
	raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid || strings.TrimSpace(claims.Subject) == "" {
		return nil, errInvalidToken
	}
	return claims, nil
}

// authenticated gates a route behind a valid bearer token.
func (s *Server) authenticated(next func(http.ResponseWriter, *http.Request, *Claims)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := s.parseBearer(r)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{
				"code":    "unauthorized",
				"message": "a valid bearer token is required",
			})
			return
		}
		next(w, r, claims)
	}
}

// directivaOnly gates a route behind the board-member role.
func (s *Server) directivaOnly(next func(http.ResponseWriter, *http.Request, *Claims)) http.HandlerFunc {
	return s.authenticated(func(w http.ResponseWriter, r *http.Request, claims *Claims) {
		if claims.Role != RoleDirectiva {
			writeJSON(w, http.StatusForbidden, map[string]string{
				"code":    "forbidden",
				"message": "directiva role required",
			})
			return
		}
		next(w, r, claims)
	})
}
