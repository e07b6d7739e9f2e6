package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Geraghw1/defaero-deal-tracker/internal/apierror"
	"github.com/Geraghw1/defaero-deal-tracker/internal/dto"
	"github.com/Geraghw1/defaero-deal-tracker/internal/middleware"
	"github.com/Geraghw1/defaero-deal-tracker/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type AuthHandler struct {
	svc       service.AuthService
	jwtSecret string
}

func NewAuthHandler(svc service.AuthService, jwtSecret string) *AuthHandler {
	return &AuthHandler{svc: svc, jwtSecret: jwtSecret}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, apierror.New("Invalid username or password"))
			return
		}
		respondError(c, err, "Login failed")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Logout is stateless with bearer tokens; the client discards its token.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Me reports the authenticated user, or null for anonymous callers. The
// route is public, so the token is parsed best-effort here rather than in
// the auth middleware.
func (h *AuthHandler) Me(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		c.JSON(http.StatusOK, gin.H{"user": nil})
		return
	}

	claims := &middleware.JWTClaims{}
	token, err := jwt.ParseWithClaims(strings.TrimPrefix(header, "Bearer "), claims,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(h.jwtSecret), nil
		})
	if err != nil || !token.Valid {
		c.JSON(http.StatusOK, gin.H{"user": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": dto.UserResponse{Username: claims.Username}})
}
