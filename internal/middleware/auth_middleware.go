package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go-hris-workflow/internal/shared/apperror"
	"go-hris-workflow/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenMissing = apperror.New(apperror.CodeUnauthorized, "Token not found", http.StatusUnauthorized)
	ErrInvalidToken = apperror.New("INVALID_TOKEN", "Invalid token", http.StatusUnauthorized)
	ErrTokenExpired = apperror.New("TOKEN_EXPIRED", "Token has expired", http.StatusUnauthorized)
)

// Claims is what the identity provider puts in an access token.
type Claims struct {
	UserID     string `json:"user_id"`
	CompanyID  string `json:"company_id"`
	EmployeeID string `json:"employee_id"`
	Role       string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

func abortWith(c *gin.Context, e *apperror.AppError, message string) {
	if message == "" {
		message = e.Message
	}
	response.Error(c, e.HTTPStatus, e.Code, message, nil)
	c.Abort()
}

// AuthMiddleware validates an HS256 bearer token (or the access_token cookie)
// and exposes its claims on the gin context.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found {
			tokenString = ""
		}
		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}
		if tokenString == "" {
			abortWith(c, ErrTokenMissing, "")
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			if errors.Is(err, jwt.ErrTokenExpired) {
				abortWith(c, ErrTokenExpired, "")
				return
			}
			abortWith(c, ErrInvalidToken, "")
			return
		}

		switch {
		case claims.UserID == "":
			abortWith(c, ErrInvalidToken, "User ID not found in token")
			return
		case claims.CompanyID == "":
			abortWith(c, ErrInvalidToken, "Company ID not found in token")
			return
		case claims.EmployeeID == "":
			abortWith(c, ErrInvalidToken, "Employee ID not found in token")
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_id_validated", claims.UserID)
		c.Set("employee_id", claims.EmployeeID)
		c.Set("company_id", claims.CompanyID)
		c.Set("role", claims.Role)

		c.Next()
	}
}
