package middleware

import (
	"errors"
	"net/http"
	"strings"

	"trading-journal/config"
	"trading-journal/pkg/common"
	"trading-journal/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// TokenVerifier checks HS256 access tokens issued by the identity provider.
// The subject claim carries the user's UUID.
type TokenVerifier struct {
	secret []byte
	issuer string
}

func NewTokenVerifier(cfg config.Auth) *TokenVerifier {
	return &TokenVerifier{secret: []byte(cfg.JWTSecret), issuer: cfg.Issuer}
}

func (v *TokenVerifier) Verify(token string) (uuid.UUID, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	var claims jwt.RegisteredClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return uuid.Nil, err
	}
	if !parsed.Valid {
		return uuid.Nil, errors.New("invalid token")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, errors.New("invalid subject")
	}
	return userID, nil
}

// NewAuthMiddleware rejects requests without a valid bearer token and stores
// the caller's id on the echo context.
func NewAuthMiddleware(verifier *TokenVerifier, log *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if token == "" {
				return c.JSON(http.StatusUnauthorized, Response{Code: http.StatusUnauthorized, Message: "missing bearer token"})
			}
			userID, err := verifier.Verify(token)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, Response{Code: http.StatusUnauthorized, Message: "invalid token"})
			}
			c.Set(common.KEY_USER_ID, userID)

			ctx := c.Request().Context()
			reqLog := log.FromContext(ctx).With(logger.StringField("user_id", userID.String()))
			c.SetRequest(c.Request().WithContext(logger.NewContext(ctx, reqLog)))
			return next(c)
		}
	}
}

// UserID returns the authenticated caller set by the auth middleware.
func UserID(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(common.KEY_USER_ID).(uuid.UUID)
	return id, ok
}

func bearerToken(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	parts := strings.SplitN(v, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
