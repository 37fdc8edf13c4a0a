package utils

import (
	"testing"
	"time"

	"storefront/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func testUser() *model.User {
	return &model.User{
		ID:    "user-1",
		Name:  "Test User",
		Email: "test@example.com",
		Role:  model.RoleCustomer,
	}
}

func TestJWTUtil_GenerateToken(t *testing.T) {
	jwtUtil := NewJWTUtil("secret")
	user := testUser()

	tokenString, err := jwtUtil.GenerateToken(user)

	assert.NoError(t, err)
	assert.NotEmpty(t, tokenString)

	// Validate the token to ensure it's well-formed and contains correct claims
	claims, err := jwtUtil.ValidateToken(tokenString)
	assert.NoError(t, err)
	assert.NotNil(t, claims)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, user.Name, claims.Name)
	assert.Equal(t, user.Role, claims.Role)
	assert.WithinDuration(t, time.Now().Add(TokenTTL), claims.ExpiresAt.Time, 5*time.Second)
}

func TestJWTUtil_ValidateToken(t *testing.T) {
	jwtUtil := NewJWTUtil("secret")
	user := testUser()

	tokenString, _ := jwtUtil.GenerateToken(user)

	claims, err := jwtUtil.ValidateToken(tokenString)

	assert.NoError(t, err)
	assert.NotNil(t, claims)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Role, claims.Role)
}

func TestJWTUtil_ValidateToken_InvalidToken(t *testing.T) {
	jwtUtil := NewJWTUtil("secret")

	_, err := jwtUtil.ValidateToken("invalid.token.string")
	assert.Error(t, err)
}

func TestJWTUtil_ValidateToken_MissingToken(t *testing.T) {
	jwtUtil := NewJWTUtil("secret")

	_, err := jwtUtil.ValidateToken("")
	assert.Error(t, err)
}

func TestJWTUtil_ValidateToken_ExpiredToken(t *testing.T) {
	jwtUtil := &JWTUtil{secretKey: "secret", ttl: -time.Hour} // Token expires in the past

	tokenString, _ := jwtUtil.GenerateToken(testUser())

	_, err := jwtUtil.ValidateToken(tokenString)
	assert.Error(t, err)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestJWTUtil_ValidateToken_WrongSecret(t *testing.T) {
	jwtUtil1 := NewJWTUtil("secret1")
	jwtUtil2 := NewJWTUtil("secret2")

	tokenString, _ := jwtUtil1.GenerateToken(testUser())

	_, err := jwtUtil2.ValidateToken(tokenString)
	assert.Error(t, err)
}

func TestJWTUtil_ValidateToken_InvalidSigningMethod(t *testing.T) {
	jwtUtil := NewJWTUtil("secret")
	claims := &JWTClaims{
		UserID: "user-1",
		Role:   model.RoleCustomer,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS384, claims)
	// Sign with the same secret, as the key type is compatible for HMAC algorithms
	tokenString, _ := token.SignedString([]byte("secret"))

	_, err := jwtUtil.ValidateToken(tokenString)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected signing method")
}

// There is no server-side session store: a token stays verifiable purely
// from its signature until expiry, regardless of what happens to the
// account it was issued for.
func TestJWTUtil_TokenOutlivesAccountChanges(t *testing.T) {
	jwtUtil := NewJWTUtil("secret")
	user := testUser()
	user.Role = model.RoleAdmin

	tokenString, err := jwtUtil.GenerateToken(user)
	assert.NoError(t, err)

	// The account could be deleted or demoted here; the token does not notice
	claims, err := jwtUtil.ValidateToken(tokenString)
	assert.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, claims.Role)
}
