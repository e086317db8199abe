package auth

import (
	"testing"
	"time"

	"gatherpass/repository"

	"github.com/stretchr/testify/assert"
)

func TestTokenRoundTrip(t *testing.T) {
	user := &repository.User{Id: 42, Admin: true}

	tokenString, err := CreateToken(user)
	assert.Nil(t, err)

	token, err := ParseToken(tokenString)
	assert.Nil(t, err)
	assert.True(t, token.Valid)

	claims := &Claims{}
	claims.FromJWTClaims(token.Claims)
	assert.Equal(t, 42, claims.UserId)
	assert.True(t, claims.Admin)
	assert.Nil(t, claims.Valid())
	assert.Greater(t, claims.Exp, time.Now().Unix())
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	_, err := ParseToken("not.a.token")
	assert.NotNil(t, err)
}

func TestExpiredClaimsAreInvalid(t *testing.T) {
	claims := &Claims{UserId: 1, Exp: time.Now().Add(-time.Hour).Unix()}
	assert.NotNil(t, claims.Valid())
}
