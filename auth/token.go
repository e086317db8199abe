package auth

import (
	"time"

	"gatherpass/config"
	"gatherpass/repository"

	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	UserId int   `json:"user_id"`
	Admin  bool  `json:"admin"`
	Exp    int64 `json:"exp"`
}

func (claims *Claims) FromJWTClaims(jwtClaims jwt.Claims) {
	mapClaims := jwtClaims.(jwt.MapClaims)
	if mapClaims["user_id"] != nil {
		claims.UserId = int(mapClaims["user_id"].(float64))
	}
	if mapClaims["admin"] != nil {
		claims.Admin = mapClaims["admin"].(bool)
	}
	if mapClaims["exp"] != nil {
		claims.Exp = int64(mapClaims["exp"].(float64))
	}
}

func (claims *Claims) Valid() error {
	if time.Now().Unix() > claims.Exp {
		return jwt.ErrTokenExpired
	}
	return nil
}

func CreateToken(user *repository.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256,
		jwt.MapClaims{
			"user_id": user.Id,
			"admin":   user.Admin,
			"exp":     time.Now().Add(time.Hour * 24 * 7).Unix(),
		})

	tokenString, err := token.SignedString([]byte(config.Env().JWTSecret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func ParseToken(tokenString string) (*jwt.Token, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(config.Env().JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}
	return token, nil
}
