package auth

import (
	"time"

	"sharyat/config"
	"sharyat/repository"

	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	UserId      string   `json:"user_id"`
	Permissions []string `json:"permissions"`
	Exp         int64    `json:"exp"`
}

func (claims *Claims) FromJWTClaims(jwtClaims jwt.Claims) {
	permissions := []string{}
	if jwtClaims.(jwt.MapClaims)["permissions"] != nil {
		for _, perm := range jwtClaims.(jwt.MapClaims)["permissions"].([]interface{}) {
			permissions = append(permissions, perm.(string))
		}
	}
	claims.Permissions = permissions
	claims.UserId = jwtClaims.(jwt.MapClaims)["user_id"].(string)
	claims.Exp = int64(jwtClaims.(jwt.MapClaims)["exp"].(float64))
}

func (claims *Claims) Valid() error {
	if time.Now().Unix() > claims.Exp {
		return jwt.ErrTokenExpired
	}
	return nil
}

// CreateUserToken issues a token for a mobile app account.
func CreateUserToken(user *repository.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256,
		jwt.MapClaims{
			"user_id":     user.Id.String(),
			"permissions": []string{},
			"exp":         time.Now().Add(time.Hour * 24 * 30).Unix(),
		})
	return token.SignedString([]byte(config.Env().JWTSecret))
}

// CreateAdminToken issues a token carrying the admin's role permissions.
func CreateAdminToken(admin *repository.AdminUser) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256,
		jwt.MapClaims{
			"user_id":     admin.Id.String(),
			"permissions": []string(admin.Permissions),
			"exp":         time.Now().Add(time.Hour * 24).Unix(),
		})
	return token.SignedString([]byte(config.Env().JWTSecret))
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
