package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMissingTenant el token no identifica usuario o empresa.
var ErrMissingTenant = errors.New("jwt: token sin usuario o empresa")

// Claims del token de sesión: el usuario es el destinatario del historial in-app y
// la empresa es el tenant con el que se filtra cada consulta.
type Claims struct {
	jwt.RegisteredClaims
	UserID    string `json:"user_id"`
	CompanyID string `json:"company_id"`
	Role      string `json:"role"` // "admin" | "compras" | "finanzas"
}

// Generate firma un token HS256. userID y companyID son obligatorios.
func Generate(secret, userID, companyID, role, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	if userID == "" || companyID == "" {
		return "", ErrMissingTenant
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:    userID,
		CompanyID: companyID,
		Role:      role,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// Parse valida firma y expiración y devuelve userID, companyID y role.
// Un token válido sin user_id o company_id, o cuyo sub no coincide con user_id, se rechaza
// con ErrMissingTenant. El rol puede venir vacío; RequireRole decide.
func Parse(secret, tokenString string) (userID, companyID, role string, err error) {
	if secret == "" {
		return "", "", "", fmt.Errorf("jwt: secret vacío")
	}
	var claims Claims
	_, err = jwt.ParseWithClaims(tokenString, &claims, func(*jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return "", "", "", err
	}
	if claims.UserID == "" || claims.CompanyID == "" {
		return "", "", "", ErrMissingTenant
	}
	if claims.Subject != "" && claims.Subject != claims.UserID {
		return "", "", "", fmt.Errorf("%w: sub %q no coincide con user_id", ErrMissingTenant, claims.Subject)
	}
	return claims.UserID, claims.CompanyID, claims.Role, nil
}
