package main

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Signs development tokens for one user of each role. Subjects must
// exist in the users table for requests to pass the auth middleware.
func main() {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		fmt.Println("JWT_SECRET is required")
		os.Exit(1)
	}

	subjects := map[string]string{
		"applicant": "11111111-1111-1111-1111-111111111111",
		"admin":     "22222222-2222-2222-2222-222222222222",
		"bot":       "33333333-3333-3333-3333-333333333333",
	}

	for role, sub := range subjects {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": sub,
			"exp": time.Now().Add(24 * time.Hour).Unix(),
			"iat": time.Now().Unix(),
		})
		signed, err := token.SignedString([]byte(secret))
		if err != nil {
			fmt.Println("Error:", err)
			continue
		}
		fmt.Printf("Role: %s\nSubject: %s\nToken: %s\n\n", role, sub, signed)
	}
}
