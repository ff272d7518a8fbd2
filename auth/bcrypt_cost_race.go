//go:build race

package auth

import "golang.org/x/crypto/bcrypt"

func passwordHashCost() int {
	// Race-enabled test runs use the cheaper default cost to stay inside
	// test timeouts.
	return bcrypt.DefaultCost
}
