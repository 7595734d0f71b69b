// seed inserts demo users into the local dev database.
// Run: go run ./cmd/seed
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/eduai-labs/eduai-backend/internal/domain"
	"github.com/eduai-labs/eduai-backend/internal/infrastructure/postgres"
	"github.com/eduai-labs/eduai-backend/internal/password"
	"github.com/joho/godotenv"
)

const seedPassword = "password123"

var seedUsers = []struct {
	email    string
	fullName string
	verified bool
}{
	{"student@test.local", "Seed Student", true},
	{"unverified@test.local", "Seed Unverified", false},
}

func main() {
	_ = godotenv.Load()
	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	if err := postgres.Migrate(dbURL); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	pool, err := postgres.NewPool(ctx, dbURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	repo := postgres.NewUserRepository(pool)
	hasher := password.NewBcryptHasher()

	hash, err := hasher.Hash(seedPassword)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	var created, skipped int
	for _, su := range seedUsers {
		h := hash
		user, err := repo.Create(ctx, &domain.User{
			Email:           su.email,
			FullName:        su.fullName,
			PasswordHash:    &h,
			IsEmailVerified: false,
		})
		if err != nil {
			if errors.Is(err, domain.ErrUserExists) {
				skipped++
				continue
			}
			log.Fatalf("create %s: %v", su.email, err)
		}
		if su.verified {
			if err := repo.MarkEmailVerified(ctx, user.ID); err != nil {
				log.Fatalf("mark verified %s: %v", su.email, err)
			}
		}
		created++
	}

	fmt.Println("Seed complete")
	fmt.Println()
	fmt.Printf("  Users created: %d  (skipped %d already existing)\n", created, skipped)
	fmt.Printf("  Password:      %s\n", seedPassword)
	fmt.Println()
	fmt.Println("How to test:")
	fmt.Println()
	fmt.Println("  Step 1 — log in:")
	fmt.Println()
	fmt.Println("    curl -s -X POST http://localhost:8080/auth/login \\")
	fmt.Println("      -H 'Content-Type: application/json' \\")
	fmt.Printf("      -d '{\"email\":\"student@test.local\",\"password\":\"%s\"}'\n", seedPassword)
	fmt.Println()
	fmt.Println("  Step 2 — fetch the profile:")
	fmt.Println()
	fmt.Println("    export JWT=eyJ...")
	fmt.Println("    curl -s http://localhost:8080/users/profile -H \"Authorization: Bearer $JWT\"")
	fmt.Println()
	fmt.Println("  Step 3 — run the verification flow against the unverified user")
	fmt.Println("  (in ENV=local the code is printed in the server log):")
	fmt.Println()
	fmt.Println("    curl -s -X POST http://localhost:8080/auth/verify-email \\")
	fmt.Println("      -H 'Content-Type: application/json' \\")
	fmt.Println("      -d '{\"email\":\"unverified@test.local\"}'")
	fmt.Println()
	fmt.Println("    curl -s -X PATCH http://localhost:8080/auth/verify-email \\")
	fmt.Println("      -H 'Content-Type: application/json' \\")
	fmt.Println("      -d '{\"email\":\"unverified@test.local\",\"code\":\"CODE_FROM_LOG\"}'")
}
