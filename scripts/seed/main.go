package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/odyssey-erp/admin-console/internal/users"
	usersclient "github.com/odyssey-erp/admin-console/internal/users/client"
)

func main() {
	baseURL := getenv("CONSOLE_URL", "http://localhost:8080")
	count, err := strconv.Atoi(getenv("SEED_USERS", "20"))
	if err != nil || count < 1 {
		log.Fatalf("SEED_USERS must be a positive integer")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	client := usersclient.NewClient(baseURL, nil)
	fmt.Printf("→ Seeding %d demo users into %s...\n", count, baseURL)
	created, skipped, err := seedUsers(ctx, client, demoUsers(count))
	if err != nil {
		log.Fatalf("seed users: %v", err)
	}
	fmt.Printf("✓ created %d, skipped %d existing\n", created, skipped)
}

type creator interface {
	Create(ctx context.Context, in users.CreateInput) (users.User, string, error)
}

// seedUsers creates each input, skipping ones that collide with existing
// usernames or emails.
func seedUsers(ctx context.Context, client creator, inputs []users.CreateInput) (created, skipped int, err error) {
	for _, in := range inputs {
		_, _, err := client.Create(ctx, in)
		var apiErr *usersclient.APIError
		switch {
		case err == nil:
			created++
		case errors.As(err, &apiErr) && apiErr.Status == http.StatusBadRequest:
			skipped++
		default:
			return created, skipped, fmt.Errorf("create %s: %w", in.Username, err)
		}
	}
	return created, skipped, nil
}

func demoUsers(n int) []users.CreateInput {
	out := make([]users.CreateInput, 0, n)
	for i := 1; i <= n; i++ {
		status := users.StatusActive
		if i%3 == 0 {
			status = users.StatusInactive
		}
		out = append(out, users.CreateInput{
			Username: fmt.Sprintf("demo%02d", i),
			Email:    fmt.Sprintf("demo%02d@example.com", i),
			Status:   status,
		})
	}
	return out
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
