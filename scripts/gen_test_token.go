package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"codeberg.org/pixelgate/server/internal/auth"
	"codeberg.org/pixelgate/server/internal/plans"
	"github.com/joho/godotenv"
	"github.com/oklog/ulid/v2"
)

// mints an entitlement token for local testing of bearer-token plan resolution
func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	plan := flag.String("plan", "pro", "plan id carried by the token")
	userID := flag.String("user", "", "caller id carried by the token (random when empty)")
	ttl := flag.Duration("ttl", auth.DefaultTokenTTL, "token lifetime")
	flag.Parse()

	secret := os.Getenv("ENTITLEMENT_JWT_SECRET")
	if secret == "" {
		log.Fatal("ENTITLEMENT_JWT_SECRET not set")
	}

	if _, ok := plans.Default().Get(*plan); !ok && os.Getenv("PLANS_FILE") == "" {
		log.Printf("Warning: plan %q is not in the default plan table, the gateway will fall back to the default plan", *plan)
	}

	if *userID == "" {
		*userID = "test_" + strings.ToLower(ulid.Make().String())
	}

	token, err := auth.GenerateToken(secret, *userID, *plan, *ttl)
	if err != nil {
		log.Fatalf("Failed to generate token: %v", err)
	}

	fmt.Printf("\nTest token for %s on plan %s (expires in %s):\n%s\n\n", *userID, *plan, *ttl, token)
	fmt.Printf("Export this token for testing:\nexport TEST_TOKEN=\"%s\"\n", token)
	fmt.Printf("curl -H \"Authorization: Bearer $TEST_TOKEN\" ...\n")
}
