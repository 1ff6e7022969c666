// Command tokengen mints JWT bearer tokens for local development and
// manual API testing. The signing parameters must match the server's
// configuration for the minted token to be accepted.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"

	"github.com/bookshelfhq/bookshelf/internal/config"
	"github.com/bookshelfhq/bookshelf/internal/service/auth"
)

func main() {
	secret := flag.String("secret", os.Getenv("BOOKSHELF_AUTH_JWT_SECRET"),
		"JWT signing secret (defaults to BOOKSHELF_AUTH_JWT_SECRET)")
	issuer := flag.String("issuer", "bookshelf", "token issuer claim")
	audience := flag.String("audience", "bookshelf-clients", "token audience claim")
	subject := flag.String("subject", "", "caller UUID (random when empty)")
	role := flag.String("role", auth.RoleUser,
		fmt.Sprintf("role claim (%q or %q)", auth.RoleUser, auth.RoleAdmin))
	ttl := flag.Int("ttl", 60, "token lifetime in minutes")
	flag.Parse()

	if *secret == "" {
		log.Fatal("a signing secret is required (-secret or BOOKSHELF_AUTH_JWT_SECRET)")
	}
	if *role != auth.RoleUser && *role != auth.RoleAdmin {
		log.Fatalf("unknown role %q", *role)
	}

	callerID := uuid.New()
	if *subject != "" {
		parsed, err := uuid.Parse(*subject)
		if err != nil {
			log.Fatalf("invalid subject %q: %v", *subject, err)
		}
		callerID = parsed
	}

	jwtService, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:            *secret,
		Issuer:               *issuer,
		Audience:             *audience,
		TokenLifetimeMinutes: *ttl,
	})
	if err != nil {
		log.Fatalf("failed to build JWT service: %v", err)
	}

	token, err := jwtService.GenerateToken(context.Background(), callerID, *role)
	if err != nil {
		log.Fatalf("failed to mint token: %v", err)
	}

	fmt.Printf("Subject: %s\nRole: %s\nToken: %s\n", callerID, *role, token)
}
