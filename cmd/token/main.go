// Command token mints an operator access token signed with the server's
// JWT settings, for clerks and local testing.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	jwttoken "licensing/internal/jwt_token"
	"licensing/internal/platform/config"
	id "licensing/pkg/domain"
)

func main() {
	user := flag.String("user", "", "operator user id")
	role := flag.String("role", "clerk", "operator role claim")
	ttl := flag.Duration("ttl", 0, "token lifetime (defaults to JWT_TOKEN_TTL)")
	flag.Parse()

	if err := run(*user, *role, *ttl); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(user, role string, ttl time.Duration) error {
	cfg, err := config.FromEnv()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	userID, err := id.ParseUserID(user)
	if err != nil {
		return fmt.Errorf("-user: %w", err)
	}
	if ttl <= 0 {
		ttl = cfg.Auth.TokenTTL
	}
	tokens := jwttoken.NewJWTService(cfg.Auth.JWTSigningKey, cfg.Auth.Issuer, cfg.Auth.Audience)
	token, err := tokens.GenerateAccessToken(userID, role, ttl)
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}
