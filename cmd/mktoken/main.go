// Command mktoken mints an access token for calling the signing API when
// JWT authentication is enabled. The secret comes from JWT_SECRET.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/bolosign/bolosign/backend/go-services/internal/tokens"
)

func main() {
	var (
		subject = flag.String("sub", "local-dev", "token subject")
		ttl     = flag.Duration("ttl", time.Hour, "token lifetime")
	)
	flag.Parse()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		fmt.Fprintln(os.Stderr, "JWT_SECRET is not set")
		os.Exit(2)
	}

	raw, err := tokens.GenerateAccessToken(secret, *subject, *ttl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mint token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(raw)
}
