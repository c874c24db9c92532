// Command usermgmt serves the user-management screen as HTML at / and as a
// JSON API under /v1.
package main

import (
	"log"

	"github.com/aussiebroadwan/usermgmt/internal/usermgmt/app"
)

func main() {
	cfg := app.LoadConfig()

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("application error: %v", err)
	}
}
