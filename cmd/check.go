package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmercer/compass/internal/config"
	"github.com/jmercer/compass/internal/service"
)

var checkToken string

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check connectivity to the Compass backend API",
	Long: `Check calls the backend API and reports what it finds.

Without a token it exercises the public endpoints (featured institutions,
scholarship listing). With --token it also verifies the token against
/auth/me.

Examples:
  # Check the backend configured in the environment
  ./compass check

  # Also verify a bearer token
  ./compass check --token eyJhbGci...`,
	Run: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringVar(&checkToken, "token", "", "Bearer token to verify against /auth/me")
}

func runCheck(cmd *cobra.Command, args []string) {
	cfg := config.Load()

	// Set up context with cancellation
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("\nReceived interrupt signal, shutting down...")
		cancel()
	}()

	api := service.NewClient(cfg.APIBaseURL)
	log.Printf("Checking backend at %s", cfg.APIBaseURL)

	failures := 0

	featured, err := api.FeaturedInstitutions(ctx)
	if err != nil {
		log.Printf("FAIL featured institutions: %v", err)
		failures++
	} else {
		log.Printf("OK   featured institutions: %d", len(featured))
	}

	scholarships, err := api.Scholarships(ctx, 1, 1)
	if err != nil {
		log.Printf("FAIL scholarship listing: %v", err)
		failures++
	} else {
		log.Printf("OK   scholarship listing: %d total", scholarships.Total)
	}

	if checkToken != "" {
		user, err := api.Me(ctx, checkToken)
		if err != nil {
			log.Printf("FAIL token check: %v", err)
			failures++
		} else {
			log.Printf("OK   token belongs to %s", user.Email)
		}
	}

	if failures > 0 {
		os.Exit(1)
	}
	log.Println("Backend looks healthy")
}
