package cmd

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"
	"github.com/spf13/cobra"

	"github.com/jmercer/compass/internal/config"
	"github.com/jmercer/compass/internal/handlers"
	"github.com/jmercer/compass/internal/service"
	"github.com/jmercer/compass/internal/session"
	"github.com/jmercer/compass/internal/workflow"
)

var port string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Compass web portal",
	Long:  `Start the web portal for discovering and tracking college and scholarship applications.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()

		// The flag wins only when given explicitly; otherwise the environment
		// (PORT / APP_PORT) decides.
		if !cmd.Flags().Changed("port") {
			port = cfg.AppPort
		}

		cookieKey := cfg.CookieSecret
		if cookieKey == "" {
			// Sessions won't survive a restart without a configured key.
			cookieKey = encryptcookie.GenerateKey()
			log.Println("COOKIE_SECRET not set; generated an ephemeral session key")
		}

		api := service.NewClient(cfg.APIBaseURL)
		sessions := session.NewManager("/login")
		d := handlers.Deps{
			API:      api,
			Sessions: sessions,
			Searcher: service.NewSearcher(api),
		}

		engine := html.New("./web/templates", ".html")
		engine.AddFunc("date", func(t time.Time) string {
			return t.Format("Jan 2, 2006")
		})

		app := fiber.New(fiber.Config{
			AppName: "Compass",
			Views:   engine,
		})

		app.Use(recover.New())
		app.Use(logger.New())
		app.Use(encryptcookie.New(encryptcookie.Config{Key: cookieKey}))

		// Public pages
		app.Get("/", handlers.HomeHandler(d))
		app.Get("/login", handlers.LoginPageHandler(d))
		app.Post("/login", handlers.LoginHandler(d))
		app.Get("/register", handlers.RegisterPageHandler(d))
		app.Post("/register", handlers.RegisterHandler(d))
		app.Get("/logout", handlers.LogoutHandler(d))

		// Discovery
		app.Get("/institutions", handlers.InstitutionsHandler(d))
		app.Get("/institutions/state/:code", handlers.InstitutionsByStateHandler(d))
		app.Get("/scholarships", handlers.ScholarshipsHandler(d))

		// Tracking (signed-in only)
		auth := app.Group("", sessions.RequireAuth())
		auth.Get("/colleges/dashboard", handlers.DashboardHandler(d, workflow.EntityCollege))
		auth.Get("/scholarships/dashboard", handlers.DashboardHandler(d, workflow.EntityScholarship))
		auth.Post("/track/:type/:id", handlers.TrackHandler(d))
		auth.Post("/applications/:type/:id/status", handlers.StatusHandler(d))
		auth.Post("/applications/:type/:id/notes", handlers.NotesHandler(d))
		auth.Post("/applications/:type/:id/delete", handlers.DeleteHandler(d))
		auth.Get("/profile", handlers.ProfileHandler(d))
		auth.Post("/profile", handlers.UpdateProfileHandler(d))
		auth.Post("/profile/settings", handlers.UpdateSettingsHandler(d))
		auth.Post("/profile/headshot", handlers.UploadHandler(d, "headshot"))
		auth.Post("/profile/resume", handlers.UploadHandler(d, "resume"))

		// Detail routes go last so fixed paths above win the match
		app.Get("/institutions/:id", handlers.InstitutionDetailHandler(d))
		app.Get("/scholarships/:id", handlers.ScholarshipDetailHandler(d))

		log.Printf("Starting server on :%s (backend %s)", port, cfg.APIBaseURL)
		if err := app.Listen(":" + port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVarP(&port, "port", "p", "3000", "Port to run the server on")
}
