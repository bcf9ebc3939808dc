package main

import (
	"fmt"
	"gonotes/handlers"
	"gonotes/utils"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found, continuing..")
		}
	}
	log.Println("environment: ", os.Getenv("APP_ENV"))

	// Initialize the database connection pool
	dbPool, err := utils.OpenDB(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	if err := utils.InitSchema(dbPool); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}

	redisPool := utils.OpenRedisPool(os.Getenv("REDIS_URL"))
	defer redisPool.Close()

	secret := os.Getenv("SECRET_KEY")
	if secret == "" {
		log.Fatal("SECRET_KEY must be set")
	}

	baseURL := os.Getenv("APP_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	app := &handlers.App{
		DB:      dbPool,
		Redis:   redisPool,
		Secret:  []byte(secret),
		BaseURL: baseURL,
		Mail:    utils.SendVerificationEmail,
	}

	// Set up the HTTP server and handlers
	mux := http.NewServeMux()

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		handlers.Index(w, r, app)
	})
	mux.HandleFunc("/register", func(w http.ResponseWriter, r *http.Request) {
		handlers.Register(w, r, app)
	})
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		handlers.Login(w, r, app)
	})
	mux.HandleFunc("/logout", func(w http.ResponseWriter, r *http.Request) {
		handlers.Logout(w, r, app)
	})
	mux.HandleFunc("/verify_email/", func(w http.ResponseWriter, r *http.Request) {
		handlers.VerifyEmail(w, r, app)
	})
	mux.HandleFunc("/unconfirmed", func(w http.ResponseWriter, r *http.Request) {
		handlers.Unconfirmed(w, r, app)
	})

	// Guarded routes: the policy runs before the handler body.
	mux.HandleFunc("/resend_verification_email", handlers.Protect(app, handlers.LoginOnly, handlers.ResendVerification))
	mux.HandleFunc("/notes", handlers.Protect(app, handlers.LoginAndVerified, handlers.Notes))
	mux.HandleFunc("/add_note", handlers.Protect(app, handlers.LoginAndVerified, handlers.AddNote))
	mux.HandleFunc("/edit_note/", handlers.Protect(app, handlers.LoginAndVerified, handlers.EditNote))
	mux.HandleFunc("/delete_note/", handlers.Protect(app, handlers.LoginAndVerified, handlers.DeleteNote))

	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":8080"
	}

	// Start the server
	fmt.Println("Starting server on " + addr)
	log.Fatal(http.ListenAndServe(addr, mux))
}
