package main

import (
	"flag"
	"log"
	"net/http"
	"os"

	"finance-tracker/internal/accounts"
	"finance-tracker/internal/handlers"
	"finance-tracker/internal/storage"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	port := flag.String("port", envOr("PORT", "8080"), "Port to listen on")
	storePath := flag.String("store", envOr("STORE_PATH", "finance.db"), "Path to the store file")
	templateDir := flag.String("templates", "web/templates", "Path to the template directory")
	staticDir := flag.String("static", "web/static", "Path to the static assets directory")
	secureCookie := flag.Bool("secure-cookie", false, "Set the Secure flag on cookies (enable behind TLS)")
	flag.Parse()

	store, err := storage.NewLocalStore(*storePath)
	if err != nil {
		return err
	}
	defer store.Close()

	repo := accounts.NewRepository(store)
	h := handlers.NewHandlers(repo, *templateDir, *secureCookie)
	mux := setupRouter(h, *staticDir)

	log.Printf("Listening on :%s (store: %s)", *port, *storePath)
	return http.ListenAndServe(":"+*port, mux)
}

func setupRouter(h *handlers.Handlers, staticDir string) *http.ServeMux {
	mux := http.NewServeMux()

	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))

	mux.HandleFunc("GET /login", h.LoginForm)
	mux.HandleFunc("POST /login", h.Login)
	mux.HandleFunc("GET /register", h.RegisterForm)
	mux.HandleFunc("POST /register", h.Register)
	mux.HandleFunc("POST /logout", h.Logout)

	mux.Handle("GET /transactions", h.AuthMiddleware(http.HandlerFunc(h.ListTransactions)))
	mux.Handle("POST /transactions", h.AuthMiddleware(http.HandlerFunc(h.CreateTransaction)))
	mux.Handle("POST /transactions/{id}/delete", h.AuthMiddleware(http.HandlerFunc(h.DeleteTransaction)))
	mux.Handle("GET /report", h.AuthMiddleware(http.HandlerFunc(h.Report)))

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/transactions", http.StatusFound)
	})

	return mux
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
