package handlers

import (
	"context"
	"errors"
	"html/template"
	"log"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"finance-tracker/internal/accounts"
	"finance-tracker/internal/ledger"
	"finance-tracker/internal/models"
	"finance-tracker/internal/storage"

	"github.com/google/uuid"
)

// Context key type to avoid collisions.
type contextKey string

const (
	// UserContextKey is the context key for the authenticated user.
	UserContextKey contextKey = "user"
	// SessionCookieName is the name of the session cookie.
	SessionCookieName = "session"
	// flashCookieName carries the one-shot notification between redirects.
	flashCookieName = "flash"
)

// Handlers is the presentation adapter: it marshals form input into the
// core and rendered output back to the browser, and owns nothing else.
type Handlers struct {
	repo         *accounts.Repository
	templateDir  string
	secureCookie bool
	formatter    *ledger.Formatter

	mu       sync.Mutex
	sessions map[string]*accounts.Session
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(repo *accounts.Repository, templateDir string, secureCookie bool) *Handlers {
	return &Handlers{
		repo:         repo,
		templateDir:  templateDir,
		secureCookie: secureCookie,
		formatter:    ledger.DefaultFormatter(),
		sessions:     make(map[string]*accounts.Session),
	}
}

// GetUserFromContext retrieves the authenticated user from request context.
func GetUserFromContext(r *http.Request) (models.User, bool) {
	user, ok := r.Context().Value(UserContextKey).(models.User)
	return user, ok
}

// sessionFor returns the session bound to the request's cookie, or nil.
func (h *Handlers) sessionFor(r *http.Request) *accounts.Session {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.sessions[cookie.Value]
}

// bindSession registers an authenticated session under a new token and
// sets the cookie. Each browser session gets its own ephemeral store.
func (h *Handlers) bindSession(w http.ResponseWriter, sess *accounts.Session) {
	token := uuid.NewString()
	h.mu.Lock()
	h.sessions[token] = sess
	h.mu.Unlock()
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

// dropSession forgets the request's session and clears the cookie.
func (h *Handlers) dropSession(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		h.mu.Lock()
		delete(h.sessions, cookie.Value)
		h.mu.Unlock()
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

// AuthMiddleware wraps handlers to require an active session.
func (h *Handlers) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := h.sessionFor(r)
		if sess == nil {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		user, err := sess.Current()
		if err != nil {
			// Session slot is empty or unreadable, start over
			h.dropSession(w, r)
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		ctx := context.WithValue(r.Context(), UserContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Notification is a transient message shown once and auto-dismissed
// client-side.
type Notification struct {
	Message string
	Type    string // "success" or "error"
}

func (h *Handlers) setFlash(w http.ResponseWriter, kind, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    url.QueryEscape(kind + "|" + message),
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlash reads and clears the pending notification, if any.
func (h *Handlers) popFlash(w http.ResponseWriter, r *http.Request) *Notification {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	raw, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return nil
	}
	kind, message, ok := strings.Cut(raw, "|")
	if !ok {
		return nil
	}
	return &Notification{Message: message, Type: kind}
}

// AuthViewModel holds data for the login and register pages.
type AuthViewModel struct {
	Error        string
	Notification *Notification
}

// LoginForm renders the login page, or goes straight to the app when a
// session snapshot already exists.
func (h *Handlers) LoginForm(w http.ResponseWriter, r *http.Request) {
	if sess := h.sessionFor(r); sess != nil && sess.Active() {
		http.Redirect(w, r, "/transactions", http.StatusFound)
		return
	}
	h.render(w, "login.html", AuthViewModel{Notification: h.popFlash(w, r)})
}

// Login handles the login form submission.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, "login.html", AuthViewModel{Error: "Invalid form submission"})
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	sess := accounts.NewSession(storage.NewMemStore())
	svc := accounts.NewService(h.repo, sess)
	if _, err := svc.Authenticate(email, password); err != nil {
		if !errors.Is(err, accounts.ErrInvalidCredentials) {
			log.Printf("Login error: %v", err)
		}
		h.render(w, "login.html", AuthViewModel{Error: "Invalid email or password"})
		return
	}

	h.bindSession(w, sess)
	h.setFlash(w, "success", "Login successful!")
	http.Redirect(w, r, "/transactions", http.StatusFound)
}

// RegisterForm renders the registration page.
func (h *Handlers) RegisterForm(w http.ResponseWriter, r *http.Request) {
	if sess := h.sessionFor(r); sess != nil && sess.Active() {
		http.Redirect(w, r, "/transactions", http.StatusFound)
		return
	}
	h.render(w, "register.html", AuthViewModel{Notification: h.popFlash(w, r)})
}

// Register handles the registration form submission. Success logs the new
// user straight in.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, "register.html", AuthViewModel{Error: "Invalid form submission"})
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	sess := accounts.NewSession(storage.NewMemStore())
	svc := accounts.NewService(h.repo, sess)
	_, err := svc.Register(name, email, password)
	switch {
	case errors.Is(err, accounts.ErrDuplicateEmail):
		h.render(w, "register.html", AuthViewModel{Error: "Email already registered"})
		return
	case errors.Is(err, accounts.ErrInvalidInput):
		h.render(w, "register.html", AuthViewModel{Error: "Please fill in all fields with a valid email"})
		return
	case err != nil:
		log.Printf("Register error: %v", err)
		h.render(w, "register.html", AuthViewModel{Error: "An error occurred. Please try again."})
		return
	}

	h.bindSession(w, sess)
	h.setFlash(w, "success", "Registration successful!")
	http.Redirect(w, r, "/transactions", http.StatusFound)
}

// Logout clears the session. The durable store is untouched.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if sess := h.sessionFor(r); sess != nil {
		if err := accounts.NewService(h.repo, sess).Logout(); err != nil {
			log.Printf("Logout error: %v", err)
		}
	}
	h.dropSession(w, r)
	h.setFlash(w, "success", "Logged out successfully")
	http.Redirect(w, r, "/login", http.StatusFound)
}

// AppViewModel is the data passed to the main transactions view.
type AppViewModel struct {
	UserName        string
	Rows            []ledger.Row
	Balance         string
	BalanceNegative bool
	TotalIncome     string
	TotalExpense    string
	Today           string
	Notification    *Notification
}

// ListTransactions renders the transaction list with the three aggregates
// and the add form.
func (h *Handlers) ListTransactions(w http.ResponseWriter, r *http.Request) {
	user, _ := GetUserFromContext(r)
	sess := h.sessionFor(r)

	engine := ledger.NewEngine(h.repo, sess)
	transactions := engine.ListTransactions()
	agg := ledger.ComputeAggregates(transactions)

	h.render(w, "app.html", AppViewModel{
		UserName:        user.Name,
		Rows:            h.formatter.RenderList(transactions),
		Balance:         h.formatter.Money(agg.Balance),
		BalanceNegative: agg.Balance < 0,
		TotalIncome:     h.formatter.Money(agg.TotalIncome),
		TotalExpense:    h.formatter.Money(agg.TotalExpense),
		Today:           time.Now().Format("2006-01-02"),
		Notification:    h.popFlash(w, r),
	})
}

// CreateTransaction handles the add-transaction form submission.
func (h *Handlers) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.setFlash(w, "error", "Invalid form submission")
		http.Redirect(w, r, "/transactions", http.StatusFound)
		return
	}

	text := r.FormValue("text")
	amount, _ := strconv.ParseFloat(r.FormValue("amount"), 64)
	typ := models.TransactionType(r.FormValue("type"))
	date := r.FormValue("date")

	engine := ledger.NewEngine(h.repo, h.sessionFor(r))
	if _, err := engine.AddTransaction(text, amount, typ, date); err != nil {
		if !errors.Is(err, accounts.ErrInvalidInput) {
			log.Printf("CreateTransaction error: %v", err)
		}
		h.setFlash(w, "error", "Please provide a valid description and positive amount")
	} else {
		h.setFlash(w, "success", "Transaction added successfully")
	}
	http.Redirect(w, r, "/transactions", http.StatusFound)
}

// DeleteTransaction handles the delete button on a list row.
func (h *Handlers) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	engine := ledger.NewEngine(h.repo, h.sessionFor(r))
	if err := engine.DeleteTransaction(r.PathValue("id")); err != nil {
		log.Printf("DeleteTransaction error: %v", err)
		h.setFlash(w, "error", "Could not delete transaction")
	} else {
		h.setFlash(w, "success", "Transaction deleted")
	}
	http.Redirect(w, r, "/transactions", http.StatusFound)
}

// Report serves the printable transaction report.
func (h *Handlers) Report(w http.ResponseWriter, r *http.Request) {
	user, _ := GetUserFromContext(r)
	if len(user.Transactions) == 0 {
		h.setFlash(w, "error", "No transactions to print")
		http.Redirect(w, r, "/transactions", http.StatusFound)
		return
	}

	report, err := h.formatter.GenerateReport(user.Transactions, user.Name, time.Now())
	if err != nil {
		log.Printf("Report error: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write([]byte(report)); err != nil {
		log.Printf("Report write error: %v", err)
	}
}

func (h *Handlers) render(w http.ResponseWriter, viewName string, data any) {
	tmpl, err := template.ParseFiles(filepath.Join(h.templateDir, "base.html"), filepath.Join(h.templateDir, viewName))
	if err != nil {
		log.Printf("Template error: %v", err)
		http.Error(w, "Template error", http.StatusInternalServerError)
		return
	}
	if err := tmpl.ExecuteTemplate(w, "base.html", data); err != nil {
		log.Printf("Template execution error: %v", err)
	}
}
