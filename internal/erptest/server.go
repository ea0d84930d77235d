// Package erptest runs an in-process fake of the ERP REST backend for tests.
package erptest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"
	"github.com/liyang960414/erp/pkg/sdk"
)

var signingKey = []byte("erptest")

// Account is a user known to the fake backend.
type Account struct {
	Profile  sdk.UserProfile
	Password string
}

// Server is a fake ERP backend. The API is mounted under /api.
type Server struct {
	*httptest.Server

	mu        sync.Mutex
	accounts  map[string]*Account
	tokens    map[string]string
	auditLogs []sdk.AuditLog
	materials []sdk.Material
	orders    []sdk.SaleOrder
	tasks     []sdk.ImportTaskSummary
	boms      []sdk.BillOfMaterial
	bomSeq    int64
	suppliers []sdk.Supplier
	nextID    int64
	tokenSeq  int64

	// FailLogout makes POST /auth/logout answer 500.
	FailLogout atomic.Bool
	// FailProfile makes GET /users/me answer with this status when non-zero.
	FailProfile atomic.Int32

	LogoutCalls  atomic.Int32
	ProfileCalls atomic.Int32
}

// AdminRole grants every permission the fake knows about.
var AdminRole = sdk.Role{
	ID:   1,
	Name: "ADMIN",
	Permissions: []sdk.Permission{
		{ID: 1, Name: "user:read"},
		{ID: 2, Name: "user:write"},
		{ID: 3, Name: "audit:read"},
	},
}

// UserRole is the default role for regular accounts.
var UserRole = sdk.Role{
	ID:          2,
	Name:        "USER",
	Permissions: []sdk.Permission{{ID: 1, Name: "user:read"}},
}

// New starts a fake backend that is closed when the test ends.
func New(t testing.TB) *Server {
	t.Helper()
	s := &Server{
		accounts: make(map[string]*Account),
		tokens:   make(map[string]string),
		nextID:   1,
	}
	s.Server = httptest.NewServer(s.routes())
	t.Cleanup(s.Close)
	return s
}

// APIURL is the base URL clients should use.
func (s *Server) APIURL() string {
	return s.URL + "/api"
}

// AddUser registers an account and returns its profile.
func (s *Server) AddUser(username, password string, roles ...sdk.Role) sdk.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile := sdk.UserProfile{
		ID:                    s.nextID,
		Username:              username,
		Email:                 username + "@example.com",
		FullName:              strings.ToUpper(username[:1]) + username[1:],
		Enabled:               true,
		AccountNonExpired:     true,
		AccountNonLocked:      true,
		CredentialsNonExpired: true,
		Roles:                 roles,
	}
	s.nextID++
	s.accounts[username] = &Account{Profile: profile, Password: password}
	return profile
}

// IssueToken returns a valid token for username without a login round trip.
func (s *Server) IssueToken(username string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.issueLocked(username)
}

// Revoke invalidates every token held by username.
func (s *Server) Revoke(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for token, owner := range s.tokens {
		if owner == username {
			delete(s.tokens, token)
		}
	}
}

// AddAuditLog records an audit entry.
func (s *Server) AddAuditLog(entry sdk.AuditLog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry.ID = int64(len(s.auditLogs) + 1)
	s.auditLogs = append(s.auditLogs, entry)
}

// AddMaterial records a material.
func (s *Server) AddMaterial(m sdk.Material) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m.ID = int64(len(s.materials) + 1)
	s.materials = append(s.materials, m)
}

// AddSaleOrder records a sale order.
func (s *Server) AddSaleOrder(o sdk.SaleOrder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o.ID = int64(len(s.orders) + 1)
	s.orders = append(s.orders, o)
}

// AddImportTask records an import task.
func (s *Server) AddImportTask(task sdk.ImportTaskSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	task.TaskID = int64(len(s.tasks) + 1)
	s.tasks = append(s.tasks, task)
}

// AddBOM records a bill of materials.
func (s *Server) AddBOM(b sdk.BillOfMaterial) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bomSeq++
	b.ID = s.bomSeq
	s.boms = append(s.boms, b)
}

// AddSupplier records a supplier.
func (s *Server) AddSupplier(sup sdk.Supplier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sup.ID = int64(len(s.suppliers) + 1)
	s.suppliers = append(s.suppliers, sup)
}

func (s *Server) issueLocked(username string) string {
	claims := jwt.RegisteredClaims{
		Subject:   username,
		ID:        strconv.FormatInt(s.tokenSeq, 10),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	s.tokenSeq++
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(signingKey)
	if err != nil {
		panic(fmt.Sprintf("erptest: sign token: %v", err))
	}
	s.tokens[token] = username
	return token
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", s.handleLogin)
		r.Post("/auth/logout", s.handleLogout)

		r.Group(func(r chi.Router) {
			r.Use(s.authenticate)
			r.Get("/users/me", s.handleMe)

			r.Group(func(r chi.Router) {
				r.Use(s.requireRole("ADMIN"))
				r.Get("/users", s.handleListUsers)
				r.Get("/roles/list", s.handleListRoles)
				r.Get("/permissions/list", s.handleListPermissions)
				r.Get("/audit-logs", s.handleListAuditLogs)
				r.Get("/import-tasks", s.handleListImportTasks)
				r.Delete("/boms/{id}", s.handleDeleteBOM)
			})

			r.Get("/materials", s.handleListMaterials)
			r.Get("/sale-orders", s.handleListSaleOrders)
			r.Get("/boms", s.handleListBOMs)
			r.Get("/boms/{id}", s.handleGetBOM)
			r.Get("/suppliers", s.handleListSuppliers)
		})
	})
	return r
}

type ctxKey struct{}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok {
			writeProblem(w, http.StatusUnauthorized, "Unauthorized", "")
			return
		}
		s.mu.Lock()
		username, known := s.tokens[token]
		account := s.accounts[username]
		s.mu.Unlock()
		if !known || account == nil {
			writeProblem(w, http.StatusUnauthorized, "Unauthorized", "")
			return
		}
		next.ServeHTTP(w, r.WithContext(withAccount(r.Context(), account)))
	})
}

func (s *Server) requireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			account := accountFrom(r.Context())
			for _, have := range account.Profile.Roles {
				if have.Name == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			writeProblem(w, http.StatusForbidden, "Forbidden", "Access denied")
		})
	}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req sdk.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Malformed request", "")
		return
	}

	s.mu.Lock()
	account, ok := s.accounts[req.Username]
	if !ok || account.Password != req.Password {
		s.mu.Unlock()
		writeProblem(w, http.StatusUnauthorized, "Invalid username or password", "")
		return
	}
	token := s.issueLocked(req.Username)
	s.mu.Unlock()

	roles := make([]string, 0, len(account.Profile.Roles))
	for _, role := range account.Profile.Roles {
		roles = append(roles, role.Name)
	}
	writeEnvelope(w, sdk.LoginResponse{
		Token:     token,
		TokenType: "Bearer",
		UserID:    account.Profile.ID,
		Username:  account.Profile.Username,
		Email:     account.Profile.Email,
		FullName:  account.Profile.FullName,
		Roles:     roles,
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.LogoutCalls.Add(1)
	if s.FailLogout.Load() {
		writeProblem(w, http.StatusInternalServerError, "Logout unavailable", "")
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	s.ProfileCalls.Add(1)
	if status := int(s.FailProfile.Load()); status != 0 {
		writeProblem(w, status, http.StatusText(status), "")
		return
	}
	writeJSON(w, http.StatusOK, accountFrom(r.Context()).Profile)
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	users := make([]sdk.User, 0, len(s.accounts))
	for _, account := range s.accounts {
		p := account.Profile
		roles := make([]sdk.RoleSummary, 0, len(p.Roles))
		for _, role := range p.Roles {
			roles = append(roles, sdk.RoleSummary{ID: role.ID, Name: role.Name})
		}
		users = append(users, sdk.User{ID: p.ID, Username: p.Username, Email: p.Email, FullName: p.FullName, Enabled: p.Enabled, Roles: roles})
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, pageOf(users))
}

func (s *Server) handleListRoles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, []sdk.Role{AdminRole, UserRole})
}

func (s *Server) handleListPermissions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, AdminRole.Permissions)
}

func (s *Server) handleListAuditLogs(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	s.mu.Lock()
	logs := make([]sdk.AuditLog, 0, len(s.auditLogs))
	for _, entry := range s.auditLogs {
		if username == "" || entry.Username == username {
			logs = append(logs, entry)
		}
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, pageOf(logs))
}

func (s *Server) handleListImportTasks(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	tasks := append([]sdk.ImportTaskSummary(nil), s.tasks...)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, pageOf(tasks))
}

func (s *Server) handleListMaterials(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	materials := append([]sdk.Material(nil), s.materials...)
	s.mu.Unlock()
	writeEnvelope(w, materials)
}

// handleListSaleOrders nests paging under "page" like the real endpoint.
func (s *Server) handleListSaleOrders(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	orders := append([]sdk.SaleOrder(nil), s.orders...)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{
		"content": orders,
		"page": map[string]any{
			"size":          len(orders),
			"number":        0,
			"totalElements": len(orders),
			"totalPages":    1,
		},
	})
}

func (s *Server) handleListBOMs(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	boms := append([]sdk.BillOfMaterial(nil), s.boms...)
	s.mu.Unlock()
	writeEnvelope(w, boms)
}

func (s *Server) handleGetBOM(w http.ResponseWriter, r *http.Request) {
	idx, ok := s.bomIndex(chi.URLParam(r, "id"))
	if !ok {
		writeProblem(w, http.StatusNotFound, "Not Found", "BOM not found")
		return
	}
	s.mu.Lock()
	bom := s.boms[idx]
	s.mu.Unlock()
	writeEnvelope(w, bom)
}

func (s *Server) handleDeleteBOM(w http.ResponseWriter, r *http.Request) {
	idx, ok := s.bomIndex(chi.URLParam(r, "id"))
	if !ok {
		writeProblem(w, http.StatusNotFound, "Not Found", "BOM not found")
		return
	}
	s.mu.Lock()
	s.boms = append(s.boms[:idx], s.boms[idx+1:]...)
	s.mu.Unlock()
	writeEnvelope(w, nil)
}

func (s *Server) bomIndex(raw string) (int, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, b := range s.boms {
		if b.ID == id {
			return i, true
		}
	}
	return 0, false
}

func (s *Server) handleListSuppliers(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	suppliers := append([]sdk.Supplier(nil), s.suppliers...)
	s.mu.Unlock()
	writeEnvelope(w, suppliers)
}

func pageOf[T any](items []T) sdk.Page[T] {
	return sdk.Page[T]{
		Content:       items,
		TotalElements: int64(len(items)),
		TotalPages:    1,
		Size:          len(items),
	}
}

func writeEnvelope(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": data})
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	body := map[string]any{"status": status, "title": title}
	if detail != "" {
		body["detail"] = detail
	}
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
