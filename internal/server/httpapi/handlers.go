// Package httpapi exposes the account service over HTTP/JSON. It owns
// request parsing, response serialization, and the mapping from the error
// taxonomy to HTTP status codes; business rules live in the services.
package httpapi

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mlukins/accountd/internal/server/accounts"
	"github.com/mlukins/accountd/internal/server/config"
	"github.com/mlukins/accountd/internal/server/models"
)

// AccountService is the slice of accounts.Service the handlers need.
type AccountService interface {
	Register(ctx context.Context, email, fullName, password string) (*models.Token, *models.User, error)
	UpdateProfile(ctx context.Context, user *models.User, patch accounts.Patch, basicVerified bool) (*models.User, error)
	ListUsers(ctx context.Context, requester *models.User, limit, offset int) (*accounts.Page, error)
}

// Authenticator resolves request credentials to a user. Satisfied by
// *auth.Resolver and the individual schemes.
type Authenticator interface {
	Authenticate(ctx context.Context, r *http.Request) (*models.User, error)
}

const currentUserKey = "currentUser"

type Handlers struct {
	accounts AccountService
	// bearerAuth guards the bearer-only endpoints; patchAuth tries bearer
	// then basic for PATCH /v1/user; basicAuth re-verifies Basic credentials
	// on the same request when a password change is asked for.
	bearerAuth Authenticator
	patchAuth  Authenticator
	basicAuth  Authenticator
	cfg        *config.Config
}

func NewHandlers(svc AccountService, bearerAuth, patchAuth, basicAuth Authenticator, cfg *config.Config) *Handlers {
	return &Handlers{
		accounts:   svc,
		bearerAuth: bearerAuth,
		patchAuth:  patchAuth,
		basicAuth:  basicAuth,
		cfg:        cfg,
	}
}

// RegisterRoutes wires the HTTP surface onto the engine.
func (h *Handlers) RegisterRoutes(r *gin.Engine) {
	r.GET("/healthz", h.health)

	v1 := r.Group("/v1")
	v1.POST("/users", h.createUser)
	v1.GET("/users", h.requireAuth(h.bearerAuth), h.listUsers)
	v1.GET("/user", h.requireAuth(h.bearerAuth), h.getLoggedUser)
	v1.PATCH("/user", h.requireAuth(h.patchAuth), h.updateLoggedUser)
}

// requireAuth authenticates the request with the given authenticator and
// stores the user on the gin context.
func (h *Handlers) requireAuth(a Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := a.Authenticate(c.Request.Context(), c.Request)
		if err != nil {
			writeError(c, err)
			c.Abort()
			return
		}
		c.Set(currentUserKey, user)
		c.Next()
	}
}

func currentUser(c *gin.Context) *models.User {
	return c.MustGet(currentUserKey).(*models.User)
}

// --- DTOs ---

type userProfile struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Locale   string `json:"locale"`
}

func toProfile(u *models.User) userProfile {
	return userProfile{ID: u.ID, Email: u.Email, FullName: u.FullName, Locale: u.Locale}
}

type tokenResponse struct {
	Token string      `json:"token"`
	User  userProfile `json:"user"`
}

type pageResponse struct {
	Items []userProfile `json:"items"`
	Count int64         `json:"count"`
}

// --- handlers ---

func (h *Handlers) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type createUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	FullName string `json:"full_name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handlers) createUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeDetail(c, http.StatusBadRequest, "Invalid request body.")
		return
	}

	token, user, err := h.accounts.Register(c.Request.Context(), req.Email, req.FullName, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, tokenResponse{Token: token.Secret, User: toProfile(user)})
}

func (h *Handlers) getLoggedUser(c *gin.Context) {
	c.JSON(http.StatusOK, toProfile(currentUser(c)))
}

type updateUserRequest struct {
	Email    *string `json:"email" binding:"omitempty,email"`
	FullName *string `json:"full_name"`
	Locale   *string `json:"locale"`
	Password *string `json:"password"`
}

func (h *Handlers) updateLoggedUser(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeDetail(c, http.StatusBadRequest, "Invalid request body.")
		return
	}

	patch := accounts.Patch{
		Email:    req.Email,
		FullName: req.FullName,
		Locale:   req.Locale,
		Password: req.Password,
	}

	// A password change must prove knowledge of the current password, so
	// Basic auth is re-run against this very request regardless of which
	// scheme authenticated it.
	basicVerified := false
	if patch.HasPassword() {
		if _, err := h.basicAuth.Authenticate(c.Request.Context(), c.Request); err == nil {
			basicVerified = true
		}
	}

	user, err := h.accounts.UpdateProfile(c.Request.Context(), currentUser(c), patch, basicVerified)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toProfile(user))
}

func (h *Handlers) listUsers(c *gin.Context) {
	limit := h.cfg.DefaultPageLimit
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > h.cfg.MaxPageLimit {
		limit = h.cfg.MaxPageLimit
	}

	offset := 0
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}

	page, err := h.accounts.ListUsers(c.Request.Context(), currentUser(c), limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}

	items := make([]userProfile, 0, len(page.Items))
	for _, u := range page.Items {
		items = append(items, toProfile(u))
	}

	c.JSON(http.StatusOK, pageResponse{Items: items, Count: page.Count})
}
