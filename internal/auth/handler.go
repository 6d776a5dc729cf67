package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"libraryhub/pkg/models"
)

type Handler struct {
	Repo   *Repo
	Tokens TokenService
}

func NewHandler(repo *Repo, tokens TokenService) *Handler {
	return &Handler{Repo: repo, Tokens: tokens}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/login", h.loginPage)
	r.POST("/login", h.login)
	r.GET("/register", h.registerPage)
	r.POST("/register", h.register)
	r.POST("/logout", h.logout)
}

func (h *Handler) loginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{})
}

func (h *Handler) login(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")

	if username == "" || password == "" {
		c.HTML(http.StatusBadRequest, "login.html", gin.H{
			"Error": "Username and password are required.",
		})
		return
	}

	u, err := h.Repo.GetByUsername(c.Request.Context(), username)
	if err != nil || u == nil {
		// don't reveal which part failed
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{
			"Error": "Invalid credentials.",
		})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{
			"Error": "Invalid credentials.",
		})
		return
	}

	token, _, err := h.Tokens.Sign(u)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{
			"Message": "Could not start a session.",
		})
		return
	}

	c.SetCookie(SessionCookie, token, int(h.Tokens.Duration.Seconds()), "/", "", false, true)

	if u.Role == models.RoleLibrarian {
		c.Redirect(http.StatusSeeOther, "/librarian/dashboard")
		return
	}
	c.Redirect(http.StatusSeeOther, "/catalog")
}

func (h *Handler) registerPage(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", gin.H{})
}

func (h *Handler) register(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")

	if len(username) < 3 || len(username) > 30 {
		c.HTML(http.StatusBadRequest, "register.html", gin.H{
			"Error": "Username must be 3-30 characters.",
		})
		return
	}
	if len(password) < 8 || len(password) > 72 {
		c.HTML(http.StatusBadRequest, "register.html", gin.H{
			"Error": "Password must be 8-72 characters.",
		})
		return
	}

	if existing, _ := h.Repo.GetByUsername(c.Request.Context(), username); existing != nil {
		c.HTML(http.StatusConflict, "register.html", gin.H{
			"Error": "Username already taken.",
		})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{
			"Message": "Could not create the account.",
		})
		return
	}

	// self-service registration only creates patrons; librarians are
	// provisioned via the CSV importer
	u := models.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(hash),
		Role:         models.RolePatron,
	}

	if err := h.Repo.CreateUser(c.Request.Context(), u); err != nil {
		// unique constraint also fires here in races
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{
			"Message": "Could not create the account.",
		})
		return
	}

	token, _, err := h.Tokens.Sign(&u)
	if err != nil {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	c.SetCookie(SessionCookie, token, int(h.Tokens.Duration.Seconds()), "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/catalog")
}

func (h *Handler) logout(c *gin.Context) {
	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/login")
}
