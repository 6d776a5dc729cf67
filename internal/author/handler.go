package author

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"libraryhub/pkg/models"
)

type Handler struct {
	Repo *Repo
}

func NewHandler(repo *Repo) *Handler {
	return &Handler{Repo: repo}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/authors/new", h.page)
	rg.POST("/authors/new", h.create)
}

func (h *Handler) page(c *gin.Context) {
	c.HTML(http.StatusOK, "add_author.html", gin.H{})
}

func (h *Handler) create(c *gin.Context) {
	firstName := strings.TrimSpace(c.PostForm("firstName"))
	lastName := strings.TrimSpace(c.PostForm("lastName"))
	birthdate := strings.TrimSpace(c.PostForm("birthdate"))
	deathDate := strings.TrimSpace(c.PostForm("deathDate"))
	bio := strings.TrimSpace(c.PostForm("bio"))
	dead := c.PostForm("dead") != ""

	if firstName == "" || lastName == "" || bio == "" {
		c.HTML(http.StatusBadRequest, "add_author.html", gin.H{
			"Result": gin.H{"OK": false, "Message": "First name, last name and bio are required."},
		})
		return
	}

	// a recorded death date always wins over the checkbox: death date
	// present implies not alive
	if deathDate != "" {
		dead = true
	}

	a := models.Author{
		ID:        uuid.NewString(),
		FirstName: firstName,
		LastName:  lastName,
		Alive:     !dead,
		Birthdate: birthdate,
		DeathDate: deathDate,
		Bio:       bio,
	}

	if err := h.Repo.Create(c.Request.Context(), a); err != nil {
		c.HTML(http.StatusInternalServerError, "add_author.html", gin.H{
			"Result": gin.H{"OK": false, "Message": "Could not save the author."},
		})
		return
	}

	c.HTML(http.StatusOK, "add_author.html", gin.H{
		"Result": gin.H{"OK": true, "Message": "Author successfully added to the catalog."},
	})
}
