package branch

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

// RegisterRoutes mounts the librarian branch pages; the group must
// already be role-gated.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/branches", h.page)
	rg.POST("/branches", h.create)
}

func (h *Handler) page(c *gin.Context) {
	h.render(c, http.StatusOK, nil)
}

func (h *Handler) create(c *gin.Context) {
	city := strings.TrimSpace(c.PostForm("city"))
	address := strings.TrimSpace(c.PostForm("address"))

	if city == "" || address == "" {
		h.render(c, http.StatusBadRequest, &pageResult{
			OK: false, Message: "City and address are required.",
		})
		return
	}

	b := models.Branch{
		ID:      uuid.NewString(),
		City:    city,
		Address: address,
	}
	if err := h.Repo.Create(c.Request.Context(), b); err != nil {
		h.render(c, http.StatusInternalServerError, &pageResult{
			OK: false, Message: "Could not save the branch.",
		})
		return
	}

	h.render(c, http.StatusOK, &pageResult{
		OK: true, Message: "Branch added to the directory.",
	})
}

type pageResult struct {
	OK      bool
	Message string
}

func (h *Handler) render(c *gin.Context, status int, result *pageResult) {
	branches, err := h.Repo.List(c.Request.Context())
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{
			"Message": "Could not load the branch directory.",
		})
		return
	}

	c.HTML(status, "branches.html", gin.H{
		"Branches": branches,
		"Result":   result,
	})
}
