package loan

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"libraryhub/internal/branch"
	"libraryhub/internal/notify"
	"libraryhub/pkg/models"
)

// Handler serves the librarian side of loans: the live dashboard and
// the add-copy form.
type Handler struct {
	Repo     *Repo
	Branches *branch.Repo
	Hub      *notify.Hub
}

func NewHandler(repo *Repo, branches *branch.Repo, hub *notify.Hub) *Handler {
	return &Handler{Repo: repo, Branches: branches, Hub: hub}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard", h.dashboard)
	rg.GET("/copies/new", h.addCopyPage)
	rg.POST("/copies/new", h.addCopy)
}

func (h *Handler) dashboard(c *gin.Context) {
	loans, err := h.Repo.RecentLoans(c.Request.Context(), 20)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{
			"Message": "Could not load recent loans.",
		})
		return
	}

	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"Loans": loans,
		"Stats": h.Hub.Stats(),
	})
}

func (h *Handler) addCopyPage(c *gin.Context) {
	h.renderAddCopy(c, http.StatusOK, nil)
}

func (h *Handler) addCopy(c *gin.Context) {
	isbn := strings.TrimSpace(c.PostForm("isbn"))
	branchID := strings.TrimSpace(c.PostForm("branch"))

	if isbn == "" || branchID == "" {
		h.renderAddCopy(c, http.StatusBadRequest, &pageResult{
			OK: false, Message: "ISBN and branch are required.",
		})
		return
	}

	cp := models.Copy{
		ID:       uuid.NewString(),
		ISBN:     isbn,
		BranchID: branchID,
		Status:   models.CopyAvailable,
	}
	if err := h.Repo.AddCopy(c.Request.Context(), cp); err != nil {
		h.renderAddCopy(c, http.StatusInternalServerError, &pageResult{
			OK: false, Message: "Could not add the copy.",
		})
		return
	}

	h.renderAddCopy(c, http.StatusOK, &pageResult{
		OK: true, Message: "Copy added and marked available.",
	})
}

type pageResult struct {
	OK      bool
	Message string
}

func (h *Handler) renderAddCopy(c *gin.Context, status int, result *pageResult) {
	branches, err := h.Branches.List(c.Request.Context())
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{
			"Message": "Could not load the branch directory.",
		})
		return
	}

	c.HTML(status, "add_copy.html", gin.H{
		"Branches": branches,
		"Result":   result,
	})
}
