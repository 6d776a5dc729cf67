package catalog

import (
	"encoding/json"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"libraryhub/internal/auth"
	"libraryhub/internal/author"
	"libraryhub/internal/branch"
	"libraryhub/internal/loan"
	"libraryhub/pkg/models"
)

type Handler struct {
	Repo     *Repo
	Branches *branch.Repo
	Authors  *author.Repo
	Loans    *loan.Service
}

func NewHandler(repo *Repo, branches *branch.Repo, authors *author.Repo, loans *loan.Service) *Handler {
	return &Handler{Repo: repo, Branches: branches, Authors: authors, Loans: loans}
}

// RegisterRoutes mounts the patron-facing catalog pages; the group must
// already require a session.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/catalog", h.listPage)
	rg.GET("/catalog/book", h.bookPage)
	rg.POST("/catalog/book", h.requestLoan)
}

// RegisterLibrarianRoutes mounts the add-book form on a role-gated group.
func (h *Handler) RegisterLibrarianRoutes(rg *gin.RouterGroup) {
	rg.GET("/books/new", h.addBookPage)
	rg.POST("/books/new", h.addBook)
}

func (h *Handler) listPage(c *gin.Context) {
	q := ListQuery{
		Q:      c.Query("q"),
		Limit:  parseInt(c.Query("limit"), 20),
		Offset: parseInt(c.Query("offset"), 0),
	}

	total, err := h.Repo.Count(c.Request.Context(), q)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{
			"Message": "Could not load the catalog.",
		})
		return
	}

	books, err := h.Repo.List(c.Request.Context(), q)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{
			"Message": "Could not load the catalog.",
		})
		return
	}

	claims := auth.MustGetClaims(c)
	c.HTML(http.StatusOK, "catalog.html", gin.H{
		"Books":       books,
		"Total":       total,
		"Query":       q.Q,
		"Username":    claims.Username,
		"IsLibrarian": claims.Role == models.RoleLibrarian,
	})
}

func (h *Handler) bookPage(c *gin.Context) {
	h.renderBookPage(c, http.StatusOK, nil)
}

func (h *Handler) requestLoan(c *gin.Context) {
	claims := auth.MustGetClaims(c)

	req := loan.Request{
		ISBN:              c.Query("isbn"),
		PreferredCity:     c.PostForm("branch-city"),
		PreferredBranchID: c.PostForm("branch-address"),
	}
	if claims != nil {
		req.PatronID = claims.UserID
	}

	result, err := h.Loans.Request(c.Request.Context(), req)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{
			"Message": "The loan request could not be processed.",
		})
		return
	}

	h.renderBookPage(c, http.StatusOK, &result)
}

// renderBookPage assembles the book detail page: aggregated book view,
// global availability count, and the full branch list serialized for
// the client-side city/branch cascade. A missing isbn renders the page
// without the detail card; an unknown isbn renders it with a
// not-found notice.
func (h *Handler) renderBookPage(c *gin.Context, status int, result *loan.Result) {
	isbn := c.Query("isbn")

	data := gin.H{
		"ISBN":   isbn,
		"Result": result,
	}
	if claims := auth.MustGetClaims(c); claims != nil {
		data["Username"] = claims.Username
		data["IsLibrarian"] = claims.Role == models.RoleLibrarian
	}

	if isbn != "" {
		rows, err := h.Repo.BookAuthorRows(c.Request.Context(), isbn)
		if err != nil {
			c.HTML(http.StatusInternalServerError, "error.html", gin.H{
				"Message": "Error in query execution.",
			})
			return
		}

		view, ok := Lookup(Aggregate(rows), isbn)
		if !ok {
			data["NotFound"] = true
			status = http.StatusNotFound
		} else {
			count, err := h.Repo.CountAvailable(c.Request.Context(), isbn)
			if err != nil {
				c.HTML(http.StatusInternalServerError, "error.html", gin.H{
					"Message": "Error in query execution.",
				})
				return
			}

			data["Book"] = view
			data["AvailableText"] = availableText(count)
		}
	}

	branches, err := h.Branches.List(c.Request.Context())
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{
			"Message": "Error in query execution.",
		})
		return
	}
	if branches == nil {
		branches = []models.Branch{}
	}

	branchesJSON, err := json.Marshal(branches)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{
			"Message": "Error in query execution.",
		})
		return
	}

	data["Cities"] = branch.Cities(branches)
	data["BranchesJSON"] = template.JS(branchesJSON)
	data["NoPreference"] = loan.NoPreference

	c.HTML(status, "book_page.html", data)
}

// availableText renders a zero count as the literal word.
func availableText(count int) string {
	if count == 0 {
		return "None"
	}
	return strconv.Itoa(count)
}

func (h *Handler) addBookPage(c *gin.Context) {
	h.renderAddBook(c, http.StatusOK, nil)
}

func (h *Handler) addBook(c *gin.Context) {
	isbn := strings.TrimSpace(c.PostForm("isbn"))
	title := strings.TrimSpace(c.PostForm("title"))
	publisher := strings.TrimSpace(c.PostForm("publisher"))
	blurb := strings.TrimSpace(c.PostForm("blurb"))
	authorIDs := c.PostFormArray("authors")

	if isbn == "" || title == "" {
		h.renderAddBook(c, http.StatusBadRequest, &pageResult{
			OK: false, Message: "ISBN and title are required.",
		})
		return
	}

	b := models.Book{ISBN: isbn, Title: title, Publisher: publisher, Blurb: blurb}
	if err := h.Repo.CreateBook(c.Request.Context(), b, authorIDs); err != nil {
		h.renderAddBook(c, http.StatusInternalServerError, &pageResult{
			OK: false, Message: "Could not save the book.",
		})
		return
	}

	h.renderAddBook(c, http.StatusOK, &pageResult{
		OK: true, Message: "Book added to the catalog.",
	})
}

type pageResult struct {
	OK      bool
	Message string
}

func (h *Handler) renderAddBook(c *gin.Context, status int, result *pageResult) {
	authors, err := h.Authors.List(c.Request.Context())
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{
			"Message": "Could not load the author list.",
		})
		return
	}

	c.HTML(status, "add_book.html", gin.H{
		"Authors": authors,
		"Result":  result,
	})
}

func parseInt(s string, def int) int {
	if strings.TrimSpace(s) == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
