package catalog

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libraryhub/internal/auth"
	"libraryhub/internal/author"
	"libraryhub/internal/branch"
	"libraryhub/internal/loan"
	"libraryhub/pkg/database"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	t.Setenv("LIBRARYHUB_SCHEMA", filepath.Join("..", "..", "docs", "schema.sql"))

	db, err := database.Open(database.Config{Path: filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func seed(t *testing.T, db *sql.DB, stmts ...string) {
	t.Helper()
	for _, s := range stmts {
		_, err := db.Exec(s)
		require.NoError(t, err)
	}
}

func setupRouter(t *testing.T, db *sql.DB) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.LoadHTMLGlob(filepath.Join("..", "..", "web", "templates", "*.html"))

	g := r.Group("")
	g.Use(func(c *gin.Context) {
		c.Set(auth.CtxClaimsKey, &auth.Claims{UserID: "patron-a", Username: "alice", Role: "patron"})
	})

	h := NewHandler(NewRepo(db), branch.NewRepo(db), author.NewRepo(db), loan.NewService(loan.NewRepo(db), nil))
	h.RegisterRoutes(g)
	return r
}

func TestBookPage_ZeroCopiesRendersNone(t *testing.T) {
	db := openTestDB(t)
	seed(t, db,
		`INSERT INTO books (isbn, title, blurb) VALUES ('0001', 'Dune', 'Spice and sand.')`,
	)
	r := setupRouter(t, db)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/catalog/book?isbn=0001", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Dune")
	assert.Contains(t, w.Body.String(), "None")
}

func TestBookPage_MissingISBNOmitsDetailSection(t *testing.T) {
	db := openTestDB(t)
	r := setupRouter(t, db)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/catalog/book", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "Book Details")
	assert.NotContains(t, w.Body.String(), "Book not found")
}

func TestBookPage_UnknownISBNIsNotFound(t *testing.T) {
	db := openTestDB(t)
	r := setupRouter(t, db)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/catalog/book?isbn=9999", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Book not found")
	assert.NotContains(t, w.Body.String(), "Book Details")
}

func TestBookPage_EscapesDataSourcedText(t *testing.T) {
	db := openTestDB(t)
	seed(t, db,
		`INSERT INTO books (isbn, title, blurb) VALUES
			('0001', '<script>alert(1)</script>', 'a & b <i>')`,
	)
	r := setupRouter(t, db)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/catalog/book?isbn=0001", nil)
	r.ServeHTTP(w, req)

	body := w.Body.String()
	assert.NotContains(t, body, "<script>alert(1)</script>")
	assert.Contains(t, body, "&lt;script&gt;alert(1)&lt;/script&gt;")
}

func TestRequestLoan_SuccessReservesCopy(t *testing.T) {
	db := openTestDB(t)
	seed(t, db,
		`INSERT INTO users (id, username, password_hash, role) VALUES ('patron-a', 'alice', 'x', 'patron')`,
		`INSERT INTO books (isbn, title, blurb) VALUES ('0001', 'Dune', 'Spice and sand.')`,
		`INSERT INTO branches (id, city, address) VALUES ('br-athens', 'Athens', '1 Main St')`,
		`INSERT INTO copies (id, isbn, branch_id, status) VALUES ('c1', '0001', 'br-athens', 'available')`,
	)
	r := setupRouter(t, db)

	form := url.Values{}
	form.Set("branch-city", loan.NoPreference)
	form.Set("branch-address", "")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/catalog/book?isbn=0001", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "accepted")

	var status string
	require.NoError(t, db.QueryRow(`SELECT status FROM copies WHERE id = 'c1'`).Scan(&status))
	assert.Equal(t, "on_loan", status)
}

func TestRequestLoan_NoCopyShowsConflictMessage(t *testing.T) {
	db := openTestDB(t)
	seed(t, db,
		`INSERT INTO users (id, username, password_hash, role) VALUES ('patron-a', 'alice', 'x', 'patron')`,
		`INSERT INTO books (isbn, title, blurb) VALUES ('0001', 'Dune', 'Spice and sand.')`,
	)
	r := setupRouter(t, db)

	form := url.Values{}
	form.Set("branch-city", loan.NoPreference)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/catalog/book?isbn=0001", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No copy of this book is available")
}
