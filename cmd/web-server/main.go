package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"libraryhub/internal/auth"
	"libraryhub/internal/author"
	"libraryhub/internal/branch"
	"libraryhub/internal/catalog"
	"libraryhub/internal/loan"
	"libraryhub/internal/notify"
	"libraryhub/pkg/database"
	"libraryhub/pkg/models"
	"libraryhub/pkg/utils"
)

func main() {
	utils.LoadDotEnv()

	cfg := database.DefaultConfig()
	db := database.MustOpen(cfg)
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	srvCfg := utils.LoadServerConfig()

	router := gin.Default()
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})
	router.LoadHTMLGlob(srvCfg.TemplateGlob)

	hub := notify.NewHub()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": cfg.Path})
	})

	router.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":     "not_ready",
				"db_error":   err.Error(),
				"ws_clients": hub.Stats().WSClients,
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":     "ready",
			"db":         "ok",
			"ws_clients": hub.Stats().WSClients,
		})
	})

	// Auth pages (public)
	authCfg := utils.LoadAuthConfig()
	tokenSvc := auth.TokenService{
		Secret:   []byte(authCfg.JWTSecret),
		Issuer:   authCfg.JWTIssuer,
		Duration: authCfg.JWTDuration,
	}
	authRepo := auth.NewRepo(db)
	authHandler := auth.NewHandler(authRepo, tokenSvc)
	authHandler.RegisterRoutes(router)

	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusSeeOther, "/catalog")
	})

	// Patron pages (session required)
	branchRepo := branch.NewRepo(db)
	authorRepo := author.NewRepo(db)
	catalogRepo := catalog.NewRepo(db)
	loanRepo := loan.NewRepo(db)
	loanSvc := loan.NewService(loanRepo, hub)

	catalogHandler := catalog.NewHandler(catalogRepo, branchRepo, authorRepo, loanSvc)

	protected := router.Group("")
	protected.Use(auth.RequireUser(tokenSvc))
	catalogHandler.RegisterRoutes(protected)

	// Librarian pages (role required)
	librarian := router.Group("/librarian")
	librarian.Use(auth.RequireUser(tokenSvc), auth.RequireRole(models.RoleLibrarian))

	branch.NewHandler(branchRepo).RegisterRoutes(librarian)
	author.NewHandler(authorRepo).RegisterRoutes(librarian)
	catalogHandler.RegisterLibrarianRoutes(librarian)
	loan.NewHandler(loanRepo, branchRepo, hub).RegisterRoutes(librarian)
	librarian.GET("/ws", notify.WSHandler(hub))

	httpSrv := &http.Server{
		Addr:    srvCfg.Addr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("HTTP server listening on %s", srvCfg.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Printf("shutdown signal received: %s", sig)
	case err := <-errCh:
		log.Printf("server error: %v", err)
	}

	log.Println("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown error: %v", err)
	}
	log.Println("server stopped")
}
