// Package httpapi serves the catalog, favorites, and comparison over JSON HTTP.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/ersonp/dex-core/internal/application/handlers"
	"github.com/ersonp/dex-core/internal/domain/services"
)

const shutdownTimeout = 5 * time.Second

// Deps holds the collaborators the server routes to.
type Deps struct {
	Catalog        *handlers.CatalogHandler
	Favorites      *handlers.FavoritesHandler
	Compare        *handlers.CompareHandler
	Session        *services.Session
	Logger         *zap.Logger
	AllowedOrigins []string
}

// Server is the JSON API.
type Server struct {
	catalog   *handlers.CatalogHandler
	favorites *handlers.FavoritesHandler
	compare   *handlers.CompareHandler
	session   *services.Session
	logger    *zap.Logger
	origins   []string
}

// NewServer creates a new server.
func NewServer(deps Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		catalog:   deps.Catalog,
		favorites: deps.Favorites,
		compare:   deps.Compare,
		session:   deps.Session,
		logger:    logger,
		origins:   deps.AllowedOrigins,
	}
}

// Handler returns the router wrapped in CORS.
func (s *Server) Handler() http.Handler {
	router := gin.New()
	router.Use(requestID(), accessLog(s.logger), gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	s.RegisterRoutes(router.Group("/"))

	return cors.New(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
	}).Handler(router)
}

// RegisterRoutes mounts the API routes on rg.
func (s *Server) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/pokemon", s.listPokemon)
	rg.GET("/pokemon/:slug", s.getPokemon)

	rg.GET("/favorites", s.listFavorites)
	rg.POST("/favorites/:id", s.toggleFavorite)

	rg.GET("/compare", s.getSelection)
	rg.POST("/compare/:id", s.addToCompare)
	rg.DELETE("/compare/:id", s.removeFromCompare)
	rg.DELETE("/compare", s.clearCompare)
	rg.GET("/compare/result", s.compareResult)
}

// Run serves on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving http: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down http server: %w", err)
	}
	s.logger.Info("http server stopped")
	return nil
}
