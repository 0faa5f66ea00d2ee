package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ersonp/dex-core/internal/domain/entities"
)

func (s *Server) listPokemon(c *gin.Context) {
	mode, err := entities.ParseViewMode(c.Query("view"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	state := entities.ViewFilterState{
		SearchQuery:   c.Query("q"),
		FavoritesOnly: c.Query("favorites") == "true",
		ViewMode:      mode,
	}.WithTypeChips(splitList(c.Query("types"))...)

	result, err := s.catalog.HandleList(c.Request.Context(), state)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) getPokemon(c *gin.Context) {
	result, err := s.catalog.HandleDetail(c.Request.Context(), c.Param("slug"))
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "catalog unavailable"})
		return
	}
	if !result.Found() {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) listFavorites(c *gin.Context) {
	result, err := s.favorites.HandleList(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "favorites unavailable"})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) toggleFavorite(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	result, err := s.favorites.HandleToggle(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}
	c.JSON(http.StatusOK, result)
}

type selectionResponse struct {
	Items []entities.EntitySummary `json:"items"`
	Full  bool                     `json:"full"`
	Ready bool                     `json:"ready"`
	Added *bool                    `json:"added,omitempty"`
}

func newSelectionResponse(sel entities.ComparisonSelection) selectionResponse {
	return selectionResponse{Items: sel.Items(), Full: sel.IsFull(), Ready: sel.Ready()}
}

func (s *Server) getSelection(c *gin.Context) {
	sel, err := s.session.Selection(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "session unavailable"})
		return
	}
	c.JSON(http.StatusOK, newSelectionResponse(sel))
}

func (s *Server) addToCompare(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var item *entities.EntitySummary
	for _, summary := range s.catalog.Summaries(c.Request.Context()) {
		if summary.ID == id {
			item = &summary
			break
		}
	}
	if item == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
		return
	}

	sel, added, err := s.session.AddToCompare(c.Request.Context(), *item)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "session unavailable"})
		return
	}
	resp := newSelectionResponse(sel)
	resp.Added = &added
	c.JSON(http.StatusOK, resp)
}

func (s *Server) removeFromCompare(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	sel, err := s.session.RemoveFromCompare(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "session unavailable"})
		return
	}
	c.JSON(http.StatusOK, newSelectionResponse(sel))
}

func (s *Server) clearCompare(c *gin.Context) {
	if err := s.session.ClearCompare(c.Request.Context()); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "session unavailable"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) compareResult(c *gin.Context) {
	sel, err := s.session.Selection(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "session unavailable"})
		return
	}

	result, err := s.compare.HandleCompare(c.Request.Context(), sel)
	switch {
	case errors.Is(err, entities.ErrSelectionTooSmall):
		c.JSON(http.StatusBadRequest, gin.H{"error": "selection_too_small", "min": entities.MinCompare})
	case errors.Is(err, entities.ErrInsufficientData):
		c.JSON(http.StatusConflict, gin.H{"error": "insufficient_data"})
	case err != nil:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "compare failed"})
	default:
		c.JSON(http.StatusOK, result)
	}
}

// pathID parses the :id parameter, writing a 400 when it is not a positive integer.
func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a positive integer"})
		return 0, false
	}
	return id, true
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.ToLower(strings.TrimSpace(part)); part != "" {
			out = append(out, part)
		}
	}
	return out
}
