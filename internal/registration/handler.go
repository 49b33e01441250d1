package registration

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"musicreg/internal/auth"
	"musicreg/pkg/models"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes expects rg to already run auth.AuthMiddleware.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/registrations", h.create)
	rg.GET("/registrations", h.list)
	rg.GET("/registrations/:id", h.get)
	rg.PUT("/registrations/:id", h.update)
	rg.DELETE("/registrations/:id", h.delete)
}

// ListResponse is the body of GET /registrations.
type ListResponse struct {
	Limit  int                   `json:"limit"`
	Offset int                   `json:"offset"`
	Total  int                   `json:"total"`
	Items  []models.Registration `json:"items"`
}

func (h *Handler) create(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req models.Dossier
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	reg, err := h.Svc.Create(c.Request.Context(), claims.UserID, req)
	if err != nil {
		writeError(c, err, "create failed")
		return
	}
	c.JSON(http.StatusCreated, reg)
}

func (h *Handler) update(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req models.Dossier
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	reg, err := h.Svc.Update(c.Request.Context(), id, claims.UserID, req)
	if err != nil {
		writeError(c, err, "update failed")
		return
	}
	c.JSON(http.StatusOK, reg)
}

func (h *Handler) get(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	reg, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err, "get failed")
		return
	}
	// other users' registrations are reported as missing
	if reg.UserID != claims.UserID {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, reg)
}

func (h *Handler) list(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	f := ListFilter{
		UserID: claims.UserID,
		Genre:  strings.TrimSpace(c.Query("genre")),
		Limit:  parseInt(c.Query("limit"), 20),
		Offset: parseInt(c.Query("offset"), 0),
	}.WithDefaults()
	items, total, err := h.Svc.List(c.Request.Context(), f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, ListResponse{Limit: f.Limit, Offset: f.Offset, Total: total, Items: items})
}

func (h *Handler) delete(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.Svc.Delete(c.Request.Context(), id, claims.UserID); err != nil {
		writeError(c, err, "delete failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

func writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case isValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

func isValidation(err error) bool {
	for _, target := range []error{ErrTitleRequired, ErrGenreInvalid, ErrAuthorRequired, ErrAuthorInvalid, ErrPageCount} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func parseInt(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
