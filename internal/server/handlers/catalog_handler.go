package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/hotel-admin/internal/service/hotel"
)

// CatalogHandler exposes CRUD routes for one collection. filter, when set,
// narrows List with the "q" query parameter.
type CatalogHandler[T any] struct {
	catalog *hotel.Catalog[T]
	filter  func([]T, string) []T
	name    string
	logger  *zap.Logger
}

func NewCatalogHandler[T any](catalog *hotel.Catalog[T], name string, filter func([]T, string) []T, logger *zap.Logger) *CatalogHandler[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogHandler[T]{catalog: catalog, filter: filter, name: name, logger: logger}
}

// Register mounts the five CRUD routes on g.
func (h *CatalogHandler[T]) Register(g *gin.RouterGroup) {
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

func (h *CatalogHandler[T]) List(c *gin.Context) {
	items, err := h.catalog.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "list "+h.name+" failed", err)
		return
	}
	if q := c.Query("q"); q != "" && h.filter != nil {
		items = h.filter(items, q)
	}
	c.JSON(http.StatusOK, items)
}

func (h *CatalogHandler[T]) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	item, err := h.catalog.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, "get "+h.name+" failed", err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *CatalogHandler[T]) Create(c *gin.Context) {
	var item T
	if err := c.ShouldBindJSON(&item); err != nil {
		badRequest(c, "corps de requête invalide")
		return
	}
	created, err := h.catalog.Create(c.Request.Context(), item)
	if err != nil {
		respondError(c, h.logger, "create "+h.name+" failed", err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *CatalogHandler[T]) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var item T
	if err := c.ShouldBindJSON(&item); err != nil {
		badRequest(c, "corps de requête invalide")
		return
	}
	updated, err := h.catalog.Update(c.Request.Context(), id, item)
	if err != nil {
		respondError(c, h.logger, "update "+h.name+" failed", err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *CatalogHandler[T]) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.catalog.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, "delete "+h.name+" failed", err)
		return
	}
	c.Status(http.StatusNoContent)
}
