package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/mia-backend/internal/http/response"
	"github.com/yungbote/mia-backend/internal/platform/logger"
	"github.com/yungbote/mia-backend/internal/services"
)

type CatalogHandler struct {
	log     *logger.Logger
	catalog services.CatalogService
}

func NewCatalogHandler(baseLog *logger.Logger, catalog services.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		log:     baseLog.With("handler", "CatalogHandler"),
		catalog: catalog,
	}
}

func (h *CatalogHandler) Popular(c *gin.Context) {
	count := intQuery(c, "count", 10)
	games, err := h.catalog.Popular(c.Request.Context(), count)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"games": games})
}

func (h *CatalogHandler) Search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		response.RespondError(c, http.StatusBadRequest, "missing_query", nil)
		return
	}
	limit := intQuery(c, "limit", 10)
	games, err := h.catalog.Search(c.Request.Context(), q, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"games": games})
}

func intQuery(c *gin.Context, name string, def int) int {
	v := strings.TrimSpace(c.Query(name))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
