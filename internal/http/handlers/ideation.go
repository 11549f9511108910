package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/mia-backend/internal/http/response"
	"github.com/yungbote/mia-backend/internal/modules/ideation"
	"github.com/yungbote/mia-backend/internal/platform/logger"

	types "github.com/yungbote/mia-backend/internal/domain"
)

// narrativePresets are the starter prompts offered in the first wizard step.
// Users can always type their own.
var narrativePresets = []string{
	"A lonely traveler discovers an ancient artifact that changes their destiny",
	"Two warring factions must unite to face a greater threat",
	"A hero loses their powers and must find a new way to save the world",
	"A peaceful village is threatened by mysterious forces from another realm",
	"A group of unlikely allies must work together to solve an ancient puzzle",
	"A character must choose between personal desires and the greater good",
	"A world where magic is dying and technology is rising",
	"A character discovers they are not who they thought they were",
}

// IdeationHandler serves the stateless pieces of the flow: prompt presets,
// schema metadata and ad-hoc narrative analysis.
type IdeationHandler struct {
	log *logger.Logger
}

func NewIdeationHandler(baseLog *logger.Logger) *IdeationHandler {
	return &IdeationHandler{log: baseLog.With("handler", "IdeationHandler")}
}

func (h *IdeationHandler) Presets(c *gin.Context) {
	response.RespondOK(c, gin.H{"presets": narrativePresets})
}

type schemaInfo struct {
	ID          types.Schema `json:"id"`
	DisplayName string       `json:"display_name"`
	Tagline     string       `json:"tagline"`
	Affinity    []string     `json:"affinity_themes"`
}

func (h *IdeationHandler) Schemas(c *gin.Context) {
	all := types.AllSchemas()
	out := make([]schemaInfo, 0, len(all))
	for _, s := range all {
		out = append(out, schemaInfo{
			ID:          s,
			DisplayName: s.DisplayName(),
			Tagline:     ideation.SchemaTagline(s),
			Affinity:    ideation.SchemaAffinityThemes(s),
		})
	}
	response.RespondOK(c, gin.H{"schemas": out})
}

type analyzeRequest struct {
	Text string `json:"text" binding:"required"`
}

// Analyze previews the narrative profile for arbitrary text without touching
// any session.
func (h *IdeationHandler) Analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	response.RespondOK(c, ideation.Analyze(req.Text))
}
