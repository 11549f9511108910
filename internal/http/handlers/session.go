package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/mia-backend/internal/http/response"
	"github.com/yungbote/mia-backend/internal/platform/logger"
	"github.com/yungbote/mia-backend/internal/services"

	types "github.com/yungbote/mia-backend/internal/domain"
)

// SessionHandler exposes the wizard: one session per ideation run, mutated
// step by step until a locked idea can be exported.
type SessionHandler struct {
	log        *logger.Logger
	sessions   services.SessionService
	extraction services.ExtractionService
	export     services.ExportService
}

func NewSessionHandler(baseLog *logger.Logger, sessions services.SessionService, extraction services.ExtractionService, export services.ExportService) *SessionHandler {
	return &SessionHandler{
		log:        baseLog.With("handler", "SessionHandler"),
		sessions:   sessions,
		extraction: extraction,
		export:     export,
	}
}

func (h *SessionHandler) sessionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_session_id", err)
		return uuid.Nil, false
	}
	return id, true
}

func (h *SessionHandler) Create(c *gin.Context) {
	sess := h.sessions.Create(c.Request.Context())
	response.RespondCreated(c, sess)
}

func (h *SessionHandler) Get(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}
	sess, err := h.sessions.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, sess)
}

func (h *SessionHandler) Delete(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}
	if err := h.sessions.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type narrativeRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

func (h *SessionHandler) SetNarrative(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}
	var req narrativeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	sess, err := h.sessions.SetNarrative(c.Request.Context(), id, req.Prompt)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, sess)
}

type gamesRequest struct {
	Games []types.Game `json:"games" binding:"required"`
}

func (h *SessionHandler) SetGames(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}
	var req gamesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	sess, err := h.sessions.SetGames(c.Request.Context(), id, req.Games)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, sess)
}

// ExtractMechanics runs LLM extraction over the session's selected games and
// stores the result on the session.
func (h *SessionHandler) ExtractMechanics(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}
	sess, err := h.sessions.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	mechanics, err := h.extraction.ExtractMechanics(c.Request.Context(), sess.SelectedGames)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	sess, err = h.sessions.SetMechanics(c.Request.Context(), id, mechanics)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, sess)
}

type schemaRequest struct {
	Schema string `json:"schema" binding:"required"`
}

func (h *SessionHandler) SetSchema(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}
	var req schemaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	schema, ok2 := types.ParseSchema(req.Schema)
	if !ok2 {
		response.RespondError(c, http.StatusBadRequest, "unknown_schema", nil)
		return
	}
	sess, err := h.sessions.SetSchema(c.Request.Context(), id, schema)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, sess)
}

type ratingsRequest struct {
	Fun     *int `json:"fun" binding:"required"`
	Novelty *int `json:"novelty" binding:"required"`
	Visual  *int `json:"visual" binding:"required"`
}

func (h *SessionHandler) SetRatings(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}
	var req ratingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	ratings := types.RatingProfile{Fun: *req.Fun, Novelty: *req.Novelty, Visual: *req.Visual}
	sess, err := h.sessions.SetRatings(c.Request.Context(), id, ratings)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, sess)
}

func (h *SessionHandler) GenerateSuggestions(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}
	sess, err := h.sessions.GenerateSuggestions(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, sess)
}

func (h *SessionHandler) Lock(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}
	sess, err := h.sessions.Lock(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, sess)
}

// Export streams the locked idea as a downloadable markdown file.
func (h *SessionHandler) Export(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}
	sess, err := h.sessions.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if sess.Locked == nil {
		respondServiceError(c, services.ErrNothingToLock)
		return
	}
	md := h.export.Markdown(sess.Locked)
	c.Header("Content-Disposition", `attachment; filename="`+h.export.Filename(sess.Locked)+`"`)
	c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(md))
}
