package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mindmate/dto"
	"mindmate/models"
	"mindmate/services"
)

// SendMessageHandler godoc
// @Summary      Send a chat message
// @Description  Runs one conversational turn: risk classification, response selection, and transactional persistence of both message halves.
// @Tags         chat
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.SendMessageRequest  true  "message"
// @Success      201   {object}  dto.SendMessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      429   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/chat/message [post]
func SendMessageHandler(chatSvc *services.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := requireUser(c)
		if !ok {
			return
		}

		var req dto.SendMessageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid_request"})
			return
		}

		result, serr := chatSvc.SendMessage(c.Request.Context(), user, services.SendMessageInput{
			SessionID: req.SessionID,
			Content:   req.Message,
			Language:  req.Language,
		})
		if serr != nil {
			writeServiceError(c, serr)
			return
		}

		c.JSON(http.StatusCreated, dto.SendMessageResponse{
			MessageID:   result.MessageID,
			BotResponse: result.BotResponse,
			CrisisMode:  result.CrisisMode,
			SafetyCheck: dto.SafetyCheck{
				RiskLevel: result.Safety.RiskLevel,
				Reasons:   result.Safety.Reasons,
			},
		})
	}
}

// CreateSessionHandler godoc
// @Summary      Create a chat session
// @Tags         chat
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateSessionRequest  false  "correlation"
// @Success      201   {object}  models.ChatSession
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/chat/session [post]
func CreateSessionHandler(chatSvc *services.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := requireUser(c)
		if !ok {
			return
		}

		var req dto.CreateSessionRequest
		_ = c.ShouldBindJSON(&req)

		session, serr := chatSvc.CreateSession(c.Request.Context(), user, req.SessionID)
		if serr != nil {
			writeServiceError(c, serr)
			return
		}
		c.JSON(http.StatusCreated, session)
	}
}

// ListSessionsHandler godoc
// @Summary      List chat sessions
// @Description  Newest first. A q parameter filters by title or message content, case-insensitively.
// @Tags         chat
// @Security     BearerAuth
// @Produce      json
// @Param        q  query     string  false  "search query"
// @Success      200  {object}  dto.SessionListResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/chat/sessions [get]
func ListSessionsHandler(chatSvc *services.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := requireUser(c)
		if !ok {
			return
		}

		sessions, serr := chatSvc.ListSessions(c.Request.Context(), user, c.Query("q"))
		if serr != nil {
			writeServiceError(c, serr)
			return
		}
		if sessions == nil {
			sessions = []models.ChatSession{}
		}
		c.JSON(http.StatusOK, dto.SessionListResponse{Sessions: sessions})
	}
}

// GetSessionHandler godoc
// @Summary      Get a chat session with its messages
// @Tags         chat
// @Security     BearerAuth
// @Produce      json
// @Param        id  path      string  true  "session id"
// @Success      200  {object}  dto.SessionDetailResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/chat/session/{id} [get]
func GetSessionHandler(chatSvc *services.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := requireUser(c)
		if !ok {
			return
		}

		session, messages, serr := chatSvc.GetSession(c.Request.Context(), user, c.Param("id"))
		if serr != nil {
			writeServiceError(c, serr)
			return
		}
		c.JSON(http.StatusOK, dto.SessionDetailResponse{Session: session, Messages: messages})
	}
}

// RenameSessionHandler godoc
// @Summary      Rename a chat session
// @Tags         chat
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id    path      string                    true  "session id"
// @Param        body  body      dto.RenameSessionRequest  true  "title"
// @Success      200   {object}  models.ChatSession
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/chat/session/{id}/title [put]
func RenameSessionHandler(chatSvc *services.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := requireUser(c)
		if !ok {
			return
		}

		var req dto.RenameSessionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid_request"})
			return
		}

		session, serr := chatSvc.RenameSession(c.Request.Context(), user, c.Param("id"), req.Title)
		if serr != nil {
			writeServiceError(c, serr)
			return
		}
		c.JSON(http.StatusOK, session)
	}
}

// ExportSessionHandler godoc
// @Summary      Export a chat session
// @Description  format=json (default) returns the session and messages; format=html returns a standalone document.
// @Tags         chat
// @Security     BearerAuth
// @Produce      json
// @Param        id      path      string  true   "session id"
// @Param        format  query     string  false  "json or html"
// @Success      200     {object}  services.SessionExport
// @Failure      401     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/chat/session/{id}/export [get]
func ExportSessionHandler(chatSvc *services.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := requireUser(c)
		if !ok {
			return
		}

		if c.Query("format") == "html" {
			doc, serr := chatSvc.ExportSessionHTML(c.Request.Context(), user, c.Param("id"))
			if serr != nil {
				writeServiceError(c, serr)
				return
			}
			c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(doc))
			return
		}

		export, serr := chatSvc.ExportSession(c.Request.Context(), user, c.Param("id"))
		if serr != nil {
			writeServiceError(c, serr)
			return
		}
		c.JSON(http.StatusOK, export)
	}
}

// DeleteSessionHandler godoc
// @Summary      Delete a chat session
// @Description  Cascade-deletes the session's messages in the same transaction.
// @Tags         chat
// @Security     BearerAuth
// @Produce      json
// @Param        id  path      string  true  "session id"
// @Success      200  {object}  dto.StatusResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/chat/session/{id} [delete]
func DeleteSessionHandler(chatSvc *services.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := requireUser(c)
		if !ok {
			return
		}

		if serr := chatSvc.DeleteSession(c.Request.Context(), user, c.Param("id")); serr != nil {
			writeServiceError(c, serr)
			return
		}
		c.JSON(http.StatusOK, dto.StatusResponse{Status: "deleted"})
	}
}

// DeleteAllSessionsHandler godoc
// @Summary      Delete every chat session of the caller
// @Tags         chat
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  dto.DeleteSessionsResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/chat/sessions [delete]
func DeleteAllSessionsHandler(chatSvc *services.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := requireUser(c)
		if !ok {
			return
		}

		sessions, messages, serr := chatSvc.DeleteAllSessions(c.Request.Context(), user)
		if serr != nil {
			writeServiceError(c, serr)
			return
		}
		c.JSON(http.StatusOK, dto.DeleteSessionsResponse{
			DeletedSessions: sessions,
			DeletedMessages: messages,
		})
	}
}
