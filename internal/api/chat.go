package api

import (
	"net/http"

	"roleplay-chat/backend/internal/markup"
	"roleplay-chat/backend/internal/models"
	"roleplay-chat/backend/internal/service"
	apperrors "roleplay-chat/backend/pkg/errors"
	"roleplay-chat/backend/pkg/middleware"

	"github.com/gin-gonic/gin"
)

// ChatHandler serves chat sessions and message turns
type ChatHandler struct {
	chat *service.ChatService
}

// NewChatHandler creates a chat handler
func NewChatHandler(chat *service.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

// messageView is a transcript entry plus its rendered markup
type messageView struct {
	Role       string             `json:"role"`
	Content    string             `json:"content"`
	IsInitial  bool               `json:"isInitial,omitempty"`
	Paragraphs []markup.Paragraph `json:"paragraphs"`
}

type sendMessageRequest struct {
	Content string `json:"content"`
}

// StartSession handles POST /chat/:name/sessions
func (h *ChatHandler) StartSession(c *gin.Context) {
	ownerID := middleware.CurrentUserID(c)

	session, err := h.chat.StartSession(c.Request.Context(), ownerID, c.Param("name"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"sessionId": session.ID,
		"character": session.Character,
		"messages":  renderTranscript(session.Transcript()),
	})
}

// GetTranscript handles GET /chat/sessions/:id
func (h *ChatHandler) GetTranscript(c *gin.Context) {
	ownerID := middleware.CurrentUserID(c)

	session, err := h.chat.GetSession(ownerID, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sessionId": session.ID,
		"character": session.Character,
		"messages":  renderTranscript(session.Transcript()),
	})
}

// SendMessage handles POST /chat/sessions/:id/messages
func (h *ChatHandler) SendMessage(c *gin.Context) {
	ownerID := middleware.CurrentUserID(c)

	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewValidationError("", "invalid message payload"))
		return
	}

	transcript, err := h.chat.SendMessage(c.Request.Context(), ownerID, c.Param("id"), req.Content)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sessionId": c.Param("id"),
		"messages":  renderTranscript(transcript),
	})
}

func renderTranscript(messages []models.Message) []messageView {
	views := make([]messageView, 0, len(messages))
	for _, msg := range messages {
		views = append(views, messageView{
			Role:       msg.Role,
			Content:    msg.Content,
			IsInitial:  msg.IsInitial,
			Paragraphs: markup.Render(msg.Content),
		})
	}
	return views
}
