package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"worklink/services/messaging-api/internal/domain/message"
	"worklink/services/messaging-api/internal/interfaces/httpserver/requests"
	"worklink/services/messaging-api/internal/interfaces/httpserver/responses"
	"worklink/services/messaging-api/internal/utils/platformerrors"
)

// MessageHandler exposes the message ledger and read-state endpoints.
type MessageHandler struct {
	messages message.Service
	log      zerolog.Logger
}

// NewMessageHandler builds the handler.
func NewMessageHandler(messages message.Service, log zerolog.Logger) *MessageHandler {
	return &MessageHandler{
		messages: messages,
		log:      log.With().Str("component", "message-handler").Logger(),
	}
}

// Send godoc
// @Summary      Send a message
// @Description  Appends a message to the conversation's ledger. A message needs a body, an attachment, or both.
// @Tags         messages
// @Accept       json
// @Produce      json
// @Param        conversation_id  path      string                       true  "Conversation ID (conv_xxx)"
// @Param        request          body      requests.SendMessageRequest  true  "Message payload"
// @Success      201              {object}  responses.MessageResponse
// @Failure      400              {object}  platformerrors.HTTPErrorResponse
// @Failure      403              {object}  platformerrors.HTTPErrorResponse
// @Failure      404              {object}  platformerrors.HTTPErrorResponse
// @Router       /v1/conversations/{conversation_id}/messages [post]
func (h *MessageHandler) Send(c *gin.Context) {
	var req requests.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		platformerrors.WriteValidationError(c, err.Error())
		return
	}

	msg, err := h.messages.Append(c.Request.Context(), c.Param("conversation_id"), req.SenderID, req.Body, req.AttachmentID)
	if err != nil {
		platformerrors.WriteError(c, err, h.log)
		return
	}

	c.JSON(http.StatusCreated, responses.NewMessageResponse(msg))
}

// List godoc
// @Summary      List a conversation's messages
// @Description  Full thread in chronological order. Only a participant may read it.
// @Tags         messages
// @Produce      json
// @Param        conversation_id  path      string  true  "Conversation ID (conv_xxx)"
// @Param        viewer_id        query     string  true  "Requesting participant ID"
// @Success      200              {object}  responses.MessageListResponse
// @Failure      403              {object}  platformerrors.HTTPErrorResponse
// @Failure      404              {object}  platformerrors.HTTPErrorResponse
// @Router       /v1/conversations/{conversation_id}/messages [get]
func (h *MessageHandler) List(c *gin.Context) {
	viewerID := c.Query("viewer_id")
	if viewerID == "" {
		platformerrors.WriteValidationError(c, "viewer_id query parameter is required")
		return
	}

	msgs, err := h.messages.List(c.Request.Context(), c.Param("conversation_id"), viewerID)
	if err != nil {
		platformerrors.WriteError(c, err, h.log)
		return
	}

	c.JSON(http.StatusOK, responses.NewMessageListResponse(msgs))
}

// MarkRead godoc
// @Summary      Mark a conversation read
// @Description  Flips every partner-authored unread message to read. Safe to repeat.
// @Tags         messages
// @Accept       json
// @Produce      json
// @Param        conversation_id  path      string                    true  "Conversation ID (conv_xxx)"
// @Param        request          body      requests.MarkReadRequest  true  "Viewer"
// @Success      200              {object}  responses.MarkReadResponse
// @Failure      403              {object}  platformerrors.HTTPErrorResponse
// @Failure      404              {object}  platformerrors.HTTPErrorResponse
// @Router       /v1/conversations/{conversation_id}/read [post]
func (h *MessageHandler) MarkRead(c *gin.Context) {
	var req requests.MarkReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		platformerrors.WriteValidationError(c, err.Error())
		return
	}

	conversationID := c.Param("conversation_id")
	transitioned, err := h.messages.MarkRead(c.Request.Context(), conversationID, req.ViewerID)
	if err != nil {
		platformerrors.WriteError(c, err, h.log)
		return
	}

	c.JSON(http.StatusOK, responses.MarkReadResponse{
		ConversationID: conversationID,
		MarkedRead:     transitioned,
	})
}
