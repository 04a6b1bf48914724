package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"worklink/services/messaging-api/internal/domain/conversation"
	"worklink/services/messaging-api/internal/domain/inbox"
	"worklink/services/messaging-api/internal/interfaces/httpserver/requests"
	"worklink/services/messaging-api/internal/interfaces/httpserver/responses"
	"worklink/services/messaging-api/internal/utils/platformerrors"
)

// ConversationHandler exposes conversation directory and inbox endpoints.
type ConversationHandler struct {
	conversations conversation.Service
	inbox         inbox.Service
	log           zerolog.Logger
}

// NewConversationHandler builds the handler.
func NewConversationHandler(conversations conversation.Service, inboxService inbox.Service, log zerolog.Logger) *ConversationHandler {
	return &ConversationHandler{
		conversations: conversations,
		inbox:         inboxService,
		log:           log.With().Str("component", "conversation-handler").Logger(),
	}
}

// Open godoc
// @Summary      Open a conversation
// @Description  Returns the single conversation for two participants, creating it on first contact.
// @Tags         conversations
// @Accept       json
// @Produce      json
// @Param        request  body      requests.OpenConversationRequest  true  "Participant pair"
// @Success      200      {object}  responses.ConversationResponse
// @Failure      400      {object}  platformerrors.HTTPErrorResponse
// @Router       /v1/conversations [post]
func (h *ConversationHandler) Open(c *gin.Context) {
	var req requests.OpenConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		platformerrors.WriteValidationError(c, err.Error())
		return
	}

	conv, err := h.conversations.OpenOrCreate(c.Request.Context(), req.ParticipantA, req.ParticipantB)
	if err != nil {
		platformerrors.WriteError(c, err, h.log)
		return
	}

	c.JSON(http.StatusOK, responses.NewConversationResponse(conv))
}

// Get godoc
// @Summary      Fetch a conversation
// @Tags         conversations
// @Produce      json
// @Param        conversation_id  path      string  true  "Conversation ID (conv_xxx)"
// @Success      200              {object}  responses.ConversationResponse
// @Failure      404              {object}  platformerrors.HTTPErrorResponse
// @Router       /v1/conversations/{conversation_id} [get]
func (h *ConversationHandler) Get(c *gin.Context) {
	conv, err := h.conversations.Get(c.Request.Context(), c.Param("conversation_id"))
	if err != nil {
		platformerrors.WriteError(c, err, h.log)
		return
	}

	c.JSON(http.StatusOK, responses.NewConversationResponse(conv))
}

// Inbox godoc
// @Summary      List the participant's inbox
// @Description  Conversation summaries ordered by most recent activity, with previews and unread counts.
// @Tags         conversations
// @Produce      json
// @Param        participant_id  query     string  true  "Participant ID"
// @Success      200             {object}  responses.InboxResponse
// @Failure      400             {object}  platformerrors.HTTPErrorResponse
// @Router       /v1/inbox [get]
func (h *ConversationHandler) Inbox(c *gin.Context) {
	participantID := c.Query("participant_id")
	if participantID == "" {
		platformerrors.WriteValidationError(c, "participant_id query parameter is required")
		return
	}

	summaries, err := h.inbox.ListFor(c.Request.Context(), participantID)
	if err != nil {
		platformerrors.WriteError(c, err, h.log)
		return
	}

	c.JSON(http.StatusOK, responses.NewInboxResponse(summaries))
}
