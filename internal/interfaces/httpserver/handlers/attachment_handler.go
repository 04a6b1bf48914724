package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"worklink/services/messaging-api/internal/domain/attachment"
	"worklink/services/messaging-api/internal/interfaces/httpserver/responses"
	"worklink/services/messaging-api/internal/utils/platformerrors"
)

// AttachmentHandler exposes attachment upload and download endpoints.
type AttachmentHandler struct {
	attachments *attachment.Service
	log         zerolog.Logger
}

// NewAttachmentHandler builds the handler.
func NewAttachmentHandler(attachments *attachment.Service, log zerolog.Logger) *AttachmentHandler {
	return &AttachmentHandler{
		attachments: attachments,
		log:         log.With().Str("component", "attachment-handler").Logger(),
	}
}

// Upload godoc
// @Summary      Upload an attachment
// @Description  Validates and stores a file ahead of sending it in a message. Executable types are rejected.
// @Tags         attachments
// @Accept       multipart/form-data
// @Produce      json
// @Param        file         formData  file    true   "File to upload"
// @Param        uploader_id  formData  string  false  "Uploading participant ID"
// @Success      201          {object}  responses.AttachmentResponse
// @Failure      400          {object}  platformerrors.HTTPErrorResponse
// @Failure      413          {object}  platformerrors.HTTPErrorResponse
// @Failure      415          {object}  platformerrors.HTTPErrorResponse
// @Router       /v1/attachments [post]
func (h *AttachmentHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		platformerrors.WriteValidationError(c, "file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to read upload")
		platformerrors.WriteValidationError(c, "failed to read file")
		return
	}

	declaredMime := header.Header.Get("Content-Type")
	uploaderID := c.Request.FormValue("uploader_id")

	att, err := h.attachments.Accept(c.Request.Context(), data, header.Filename, declaredMime, uploaderID)
	if err != nil {
		platformerrors.WriteError(c, err, h.log)
		return
	}

	c.JSON(http.StatusCreated, responses.NewAttachmentResponse(att))
}

// Get godoc
// @Summary      Fetch attachment metadata
// @Tags         attachments
// @Produce      json
// @Param        attachment_id  path      string  true  "Attachment ID (att_xxx)"
// @Success      200            {object}  responses.AttachmentResponse
// @Failure      404            {object}  platformerrors.HTTPErrorResponse
// @Router       /v1/attachments/{attachment_id} [get]
func (h *AttachmentHandler) Get(c *gin.Context) {
	att, err := h.attachments.Get(c.Request.Context(), c.Param("attachment_id"))
	if err != nil {
		platformerrors.WriteError(c, err, h.log)
		return
	}

	c.JSON(http.StatusOK, responses.NewAttachmentResponse(att))
}

// Download godoc
// @Summary      Stream attachment bytes
// @Description  Streams the blob through the API without exposing storage locations.
// @Tags         attachments
// @Produce      octet-stream
// @Param        attachment_id  path  string  true  "Attachment ID (att_xxx)"
// @Success      200  "binary data"
// @Failure      404  {object}  platformerrors.HTTPErrorResponse
// @Router       /v1/attachments/{attachment_id}/download [get]
func (h *AttachmentHandler) Download(c *gin.Context) {
	att, reader, err := h.attachments.Open(c.Request.Context(), c.Param("attachment_id"))
	if err != nil {
		platformerrors.WriteError(c, err, h.log)
		return
	}
	defer reader.Close()

	contentType := att.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", `attachment; filename="`+att.Filename+`"`)
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, reader); err != nil {
		h.log.Error().Err(err).Str("attachment_id", att.PublicID).Msg("stream error")
	}
}
