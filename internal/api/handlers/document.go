package handlers

import (
	"errors"
	"mime"
	"net/http"
	"path/filepath"

	apperrors "entity-tracker-backend/internal/errors"
	"entity-tracker-backend/internal/logger"
	"entity-tracker-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// multipartOverhead is the allowance for form fields and part headers on top
// of the file size limit.
const multipartOverhead int64 = 1 << 20

// DocumentHandler handles HTTP requests for documents
type DocumentHandler struct {
	documentService service.DocumentServiceInterface
	maxUploadBytes  int64
}

// NewDocumentHandler creates a new document handler. maxUploadBytes bounds
// the request body of uploads; zero disables the bound.
func NewDocumentHandler(documentService service.DocumentServiceInterface, maxUploadBytes int64) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
		maxUploadBytes:  maxUploadBytes,
	}
}

// ListEntityDocuments handles GET /api/entities/:id/documents
// @Summary List documents of an entity
// @Tags documents
// @Produce json
// @Param id path int true "Entity ID"
// @Success 200 {array} service.DocumentResponse "Successfully retrieved documents"
// @Failure 404 {object} ErrorResponse "Entity not found"
// @Router /entities/{id}/documents [get]
func (h *DocumentHandler) ListEntityDocuments(c *gin.Context) {
	entityID, ok := parseID(c, "id", "entity")
	if !ok {
		return
	}

	docs, err := h.documentService.GetByEntityID(c.Request.Context(), entityID)
	if err != nil {
		respondError(c, err, "Failed to get documents")
		return
	}

	c.JSON(http.StatusOK, docs)
}

// UploadDocument handles POST /api/entities/:id/documents
// @Summary Upload a document
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Entity ID"
// @Param file formData file true "Document file"
// @Param title formData string false "Title, defaults to the file name"
// @Param document_type formData string false "Document type"
// @Success 201 {object} service.DocumentResponse "Successfully uploaded document"
// @Failure 400 {object} ErrorResponse "No file or file type not allowed"
// @Failure 404 {object} ErrorResponse "Entity not found"
// @Failure 413 {object} ErrorResponse "File too large"
// @Router /entities/{id}/documents [post]
func (h *DocumentHandler) UploadDocument(c *gin.Context) {
	entityID, ok := parseID(c, "id", "entity")
	if !ok {
		return
	}

	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes+multipartOverhead)
	}

	header, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			respondError(c, &apperrors.TooLargeError{Limit: h.maxUploadBytes}, "Failed to upload document")
		case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
			respondError(c, apperrors.ErrNoFile, "Failed to upload document")
		default:
			badRequest(c, "Invalid multipart form", err)
		}
		return
	}

	file, err := header.Open()
	if err != nil {
		respondError(c, err, "Failed to read uploaded file")
		return
	}
	defer file.Close()

	req := &service.UploadDocumentRequest{
		Title:    c.PostForm("title"),
		Filename: header.Filename,
		Content:  file,
	}
	if docType, ok := c.GetPostForm("document_type"); ok && docType != "" {
		req.DocumentType = &docType
	}

	doc, err := h.documentService.Upload(c.Request.Context(), entityID, req)
	if err != nil {
		respondError(c, err, "Failed to upload document")
		return
	}

	c.JSON(http.StatusCreated, doc)
}

// GetDocument handles GET /api/documents/:id
// @Summary Get document metadata
// @Tags documents
// @Produce json
// @Param id path int true "Document ID"
// @Success 200 {object} service.DocumentResponse "Successfully retrieved document"
// @Failure 404 {object} ErrorResponse "Document not found"
// @Router /documents/{id} [get]
func (h *DocumentHandler) GetDocument(c *gin.Context) {
	id, ok := parseID(c, "id", "document")
	if !ok {
		return
	}

	doc, err := h.documentService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to get document")
		return
	}

	c.JSON(http.StatusOK, doc)
}

// UpdateDocument handles PUT and PATCH /api/documents/:id
// @Summary Update document metadata
// @Description Changes title or document_type. The stored file is not replaced.
// @Tags documents
// @Accept json
// @Produce json
// @Param id path int true "Document ID"
// @Param document body service.UpdateDocumentRequest true "Fields to change"
// @Success 200 {object} service.DocumentResponse "Successfully updated document"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 404 {object} ErrorResponse "Document not found"
// @Router /documents/{id} [put]
// @Router /documents/{id} [patch]
func (h *DocumentHandler) UpdateDocument(c *gin.Context) {
	id, ok := parseID(c, "id", "document")
	if !ok {
		return
	}

	var req service.UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}

	doc, err := h.documentService.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err, "Failed to update document")
		return
	}

	c.JSON(http.StatusOK, doc)
}

// DeleteDocument handles DELETE /api/documents/:id
// @Summary Delete a document
// @Tags documents
// @Param id path int true "Document ID"
// @Success 204 "Document deleted"
// @Failure 404 {object} ErrorResponse "Document not found"
// @Router /documents/{id} [delete]
func (h *DocumentHandler) DeleteDocument(c *gin.Context) {
	id, ok := parseID(c, "id", "document")
	if !ok {
		return
	}

	if err := h.documentService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to delete document")
		return
	}

	c.Status(http.StatusNoContent)
}

// DownloadDocument handles GET /api/documents/:id/download
// @Summary Download a document
// @Tags documents
// @Produce octet-stream
// @Param id path int true "Document ID"
// @Success 200 {file} file "Document content as attachment"
// @Failure 404 {object} ErrorResponse "Document or file not found"
// @Router /documents/{id}/download [get]
func (h *DocumentHandler) DownloadDocument(c *gin.Context) {
	h.serveContent(c, "attachment")
}

// ViewDocument handles GET /api/documents/:id/view
// @Summary View a document inline
// @Tags documents
// @Produce octet-stream
// @Param id path int true "Document ID"
// @Success 200 {file} file "Document content for inline display"
// @Failure 404 {object} ErrorResponse "Document or file not found"
// @Router /documents/{id}/view [get]
func (h *DocumentHandler) ViewDocument(c *gin.Context) {
	h.serveContent(c, "inline")
}

func (h *DocumentHandler) serveContent(c *gin.Context, disposition string) {
	id, ok := parseID(c, "id", "document")
	if !ok {
		return
	}

	content, err := h.documentService.OpenContent(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to open document")
		return
	}
	defer content.Body.Close()

	doc := content.Document
	name := doc.Title
	if doc.OriginalFilename != nil && *doc.OriginalFilename != "" {
		name = *doc.OriginalFilename
	}
	contentType := "application/octet-stream"
	if doc.FilePath != nil {
		if t := mime.TypeByExtension(filepath.Ext(*doc.FilePath)); t != "" {
			contentType = t
		}
	}
	length := int64(-1)
	if doc.FileSize != nil {
		length = *doc.FileSize
	}

	c.DataFromReader(http.StatusOK, length, contentType, content.Body, map[string]string{
		"Content-Disposition":    mime.FormatMediaType(disposition, map[string]string{"filename": name}),
		"X-Content-Type-Options": "nosniff",
	})
	logger.WithContext(c.Request.Context()).WithField("document_id", id).Debug("Document content served")
}
