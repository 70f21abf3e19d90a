package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"entity-tracker-backend/internal/database/models"
	apperrors "entity-tracker-backend/internal/errors"
	"entity-tracker-backend/internal/logger"
	"entity-tracker-backend/internal/repository"
	"entity-tracker-backend/internal/storage"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// DocumentService handles document metadata and the blobs behind it
type DocumentService struct {
	repo      repository.DocumentRepositoryInterface
	blobs     storage.BlobStore
	validator *validator.Validate
}

// NewDocumentService creates a new document service
func NewDocumentService(repo repository.DocumentRepositoryInterface, blobs storage.BlobStore, validator *validator.Validate) *DocumentService {
	return &DocumentService{
		repo:      repo,
		blobs:     blobs,
		validator: validator,
	}
}

// UploadDocumentRequest carries a multipart upload
type UploadDocumentRequest struct {
	Title        string  `validate:"max=200"`
	DocumentType *string `validate:"omitempty,max=100"`
	Filename     string
	Content      io.Reader
}

// UpdateDocumentRequest represents a partial update of document metadata
type UpdateDocumentRequest struct {
	Title        Optional[string] `json:"title" swaggertype:"string"`
	DocumentType Optional[string] `json:"document_type" swaggertype:"string"`
}

// DocumentContent is an open document blob with the metadata needed to serve it
type DocumentContent struct {
	Document *DocumentResponse
	Body     io.ReadCloser
}

// Upload stores the file first and then records its metadata. If the record
// cannot be written the stored blob is removed again.
func (s *DocumentService) Upload(ctx context.Context, entityID uint, req *UploadDocumentRequest) (*DocumentResponse, error) {
	if req.Content == nil || strings.TrimSpace(req.Filename) == "" {
		return nil, apperrors.ErrNoFile
	}
	if err := validateStruct(s.validator, req); err != nil {
		return nil, err
	}

	filename := filepath.Base(req.Filename)
	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = filename
	}
	if len([]rune(title)) > 200 {
		title = string([]rune(title)[:200])
	}

	locator, size, err := s.blobs.Store(ctx, req.Content, filename)
	if err != nil {
		return nil, err
	}

	doc := &models.Document{
		EntityID:         entityID,
		Title:            title,
		FilePath:         &locator,
		OriginalFilename: &filename,
		DocumentType:     req.DocumentType,
		FileSize:         &size,
	}
	if err := s.repo.Create(ctx, doc); err != nil {
		if rmErr := s.blobs.Delete(ctx, locator); rmErr != nil {
			logger.WithContext(ctx).WithError(rmErr).WithField("locator", locator).Warn("Failed to remove orphaned blob")
		}
		if apperrors.IsNotFound(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create document: %w", err)
	}

	logger.WithContext(ctx).WithFields(map[string]interface{}{
		"document_id": doc.ID,
		"entity_id":   entityID,
		"size":        size,
	}).Info("Document uploaded")
	return toDocumentResponse(doc), nil
}

// GetByID retrieves document metadata by ID
func (s *DocumentService) GetByID(ctx context.Context, id uint) (*DocumentResponse, error) {
	doc, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDocumentResponse(doc), nil
}

// GetByEntityID retrieves the documents of an entity
func (s *DocumentService) GetByEntityID(ctx context.Context, entityID uint) ([]DocumentResponse, error) {
	docs, err := s.repo.GetByEntityID(ctx, entityID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get documents: %w", err)
	}
	return toDocumentResponses(docs), nil
}

// Update changes the title or type of a document. The stored file is never touched.
func (s *DocumentService) Update(ctx context.Context, id uint, req *UpdateDocumentRequest) (*DocumentResponse, error) {
	p := newPatch()
	p.required("title", req.Title, 200)
	p.nullable("document_type", req.DocumentType, 100)
	updates, err := p.result()
	if err != nil {
		return nil, err
	}

	doc, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to update document: %w", err)
	}
	return toDocumentResponse(doc), nil
}

// Delete removes the document record and then its blob. A blob that cannot
// be removed is logged and left behind.
func (s *DocumentService) Delete(ctx context.Context, id uint) error {
	doc, err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrDocumentNotFound
		}
		return fmt.Errorf("failed to delete document: %w", err)
	}

	if doc.FilePath != nil && *doc.FilePath != "" {
		if err := s.blobs.Delete(ctx, *doc.FilePath); err != nil {
			logger.WithContext(ctx).WithError(err).WithField("locator", *doc.FilePath).Warn("Failed to remove document blob")
		}
	}
	return nil
}

// OpenContent opens the stored file of a document. The caller must close Body.
func (s *DocumentService) OpenContent(ctx context.Context, id uint) (*DocumentContent, error) {
	doc, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc.FilePath == nil || *doc.FilePath == "" {
		return nil, apperrors.ErrBlobNotFound
	}

	body, err := s.blobs.Open(ctx, *doc.FilePath)
	if err != nil {
		return nil, err
	}
	return &DocumentContent{Document: toDocumentResponse(doc), Body: body}, nil
}

func (s *DocumentService) get(ctx context.Context, id uint) (*models.Document, error) {
	doc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	return doc, nil
}
