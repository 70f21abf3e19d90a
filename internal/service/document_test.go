package service_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"entity-tracker-backend/internal/database/models"
	apperrors "entity-tracker-backend/internal/errors"
	"entity-tracker-backend/internal/mocks"
	"entity-tracker-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

const testLocator = "0f8fad5b-d9cb-469f-a165-70867728950e.pdf"

type DocumentServiceTestSuite struct {
	suite.Suite
	ctrl            *gomock.Controller
	mockRepo        *mocks.MockDocumentRepositoryInterface
	mockBlobs       *mocks.MockBlobStore
	documentService *service.DocumentService
	ctx             context.Context
}

func (suite *DocumentServiceTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockRepo = mocks.NewMockDocumentRepositoryInterface(suite.ctrl)
	suite.mockBlobs = mocks.NewMockBlobStore(suite.ctrl)
	suite.documentService = service.NewDocumentService(suite.mockRepo, suite.mockBlobs, service.NewValidator())
	suite.ctx = context.Background()
}

func (suite *DocumentServiceTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *DocumentServiceTestSuite) TestUpload_Success() {
	content := strings.NewReader("%PDF-1.4")
	suite.mockBlobs.EXPECT().Store(gomock.Any(), content, "charter.pdf").Return(testLocator, int64(8), nil)
	suite.mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, d *models.Document) error {
			assert.Equal(suite.T(), uint(2), d.EntityID)
			assert.Equal(suite.T(), "Articles", d.Title)
			assert.Equal(suite.T(), testLocator, *d.FilePath)
			assert.Equal(suite.T(), "charter.pdf", *d.OriginalFilename)
			assert.Equal(suite.T(), int64(8), *d.FileSize)
			assert.Equal(suite.T(), "legal", *d.DocumentType)
			d.ID = 5
			return nil
		})

	resp, err := suite.documentService.Upload(suite.ctx, 2, &service.UploadDocumentRequest{
		Title:        "Articles",
		DocumentType: strPtr("legal"),
		Filename:     "charter.pdf",
		Content:      content,
	})

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), uint(5), resp.ID)
	assert.Equal(suite.T(), int64(8), *resp.FileSize)
}

func (suite *DocumentServiceTestSuite) TestUpload_TitleDefaultsToFilename() {
	suite.mockBlobs.EXPECT().Store(gomock.Any(), gomock.Any(), "scan.png").Return("a.png", int64(3), nil)
	suite.mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, d *models.Document) error {
			assert.Equal(suite.T(), "scan.png", d.Title)
			return nil
		})

	_, err := suite.documentService.Upload(suite.ctx, 2, &service.UploadDocumentRequest{
		Title:    "  ",
		Filename: "../../scan.png",
		Content:  strings.NewReader("png"),
	})

	assert.NoError(suite.T(), err)
}

func (suite *DocumentServiceTestSuite) TestUpload_NoFile() {
	_, err := suite.documentService.Upload(suite.ctx, 2, &service.UploadDocumentRequest{Title: "Empty"})

	assert.ErrorIs(suite.T(), err, apperrors.ErrNoFile)

	_, err = suite.documentService.Upload(suite.ctx, 2, &service.UploadDocumentRequest{Content: strings.NewReader("x")})

	assert.ErrorIs(suite.T(), err, apperrors.ErrNoFile)
}

func (suite *DocumentServiceTestSuite) TestUpload_StoreRejects() {
	suite.mockBlobs.EXPECT().Store(gomock.Any(), gomock.Any(), "virus.exe").
		Return("", int64(0), &apperrors.UnsupportedTypeError{Extension: ".exe"})

	_, err := suite.documentService.Upload(suite.ctx, 2, &service.UploadDocumentRequest{
		Filename: "virus.exe",
		Content:  strings.NewReader("MZ"),
	})

	assert.True(suite.T(), apperrors.IsUnsupportedType(err))
}

func (suite *DocumentServiceTestSuite) TestUpload_UnknownEntityRemovesBlob() {
	suite.mockBlobs.EXPECT().Store(gomock.Any(), gomock.Any(), "charter.pdf").Return(testLocator, int64(8), nil)
	suite.mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(apperrors.ErrEntityNotFound)
	suite.mockBlobs.EXPECT().Delete(gomock.Any(), testLocator).Return(nil)

	_, err := suite.documentService.Upload(suite.ctx, 404, &service.UploadDocumentRequest{
		Filename: "charter.pdf",
		Content:  strings.NewReader("%PDF-1.4"),
	})

	assert.ErrorIs(suite.T(), err, apperrors.ErrEntityNotFound)
}

func (suite *DocumentServiceTestSuite) TestUpload_InsertFailureRemovesBlob() {
	suite.mockBlobs.EXPECT().Store(gomock.Any(), gomock.Any(), "charter.pdf").Return(testLocator, int64(8), nil)
	suite.mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))
	suite.mockBlobs.EXPECT().Delete(gomock.Any(), testLocator).Return(errors.New("also broken"))

	_, err := suite.documentService.Upload(suite.ctx, 2, &service.UploadDocumentRequest{
		Filename: "charter.pdf",
		Content:  strings.NewReader("%PDF-1.4"),
	})

	require.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "disk full")
}

func (suite *DocumentServiceTestSuite) TestUpdate_TitleAndType() {
	suite.mockRepo.EXPECT().Update(gomock.Any(), uint(5), map[string]interface{}{
		"title":         "Bylaws",
		"document_type": nil,
	}).Return(&models.Document{ID: 5, Title: "Bylaws"}, nil)

	resp, err := suite.documentService.Update(suite.ctx, 5, &service.UpdateDocumentRequest{
		Title:        service.Some("Bylaws"),
		DocumentType: service.Null[string](),
	})

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Bylaws", resp.Title)
}

func (suite *DocumentServiceTestSuite) TestUpdate_NullTitleRejected() {
	_, err := suite.documentService.Update(suite.ctx, 5, &service.UpdateDocumentRequest{Title: service.Null[string]()})

	assert.True(suite.T(), apperrors.IsValidation(err))
}

func (suite *DocumentServiceTestSuite) TestDelete_RemovesBlob() {
	locator := testLocator
	suite.mockRepo.EXPECT().Delete(gomock.Any(), uint(5)).Return(&models.Document{ID: 5, FilePath: &locator}, nil)
	suite.mockBlobs.EXPECT().Delete(gomock.Any(), testLocator).Return(errors.New("gone already"))

	err := suite.documentService.Delete(suite.ctx, 5)

	assert.NoError(suite.T(), err)
}

func (suite *DocumentServiceTestSuite) TestDelete_WithoutFile() {
	suite.mockRepo.EXPECT().Delete(gomock.Any(), uint(5)).Return(&models.Document{ID: 5}, nil)

	assert.NoError(suite.T(), suite.documentService.Delete(suite.ctx, 5))
}

func (suite *DocumentServiceTestSuite) TestDelete_NotFound() {
	suite.mockRepo.EXPECT().Delete(gomock.Any(), uint(5)).Return(nil, gorm.ErrRecordNotFound)

	assert.ErrorIs(suite.T(), suite.documentService.Delete(suite.ctx, 5), apperrors.ErrDocumentNotFound)
}

func (suite *DocumentServiceTestSuite) TestOpenContent() {
	locator := testLocator
	suite.mockRepo.EXPECT().GetByID(gomock.Any(), uint(5)).
		Return(&models.Document{ID: 5, Title: "Charter", FilePath: &locator}, nil)
	suite.mockBlobs.EXPECT().Open(gomock.Any(), testLocator).Return(io.NopCloser(strings.NewReader("%PDF")), nil)

	content, err := suite.documentService.OpenContent(suite.ctx, 5)

	require.NoError(suite.T(), err)
	defer content.Body.Close()
	body, err := io.ReadAll(content.Body)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "%PDF", string(body))
	assert.Equal(suite.T(), "Charter", content.Document.Title)
}

func (suite *DocumentServiceTestSuite) TestOpenContent_MissingBlob() {
	locator := testLocator
	suite.mockRepo.EXPECT().GetByID(gomock.Any(), uint(5)).Return(&models.Document{ID: 5, FilePath: &locator}, nil)
	suite.mockBlobs.EXPECT().Open(gomock.Any(), testLocator).Return(nil, apperrors.ErrBlobNotFound)

	_, err := suite.documentService.OpenContent(suite.ctx, 5)

	assert.ErrorIs(suite.T(), err, apperrors.ErrBlobNotFound)
}

func (suite *DocumentServiceTestSuite) TestOpenContent_NoLocator() {
	suite.mockRepo.EXPECT().GetByID(gomock.Any(), uint(5)).Return(&models.Document{ID: 5}, nil)

	_, err := suite.documentService.OpenContent(suite.ctx, 5)

	assert.True(suite.T(), apperrors.IsNotFound(err))
}

func (suite *DocumentServiceTestSuite) TestOpenContent_DocumentNotFound() {
	suite.mockRepo.EXPECT().GetByID(gomock.Any(), uint(5)).Return(nil, gorm.ErrRecordNotFound)

	_, err := suite.documentService.OpenContent(suite.ctx, 5)

	assert.ErrorIs(suite.T(), err, apperrors.ErrDocumentNotFound)
}

func TestDocumentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DocumentServiceTestSuite))
}
