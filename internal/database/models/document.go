package models

import "time"

// Document is the metadata of an uploaded file owned by an Entity. The content
// itself lives in the blob store under FilePath.
type Document struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	EntityID         uint      `json:"entity_id" gorm:"not null;index"`
	Title            string    `json:"title" gorm:"size:200;not null"`
	FilePath         *string   `json:"file_path" gorm:"size:500"`
	OriginalFilename *string   `json:"original_filename" gorm:"size:500"`
	DocumentType     *string   `json:"document_type" gorm:"size:100"`
	FileSize         *int64    `json:"file_size" gorm:"type:integer"`
	UploadedAt       time.Time `json:"uploaded_at" gorm:"autoCreateTime"`
}

// TableName returns the table name for Document
func (Document) TableName() string {
	return "document"
}
