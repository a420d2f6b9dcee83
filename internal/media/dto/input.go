package dto

import (
	"io"

	"github.com/altarajoyas/catalog-service/internal/model"
)

type UploadImageInput struct {
	ProductID int64
	AltText   string
	FileName  string
	Size      int64
	File      io.Reader
}

type CloudinaryInfo struct {
	PublicID  string `json:"public_id"`
	SecureURL string `json:"secure_url"`
}

// UploadImageResult is the inserted image row plus the media host's
// identifiers.
type UploadImageResult struct {
	model.ProductImage
	Cloudinary CloudinaryInfo `json:"cloudinary"`
}
