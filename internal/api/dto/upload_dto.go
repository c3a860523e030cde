package dto

// UploadResponse carries the public URL of a stored image.
type UploadResponse struct {
	URL string `json:"url"`
}
