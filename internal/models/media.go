package models

type MediaUploadResponse struct {
	URL       string `json:"url"`
	Filename  string `json:"filename"`
	MediaType string `json:"media_type"`
}
