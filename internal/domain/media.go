package domain

import "io"

// MediaSource is the media input accepted when creating or updating an
// entity: either a file uploaded with the request or a caller-supplied URL.
// It is resolved once into the single URL stored on the entity.
type MediaSource interface {
	isMediaSource()
}

// UploadedFile is a multipart file that still has to be written to storage
type UploadedFile struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// RemoteURL is used verbatim as the stored media URL
type RemoteURL string

func (UploadedFile) isMediaSource() {}
func (RemoteURL) isMediaSource()    {}

// StoredMedia is the outcome of resolving a MediaSource
type StoredMedia struct {
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
	Filename     string `json:"filename,omitempty"`
	MimeType     string `json:"mimeType,omitempty"`
	Size         int64  `json:"size,omitempty"`

	// Written is set only when the file was stored by this request. Media
	// that merely references an existing URL is never removed on rollback.
	Written bool `json:"-"`
}
