// Package mediatype recognises the attachment media types the chat platform renders inline as images.
package mediatype

const (
	PNG  = "image/png"
	JPEG = "image/jpeg"
	GIF  = "image/gif"
)

// ImageMediaTypes lists the media types treated as images
var ImageMediaTypes = []string{PNG, JPEG, GIF}

// IsImage reports whether mediaType is exactly one of ImageMediaTypes
func IsImage(mediaType string) bool {
	for _, known := range ImageMediaTypes {
		if mediaType == known {
			return true
		}
	}
	return false
}

// CountImages returns how many of mediaTypes are image media types
func CountImages(mediaTypes []string) int {
	count := 0
	for _, mediaType := range mediaTypes {
		if IsImage(mediaType) {
			count++
		}
	}
	return count
}
