package utils

import (
	"encoding/base64"
	"errors"
	"strings"
)

var ErrInvalidImagePayload = errors.New("invalid base64 image payload")

var imageContentTypes = map[string]string{
	"jpeg": "image/jpeg",
	"jpg":  "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"webp": "image/webp",
}

// DecodeBase64Image decodes an image sent as base64 text, with or without
// a "data:image/<ext>;base64," prefix. Returns the raw bytes, the file
// extension and the content type.
func DecodeBase64Image(payload string) ([]byte, string, string, error) {
	ext := "jpeg"
	data := payload

	if strings.HasPrefix(payload, "data:") {
		parts := strings.SplitN(payload, ";base64,", 2)
		if len(parts) != 2 {
			return nil, "", "", ErrInvalidImagePayload
		}
		ext = strings.TrimPrefix(parts[0], "data:image/")
		data = parts[1]
	}

	contentType, ok := imageContentTypes[ext]
	if !ok {
		return nil, "", "", ErrInvalidImagePayload
	}

	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, "", "", ErrInvalidImagePayload
	}
	if len(raw) == 0 {
		return nil, "", "", ErrInvalidImagePayload
	}

	return raw, ext, contentType, nil
}
