package extract

import (
	"encoding/base64"
)

// EncodeDataURL converts a raw image payload into an inline data: URL for
// embedding directly in a model prompt. Image content is not validated; a
// malformed image surfaces as a model error.
func EncodeDataURL(data []byte, mimeType string) string {
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
