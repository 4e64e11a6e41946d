package export

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// decodeDataURI splits a data:image/...;base64 URI into its MIME type and
// decoded bytes. Bare base64 without a data: prefix is treated as PNG.
func decodeDataURI(uri string) (mimeType string, data []byte, err error) {
	payload := uri
	mimeType = "image/png"

	if strings.HasPrefix(uri, "data:") {
		parts := strings.SplitN(uri, ",", 2)
		if len(parts) != 2 {
			return "", nil, fmt.Errorf("malformed data URI")
		}
		header := parts[0]
		payload = parts[1]
		if strings.Contains(header, "image/jpeg") || strings.Contains(header, "image/jpg") {
			mimeType = "image/jpeg"
		}
	}

	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("failed to decode image data: %w", err)
	}

	return mimeType, data, nil
}

func extensionForMIME(mimeType string) string {
	if mimeType == "image/jpeg" {
		return "jpg"
	}
	return "png"
}
