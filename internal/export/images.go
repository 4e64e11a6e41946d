package export

import (
	"archive/zip"
	"bytes"
	"fmt"
	"log"

	"ppt-workbench-backend/internal/models"
)

// BuildImageArchive zips the decoded slide images, one entry per slide named
// slide-<pageNumber>.<ext>. Undecodable images are skipped with a log line.
func BuildImageArchive(slides []models.Slide) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, slide := range slides {
		mimeType, data, err := decodeDataURI(slide.ImageURL.String)
		if err != nil {
			log.Printf("Failed to decode image for slide %d: %v", slide.PageNumber, err)
			continue
		}

		entry, err := zw.Create(fmt.Sprintf("slide-%d.%s", slide.PageNumber, extensionForMIME(mimeType)))
		if err != nil {
			return nil, fmt.Errorf("failed to create zip entry: %w", err)
		}
		if _, err := entry.Write(data); err != nil {
			return nil, fmt.Errorf("failed to write zip entry: %w", err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize zip: %w", err)
	}

	return buf.Bytes(), nil
}
