// Package export assembles PDF/PPTX/ZIP documents from a project's completed
// slides and retains the results for download.
package export

import (
	"fmt"
	"log"

	"github.com/signintech/gopdf"
	"ppt-workbench-backend/internal/models"
)

// 16:9 page in PDF points.
const (
	pdfPageWidth  = 1280.0
	pdfPageHeight = 720.0
)

// IncompleteError reports how many slides block an export. Callers check
// completeness before building; no partial artifact is ever written.
type IncompleteError struct {
	Count int
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("%d slides are not yet completed. Please generate all slide images first.", e.Count)
}

// CheckComplete returns an IncompleteError when any slide is not completed
// with an image. A completed slide without an image URL counts as incomplete.
func CheckComplete(slides []models.Slide) error {
	incomplete := 0
	for _, slide := range slides {
		if slide.Status != models.SlideCompleted || !slide.ImageURL.Valid {
			incomplete++
		}
	}
	if incomplete > 0 {
		return &IncompleteError{Count: incomplete}
	}
	return nil
}

// BuildPDF renders one full-bleed 16:9 page per slide, in page-number order.
// A slide whose image cannot be embedded gets a blank page rather than
// aborting the whole document.
func BuildPDF(slides []models.Slide) ([]byte, error) {
	doc := gopdf.GoPdf{}
	doc.Start(gopdf.Config{
		PageSize: gopdf.Rect{W: pdfPageWidth, H: pdfPageHeight},
	})

	for _, slide := range slides {
		doc.AddPage()

		_, data, err := decodeDataURI(slide.ImageURL.String)
		if err != nil {
			log.Printf("Failed to decode image for slide %d: %v", slide.PageNumber, err)
			continue
		}

		holder, err := gopdf.ImageHolderByBytes(data)
		if err != nil {
			log.Printf("Failed to embed image for slide %d: %v", slide.PageNumber, err)
			continue
		}
		if err := doc.ImageByHolder(holder, 0, 0, &gopdf.Rect{W: pdfPageWidth, H: pdfPageHeight}); err != nil {
			log.Printf("Failed to draw image for slide %d: %v", slide.PageNumber, err)
		}
	}

	return doc.GetBytesPdf(), nil
}
