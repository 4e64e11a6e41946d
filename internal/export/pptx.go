package export

import (
	"bytes"
	"fmt"
	"log"

	ppt "github.com/VantageDataChat/GoPPT"
	"ppt-workbench-backend/internal/models"
)

// 16:9 slide surface in EMU.
const (
	emuPerInch      = 914400
	pptxSlideWidth  = int64(10.0 * emuPerInch)
	pptxSlideHeight = int64(5.625 * emuPerInch)
)

// BuildPPTX emits one slide per project slide with the generated image drawn
// full-bleed. Undrawable images leave the slide blank, matching the PDF
// builder's policy.
func BuildPPTX(slides []models.Slide, title string) ([]byte, error) {
	p := ppt.New()
	p.GetDocumentProperties().Title = title
	p.GetDocumentProperties().Creator = "PPT Workbench"

	for _, slide := range slides {
		out := p.CreateSlide()

		mimeType, data, err := decodeDataURI(slide.ImageURL.String)
		if err != nil {
			log.Printf("Failed to decode image for slide %d: %v", slide.PageNumber, err)
			continue
		}

		img := out.CreateDrawingShape()
		img.SetImageData(data, mimeType)
		img.SetOffsetX(0).SetOffsetY(0)
		img.SetWidth(pptxSlideWidth).SetHeight(pptxSlideHeight)
	}

	w, err := ppt.NewWriter(p, ppt.WriterPowerPoint2007)
	if err != nil {
		return nil, fmt.Errorf("failed to create pptx writer: %w", err)
	}

	var buf bytes.Buffer
	if err := w.(*ppt.PPTXWriter).WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write pptx: %w", err)
	}

	return buf.Bytes(), nil
}
