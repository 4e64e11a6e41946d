package ai

import (
	"fmt"
	"unicode/utf8"
)

// Prompt size bound for the source content, not a correctness guarantee.
const maxContentLength = 15000

// truncateContent cuts at a rune boundary so multi-byte text is never split
// mid-character.
func truncateContent(content string) string {
	if len(content) <= maxContentLength {
		return content
	}
	cut := maxContentLength
	for cut > 0 && !utf8.RuneStart(content[cut]) {
		cut--
	}
	return content[:cut]
}

// StyleDescription maps a style mode to the instruction sent to the model.
// For custom mode the user's prompt is used as-is, with a generic fallback.
func StyleDescription(styleMode, customPrompt string) string {
	switch styleMode {
	case "concise":
		return "Concise presentation style - focus on key points, minimal text, visual emphasis. Suitable for live presentations where the speaker provides context."
	case "detailed":
		return "Detailed presentation style - comprehensive content, full explanations, suitable for standalone reading or documentation."
	case "custom":
		if customPrompt != "" {
			return customPrompt
		}
		return "Professional presentation style"
	default:
		return "Professional presentation style"
	}
}

func languageInstruction(locale string) string {
	switch locale {
	case "zh-CN":
		return "Generate all content in Simplified Chinese (简体中文)."
	case "zh-TW":
		return "Generate all content in Traditional Chinese (繁體中文)."
	default:
		return "Generate all content in English."
	}
}

func outlinePrompt(content string, slideCount int, styleMode, customPrompt, locale string) string {
	return fmt.Sprintf(`You are an expert presentation designer. Analyze the following content and create a structured outline for a %d-slide presentation.

Style requirements: %s

%s

Content to analyze:
---
%s
---

Create a JSON response with the following structure:
{
  "projectTitle": "A concise title for the entire presentation",
  "slides": [
    {
      "title": "Slide title",
      "content": "Key points for this slide, formatted as bullet points or short paragraphs",
      "imagePrompt": "A detailed prompt for generating an illustration for this slide. The prompt should describe the visual elements, style, colors, and composition that would complement the slide content. Make it suitable for AI image generation."
    }
  ]
}

Important:
- Generate exactly %d slides
- Each slide should have clear, focused content
- Image prompts should be detailed and descriptive for AI image generation
- Maintain a logical flow between slides
- Return ONLY valid JSON, no markdown formatting`,
		slideCount,
		StyleDescription(styleMode, customPrompt),
		languageInstruction(locale),
		truncateContent(content),
		slideCount,
	)
}

func polishPromptText(userPrompt, locale string) string {
	return fmt.Sprintf(`You are an expert at creating prompts for AI image generation models.
Polish and enhance the following design requirement into a professional, detailed prompt suitable for generating presentation slide images.

%s

User's design requirement: "%s"

Create a polished prompt that:
- Describes the visual style clearly (colors, typography, layout)
- Specifies the mood and atmosphere
- Includes technical details (aspect ratio 16:9, high quality, professional)
- Is suitable for consistent application across multiple slides

Return ONLY the polished prompt text, no explanations.`,
		languageInstruction(locale),
		userPrompt,
	)
}

func slideImagePrompt(slidePrompt, globalStyle string) string {
	return fmt.Sprintf(`Create a professional presentation slide image with the following specifications:

Global Style: %s

Slide Content/Theme: %s

Requirements:
- Aspect ratio: 16:9 (widescreen presentation format)
- Professional, clean design suitable for business presentations
- High quality, crisp graphics
- Readable text areas if any text is included
- Consistent with modern presentation aesthetics`,
		globalStyle,
		slidePrompt,
	)
}
