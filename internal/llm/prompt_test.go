package llm

import (
	"strings"
	"testing"
)

// Every policy the extraction depends on must appear for both entry variants;
// the template is shared precisely so the two can't drift apart.
var policyLines = []string{
	"Output **only valid JSON**",
	"Do not include any commentary or text outside the JSON",
	"make a reasonable estimate",
	"Preserve **all steps from the recipe** in the same logical order",
	"split them into clear cooking actions",
	"annotate each step with the part name in parentheses",
	"include relevant emojis for each item",
	"cover every step, no skipping",
	"array of up to 3 strings",
}

func TestBuildExtractionPrompt_ImageVariant(t *testing.T) {
	prompt := BuildExtractionPrompt(ExtractRequest{Kind: SourceImage})

	if !strings.Contains(prompt, "the image provided, which contains a recipe") {
		t.Fatalf("image variant missing its subject line:\n%s", prompt)
	}
	for _, line := range policyLines {
		if !strings.Contains(prompt, line) {
			t.Errorf("image prompt missing policy %q", line)
		}
	}
}

func TestBuildExtractionPrompt_VideoVariant(t *testing.T) {
	req := ExtractRequest{
		Kind:       SourceVideo,
		SourceText: "boil noodles, add sauce",
		SourceURL:  "https://www.tiktok.com/@u/video/1",
		Platform:   "TikTok",
	}
	prompt := BuildExtractionPrompt(req)

	if !strings.Contains(prompt, "the following TikTok recipe description") {
		t.Fatalf("video variant missing its subject line:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Recipe from TikTok:") {
		t.Errorf("video prompt missing source framing")
	}
	if !strings.Contains(prompt, "boil noodles, add sauce") {
		t.Errorf("video prompt missing source text")
	}
	if !strings.Contains(prompt, "Video URL: https://www.tiktok.com/@u/video/1") {
		t.Errorf("video prompt missing resolved URL")
	}
	for _, line := range policyLines {
		if !strings.Contains(prompt, line) {
			t.Errorf("video prompt missing policy %q", line)
		}
	}
}
