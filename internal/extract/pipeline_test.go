package extract

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/flavorfolio/recipe-extractor/internal/common"
	"github.com/flavorfolio/recipe-extractor/internal/llm"
)

type fakeResolver struct {
	resolved string
	ok       bool
	calls    int
}

func (f *fakeResolver) Resolve(ctx context.Context, shortURL string) (string, bool) {
	f.calls++
	return f.resolved, f.ok
}

type fakeDescriber struct {
	text  string
	calls int
}

func (f *fakeDescriber) Describe(ctx context.Context, resolvedURL string) string {
	f.calls++
	return f.text
}

type fakeLocator struct {
	src   string
	err   error
	calls int
}

func (f *fakeLocator) LocateVideoSource(ctx context.Context, pageURL string) (string, error) {
	f.calls++
	return f.src, f.err
}

type fakeDownloader struct {
	data  []byte
	err   error
	calls int
}

func (f *fakeDownloader) Download(ctx context.Context, mediaURL string) ([]byte, error) {
	f.calls++
	return f.data, f.err
}

type fakeTranscriber struct {
	text  string
	err   error
	calls int
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, media []byte, filename string) (string, error) {
	f.calls++
	return f.text, f.err
}

type fakeExtractor struct {
	draft   llm.RecipeDraft
	err     error
	calls   int
	lastReq llm.ExtractRequest
}

func (f *fakeExtractor) ExtractRecipe(ctx context.Context, req llm.ExtractRequest) (llm.RecipeDraft, []byte, error) {
	f.calls++
	f.lastReq = req
	return f.draft, []byte(`{}`), f.err
}

func newTestPipeline(r *fakeResolver, d *fakeDescriber, l *fakeLocator, dl *fakeDownloader, tr *fakeTranscriber, ex *fakeExtractor) *Pipeline {
	return NewPipeline(r, d, l, dl, tr, ex, nil, nil)
}

func TestFromImage_MissingInput(t *testing.T) {
	ex := &fakeExtractor{}
	p := newTestPipeline(&fakeResolver{}, &fakeDescriber{}, &fakeLocator{}, &fakeDownloader{}, &fakeTranscriber{}, ex)

	_, err := p.FromImage(context.Background(), nil, "image/jpeg")

	assert.ErrorIs(t, err, common.ErrMissingInput)
	assert.Equal(t, 0, ex.calls)
}

func TestFromImage_EncodesInlineImage(t *testing.T) {
	ex := &fakeExtractor{draft: llm.RecipeDraft{"title": "Toast"}}
	p := newTestPipeline(&fakeResolver{}, &fakeDescriber{}, &fakeLocator{}, &fakeDownloader{}, &fakeTranscriber{}, ex)

	draft, err := p.FromImage(context.Background(), []byte{1, 2, 3}, "image/jpeg")

	assert.NoError(t, err)
	assert.Equal(t, "Toast", draft["title"])
	assert.Equal(t, llm.SourceImage, ex.lastReq.Kind)
	assert.True(t, strings.HasPrefix(ex.lastReq.ImageDataURL, "data:image/jpeg;base64,"))
}

func TestFromVideoLink_ResolutionFailed(t *testing.T) {
	ex := &fakeExtractor{}
	tr := &fakeTranscriber{}
	p := newTestPipeline(&fakeResolver{ok: false}, &fakeDescriber{}, &fakeLocator{}, &fakeDownloader{}, tr, ex)

	_, _, err := p.FromVideoLink(context.Background(), "https://bad.invalid/x")

	assert.ErrorIs(t, err, common.ErrResolutionFailed)
	assert.Equal(t, 0, ex.calls, "model must not be called when resolution fails")
	assert.Equal(t, 0, tr.calls)
}

func TestFromVideoLink_UsableDescriptionSkipsTranscription(t *testing.T) {
	ex := &fakeExtractor{draft: llm.RecipeDraft{"title": "Pasta"}}
	tr := &fakeTranscriber{}
	loc := &fakeLocator{}
	p := newTestPipeline(
		&fakeResolver{resolved: "https://www.tiktok.com/@u/video/1", ok: true},
		&fakeDescriber{text: "the best pasta recipe ever"},
		loc, &fakeDownloader{}, tr, ex,
	)

	draft, resolved, err := p.FromVideoLink(context.Background(), "https://vm.tiktok.com/abc")

	assert.NoError(t, err)
	assert.Equal(t, "https://www.tiktok.com/@u/video/1", resolved)
	assert.Equal(t, "Pasta", draft["title"])
	assert.Equal(t, 0, loc.calls, "fallback must not run for a usable description")
	assert.Equal(t, 0, tr.calls)
	assert.Equal(t, llm.SourceVideo, ex.lastReq.Kind)
	assert.Equal(t, "the best pasta recipe ever", ex.lastReq.SourceText)
	assert.Equal(t, "TikTok", ex.lastReq.Platform)
}

func TestFromVideoLink_MissingDescriptionTriggersTranscription(t *testing.T) {
	ex := &fakeExtractor{draft: llm.RecipeDraft{"title": "Soup"}}
	tr := &fakeTranscriber{text: "first we boil the broth, then serve"}
	p := newTestPipeline(
		&fakeResolver{resolved: "https://www.tiktok.com/@u/video/2", ok: true},
		&fakeDescriber{text: ""},
		&fakeLocator{src: "https://cdn.example/v.mp4"},
		&fakeDownloader{data: []byte("video-bytes")},
		tr, ex,
	)

	_, _, err := p.FromVideoLink(context.Background(), "https://vm.tiktok.com/xyz")

	assert.NoError(t, err)
	assert.Equal(t, 1, tr.calls)
	assert.Equal(t, "first we boil the broth, then serve", ex.lastReq.SourceText)
}

func TestFromVideoLink_NonRecipeDescriptionTriggersTranscription(t *testing.T) {
	ex := &fakeExtractor{draft: llm.RecipeDraft{}}
	tr := &fakeTranscriber{text: "today we cook rice"}
	p := newTestPipeline(
		&fakeResolver{resolved: "https://www.tiktok.com/@u/video/3", ok: true},
		&fakeDescriber{text: "nice weather today"},
		&fakeLocator{src: "https://cdn.example/v.mp4"},
		&fakeDownloader{data: []byte("video-bytes")},
		tr, ex,
	)

	_, _, err := p.FromVideoLink(context.Background(), "https://vm.tiktok.com/xyz")

	assert.NoError(t, err)
	assert.Equal(t, 1, tr.calls)
}

func TestFromVideoLink_NoRecipeAnywhere(t *testing.T) {
	ex := &fakeExtractor{}
	p := newTestPipeline(
		&fakeResolver{resolved: "https://www.tiktok.com/@u/video/4", ok: true},
		&fakeDescriber{text: "nice weather today"},
		&fakeLocator{src: "https://cdn.example/v.mp4"},
		&fakeDownloader{data: []byte("video-bytes")},
		&fakeTranscriber{text: "just vibes, no food here"},
		ex,
	)

	_, _, err := p.FromVideoLink(context.Background(), "https://vm.tiktok.com/xyz")

	assert.ErrorIs(t, err, common.ErrNoRecipeFound)
	assert.Equal(t, 0, ex.calls)
}

func TestFromVideoLink_TranscriptionFailureDegrades(t *testing.T) {
	ex := &fakeExtractor{}
	p := newTestPipeline(
		&fakeResolver{resolved: "https://www.tiktok.com/@u/video/5", ok: true},
		&fakeDescriber{text: ""},
		&fakeLocator{src: "https://cdn.example/v.mp4"},
		&fakeDownloader{data: []byte("video-bytes")},
		&fakeTranscriber{err: errors.New("upstream unavailable")},
		ex,
	)

	_, _, err := p.FromVideoLink(context.Background(), "https://vm.tiktok.com/xyz")

	assert.ErrorIs(t, err, common.ErrNoRecipeFound)
	assert.Equal(t, 0, ex.calls)
}
