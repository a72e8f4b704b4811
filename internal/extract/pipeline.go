package extract

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/flavorfolio/recipe-extractor/internal/common"
	"github.com/flavorfolio/recipe-extractor/internal/llm"
	"github.com/flavorfolio/recipe-extractor/internal/media"
)

// Stage contracts the orchestrator depends on. Best-effort stages degrade to
// an absent value and never abort the pipeline themselves; the orchestrator
// decides whether to fall back or fail.
type (
	LinkResolver interface {
		Resolve(ctx context.Context, shortURL string) (string, bool)
	}
	ContentDescriber interface {
		Describe(ctx context.Context, resolvedURL string) string
	}
	VideoSourceLocator interface {
		LocateVideoSource(ctx context.Context, pageURL string) (string, error)
	}
	MediaDownloader interface {
		Download(ctx context.Context, mediaURL string) ([]byte, error)
	}
	Transcriber interface {
		Transcribe(ctx context.Context, media []byte, filename string) (string, error)
	}
)

// Run is the record of one pipeline invocation, kept for the optional history
// store. RawOutput is the unvalidated model content; it never reaches callers.
type Run struct {
	ID          uuid.UUID
	Kind        llm.SourceKind
	InputURL    string
	ResolvedURL string
	Status      string
	ErrorKind   string
	RawOutput   []byte
	Result      []byte
	Duration    time.Duration
	CreatedAt   time.Time
}

// Recorder persists Runs. Implementations must be best-effort; a recording
// failure is logged by the implementation and never surfaced here.
type Recorder interface {
	Record(ctx context.Context, run Run)
}

// Pipeline is the request-scoped extraction workflow. It holds no mutable
// state; concurrent invocations are fully independent.
type Pipeline struct {
	resolver    LinkResolver
	describer   ContentDescriber
	locator     VideoSourceLocator
	downloader  MediaDownloader
	transcriber Transcriber
	extractor   llm.RecipeExtractor
	recorder    Recorder // optional
	log         *slog.Logger
}

func NewPipeline(
	resolver LinkResolver,
	describer ContentDescriber,
	locator VideoSourceLocator,
	downloader MediaDownloader,
	transcriber Transcriber,
	extractor llm.RecipeExtractor,
	recorder Recorder,
	logger *slog.Logger,
) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		resolver:    resolver,
		describer:   describer,
		locator:     locator,
		downloader:  downloader,
		transcriber: transcriber,
		extractor:   extractor,
		recorder:    recorder,
		log:         logger,
	}
}

// FromImage runs the image path: encode → extract → validate.
func (p *Pipeline) FromImage(ctx context.Context, data []byte, mimeType string) (llm.RecipeDraft, error) {
	run := Run{ID: uuid.New(), Kind: llm.SourceImage, CreatedAt: time.Now().UTC()}
	start := time.Now()

	if len(data) == 0 {
		err := common.NewAppError(common.ErrMissingInput, "No image file provided", nil)
		p.finish(ctx, &run, start, nil, err)
		return nil, err
	}

	p.log.Info("extract.image.start", "run_id", run.ID, "bytes", len(data), "mime", mimeType)

	req := llm.ExtractRequest{
		Kind:         llm.SourceImage,
		ImageDataURL: EncodeDataURL(data, mimeType),
	}
	draft, raw, err := p.extractor.ExtractRecipe(ctx, req)
	run.RawOutput = raw
	if err != nil {
		p.finish(ctx, &run, start, nil, err)
		return nil, err
	}

	p.finish(ctx, &run, start, draft, nil)
	return draft, nil
}

// FromVideoLink runs the video path: resolve → describe → [likelihood check]
// → [transcribe] → [likelihood check] → extract → validate. Returns the draft
// and the resolved canonical URL.
func (p *Pipeline) FromVideoLink(ctx context.Context, videoURL string) (llm.RecipeDraft, string, error) {
	run := Run{ID: uuid.New(), Kind: llm.SourceVideo, InputURL: videoURL, CreatedAt: time.Now().UTC()}
	start := time.Now()

	videoURL = strings.TrimSpace(videoURL)
	if videoURL == "" {
		err := common.NewAppError(common.ErrMissingInput, "Video URL is required", nil)
		p.finish(ctx, &run, start, nil, err)
		return nil, "", err
	}

	p.log.Info("extract.video.start", "run_id", run.ID, "url", videoURL)

	resolved, ok := p.resolver.Resolve(ctx, videoURL)
	if !ok {
		err := common.NewAppError(common.ErrResolutionFailed, "Could not resolve video link", nil)
		p.finish(ctx, &run, start, nil, err)
		return nil, "", err
	}
	run.ResolvedURL = resolved
	platform := media.DetectPlatform(resolved)

	source := ""
	if description := p.describer.Describe(ctx, resolved); description != "" && LooksLikeRecipe(description) {
		p.log.Info("extract.video.description_usable", "run_id", run.ID, "len", len(description))
		source = description
	} else {
		source = p.transcribeFallback(ctx, run.ID, resolved, platform)
	}

	if source == "" {
		err := common.NewAppError(common.ErrNoRecipeFound, "No recipe found in description or audio", nil)
		p.finish(ctx, &run, start, nil, err)
		return nil, "", err
	}

	req := llm.ExtractRequest{
		Kind:       llm.SourceVideo,
		SourceText: source,
		SourceURL:  resolved,
		Platform:   platform.Label(),
	}
	draft, raw, err := p.extractor.ExtractRecipe(ctx, req)
	run.RawOutput = raw
	if err != nil {
		p.finish(ctx, &run, start, nil, err)
		return nil, "", err
	}

	p.finish(ctx, &run, start, draft, nil)
	return draft, resolved, nil
}

// transcribeFallback runs the expensive path: headless render → download →
// speech-to-text. Every stage degrades to "" so the orchestrator can report a
// single NoRecipeFound instead of a hard failure.
func (p *Pipeline) transcribeFallback(ctx context.Context, runID uuid.UUID, resolvedURL string, platform media.Platform) string {
	src, err := p.locator.LocateVideoSource(ctx, resolvedURL)
	if err != nil {
		p.log.Warn("extract.video.locate_failed", "run_id", runID, "error", err)
		return ""
	}

	data, err := p.downloader.Download(ctx, src)
	if err != nil {
		p.log.Warn("extract.video.download_failed", "run_id", runID, "error", err)
		return ""
	}

	filename := strings.ToLower(platform.Label()) + "_video.mp4"
	transcript, err := p.transcriber.Transcribe(ctx, data, filename)
	if err != nil {
		p.log.Warn("extract.video.transcribe_failed", "run_id", runID, "error", err)
		return ""
	}
	if !LooksLikeRecipe(transcript) {
		p.log.Info("extract.video.transcript_not_recipe", "run_id", runID, "len", len(transcript))
		return ""
	}
	return transcript
}

func (p *Pipeline) finish(ctx context.Context, run *Run, start time.Time, draft llm.RecipeDraft, err error) {
	run.Duration = time.Since(start)
	if err != nil {
		run.Status = "failed"
		run.ErrorKind = kindName(err)
		p.log.Error("extract.failed", "run_id", run.ID, "kind", string(run.Kind),
			"error_kind", run.ErrorKind, "error", err, "elapsed_ms", run.Duration.Milliseconds())
	} else {
		run.Status = "ok"
		if b, merr := json.Marshal(draft); merr == nil {
			run.Result = b
		}
		p.log.Info("extract.ok", "run_id", run.ID, "kind", string(run.Kind),
			"elapsed_ms", run.Duration.Milliseconds())
	}
	if p.recorder != nil {
		p.recorder.Record(ctx, *run)
	}
}

func kindName(err error) string {
	switch {
	case errors.Is(err, common.ErrMissingInput):
		return "missing_input"
	case errors.Is(err, common.ErrResolutionFailed):
		return "resolution_failed"
	case errors.Is(err, common.ErrNoRecipeFound):
		return "no_recipe_found"
	case errors.Is(err, common.ErrUpstreamEmpty):
		return "upstream_empty"
	case errors.Is(err, common.ErrInvalidModelOutput):
		return "invalid_model_output"
	case errors.Is(err, common.ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, common.ErrUpstreamAuth):
		return "upstream_auth_error"
	case errors.Is(err, common.ErrTransientNetwork):
		return "transient_network_error"
	default:
		return "internal"
	}
}
