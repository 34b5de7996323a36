package classify

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/uasense/uasense/pkg/cache"
)

// ExtractorError records a failed extractor from the most recent pass. The
// failure never aborts classification; it is kept so diagnostics can observe
// what was discarded.
type ExtractorError struct {
	Source ExtractorID `json:"source"`
	Err    error       `json:"-"`
}

// Error implements the error interface.
func (e ExtractorError) Error() string {
	return string(e.Source) + ": " + e.Err.Error()
}

// Engine is the classification facade. It owns the signal bundle for one
// logical client, the compiled pattern catalog, the extractor set, and the
// single-slot result cache. All configuration is explicit and immutable after
// construction except the catalog, which the watcher may swap (guarded by a
// mutex; a full pass is sub-millisecond, so nothing finer is warranted).
type Engine struct {
	signals    Signals
	extractors []Extractor

	mu      sync.RWMutex
	catalog *Catalog

	cache     cache.Cache[DetectionResult]
	telemetry *TelemetryWriter
	logger    zerolog.Logger
	now       func() time.Time

	errMu      sync.Mutex
	lastErrors []ExtractorError
}

// Option configures an Engine.
type Option func(*Engine)

// WithCatalog sets an explicit pattern catalog instead of the builtin one.
func WithCatalog(c *Catalog) Option {
	return func(e *Engine) { e.catalog = c }
}

// WithCache replaces the default single-slot cache (use cache.Noop to force a
// fresh classification every call).
func WithCache(c cache.Cache[DetectionResult]) Option {
	return func(e *Engine) { e.cache = c }
}

// WithTelemetry attaches a telemetry writer; classification events are
// written best-effort.
func WithTelemetry(w *TelemetryWriter) Option {
	return func(e *Engine) { e.telemetry = w }
}

// WithLogger sets the engine logger.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithExtractors replaces the default extractor set. Order matters: it
// determines contributor lists and fusion tie-breaking.
func WithExtractors(extractors ...Extractor) Option {
	return func(e *Engine) { e.extractors = extractors }
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// NewEngine builds an engine for one signal bundle. The error is only
// non-nil when no catalog was supplied and the builtin catalog fails to
// parse.
func NewEngine(signals Signals, opts ...Option) (*Engine, error) {
	e := &Engine{
		signals:    signals,
		extractors: defaultExtractors(),
		cache:      cache.NewSlot[DetectionResult](cache.DefaultKey),
		logger:     log.Logger.With().Str("component", "classify.engine").Logger(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.catalog == nil {
		catalog, err := BuiltinCatalog()
		if err != nil {
			return nil, err
		}
		e.catalog = catalog
	}

	return e, nil
}

// Classify returns the detection result for the current client, memoized
// after the first call. It never fails: extraction failures degrade fields to
// "Unknown" and are recorded for diagnostics.
func (e *Engine) Classify() DetectionResult {
	start := e.now()

	if result, ok := e.cache.Get(); ok {
		e.emit(result, true, nil, start)
		return result
	}

	candidates, extractorErrs := e.runExtractors()
	fused := fuse(candidates)

	res := e.resolverSnapshot()
	version := res.resolveVersion(fused.Label, e.signals)
	engineName, engineVersion := res.resolveEngine(fused.Label, version, e.signals)
	osName, osVersion := res.resolveOS(e.signals)
	device := classifyDevice(e.signals)

	result := DetectionResult{
		Label:         fused.Label,
		Version:       version,
		Engine:        engineName,
		EngineVersion: engineVersion,
		OS:            osName,
		OSVersion:     osVersion,
		Confidence:    fused.Confidence,
		IsMobile:      device == DeviceMobile,
		IsTablet:      device == DeviceTablet,
		IsDesktop:     device == DeviceDesktop,
		Contributors:  fused.Contributors,
		UserAgent:     e.signals.UserAgent,
		Vendor:        e.signals.Vendor,
		CreatedAt:     start,
	}

	e.cache.Set(result)
	e.setLastErrors(extractorErrs)
	e.emit(result, false, extractorErrs, start)

	return result
}

// Fuse runs conflict resolution over an explicit candidate list. Exposed for
// callers that gather candidates themselves; it is a pure function.
func (e *Engine) Fuse(candidates []Candidate) FusionResult {
	return fuse(candidates)
}

// InvalidateCache clears the memoized result.
func (e *Engine) InvalidateCache() {
	e.cache.Clear()
}

// CacheStats reports whether the result slot is occupied and under which key.
func (e *Engine) CacheStats() cache.Stats {
	return e.cache.Stats()
}

// DeviceClass computes the device class directly from the signals, bypassing
// the cache; exposed standalone for callers needing only this.
func (e *Engine) DeviceClass() DeviceClass {
	return classifyDevice(e.signals)
}

// ResolveVersion derives the version string for an explicit label against the
// current signals, bypassing fusion and the cache.
func (e *Engine) ResolveVersion(label Label) string {
	return e.resolverSnapshot().resolveVersion(label, e.signals)
}

// ExtractorErrors returns the extractor failures recorded by the most recent
// non-cached classification pass.
func (e *Engine) ExtractorErrors() []ExtractorError {
	e.errMu.Lock()
	defer e.errMu.Unlock()
	return append([]ExtractorError(nil), e.lastErrors...)
}

// SetCatalog swaps the pattern catalog and invalidates the cached result so
// the next classification uses the new rules. Used by the catalog watcher.
func (e *Engine) SetCatalog(c *Catalog) {
	if c == nil {
		return
	}
	e.mu.Lock()
	e.catalog = c
	e.mu.Unlock()
	e.cache.Clear()
}

func (e *Engine) resolverSnapshot() resolver {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return resolver{catalog: e.catalog}
}

func (e *Engine) runExtractors() ([]Candidate, []ExtractorError) {
	var (
		candidates []Candidate
		failures   []ExtractorError
	)
	for _, ex := range e.extractors {
		cand, err := ex.Extract(e.signals)
		if err != nil {
			e.logger.Warn().Err(err).Str("extractor", string(ex.ID())).Msg("extractor failed; discarding")
			failures = append(failures, ExtractorError{Source: ex.ID(), Err: err})
			continue
		}
		if cand == nil {
			continue
		}
		candidates = append(candidates, *cand)
	}
	return candidates, failures
}

func (e *Engine) setLastErrors(errs []ExtractorError) {
	e.errMu.Lock()
	e.lastErrors = errs
	e.errMu.Unlock()
}

func (e *Engine) emit(result DetectionResult, cacheHit bool, errs []ExtractorError, start time.Time) {
	if e.telemetry == nil {
		return
	}

	event := ClassificationEvent{
		Timestamp:      start,
		Label:          result.Label,
		Version:        result.Version,
		OS:             result.OS,
		Device:         result.Device(),
		Confidence:     result.Confidence,
		Contributors:   result.Contributors,
		CacheHit:       cacheHit,
		DurationMicros: e.now().Sub(start).Microseconds(),
	}
	for _, fe := range errs {
		event.ExtractorErrors = append(event.ExtractorErrors, fe.Error())
	}

	if err := e.telemetry.Write(event); err != nil {
		e.logger.Warn().Err(err).Msg("failed to write telemetry event")
	}
}
