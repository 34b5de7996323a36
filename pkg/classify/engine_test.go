package classify

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uasense/uasense/pkg/cache"
)

func TestClassify_ChromiumEdgeDesktop(t *testing.T) {
	sig := Signals{
		UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36 Edg/120.0.2210.91",
		Vendor:    "",
	}
	engine, err := NewEngine(sig)
	require.NoError(t, err)

	res := engine.Classify()
	assert.Equal(t, LabelEdge, res.Label)
	assert.Equal(t, "120.0.2210.91", res.Version)
	assert.Equal(t, "Blink", res.Engine)
	assert.Equal(t, "Windows", res.OS)
	assert.Equal(t, "Windows 10/11", res.OSVersion)
	assert.True(t, res.IsDesktop)
	// Both the UA and vendor extractors voted Edge.
	assert.GreaterOrEqual(t, len(res.Contributors), 2)
}

func TestClassify_CapabilityOverridesSpoofedUA(t *testing.T) {
	// Chrome runtime hook present while the UA claims Firefox.
	sig := Signals{
		UserAgent:    "Mozilla/5.0 (Windows NT 10.0; rv:120.0) Gecko/20100101 Firefox/120.0",
		Capabilities: Capabilities{ChromeRuntime: true},
	}
	engine, err := NewEngine(sig)
	require.NoError(t, err)

	res := engine.Classify()
	assert.Equal(t, LabelChrome, res.Label)
	assert.Equal(t, 0.95, res.Confidence)
}

func TestClassify_FirefoxDesktop(t *testing.T) {
	sig := Signals{
		UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:120.0) Gecko/20100101 Firefox/120.0",
		Vendor:    "",
		Capabilities: Capabilities{
			FirefoxInstallTrigger: true,
		},
		Features: FeatureProbes{MozAppearance: true},
	}
	engine, err := NewEngine(sig)
	require.NoError(t, err)

	res := engine.Classify()
	assert.Equal(t, LabelFirefox, res.Label)
	assert.Equal(t, "120.0", res.Version)
	assert.Equal(t, "Gecko", res.Engine)
	assert.Equal(t, "120.0", res.EngineVersion)
}

func TestClassify_SafariOnCatalina(t *testing.T) {
	sig := Signals{
		UserAgent: "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Safari/605.1.15",
		Vendor:    "Apple Computer, Inc.",
	}
	engine, err := NewEngine(sig)
	require.NoError(t, err)

	res := engine.Classify()
	assert.Equal(t, LabelSafari, res.Label)
	assert.Equal(t, "17.0", res.Version)
	assert.Equal(t, "WebKit", res.Engine)
	assert.Equal(t, "macOS", res.OS)
	assert.Equal(t, "macOS Catalina", res.OSVersion)
}

func TestClassify_GarbageSignals(t *testing.T) {
	engine, err := NewEngine(Signals{UserAgent: "###", Vendor: "###"})
	require.NoError(t, err)

	res := engine.Classify()
	assert.Equal(t, LabelUnknown, res.Label)
	assert.Equal(t, "Unknown", res.Version)
	assert.Equal(t, "Unknown", res.Engine)
	assert.Equal(t, "Unknown", res.OS)
	assert.Equal(t, float64(0), res.Confidence)
	assert.True(t, res.IsDesktop)
	assert.Empty(t, res.Contributors)
}

func TestClassify_Memoized(t *testing.T) {
	clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	engine, err := NewEngine(
		Signals{UserAgent: "Mozilla/5.0 Chrome/120.0.0.0 Safari/537.36", Vendor: "Google Inc."},
		WithClock(func() time.Time {
			clock = clock.Add(time.Second)
			return clock
		}),
	)
	require.NoError(t, err)

	first := engine.Classify()
	second := engine.Classify()
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("cached result differs from first pass (-first +second):\n%s", diff)
	}

	stats := engine.CacheStats()
	assert.True(t, stats.Occupied)
	assert.Equal(t, cache.DefaultKey, stats.Key)
}

func TestClassify_InvalidateForcesRecompute(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	engine, err := NewEngine(
		Signals{UserAgent: "Mozilla/5.0 Chrome/120.0.0.0 Safari/537.36", Vendor: "Google Inc."},
		WithClock(func() time.Time {
			now = now.Add(time.Minute)
			return now
		}),
	)
	require.NoError(t, err)

	first := engine.Classify()
	engine.InvalidateCache()
	assert.False(t, engine.CacheStats().Occupied)

	second := engine.Classify()
	assert.Equal(t, first.Label, second.Label)
	assert.True(t, second.CreatedAt.After(first.CreatedAt), "recompute must stamp a new creation time")
}

func TestClassify_NoopCacheNeverMemoizes(t *testing.T) {
	engine, err := NewEngine(
		Signals{UserAgent: "Mozilla/5.0 Chrome/120.0.0.0 Safari/537.36"},
		WithCache(cache.Noop[DetectionResult]{}),
	)
	require.NoError(t, err)

	engine.Classify()
	assert.False(t, engine.CacheStats().Occupied)
}

type failingExtractor struct{ id ExtractorID }

func (f failingExtractor) ID() ExtractorID { return f.id }

func (f failingExtractor) Extract(Signals) (*Candidate, error) {
	return nil, errors.New("host probe exploded")
}

func TestClassify_ExtractorFailureIsNonFatal(t *testing.T) {
	engine, err := NewEngine(
		Signals{UserAgent: "Mozilla/5.0 Chrome/120.0.0.0 Safari/537.36", Vendor: "Google Inc."},
		WithExtractors(failingExtractor{id: ExtractorCapability}, userAgentExtractor{}, vendorExtractor{}),
	)
	require.NoError(t, err)

	res := engine.Classify()
	assert.Equal(t, LabelChrome, res.Label)

	failures := engine.ExtractorErrors()
	require.Len(t, failures, 1)
	assert.Equal(t, ExtractorCapability, failures[0].Source)
	assert.Contains(t, failures[0].Error(), "host probe exploded")
}

func TestClassify_AllExtractorsFail(t *testing.T) {
	engine, err := NewEngine(
		Signals{UserAgent: "Mozilla/5.0 Chrome/120.0.0.0"},
		WithExtractors(
			failingExtractor{id: ExtractorCapability},
			failingExtractor{id: ExtractorUserAgent},
		),
	)
	require.NoError(t, err)

	res := engine.Classify()
	assert.Equal(t, LabelUnknown, res.Label)
	assert.Len(t, engine.ExtractorErrors(), 2)
}

func TestSetCatalog_InvalidatesCache(t *testing.T) {
	engine, err := NewEngine(Signals{UserAgent: "Mozilla/5.0 Chrome/120.0.0.0 Safari/537.36"})
	require.NoError(t, err)

	engine.Classify()
	require.True(t, engine.CacheStats().Occupied)

	catalog, err := BuiltinCatalog()
	require.NoError(t, err)
	engine.SetCatalog(catalog)
	assert.False(t, engine.CacheStats().Occupied)
}

func TestEngine_ResolveVersionBypassesFusion(t *testing.T) {
	engine, err := NewEngine(Signals{UserAgent: "Mozilla/5.0 Chrome/120.0.6099.129 Safari/537.36 OPR/106.0.4998.70"})
	require.NoError(t, err)

	assert.Equal(t, "106.0.4998.70", engine.ResolveVersion(LabelOpera))
	assert.Equal(t, "120.0.6099.129", engine.ResolveVersion(LabelChrome))
}
