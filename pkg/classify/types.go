// Package classify implements the evidence-fusion engine that identifies the
// runtime web client (browser family, version, rendering engine, operating
// system, device class) from a bundle of individually unreliable host signals.
//
// No single signal is trustworthy in isolation: user-agent strings are spoofed
// or misleading (mobile Edge identifies itself as Chrome/Safari), vendor
// strings are frequently empty, and feature probes misfire on polyfills. The
// engine therefore runs several independent extractors, each producing at most
// one candidate label with a confidence score, and merges them with a
// deterministic conflict-resolution algorithm. Callers branch on the fused
// confidence rather than on errors; classification always returns a complete,
// well-typed result.
package classify

import "time"

// Label is the closed set of browser families the engine can report.
type Label string

const (
	LabelChrome  Label = "Chrome"
	LabelFirefox Label = "Firefox"
	LabelSafari  Label = "Safari"
	LabelEdge    Label = "Edge"
	LabelOpera   Label = "Opera"
	LabelIE      Label = "InternetExplorer"
	LabelUnknown Label = "Unknown"
)

// Labels lists every valid label in a stable order.
func Labels() []Label {
	return []Label{LabelChrome, LabelFirefox, LabelSafari, LabelEdge, LabelOpera, LabelIE, LabelUnknown}
}

// Valid reports whether l is one of the enumerated labels.
func (l Label) Valid() bool {
	switch l {
	case LabelChrome, LabelFirefox, LabelSafari, LabelEdge, LabelOpera, LabelIE, LabelUnknown:
		return true
	}
	return false
}

// ExtractorID identifies which extractor produced a candidate.
type ExtractorID string

const (
	ExtractorCapability   ExtractorID = "capability-api"
	ExtractorVendor       ExtractorID = "vendor-string"
	ExtractorUserAgent    ExtractorID = "user-agent"
	ExtractorFeatureProbe ExtractorID = "feature-probe"
)

// Brand is one entry of the structured platform-brand list exposed by modern
// capability APIs (for example userAgentData.brands).
type Brand struct {
	Name    string `yaml:"name" json:"name"`
	Version string `yaml:"version" json:"version"`
}

// Capabilities carries presence flags for browser-exclusive runtime hooks.
// Absence of a hook is a signal in its own right, never an error.
type Capabilities struct {
	// FirefoxInstallTrigger reports the Firefox install-hook object.
	FirefoxInstallTrigger bool `yaml:"firefox_install_trigger" json:"firefox_install_trigger"`
	// ChromeRuntime reports the Chrome extension-runtime connect hook.
	ChromeRuntime bool `yaml:"chrome_runtime" json:"chrome_runtime"`
	// SafariPushNotification reports Safari's push-notification permission object.
	SafariPushNotification bool `yaml:"safari_push_notification" json:"safari_push_notification"`
	// OperaVersionObject reports Opera's version object.
	OperaVersionObject bool `yaml:"opera_version_object" json:"opera_version_object"`
	// DocumentMode reports IE's document-mode flag.
	DocumentMode bool `yaml:"document_mode" json:"document_mode"`
}

// FeatureProbes carries the pre-gathered results of the host's scoped DOM
// feature probing (vendor-prefixed style properties tested on a throwaway
// element). The engine never touches live host objects itself; the probing
// layer runs once and hands over plain data. Failed=true means the probe
// raised and its fields must be ignored.
type FeatureProbes struct {
	Failed           bool `yaml:"failed" json:"failed"`
	WebkitAppearance bool `yaml:"webkit_appearance" json:"webkit_appearance"`
	MozAppearance    bool `yaml:"moz_appearance" json:"moz_appearance"`
}

// Signals is the normalized output of the external host-probing layer for one
// classification pass. Optional fields are presence-tagged so that the engine
// can distinguish "absent" from a zero value. The record is immutable per
// pass; the engine never mutates it.
type Signals struct {
	UserAgent string `yaml:"user_agent" json:"user_agent"`
	Vendor    string `yaml:"vendor" json:"vendor"`

	// Brands is the structured high-confidence platform-brand list, nil when
	// the capability API is unavailable.
	Brands []Brand `yaml:"brands" json:"brands"`

	Capabilities Capabilities  `yaml:"capabilities" json:"capabilities"`
	Features     FeatureProbes `yaml:"features" json:"features"`

	// TouchCapable reports touch support; paired with ViewportWidth in the
	// device-class heuristic.
	TouchCapable bool `yaml:"touch_capable" json:"touch_capable"`
	// ViewportWidth is the layout viewport width in CSS pixels; zero when the
	// host could not measure it.
	ViewportWidth int `yaml:"viewport_width" json:"viewport_width"`
	// HasViewport distinguishes a measured zero-width viewport from an absent
	// measurement.
	HasViewport bool `yaml:"has_viewport" json:"has_viewport"`
}

// Candidate is one extractor's guess at the browser label. An extractor
// produces at most one Candidate per call, or none at all; a zero-confidence
// "Unknown" Candidate is never emitted.
type Candidate struct {
	Label      Label       `json:"label"`
	Confidence float64     `json:"confidence"`
	Source     ExtractorID `json:"source"`
}

// FusionResult is the deterministic merge of all candidates from one pass.
type FusionResult struct {
	Label      Label   `json:"label"`
	Confidence float64 `json:"confidence"`
	// Contributors lists the extractors whose candidate matched the winning
	// label, in extractor evaluation order.
	Contributors []ExtractorID `json:"contributors"`
}

// DeviceClass is the mutually exclusive device categorization.
type DeviceClass string

const (
	DeviceMobile  DeviceClass = "mobile"
	DeviceTablet  DeviceClass = "tablet"
	DeviceDesktop DeviceClass = "desktop"
)

// DetectionResult is the externally visible classification record. It is
// created once per cache miss and read-shared afterwards; none of its fields
// are ever mutated. Extraction failures degrade string fields to "Unknown",
// never to an empty value.
type DetectionResult struct {
	Label         Label   `json:"label"`
	Version       string  `json:"version"`
	Engine        string  `json:"engine"`
	EngineVersion string  `json:"engine_version"`
	OS            string  `json:"os"`
	OSVersion     string  `json:"os_version"`
	Confidence    float64 `json:"confidence"`

	IsMobile  bool `json:"is_mobile"`
	IsTablet  bool `json:"is_tablet"`
	IsDesktop bool `json:"is_desktop"`

	Contributors []ExtractorID `json:"contributors"`

	// Raw signal echo for downstream auditing.
	UserAgent string `json:"user_agent"`
	Vendor    string `json:"vendor"`

	CreatedAt time.Time `json:"created_at"`
}

// Device returns the device class as a single value; exactly one of the three
// flags is true by construction.
func (r DetectionResult) Device() DeviceClass {
	switch {
	case r.IsMobile:
		return DeviceMobile
	case r.IsTablet:
		return DeviceTablet
	default:
		return DeviceDesktop
	}
}

const unknownValue = "Unknown"
