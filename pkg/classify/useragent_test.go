package classify

import "testing"

func TestUserAgentExtractor_Cascade(t *testing.T) {
	tests := []struct {
		name string
		sig  Signals
		want Label
		conf float64
	}{
		{
			name: "firefox desktop",
			sig:  Signals{UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:120.0) Gecko/20100101 Firefox/120.0"},
			want: LabelFirefox,
			conf: 0.9,
		},
		{
			name: "firefox ios",
			sig:  Signals{UserAgent: "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) FxiOS/120.0 Mobile/15E148 Safari/605.1.15"},
			want: LabelFirefox,
			conf: 0.9,
		},
		{
			name: "chromium edge before chrome",
			sig:  Signals{UserAgent: "Mozilla/5.0 (Windows NT 10.0) Chrome/120.0.0.0 Safari/537.36 Edg/120.0.0.0"},
			want: LabelEdge,
			conf: 0.9,
		},
		{
			name: "opera opr token",
			sig:  Signals{UserAgent: "Mozilla/5.0 Chrome/120.0.0.0 Safari/537.36 OPR/106.0.0.0"},
			want: LabelOpera,
			conf: 0.9,
		},
		{
			name: "internet explorer msie",
			sig:  Signals{UserAgent: "Mozilla/5.0 (compatible; MSIE 10.0; Windows NT 6.2; Trident/6.0)"},
			want: LabelIE,
			conf: 0.9,
		},
		{
			name: "internet explorer 11 trident",
			sig:  Signals{UserAgent: "Mozilla/5.0 (Windows NT 10.0; Trident/7.0; rv:11.0) like Gecko"},
			want: LabelIE,
			conf: 0.9,
		},
		{
			name: "chrome desktop",
			sig:  Signals{UserAgent: "Mozilla/5.0 (Windows NT 10.0) AppleWebKit/537.36 Chrome/120.0.0.0 Safari/537.36"},
			want: LabelChrome,
			conf: 0.8,
		},
		{
			name: "chrome ios",
			sig:  Signals{UserAgent: "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) CriOS/120.0.6099.119 Mobile/15E148 Safari/604.1"},
			want: LabelChrome,
			conf: 0.95,
		},
		{
			name: "safari token with google vendor",
			sig:  Signals{UserAgent: "Mozilla/5.0 (Linux; Android 13) AppleWebKit/537.36 Mobile Safari/537.36", Vendor: "Google Inc."},
			want: LabelChrome,
			conf: 0.85,
		},
		{
			name: "plain safari",
			sig:  Signals{UserAgent: "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 Version/17.0 Safari/605.1.15", Vendor: "Apple Computer, Inc."},
			want: LabelSafari,
			conf: 0.7,
		},
	}

	var ex userAgentExtractor
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cand, err := ex.Extract(tt.sig)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cand == nil {
				t.Fatalf("expected a candidate")
			}
			if cand.Label != tt.want || cand.Confidence != tt.conf {
				t.Fatalf("got %q/%v, want %q/%v", cand.Label, cand.Confidence, tt.want, tt.conf)
			}
			if cand.Source != ExtractorUserAgent {
				t.Fatalf("unexpected source %q", cand.Source)
			}
		})
	}
}

func TestUserAgentExtractor_EmptyUA(t *testing.T) {
	cand, err := userAgentExtractor{}.Extract(Signals{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cand != nil {
		t.Fatalf("expected no candidate for empty UA, got %+v", cand)
	}
}

func TestUserAgentExtractor_NoMatch(t *testing.T) {
	cand, err := userAgentExtractor{}.Extract(Signals{UserAgent: "Wget/1.21.2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cand != nil {
		t.Fatalf("expected no candidate for unrecognized UA, got %+v", cand)
	}
}
