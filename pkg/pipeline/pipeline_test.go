package pipeline

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/lturtle/pkg/cache"
	"github.com/matzehuels/lturtle/pkg/config"
	"github.com/matzehuels/lturtle/pkg/errors"
	"github.com/matzehuels/lturtle/pkg/lsystem"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestFromConfig(t *testing.T) {
	cfg := config.Default()
	opts := FromConfig(cfg)

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if opts.Axiom != "A" || opts.Generations != 5 || opts.Step != 20 || opts.Heading != 270 {
		t.Errorf("unexpected options: %+v", opts)
	}

	// Options must not alias the config's rule slice
	opts.Rules[0] = "A=F"
	if cfg.Grammar.Rules[0] == "A=F" {
		t.Error("FromConfig should copy rules")
	}
}

func TestOptionsValidateForGenerate(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"empty axiom", Options{Rules: []string{"F=FF"}}, errors.ErrCodeInvalidAxiom},
		{"bad rule", Options{Axiom: "F", Rules: []string{"FF=F"}}, errors.ErrCodeInvalidRule},
		{"negative generations", Options{Axiom: "F", Generations: -1}, errors.ErrCodeInvalidInput},
		{"negative limit", Options{Axiom: "F", MaxLength: -1}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateForGenerate()
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestSetRenderDefaults(t *testing.T) {
	opts := Options{}
	opts.SetRenderDefaults()

	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats should be [svg], got %v", opts.Formats)
	}
	if opts.Width != 800 || opts.Height != 600 || opts.Step != 20 || opts.Scale != 1 {
		t.Errorf("unexpected defaults: %+v", opts)
	}
	// Zero heading means east and must survive defaulting
	if opts.Heading != 0 {
		t.Errorf("Heading should stay 0, got %v", opts.Heading)
	}
}

func TestOptionsValidateForRender(t *testing.T) {
	opts := Options{Stroke: "red"}
	if err := opts.ValidateForRender(); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("named colors should be rejected, got %v", err)
	}
	opts = Options{Formats: []string{"gif"}}
	if err := opts.ValidateForRender(); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("unknown format should be rejected, got %v", err)
	}
	opts = Options{Width: -1}
	if err := opts.ValidateForRender(); err == nil {
		t.Error("negative width should be rejected")
	}
	opts = Options{Width: 1e12, Height: 1e12}
	if err := opts.ValidateForRender(); !errors.Is(err, errors.ErrCodeTooLarge) {
		t.Errorf("huge canvas should be rejected, got %v", err)
	}
	opts = Options{Width: 800, Height: 600, Scale: 1000}
	if err := opts.ValidateForRender(); !errors.Is(err, errors.ErrCodeTooLarge) {
		t.Errorf("huge scale should be rejected, got %v", err)
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Axiom: "F", Rules: []string{"F=F+F"}}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}
	formats := strings.Join(opts.Formats, ",")

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}
	if strings.Join(opts.Formats, ",") != formats {
		t.Error("Formats changed on second call")
	}
	if len(opts.System().Rules) != 1 {
		t.Error("rules should be parsed")
	}
}

func TestInterpret(t *testing.T) {
	opts := Options{Axiom: "F", Rules: []string{"F=F+F"}, Angle: 90}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	segs := Interpret("F+F-G", opts)
	if len(segs) != 2 {
		t.Fatalf("segments = %d, want 2", len(segs))
	}

	opts.Branching = true
	segs = Interpret("F[+F]fF", opts)
	if len(segs) != 3 {
		t.Fatalf("branching segments = %d, want 3", len(segs))
	}
	if segs[2].From.X != 40 {
		t.Errorf("f should move without drawing, last segment starts at %+v", segs[2].From)
	}
}

// countingCache wraps a cache and counts hits.
type countingCache struct {
	cache.Cache
	mu   sync.Mutex
	hits int
	sets int
}

func (c *countingCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, hit, err := c.Cache.Get(ctx, key)
	if hit {
		c.mu.Lock()
		c.hits++
		c.mu.Unlock()
	}
	return data, hit, err
}

func (c *countingCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	c.mu.Lock()
	c.sets++
	c.mu.Unlock()
	return c.Cache.Set(ctx, key, data, ttl)
}

func newTestRunner(t *testing.T) (*Runner, *countingCache) {
	t.Helper()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	cc := &countingCache{Cache: fc}
	return NewRunner(cc, nil, nil), cc
}

func TestRunnerExecute(t *testing.T) {
	ctx := context.Background()
	r, cc := newTestRunner(t)
	defer r.Close()

	opts := FromConfig(config.Default())
	opts.Formats = []string{FormatSVG, FormatJSON}

	first, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	rules := lsystem.MustParseRules("A=-BF+AFA+FB-", "B=+AF-BFB-FA+")
	if first.Program != lsystem.Generate("A", rules, 5) {
		t.Error("program does not match Generate")
	}
	if first.CacheInfo.GenerateHit || first.CacheInfo.RenderHit {
		t.Error("first run should miss the cache")
	}
	if first.Stats.Segments != 1023 {
		t.Errorf("segments = %d, want 1023", first.Stats.Segments)
	}
	if !strings.Contains(string(first.Artifacts[FormatSVG]), "<path") {
		t.Error("svg artifact missing path")
	}
	if cc.sets != 3 {
		t.Errorf("cache writes = %d, want 3 (program + 2 artifacts)", cc.sets)
	}

	second, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.GenerateHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run should hit the cache: %+v", second.CacheInfo)
	}
	if string(second.Artifacts[FormatJSON]) != string(first.Artifacts[FormatJSON]) {
		t.Error("cached artifact differs")
	}

	// A new format misses the render cache but still hits the program cache
	opts.Formats = []string{FormatSVG, FormatPNG}
	third, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !third.CacheInfo.GenerateHit || third.CacheInfo.RenderHit {
		t.Errorf("unexpected cache info: %+v", third.CacheInfo)
	}
}

func TestRunnerRefresh(t *testing.T) {
	ctx := context.Background()
	r, cc := newTestRunner(t)

	opts := Options{Axiom: "F", Rules: []string{"F=F+F"}, Generations: 2, Refresh: true}
	for range 2 {
		res, err := r.Execute(ctx, opts)
		if err != nil {
			t.Fatal(err)
		}
		if res.CacheInfo.GenerateHit || res.CacheInfo.RenderHit {
			t.Error("refresh should bypass cache reads")
		}
	}
	if cc.hits != 0 {
		t.Errorf("hits = %d, want 0", cc.hits)
	}
}

func TestRunnerGenerateTooLarge(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	opts := FromConfig(config.Default())
	opts.MaxLength = 100

	_, _, err := r.Generate(context.Background(), opts)
	if !errors.Is(err, errors.ErrCodeTooLarge) {
		t.Errorf("err = %v, want TOO_LARGE", err)
	}
}

func TestRunnerGenerateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewRunner(nil, nil, nil)
	_, _, err := r.Generate(ctx, FromConfig(config.Default()))
	if err == nil {
		t.Error("cancelled context should fail")
	}
}

func TestRunnerDistinguishesSystems(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRunner(t)

	a, _, err := r.Generate(ctx, Options{Axiom: "F", Rules: []string{"F=F+F"}, Generations: 1})
	if err != nil {
		t.Fatal(err)
	}
	b, hit, err := r.Generate(ctx, Options{Axiom: "F", Rules: []string{"F=F-F"}, Generations: 1})
	if err != nil {
		t.Fatal(err)
	}
	if hit || a == b {
		t.Errorf("different rules must not share a cache entry: %q %q", a, b)
	}
}
