package pipeline

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/gridcompose/pkg/cache"
	errs "github.com/matzehuels/gridcompose/pkg/errors"
	"github.com/matzehuels/gridcompose/pkg/geometry"
	"github.com/matzehuels/gridcompose/pkg/grid"
	"github.com/matzehuels/gridcompose/pkg/manifest"
)

const feed = `
width = 320
has_more = true

[[sections]]
index = 0
style = "fixed-columns:2"
item_spacing = 8

[[sections.items]]
id = "a"
height = 100
title = "A"

[[sections.items]]
id = "b"
height = 100
title = "B"
`

// memCache is an in-memory cache.Cache that counts operations.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func newMemCache() *memCache { return &memCache{data: make(map[string][]byte)} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
	c.sets++
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) Close() error { return nil }

func item(id string, row int, h float64) grid.Item {
	return grid.Base{
		Index: grid.At(0, row),
		ID:    id,
		Kind:  grid.CellKind("Card"),
		Dims:  grid.NewSize(grid.Fixed(50), grid.Fixed(h)),
	}
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"json", false},
		{"txt", false},
		{"dot", false},
		{"svg", false},
		{"png", false},
		{"pdf", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errs.Is(err, errs.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %v", tt.format, errs.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"json", "txt"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}
	if err := ValidateFormats([]string{"json", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestOptionsValidateForParse(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errs.Code
	}{
		{"nothing", Options{}, errs.ErrCodeInvalidInput},
		{"manifest without format", Options{Manifest: []byte("x")}, errs.ErrCodeInvalidInput},
		{"manifest bad format", Options{Manifest: []byte("x"), ManifestFormat: "yaml"}, errs.ErrCodeInvalidFormat},
		{"manifest", Options{Manifest: []byte("x"), ManifestFormat: manifest.FormatTOML}, ""},
		{"empty items", Options{Items: []grid.Item{}}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateForParse()
			if got := errs.GetCode(err); got != tt.code {
				t.Errorf("ValidateForParse() = %v, want code %q", err, tt.code)
			}
			if err == nil && tt.opts.Logger == nil {
				t.Error("ValidateForParse() did not default the logger")
			}
		})
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Items: []grid.Item{}}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatJSON {
		t.Errorf("Formats = %v, want [json]", opts.Formats)
	}
	formats := opts.Formats
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}
	if len(opts.Formats) != len(formats) {
		t.Error("Formats changed on second call")
	}
}

func TestSetLayoutDefaults(t *testing.T) {
	opts := Options{}
	opts.SetLayoutDefaults()
	if opts.Width != DefaultWidth {
		t.Errorf("Width = %v, want %v", opts.Width, DefaultWidth)
	}

	opts = Options{Width: -5}
	if err := opts.ValidateForLayout(); !errs.Is(err, errs.ErrCodeInvalidWidth) {
		t.Errorf("ValidateForLayout(-5) = %v, want INVALID_WIDTH", err)
	}
}

func TestParse(t *testing.T) {
	src, err := Parse(Options{Manifest: []byte(feed), ManifestFormat: manifest.FormatTOML})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(src.Items) != 2 || !src.HasMore || src.Width != 320 {
		t.Errorf("Parse() = %d items, has_more %v, width %v", len(src.Items), src.HasMore, src.Width)
	}

	src, err = Parse(Options{Manifest: []byte(feed), ManifestFormat: manifest.FormatTOML, Width: 200})
	if err != nil {
		t.Fatal(err)
	}
	if src.Width != 200 {
		t.Errorf("Width = %v, want option width 200", src.Width)
	}

	items := []grid.Item{item("x", 0, 10)}
	src, err = Parse(Options{Items: items})
	if err != nil {
		t.Fatal(err)
	}
	if len(src.Items) != 1 || src.Width != 0 {
		t.Errorf("Parse(items) = %+v", src)
	}
}

func TestParseRejectsInvalidItems(t *testing.T) {
	bad := grid.Base{Index: grid.At(0, 0), ID: "x", Dims: grid.NewSize(grid.Fit(), grid.Fit())}
	_, err := Parse(Options{Items: []grid.Item{bad}})
	if !errs.Is(err, errs.ErrCodeInvalidSize) {
		t.Errorf("Parse(fit height) = %v, want INVALID_SIZE", err)
	}

	_, err = Parse(Options{Items: []grid.Item{item("", 0, 10)}})
	if !errs.Is(err, errs.ErrCodeInvalidIdentity) {
		t.Errorf("Parse(empty id) = %v, want INVALID_IDENTITY", err)
	}

	_, err = Parse(Options{Items: []grid.Item{nil}})
	if !errs.Is(err, errs.ErrCodeInvalidInput) {
		t.Errorf("Parse(nil item) = %v, want INVALID_INPUT", err)
	}
}

func TestItemsHash(t *testing.T) {
	a := []grid.Item{item("a", 0, 10), item("b", 1, 20)}
	if ItemsHash(a) != ItemsHash([]grid.Item{item("a", 0, 10), item("b", 1, 20)}) {
		t.Error("ItemsHash should be deterministic")
	}
	if ItemsHash(a) == ItemsHash([]grid.Item{item("a", 0, 10), item("b", 1, 21)}) {
		t.Error("ItemsHash should change with sizes")
	}

	titled := func(title string) grid.Item {
		return manifest.Item{Base: item("a", 0, 10).(grid.Base), Title: title}
	}
	if ItemsHash([]grid.Item{titled("x")}) != ItemsHash([]grid.Item{titled("y")}) {
		t.Error("ItemsHash should ignore content")
	}
}

func TestExecute(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), Options{
		Manifest:       []byte(feed),
		ManifestFormat: manifest.FormatTOML,
		Formats:        []string{FormatJSON, FormatText, FormatDOT},
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	// One content section plus the load-more section.
	if res.Stats.SectionCount != 2 || len(res.Sections) != 2 {
		t.Errorf("sections = %d, want 2", res.Stats.SectionCount)
	}
	if res.Stats.ItemCount != 2 {
		t.Errorf("ItemCount = %d, want 2", res.Stats.ItemCount)
	}
	if res.Layout.Width != 320 || len(res.Layout.Sections) != 2 {
		t.Errorf("layout = width %v, %d sections", res.Layout.Width, len(res.Layout.Sections))
	}
	if !res.Settings.ScrollEnabled {
		t.Errorf("Settings = %+v, want defaults", res.Settings)
	}

	decoded, err := geometry.UnmarshalLayout(res.Artifacts[FormatJSON])
	if err != nil {
		t.Fatalf("json artifact: %v", err)
	}
	if decoded.ItemCount() != res.Layout.ItemCount() {
		t.Errorf("json artifact item count = %d, want %d", decoded.ItemCount(), res.Layout.ItemCount())
	}
	if !strings.Contains(string(res.Artifacts[FormatText]), "0-1-b") {
		t.Errorf("txt artifact missing item:\n%s", res.Artifacts[FormatText])
	}
	if !strings.HasPrefix(string(res.Artifacts[FormatDOT]), "digraph G {") {
		t.Errorf("dot artifact = %.40s", res.Artifacts[FormatDOT])
	}
}

func TestExecuteCaching(t *testing.T) {
	ctx := context.Background()
	mem := newMemCache()
	r := NewRunner(mem, nil, nil)
	opts := Options{Items: []grid.Item{item("a", 0, 10), item("b", 1, 20)}, Formats: []string{FormatText}}

	first, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Errorf("first run CacheInfo = %+v, want misses", first.CacheInfo)
	}
	if mem.sets != 2 {
		t.Errorf("cache sets = %d, want 2 (layout, txt)", mem.sets)
	}

	second, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run CacheInfo = %+v, want hits", second.CacheInfo)
	}
	if string(second.Artifacts[FormatText]) != string(first.Artifacts[FormatText]) {
		t.Error("cached artifact differs")
	}

	opts.Refresh = true
	third, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo.LayoutHit || third.CacheInfo.RenderHit {
		t.Errorf("refresh CacheInfo = %+v, want misses", third.CacheInfo)
	}
}

func TestExecuteWidthChangesLayoutKey(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(newMemCache(), nil, nil)
	items := []grid.Item{item("a", 0, 10)}

	if _, err := r.Execute(ctx, Options{Items: items, Width: 300}); err != nil {
		t.Fatal(err)
	}
	res, err := r.Execute(ctx, Options{Items: items, Width: 200})
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheInfo.LayoutHit {
		t.Error("layout cached across widths")
	}
	if res.Layout.Width != 200 {
		t.Errorf("Width = %v, want 200", res.Layout.Width)
	}
}

func TestExecuteErrors(t *testing.T) {
	r := NewRunner(cache.NewNullCache(), nil, nil)
	ctx := context.Background()

	_, err := r.Execute(ctx, Options{Items: []grid.Item{}, Formats: []string{"gif"}})
	if !errs.Is(err, errs.ErrCodeInvalidFormat) {
		t.Errorf("Execute(gif) = %v, want INVALID_FORMAT", err)
	}

	_, err = r.Execute(ctx, Options{Manifest: []byte("width = ["), ManifestFormat: manifest.FormatTOML})
	if !errs.Is(err, errs.ErrCodeInvalidManifest) {
		t.Errorf("Execute(bad manifest) = %v, want INVALID_MANIFEST", err)
	}
}
