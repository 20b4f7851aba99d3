package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fortunekit/fortune-go/internal/domain/entities/fortune"
	"github.com/fortunekit/fortune-go/internal/infrastructure/caching/manager"
)

type stubGenerator struct {
	text  string
	err   error
	calls int
}

func (g *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.calls++
	return g.text, g.err
}

func baseRequest() fortune.AIFortuneRequest {
	return fortune.AIFortuneRequest{
		UserID:    "user-1",
		Lang:      "en",
		Theme:     "relationship",
		Lines:     2,
		LocalDate: "2024-01-01",
	}
}

func TestGetFortuneGeneratesThenCaches(t *testing.T) {
	gen := &stubGenerator{text: "Speak warmly.\nTrust grows slowly."}
	cache := manager.NewManager(nil)
	svc := NewAIFortuneService(cache, gen, nil, nil, 26*time.Hour)

	first, err := svc.GetFortune(context.Background(), baseRequest())
	if err != nil {
		t.Fatalf("first GetFortune: %v", err)
	}
	if first.Source != fortune.SourceOpenAI {
		t.Errorf("first source = %q, want %q", first.Source, fortune.SourceOpenAI)
	}
	if first.Text != "Speak warmly.\nTrust grows slowly." {
		t.Errorf("first text = %q", first.Text)
	}
	if first.Cached {
		t.Error("first result must not be marked cached")
	}

	second, err := svc.GetFortune(context.Background(), baseRequest())
	if err != nil {
		t.Fatalf("second GetFortune: %v", err)
	}
	if second.Source != fortune.SourceCache || !second.Cached {
		t.Errorf("second result = %+v, want cached", second)
	}
	if second.Text != first.Text {
		t.Errorf("cached text %q differs from generated %q", second.Text, first.Text)
	}
	if gen.calls != 1 {
		t.Errorf("generator called %d times, want 1", gen.calls)
	}
}

func TestGetFortuneDistinctKeysGenerateSeparately(t *testing.T) {
	gen := &stubGenerator{text: "A fresh start."}
	cache := manager.NewManager(nil)
	svc := NewAIFortuneService(cache, gen, nil, nil, 26*time.Hour)

	reqA := baseRequest()
	reqB := baseRequest()
	reqB.LocalDate = "2024-01-02"

	if _, err := svc.GetFortune(context.Background(), reqA); err != nil {
		t.Fatalf("GetFortune A: %v", err)
	}
	if _, err := svc.GetFortune(context.Background(), reqB); err != nil {
		t.Fatalf("GetFortune B: %v", err)
	}

	if gen.calls != 2 {
		t.Errorf("generator called %d times, want 2 for distinct keys", gen.calls)
	}
}

func TestGetFortuneExpiryTriggersRegeneration(t *testing.T) {
	gen := &stubGenerator{text: "Hold steady."}
	cache := manager.NewManager(nil)

	base := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	cache.SetClock(func() time.Time { return base })

	svc := NewAIFortuneService(cache, gen, nil, nil, 26*time.Hour)

	if _, err := svc.GetFortune(context.Background(), baseRequest()); err != nil {
		t.Fatalf("initial GetFortune: %v", err)
	}

	cache.SetClock(func() time.Time { return base.Add(27 * time.Hour) })

	result, err := svc.GetFortune(context.Background(), baseRequest())
	if err != nil {
		t.Fatalf("post-expiry GetFortune: %v", err)
	}
	if result.Source != fortune.SourceOpenAI {
		t.Errorf("post-expiry source = %q, want fresh generation", result.Source)
	}
	if gen.calls != 2 {
		t.Errorf("generator called %d times, want 2 after expiry", gen.calls)
	}
}

func TestGetFortuneEmptyOutputIsError(t *testing.T) {
	for _, raw := range []string{"", "   \r\n  \n "} {
		gen := &stubGenerator{text: raw}
		cache := manager.NewManager(nil)
		svc := NewAIFortuneService(cache, gen, nil, nil, 26*time.Hour)

		_, err := svc.GetFortune(context.Background(), baseRequest())
		if !errors.Is(err, fortune.ErrEmptyResult) {
			t.Errorf("raw %q: err = %v, want ErrEmptyResult", raw, err)
		}
		if cache.EntryCount() != 0 {
			t.Errorf("raw %q: empty result must not be cached", raw)
		}
	}
}

func TestGetFortuneProviderErrorPropagates(t *testing.T) {
	gen := &stubGenerator{err: errors.New("connection refused")}
	cache := manager.NewManager(nil)
	svc := NewAIFortuneService(cache, gen, nil, nil, 26*time.Hour)

	_, err := svc.GetFortune(context.Background(), baseRequest())
	if err == nil {
		t.Fatal("expected provider error to propagate")
	}
	if errors.Is(err, fortune.ErrEmptyResult) {
		t.Error("provider error must stay distinct from ErrEmptyResult")
	}
	if cache.EntryCount() != 0 {
		t.Error("failed generation must not be cached")
	}
}

func TestFormatFortuneStripsAndTrims(t *testing.T) {
	got := FormatFortune("  Line one.\r\n\r\n  Line two.  \r\n", 2)
	want := "Line one.\nLine two."
	if got != want {
		t.Errorf("FormatFortune = %q, want %q", got, want)
	}
}

func TestFormatFortuneCapsLineCount(t *testing.T) {
	got := FormatFortune("a\n\nb\nc\nd", 2)
	if got != "a\nb" {
		t.Errorf("FormatFortune = %q, want %q", got, "a\nb")
	}

	if got := FormatFortune("only one line", 1); got != "only one line" {
		t.Errorf("FormatFortune = %q, want unchanged single line", got)
	}
}

func TestFormatFortuneTruncatesLongLines(t *testing.T) {
	long := strings.Repeat("x", 200)
	got := FormatFortune(long, 1)

	runes := []rune(got)
	if len(runes) != MaxLineLength {
		t.Errorf("truncated line length = %d runes, want %d", len(runes), MaxLineLength)
	}
	if !strings.HasSuffix(got, "…") {
		t.Errorf("truncated line %q must end with the truncation marker", got)
	}

	exact := strings.Repeat("y", MaxLineLength)
	if got := FormatFortune(exact, 1); got != exact {
		t.Error("line at exactly the cap must not be truncated")
	}
}

func TestBuildPromptLanguages(t *testing.T) {
	en := BuildPrompt("en", "relationship", 2)
	if !strings.Contains(en, "relationship") || !strings.Contains(en, "2 lines") {
		t.Errorf("english prompt missing theme or line count: %q", en)
	}

	tr := BuildPrompt("tr", "iliski", 1)
	if !strings.Contains(tr, "iliski") || !strings.Contains(tr, "fal") {
		t.Errorf("turkish prompt missing theme: %q", tr)
	}
	if en == tr {
		t.Error("prompts must differ by language")
	}
}
