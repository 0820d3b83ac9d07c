package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"skill-swap/internal/config"
	"skill-swap/internal/synonym"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestListenAddr(t *testing.T) {
	cases := map[string]string{"8080": ":8080", ":9000": ":9000", " 80 ": ":80"}
	for in, want := range cases {
		got, err := ListenAddr(in)
		if err != nil || got != want {
			t.Fatalf("ListenAddr(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ListenAddr(" "); err == nil {
		t.Fatalf("expected error for empty port")
	}
}

func TestNewNormalizer_LemmaFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lemmas.json")
	if err := os.WriteFile(path, []byte(`{"cooked": "cook"}`), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	n := NewNormalizer(config.MatchingConfig{LemmaFile: path}, zap.NewNop())
	if diff := cmp.Diff([]string{"cook", "guitar"}, n.Normalize("Cooked, the, Guitar")); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestNewNormalizer_MissingLemmaFile(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	n := NewNormalizer(config.MatchingConfig{LemmaFile: filepath.Join(t.TempDir(), "missing.json")}, zap.New(core))

	if diff := cmp.Diff([]string{"cooked"}, n.Normalize("cooked")); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	if logs.FilterMessage("lemma dictionary unavailable, continuing without lemmas").Len() != 1 {
		t.Fatalf("expected a warning")
	}
}

func TestNewSynonymLookup(t *testing.T) {
	if l := NewSynonymLookup(config.ThesaurusConfig{}, nil, zap.NewNop()); l != nil {
		t.Fatalf("expected no lookup when static and remote are disabled")
	}

	l := NewSynonymLookup(config.ThesaurusConfig{Static: true, Extra: map[string][]string{"guitar": {"lute"}}}, nil, zap.NewNop())
	if _, ok := l.(*synonym.Static); !ok {
		t.Fatalf("expected static lookup, got %T", l)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"word":"axe"}]`))
	}))
	defer srv.Close()

	l = NewSynonymLookup(config.ThesaurusConfig{
		Static:  true,
		Extra:   map[string][]string{"guitar": {"lute"}},
		BaseURL: srv.URL,
		Timeout: time.Second,
	}, nil, zap.NewNop())
	got, err := l.LookupSynonyms(context.Background(), "guitar")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if diff := cmp.Diff([]string{"lute", "axe"}, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}
