package driver

import (
	"context"
	"testing"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/google/go-cmp/cmp"

	"browse-rec/internal/pipeline"
)

func TestFlattenHeaders(t *testing.T) {
	t.Parallel()

	got := flattenHeaders(network.Headers{
		"Content-Type":   "text/html",
		"Content-Length": 123,
		"Link":           "<https://cdn.example.com/x>",
	})
	want := map[string]string{
		"Content-Type":   "text/html",
		"Content-Length": "123",
		"Link":           "<https://cdn.example.com/x>",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected headers (-want +got):\n%s", diff)
	}

	if flattenHeaders(nil) != nil {
		t.Fatal("expected nil for empty headers")
	}
}

// Sin un executor de chromedp en el contexto, la descarga del cuerpo debe
// fallar de forma controlada y memoizar el resultado.
func TestBodyFetcherWithoutExecutor(t *testing.T) {
	t.Parallel()

	fetch := bodyFetcher(context.Background(), network.RequestID("req-1"))

	body, err := fetch()
	if err == nil {
		t.Fatal("expected error without a chromedp executor")
	}
	if body != "" {
		t.Fatalf("expected empty body, got %q", body)
	}

	bodyAgain, errAgain := fetch()
	if bodyAgain != body || errAgain != err {
		t.Fatal("expected memoized result on second call")
	}
}

// La entrega de eventos capturados no depende del resultado de la
// navegación: una página que nunca terminó de cargar aún entrega las
// respuestas que sí ocurrieron, y un cuerpo inaccesible degrada al error
// del accesor perezoso.
func TestDeliverCaptured(t *testing.T) {
	t.Parallel()

	events := []capturedResponse{
		{
			url:       "https://app.example.com/page",
			headers:   map[string]string{"Server": "nginx"},
			requestID: network.RequestID("r1"),
		},
		{
			url:       "https://cdn.example.com/a.js",
			requestID: network.RequestID("r2"),
		},
	}

	var urls []string
	deliverCaptured(context.Background(), events, func(ev pipeline.ResponseEvent) {
		urls = append(urls, ev.URL)
		if ev.URL == "https://app.example.com/page" {
			if diff := cmp.Diff(map[string]string{"Server": "nginx"}, ev.Headers); diff != "" {
				t.Fatalf("unexpected headers (-want +got):\n%s", diff)
			}
		}
		if _, err := ev.Body(); err == nil {
			t.Fatal("expected body error without a chromedp executor")
		}
	})

	want := []string{"https://app.example.com/page", "https://cdn.example.com/a.js"}
	if diff := cmp.Diff(want, urls); diff != "" {
		t.Fatalf("unexpected delivery order (-want +got):\n%s", diff)
	}
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if !cfg.NoSandbox {
		t.Fatal("expected NoSandbox by default")
	}
	if cfg.SettleWait != 2*time.Second {
		t.Fatalf("expected 2s settle wait, got %v", cfg.SettleWait)
	}
}
