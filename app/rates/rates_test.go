package rates

import (
	"context"
	"errors"
	"html"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"unitcalc/app/config"
	"unitcalc/app/lang"
)

const sampleRates = `<MNBCurrentExchangeRates><Day date="2026-10-16"><Rate unit="1" curr="EUR">400,00</Rate><Rate unit="1" curr="USD">362,50</Rate><Rate unit="100" curr="JPY">250,00</Rate></Day></MNBCurrentExchangeRates>`

func soap(inner string) string {
	return `<?xml version="1.0" encoding="utf-8"?><s:Envelope xmlns:s="http://schemas.xmlsoap.org/soap/envelope/"><s:Body><GetCurrentExchangeRatesResponse xmlns="http://www.mnb.hu/webservices/"><GetCurrentExchangeRatesResult>` +
		html.EscapeString(inner) +
		`</GetCurrentExchangeRatesResult></GetCurrentExchangeRatesResponse></s:Body></s:Envelope>`
}

func rat(num int64, den uint64) lang.Rational {
	r, err := lang.NewRational(num, den)
	if err != nil {
		panic(err)
	}
	return r
}

// mnbServer serves sampleRates and counts requests.
func mnbServer(t *testing.T, hits *int32) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		body, _ := io.ReadAll(r.Body)
		if r.Method != http.MethodPost || !strings.Contains(string(body), "GetCurrentExchangeRates") {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "text/xml; charset=utf-8")
		io.WriteString(w, soap(sampleRates))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newProvider(endpoint, cacheDir string, offline bool, today string) *Provider {
	p := New(config.Rates{Endpoint: endpoint, Timeout: 5 * time.Second, CacheDir: cacheDir, Offline: offline})
	now, err := time.Parse(dateLayout, today)
	if err != nil {
		panic(err)
	}
	p.now = func() time.Time { return now.Add(12 * time.Hour) }
	return p
}

func TestParseRate(t *testing.T) {
	tests := []struct {
		in   string
		unit int64
		want lang.Rational
	}{
		{"386,45", 1, rat(38645, 100)},
		{"400,00", 1, lang.RatInt(400)},
		{"250,00", 100, rat(5, 2)},
		{"2,7531", 1, rat(27531, 10000)},
		{" 12 ", 1, lang.RatInt(12)},
		{"1500", 1, lang.RatInt(1500)},
	}
	for _, tt := range tests {
		got, err := parseRate(tt.in, tt.unit)
		if err != nil {
			t.Errorf("parseRate(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseRate(%q, %d) = %v, want %v", tt.in, tt.unit, got, tt.want)
		}
	}

	for _, bad := range []string{"", "abc", "-1,5", "0,00", "NaN"} {
		if _, err := parseRate(bad, 1); err == nil {
			t.Errorf("parseRate(%q) should fail", bad)
		}
	}
}

func TestTableRate(t *testing.T) {
	table, err := parseRates([]byte(sampleRates))
	if err != nil {
		t.Fatal(err)
	}
	if got := table.Date.Format(dateLayout); got != "2026-10-16" {
		t.Errorf("date = %s", got)
	}

	tests := []struct {
		from, to string
		want     lang.Rational
	}{
		{"eur", "huf", lang.RatInt(400)},
		{"huf", "eur", rat(1, 400)},
		{"eur", "usd", rat(160, 145)},
		{"USD", "Eur", rat(145, 160)},
		{"jpy", "huf", rat(5, 2)},
		{"eur", "eur", lang.RatInt(1)},
		{"huf", "huf", lang.RatInt(1)},
	}
	for _, tt := range tests {
		got, err := table.Rate(tt.from, tt.to)
		if err != nil {
			t.Errorf("Rate(%s, %s) error: %v", tt.from, tt.to, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Rate(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}

	for _, pair := range [][2]string{{"gbp", "huf"}, {"huf", "gbp"}, {"eur", "gbp"}} {
		if _, err := table.Rate(pair[0], pair[1]); !errors.Is(err, lang.ErrConversion) {
			t.Errorf("Rate(%s, %s) error = %v, want conversion error", pair[0], pair[1], err)
		}
	}
}

func TestProviderFetchAndCache(t *testing.T) {
	var hits int32
	srv := mnbServer(t, &hits)
	dir := t.TempDir()

	p := newProvider(srv.URL, dir, false, "2026-10-17")
	got, err := p.Rate("eur", "huf")
	if err != nil {
		t.Fatal(err)
	}
	if got != lang.RatInt(400) {
		t.Errorf("eur/huf = %v", got)
	}
	if _, err := p.Rate("usd", "huf"); err != nil {
		t.Fatal(err)
	}
	if n := atomic.LoadInt32(&hits); n != 1 {
		t.Errorf("fetched %d times, want 1", n)
	}

	cached, err := os.ReadFile(filepath.Join(dir, cacheFile))
	if err != nil {
		t.Fatalf("cache not written: %v", err)
	}
	if string(cached) != sampleRates {
		t.Errorf("cache = %q", cached)
	}

	// A fresh provider on the next day reads the cache instead of fetching.
	p = newProvider(srv.URL, dir, false, "2026-10-17")
	if _, err := p.Rate("huf", "usd"); err != nil {
		t.Fatal(err)
	}
	if n := atomic.LoadInt32(&hits); n != 1 {
		t.Errorf("fetched %d times, want cache hit", n)
	}

	// Two days later the cache is stale.
	p = newProvider(srv.URL, dir, false, "2026-10-18")
	if _, err := p.Rate("huf", "usd"); err != nil {
		t.Fatal(err)
	}
	if n := atomic.LoadInt32(&hits); n != 2 {
		t.Errorf("fetched %d times, want refetch", n)
	}
}

func TestProviderOffline(t *testing.T) {
	dir := t.TempDir()
	p := newProvider("http://127.0.0.1:0", dir, true, "2026-10-17")
	if _, err := p.Rate("eur", "huf"); !errors.Is(err, lang.ErrConversion) {
		t.Errorf("offline without cache: error = %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, cacheFile), []byte(sampleRates), 0o644); err != nil {
		t.Fatal(err)
	}
	// Offline mode accepts a stale table.
	p = newProvider("http://127.0.0.1:0", dir, true, "2026-12-01")
	got, err := p.Rate("eur", "huf")
	if err != nil {
		t.Fatal(err)
	}
	if got != lang.RatInt(400) {
		t.Errorf("eur/huf = %v", got)
	}
}

func TestProviderFailureRemembered(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	p := newProvider(srv.URL, t.TempDir(), false, "2026-10-17")
	for i := 0; i < 3; i++ {
		if _, err := p.Rate("eur", "huf"); !errors.Is(err, lang.ErrConversion) {
			t.Errorf("error = %v, want conversion error", err)
		}
	}
	if n := atomic.LoadInt32(&hits); n != 1 {
		t.Errorf("fetched %d times, want 1", n)
	}
}

func TestProviderWithEvaluator(t *testing.T) {
	var hits int32
	srv := mnbServer(t, &hits)
	ev := lang.NewEvaluator(newProvider(srv.URL, t.TempDir(), false, "2026-10-16"))

	tests := []struct {
		input string
		want  string
	}{
		{"10 eur to huf", "4khuf"},
		{"800 huf to eur", "2eur"},
		{"200 jpy to huf", "500huf"},
		{"1 eur + 400 huf", "2eur"},
	}
	for _, tt := range tests {
		val, err := ev.EvalLine(tt.input)
		if err != nil {
			t.Errorf("EvalLine(%q) error: %v", tt.input, err)
			continue
		}
		if got := val.String(); got != tt.want {
			t.Errorf("EvalLine(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestProviderRateWhileLoading(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-release
		io.WriteString(w, soap(sampleRates))
	}))
	defer srv.Close()

	p := newProvider(srv.URL, t.TempDir(), false, "2026-10-17")
	loadErr := make(chan error, 1)
	go func() { loadErr <- p.Load(context.Background()) }()
	<-started

	// The fetch is blocked in the handler; lookups must not wait for it.
	_, err := p.Rate("eur", "huf")
	if !errors.Is(err, lang.ErrConversion) || !strings.Contains(err.Error(), "loading") {
		t.Errorf("Rate during load: error = %v, want loading conversion error", err)
	}

	close(release)
	if err := <-loadErr; err != nil {
		t.Fatalf("Load: %v", err)
	}
	got, err := p.Rate("eur", "huf")
	if err != nil {
		t.Fatal(err)
	}
	if got != lang.RatInt(400) {
		t.Errorf("eur/huf = %v", got)
	}
}

func TestProviderLoadWaiters(t *testing.T) {
	var hits int32
	srv := mnbServer(t, &hits)
	p := newProvider(srv.URL, t.TempDir(), false, "2026-10-17")

	errs := make(chan error, 4)
	for i := 0; i < cap(errs); i++ {
		go func() { errs <- p.Load(context.Background()) }()
	}
	for i := 0; i < cap(errs); i++ {
		if err := <-errs; err != nil {
			t.Errorf("Load: %v", err)
		}
	}
	if n := atomic.LoadInt32(&hits); n != 1 {
		t.Errorf("fetched %d times, want 1", n)
	}
}
