// Package rates provides currency exchange rates published by the Magyar
// Nemzeti Bank. Every rate is quoted in forints, so conversions between two
// foreign currencies pivot through HUF.
package rates

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/apd/v3"

	"unitcalc/app/config"
	"unitcalc/app/lang"
)

const (
	baseCurrency = "HUF"
	cacheFile    = "rates.xml"
	dateLayout   = "2006-01-02"
)

const requestBody = `<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/" xmlns:web="http://www.mnb.hu/webservices/"><soapenv:Header/><soapenv:Body><web:GetCurrentExchangeRates/></soapenv:Body></soapenv:Envelope>`

// envelope is the SOAP response; the result is itself an XML document
// carried as text.
type envelope struct {
	Result string `xml:"Body>GetCurrentExchangeRatesResponse>GetCurrentExchangeRatesResult"`
}

type currentRates struct {
	XMLName xml.Name `xml:"MNBCurrentExchangeRates"`
	Day     struct {
		Date  string `xml:"date,attr"`
		Rates []struct {
			Curr  string `xml:"curr,attr"`
			Unit  int64  `xml:"unit,attr"`
			Value string `xml:",chardata"`
		} `xml:"Rate"`
	} `xml:"Day"`
}

// Table maps upper-case currency codes to their price in HUF.
type Table struct {
	Date  time.Time
	Rates map[string]lang.Rational
}

// Provider implements lang.RateProvider. Rates are loaded on first use and
// kept for the lifetime of the provider; a failed load is not retried.
type Provider struct {
	cfg    config.Rates
	client *http.Client
	now    func() time.Time

	mu      sync.Mutex
	loading chan struct{} // closed when the load finishes
	loaded  bool
	table   *Table
	err     error
}

func New(cfg config.Rates) *Provider {
	return &Provider{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		now:    time.Now,
	}
}

// Load fetches or reads the rate table once. Concurrent callers wait for the
// load in progress; later calls return the first outcome.
func (p *Provider) Load(ctx context.Context) error {
	p.mu.Lock()
	if p.loaded {
		defer p.mu.Unlock()
		return p.err
	}
	if done := p.loading; done != nil {
		p.mu.Unlock()
		select {
		case <-done:
		case <-ctx.Done():
			return ctx.Err()
		}
		p.mu.Lock()
		defer p.mu.Unlock()
		return p.err
	}
	done := make(chan struct{})
	p.loading = done
	p.mu.Unlock()

	table, err := p.load(ctx)

	p.mu.Lock()
	p.table, p.err, p.loaded = table, err, true
	p.mu.Unlock()
	close(done)
	return err
}

// Rate returns how many units of to one unit of from buys. It loads the
// table when nobody has yet; while another load is in flight it fails
// immediately instead of waiting for the network.
func (p *Provider) Rate(from, to string) (lang.Rational, error) {
	p.mu.Lock()
	inFlight := p.loading != nil && !p.loaded
	p.mu.Unlock()
	if inFlight {
		return lang.Rational{}, conversionError("exchange rates loading")
	}
	if err := p.Load(context.Background()); err != nil {
		return lang.Rational{}, conversionError("exchange rates unavailable: " + err.Error())
	}
	return p.table.Rate(from, to)
}

func (p *Provider) load(ctx context.Context) (*Table, error) {
	today := p.now().UTC()
	cached, cacheErr := p.readCache()
	if cacheErr == nil {
		t, err := parseRates(cached)
		if err == nil && (p.cfg.Offline || fresh(t.Date, today)) {
			return t, nil
		}
		if err != nil {
			log.Printf("rates: ignoring cache: %v", err)
		}
	}
	if p.cfg.Offline {
		if cacheErr != nil {
			return nil, fmt.Errorf("offline and no cached rates: %w", cacheErr)
		}
		return nil, errors.New("offline and the cached rates are unreadable")
	}

	doc, err := p.fetch(ctx)
	if err != nil {
		return nil, err
	}
	t, err := parseRates(doc)
	if err != nil {
		return nil, err
	}
	if err := p.writeCache(doc); err != nil {
		log.Printf("rates: %v", err)
	}
	return t, nil
}

// fresh reports whether rates published on day are current: banks publish
// on working days, so yesterday's table is accepted too.
func fresh(day, today time.Time) bool {
	y, m, d := today.Date()
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return day.Equal(t) || day.Equal(t.AddDate(0, 0, -1))
}

func (p *Provider) fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.Endpoint, strings.NewReader(requestBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "text/xml;charset=UTF-8")
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch rates: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch rates: %s", resp.Status)
	}
	var env envelope
	if err := xml.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("fetch rates: decode envelope: %w", err)
	}
	if env.Result == "" {
		return nil, errors.New("fetch rates: empty result")
	}
	return []byte(env.Result), nil
}

func (p *Provider) cachePath() string {
	if p.cfg.CacheDir == "" {
		return ""
	}
	return filepath.Join(p.cfg.CacheDir, cacheFile)
}

func (p *Provider) readCache() ([]byte, error) {
	path := p.cachePath()
	if path == "" {
		return nil, errors.New("no cache directory")
	}
	return os.ReadFile(path)
}

func (p *Provider) writeCache(doc []byte) error {
	path := p.cachePath()
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(p.cfg.CacheDir, 0o755); err != nil {
		return fmt.Errorf("write cache: %w", err)
	}
	if err := os.WriteFile(path, doc, 0o644); err != nil {
		return fmt.Errorf("write cache: %w", err)
	}
	return nil
}

// parseRates decodes an MNBCurrentExchangeRates document.
func parseRates(doc []byte) (*Table, error) {
	var cr currentRates
	if err := xml.NewDecoder(bytes.NewReader(doc)).Decode(&cr); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse rates: %w", err)
	}
	day, err := time.Parse(dateLayout, cr.Day.Date)
	if err != nil {
		return nil, fmt.Errorf("parse rates: day: %w", err)
	}
	t := &Table{Date: day, Rates: make(map[string]lang.Rational, len(cr.Day.Rates))}
	for _, r := range cr.Day.Rates {
		unit := r.Unit
		if unit == 0 {
			unit = 1
		}
		v, err := parseRate(r.Value, unit)
		if err != nil {
			return nil, fmt.Errorf("parse rates: %s: %w", r.Curr, err)
		}
		t.Rates[strings.ToUpper(r.Curr)] = v
	}
	return t, nil
}

// parseRate reads a decimal quote such as "386,45" exactly and divides it by
// the number of units the quote is for.
func parseRate(s string, unit int64) (lang.Rational, error) {
	d, _, err := apd.NewFromString(strings.Replace(strings.TrimSpace(s), ",", ".", 1))
	if err != nil {
		return lang.Rational{}, err
	}
	if d.Form != apd.Finite || d.Negative || d.IsZero() {
		return lang.Rational{}, fmt.Errorf("invalid rate %q", s)
	}
	var red apd.Decimal
	red.Reduce(d)
	if !red.Coeff.IsInt64() {
		return lang.Rational{}, fmt.Errorf("rate %q out of range", s)
	}
	num, den := red.Coeff.Int64(), uint64(1)
	for e := red.Exponent; e < 0; e++ {
		if den > 1e18 {
			return lang.Rational{}, fmt.Errorf("rate %q out of range", s)
		}
		den *= 10
	}
	for e := red.Exponent; e > 0; e-- {
		if num > 1e17 {
			return lang.Rational{}, fmt.Errorf("rate %q out of range", s)
		}
		num *= 10
	}
	r, err := lang.NewRational(num, den)
	if err != nil {
		return lang.Rational{}, err
	}
	if unit == 1 {
		return r, nil
	}
	r, ok := r.Quo(lang.RatInt(unit))
	if !ok {
		return lang.Rational{}, fmt.Errorf("rate %q per %d out of range", s, unit)
	}
	return r, nil
}

// Rate converts through the forint: HUF to X is 1/rate(X), X to HUF is
// rate(X), and X to Y is rate(X)/rate(Y). Codes are case-insensitive.
func (t *Table) Rate(from, to string) (lang.Rational, error) {
	from, to = strings.ToUpper(from), strings.ToUpper(to)
	if from == to {
		return lang.RatInt(1), nil
	}
	src := lang.RatInt(1)
	if from != baseCurrency {
		r, ok := t.Rates[from]
		if !ok {
			return lang.Rational{}, conversionError("no rate for " + from)
		}
		src = r
	}
	if to == baseCurrency {
		return src, nil
	}
	dst, ok := t.Rates[to]
	if !ok {
		return lang.Rational{}, conversionError("no rate for " + to)
	}
	r, ok := src.Quo(dst)
	if !ok {
		return lang.Rational{}, conversionError(from + "/" + to + " out of range")
	}
	return r, nil
}

func conversionError(msg string) error {
	return &lang.EvalError{Kind: lang.ConversionError, Msg: msg}
}
