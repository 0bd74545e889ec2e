package symbols

import (
	"context"
	"errors"
	"testing"

	"github.com/suimfx/suimfx-official/internal/domain"
)

type stubLister struct {
	lists map[domain.AssetClass][]Item
	errs  map[domain.AssetClass]error
	calls int
}

func (s *stubLister) ListSymbols(_ context.Context, class domain.AssetClass) ([]Item, error) {
	s.calls++
	if err := s.errs[class]; err != nil {
		return nil, err
	}
	return s.lists[class], nil
}

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		class  domain.AssetClass
		vendor string
		want   string
	}{
		{domain.AssetCrypto, "BTCUSDT", "BTCUSD"},
		{domain.AssetCrypto, "1INCHUSDT", "1INCHUSD"},
		{domain.AssetCrypto, "BTCEUR", "BTCEUR"}, // no stablecoin suffix, 1:1
		{domain.AssetStocks, "AAPL.US", "AAPL"},
		{domain.AssetStocks, "BRK-B.US", "BRK-B"},
		{domain.AssetForex, "EURUSD", "EURUSD"},
		{domain.AssetMetals, "XAUUSD", "XAUUSD"},
	}
	for _, tt := range tests {
		if got := canonicalize(tt.class, tt.vendor); got != tt.want {
			t.Errorf("canonicalize(%s, %s) = %s, want %s", tt.class, tt.vendor, got, tt.want)
		}
	}
}

func TestRoundTripAfterInitialize(t *testing.T) {
	lister := &stubLister{lists: map[domain.AssetClass][]Item{
		domain.AssetForex:  {{Symbol: "EURUSD"}, {Symbol: "GBPUSD"}},
		domain.AssetCrypto: {{Symbol: "BTCUSDT"}, {Symbol: "ETHUSDT"}},
		domain.AssetStocks: {{Symbol: "AAPL.US"}},
		domain.AssetMetals: {{Symbol: "XAUUSD"}},
		domain.AssetEnergy: {{Symbol: "USOIL"}},
	}}
	r := NewRegistry(lister, nil)
	if err := r.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	for _, canonical := range r.CanonicalSymbols() {
		vendorSym, ok := r.ToVendorSymbol(canonical, VendorInfoway)
		if !ok {
			t.Fatalf("no vendor symbol for %s", canonical)
		}
		back, ok := r.ToCanonicalSymbol(vendorSym, VendorInfoway)
		if !ok || back != canonical {
			t.Errorf("round trip %s -> %s -> %s", canonical, vendorSym, back)
		}
	}

	if got, _ := r.ToVendorSymbol("BTCUSD", VendorInfoway); got != "BTCUSDT" {
		t.Errorf("BTCUSD vendor symbol = %q, want BTCUSDT", got)
	}
	if got, _ := r.ToCanonicalSymbol("AAPL.US", VendorInfoway); got != "AAPL" {
		t.Errorf("AAPL.US canonical = %q, want AAPL", got)
	}
}

func TestInitializeFallsBackPerClass(t *testing.T) {
	lister := &stubLister{
		lists: map[domain.AssetClass][]Item{
			domain.AssetForex: {{Symbol: "EURUSD"}},
		},
		errs: map[domain.AssetClass]error{
			domain.AssetCrypto: errors.New("http 500"),
		},
	}
	r := NewRegistry(lister, nil)
	if err := r.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize must not fail on a single class error: %v", err)
	}

	// Crypto degraded to the compiled-in list.
	if _, ok := r.ToVendorSymbol("BTCUSD", VendorInfoway); !ok {
		t.Error("crypto fallback list not applied")
	}
	// Forex came from the (short) dynamic list.
	if codes := r.VendorCodes(domain.AssetForex); len(codes) != 1 || codes[0] != "EURUSD" {
		t.Errorf("forex codes = %v", codes)
	}
}

func TestInitializeIdempotent(t *testing.T) {
	lister := &stubLister{lists: map[domain.AssetClass][]Item{
		domain.AssetForex:  {{Symbol: "EURUSD"}},
		domain.AssetCrypto: {{Symbol: "BTCUSDT"}},
	}}
	r := NewRegistry(lister, nil)
	if err := r.Initialize(context.Background()); err != nil {
		t.Fatal(err)
	}

	before := map[string]string{}
	for _, c := range r.CanonicalSymbols() {
		v, _ := r.ToVendorSymbol(c, VendorInfoway)
		before[c] = v
	}

	if err := r.Initialize(context.Background()); err != nil {
		t.Fatal(err)
	}
	for c, v := range before {
		got, ok := r.ToVendorSymbol(c, VendorInfoway)
		if !ok || got != v {
			t.Errorf("symbol %s resolved differently after refresh: %q vs %q", c, got, v)
		}
	}
}

func TestCategorize(t *testing.T) {
	r := NewRegistry(nil, nil) // fallback tables only

	tests := []struct {
		symbol string
		want   domain.AssetClass
	}{
		{"EURUSD", domain.AssetForex},
		{"XAUUSD", domain.AssetMetals},
		{"USOIL", domain.AssetEnergy},
		{"BTCUSD", domain.AssetCrypto},
		{"AAPL", domain.AssetStocks},
		{"NOPE123", domain.AssetOther},
		{"", domain.AssetOther},
	}
	for _, tt := range tests {
		if got := r.Categorize(tt.symbol); got != tt.want {
			t.Errorf("Categorize(%q) = %s, want %s", tt.symbol, got, tt.want)
		}
	}
}

func TestStaticVendorTableSurvivesRefresh(t *testing.T) {
	static := map[Vendor]map[string]string{
		VendorBinance: {"BTCUSD": "BTCUSDT", "ETHUSD": "ETHUSDT"},
	}
	lister := &stubLister{lists: map[domain.AssetClass][]Item{
		domain.AssetForex: {{Symbol: "EURUSD"}},
	}}
	r := NewRegistry(lister, static)

	for i := 0; i < 2; i++ {
		if err := r.Initialize(context.Background()); err != nil {
			t.Fatal(err)
		}
		if v, ok := r.ToVendorSymbol("BTCUSD", VendorBinance); !ok || v != "BTCUSDT" {
			t.Fatalf("refresh %d lost binance static table: %q %v", i, v, ok)
		}
		if c, ok := r.ToCanonicalSymbol("ETHUSDT", VendorBinance); !ok || c != "ETHUSD" {
			t.Fatalf("refresh %d lost binance reverse table: %q %v", i, c, ok)
		}
	}
}

func TestNameFallsBackToBuiltinTable(t *testing.T) {
	lister := &stubLister{lists: map[domain.AssetClass][]Item{
		domain.AssetForex: {{Symbol: "EURUSD", Name: "Euro vs US Dollar"}},
	}}
	r := NewRegistry(lister, nil)
	if err := r.Initialize(context.Background()); err != nil {
		t.Fatal(err)
	}

	if got := r.Name("EURUSD"); got != "Euro vs US Dollar" {
		t.Errorf("Name(EURUSD) = %q", got)
	}
	if got := r.Name("XAUUSD"); got != "Gold" {
		t.Errorf("Name(XAUUSD) = %q, want builtin Gold", got)
	}
	if got := r.Name("ZZZTEST"); got != "ZZZTEST" {
		t.Errorf("Name(ZZZTEST) = %q, want symbol itself", got)
	}
}

func TestVendorCodesKeepVendorSpelling(t *testing.T) {
	r := NewRegistry(&stubLister{}, nil)
	if err := r.Initialize(context.Background()); err != nil {
		t.Fatal(err)
	}

	for _, code := range r.VendorCodes(domain.AssetCrypto) {
		if len(code) < 4 || code[len(code)-4:] != "USDT" {
			// The fallback crypto list is all USDT-quoted.
			t.Errorf("crypto vendor code %q lost vendor spelling", code)
		}
	}
}
