package symbols

import (
	"context"
	"regexp"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"github.com/suimfx/suimfx-official/internal/domain"
)

// Vendor identifies an upstream symbol namespace.
type Vendor string

const (
	VendorInfoway Vendor = "infoway"
	VendorBinance Vendor = "binance"
)

// Item is one entry of a vendor symbol list.
type Item struct {
	Symbol string
	Name   string
}

// Lister fetches the vendor symbol list for one asset class.
type Lister interface {
	ListSymbols(ctx context.Context, class domain.AssetClass) ([]Item, error)
}

// Registry holds the bidirectional canonical<->vendor symbol tables plus
// asset-class categorization. Tables are built as a whole and swapped
// atomically; readers never observe a partially refreshed mapping.
type Registry struct {
	lister Lister
	static map[Vendor]map[string]string // canonical -> vendor, fixed at construction
	tables atomic.Pointer[tables]
}

type tables struct {
	toVendor    map[Vendor]map[string]string
	toCanonical map[Vendor]map[string]string
	classOf     map[string]domain.AssetClass
	byClass     map[domain.AssetClass][]string // canonical symbols per class
	vendorCodes map[domain.AssetClass][]string // infoway spellings per class
	names       map[string]string
}

// NewRegistry builds a registry seeded from the compiled-in fallback lists,
// so lookups work before (or without) a successful Initialize. Additional
// static vendor tables (e.g. the Binance crypto map) survive every refresh.
func NewRegistry(lister Lister, static map[Vendor]map[string]string) *Registry {
	r := &Registry{lister: lister, static: static}
	r.tables.Store(r.build(fallbackItems()))
	return r
}

var registryClasses = []domain.AssetClass{
	domain.AssetForex,
	domain.AssetCrypto,
	domain.AssetStocks,
	domain.AssetMetals,
	domain.AssetEnergy,
}

func fallbackFor(class domain.AssetClass) []string {
	switch class {
	case domain.AssetForex:
		return forexFallback
	case domain.AssetCrypto:
		return cryptoFallback
	case domain.AssetStocks:
		return stocksFallback
	case domain.AssetMetals:
		return metalsFallback
	case domain.AssetEnergy:
		return energyFallback
	}
	return nil
}

func fallbackItems() map[domain.AssetClass][]Item {
	out := make(map[domain.AssetClass][]Item, len(registryClasses))
	for _, class := range registryClasses {
		list := fallbackFor(class)
		items := make([]Item, 0, len(list))
		for _, s := range list {
			items = append(items, Item{Symbol: s})
		}
		out[class] = items
	}
	return out
}

// Initialize fetches the symbol list for every asset class, with an
// independent call per class. A failed or empty class falls back to its
// compiled-in list; it never aborts the other classes. Safe to call again
// to refresh; the new tables replace the old ones in one atomic swap.
func (r *Registry) Initialize(ctx context.Context) error {
	lists := make(map[domain.AssetClass][]Item, len(registryClasses))
	for _, class := range registryClasses {
		var items []Item
		var err error
		if r.lister != nil {
			items, err = r.lister.ListSymbols(ctx, class)
		}
		if err != nil || len(items) == 0 {
			if err != nil {
				log.Warn().Err(err).Str("class", string(class)).Msg("symbol list fetch failed, using fallback")
			}
			for _, s := range fallbackFor(class) {
				items = append(items, Item{Symbol: s})
			}
		}
		lists[class] = items
	}

	t := r.build(lists)
	r.tables.Store(t)

	log.Info().
		Int("forex", len(t.byClass[domain.AssetForex])).
		Int("crypto", len(t.byClass[domain.AssetCrypto])).
		Int("stocks", len(t.byClass[domain.AssetStocks])).
		Int("metals", len(t.byClass[domain.AssetMetals])).
		Int("energy", len(t.byClass[domain.AssetEnergy])).
		Msg("symbol registry loaded")
	return nil
}

func (r *Registry) build(lists map[domain.AssetClass][]Item) *tables {
	t := &tables{
		toVendor:    map[Vendor]map[string]string{VendorInfoway: {}},
		toCanonical: map[Vendor]map[string]string{VendorInfoway: {}},
		classOf:     map[string]domain.AssetClass{},
		byClass:     map[domain.AssetClass][]string{},
		vendorCodes: map[domain.AssetClass][]string{},
		names:       map[string]string{},
	}

	for _, class := range registryClasses {
		for _, item := range lists[class] {
			vendorSym := strings.ToUpper(strings.TrimSpace(item.Symbol))
			if vendorSym == "" {
				continue
			}
			canonical := canonicalize(class, vendorSym)

			t.toVendor[VendorInfoway][canonical] = vendorSym
			t.toCanonical[VendorInfoway][vendorSym] = canonical
			t.vendorCodes[class] = append(t.vendorCodes[class], vendorSym)
			if _, seen := t.classOf[canonical]; !seen {
				t.classOf[canonical] = class
				t.byClass[class] = append(t.byClass[class], canonical)
			}
			if item.Name != "" {
				t.names[canonical] = item.Name
			}
		}
	}

	for vendor, m := range r.static {
		if t.toVendor[vendor] == nil {
			t.toVendor[vendor] = map[string]string{}
			t.toCanonical[vendor] = map[string]string{}
		}
		for canonical, vendorSym := range m {
			t.toVendor[vendor][canonical] = vendorSym
			t.toCanonical[vendor][vendorSym] = canonical
		}
	}

	return t
}

// canonicalize maps a vendor spelling into the platform namespace: crypto
// drops the stablecoin suffix (BTCUSDT -> BTCUSD), stocks drop the exchange
// suffix (AAPL.US -> AAPL), everything else maps 1:1.
func canonicalize(class domain.AssetClass, vendorSym string) string {
	switch class {
	case domain.AssetCrypto:
		if strings.HasSuffix(vendorSym, "USDT") {
			return strings.TrimSuffix(vendorSym, "USDT") + "USD"
		}
	case domain.AssetStocks:
		return strings.TrimSuffix(vendorSym, ".US")
	}
	return vendorSym
}

func (r *Registry) ToVendorSymbol(canonical string, vendor Vendor) (string, bool) {
	m := r.tables.Load().toVendor[vendor]
	s, ok := m[canonical]
	return s, ok
}

func (r *Registry) ToCanonicalSymbol(vendorSym string, vendor Vendor) (string, bool) {
	m := r.tables.Load().toCanonical[vendor]
	s, ok := m[vendorSym]
	return s, ok
}

var cryptoPattern = regexp.MustCompile(`^[A-Z0-9]{2,6}USD$`)

// Categorize returns the best-guess asset class for a canonical symbol.
// It checks the dynamic tables first, then the compiled-in fallbacks, and
// never errors: unmatched symbols are Other.
func (r *Registry) Categorize(canonical string) domain.AssetClass {
	t := r.tables.Load()
	if class, ok := t.classOf[canonical]; ok {
		return class
	}

	// Crypto spellings arrive in the internal USD form; probe the USDT
	// variant against the vendor list before falling through.
	if cryptoPattern.MatchString(canonical) {
		variant := strings.TrimSuffix(canonical, "USD") + "USDT"
		if _, ok := t.toCanonical[VendorInfoway][variant]; ok {
			return domain.AssetCrypto
		}
	}

	for _, class := range registryClasses {
		for _, s := range fallbackFor(class) {
			if canonicalize(class, s) == canonical {
				return class
			}
		}
	}
	return domain.AssetOther
}

// Name returns the display name for a canonical symbol, falling back to the
// built-in name table and finally the symbol itself.
func (r *Registry) Name(canonical string) string {
	if n, ok := r.tables.Load().names[canonical]; ok {
		return n
	}
	if n, ok := builtinNames[canonical]; ok {
		return n
	}
	return canonical
}

// VendorCodes returns the infoway spellings for one asset class, in vendor
// list order.
func (r *Registry) VendorCodes(class domain.AssetClass) []string {
	return r.tables.Load().vendorCodes[class]
}

// CanonicalSymbols returns every canonical symbol across all classes.
func (r *Registry) CanonicalSymbols() []string {
	t := r.tables.Load()
	var out []string
	for _, class := range registryClasses {
		out = append(out, t.byClass[class]...)
	}
	return out
}
