package infoway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/suimfx/suimfx-official/internal/domain"
	"github.com/suimfx/suimfx-official/internal/infrastructure/symbols"
)

// RESTClient talks to the Infoway data REST endpoints: the symbol list used
// to build the registry and the latest-quote lookup used for on-demand
// backfill of symbols the sockets do not cover (stocks in particular).
type RESTClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewRESTClient(baseURL, apiKey string) *RESTClient {
	return &RESTClient{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func classType(class domain.AssetClass) string {
	switch class {
	case domain.AssetForex:
		return "FOREX"
	case domain.AssetCrypto:
		return "CRYPTO"
	case domain.AssetStocks:
		return "STOCK_US"
	case domain.AssetMetals:
		return "METAL"
	case domain.AssetEnergy:
		return "ENERGY"
	}
	return ""
}

type symbolListResp struct {
	Ret  int `json:"ret"`
	Data []struct {
		Symbol string `json:"symbol"`
		NameEn string `json:"name_en"`
		Name   string `json:"name"`
	} `json:"data"`
}

// ListSymbols implements symbols.Lister.
func (c *RESTClient) ListSymbols(ctx context.Context, class domain.AssetClass) ([]symbols.Item, error) {
	typ := classType(class)
	if typ == "" {
		return nil, fmt.Errorf("no symbol list type for class %s", class)
	}

	endpoint := fmt.Sprintf("%s/common/basic/symbols?type=%s&apikey=%s", c.baseURL, typ, url.QueryEscape(c.apiKey))
	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var resp symbolListResp
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, err
	}
	if resp.Ret != 200 {
		return nil, fmt.Errorf("symbol list ret=%d for type %s", resp.Ret, typ)
	}

	items := make([]symbols.Item, 0, len(resp.Data))
	for _, d := range resp.Data {
		name := d.NameEn
		if name == "" {
			name = d.Name
		}
		items = append(items, symbols.Item{Symbol: d.Symbol, Name: name})
	}
	return items, nil
}

type batchQuoteResp struct {
	Ret  int `json:"ret"`
	Data []struct {
		Symbol string `json:"s"`
		Bid    any    `json:"bp"`
		Ask    any    `json:"ap"`
		Ts     int64  `json:"t"`
	} `json:"data"`
}

// fetchVendorQuotes performs one batched latest-quote call for the given
// vendor symbols.
func (c *RESTClient) fetchVendorQuotes(ctx context.Context, vendorSymbols []string) (map[string]domain.Quote, error) {
	if len(vendorSymbols) == 0 {
		return map[string]domain.Quote{}, nil
	}

	endpoint := fmt.Sprintf("%s/common/quote/batch?codes=%s&apikey=%s",
		c.baseURL, url.QueryEscape(strings.Join(vendorSymbols, ",")), url.QueryEscape(c.apiKey))
	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var resp batchQuoteResp
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, err
	}
	if resp.Ret != 200 {
		return nil, fmt.Errorf("quote batch ret=%d", resp.Ret)
	}

	out := make(map[string]domain.Quote, len(resp.Data))
	for _, d := range resp.Data {
		bid, ask := asFloat(d.Bid), asFloat(d.Ask)
		if bid <= 0 || ask <= 0 || ask < bid {
			continue
		}
		ts := d.Ts
		if ts <= 0 {
			ts = time.Now().UnixMilli()
		}
		out[d.Symbol] = domain.Quote{
			Bid:    bid,
			Ask:    ask,
			Mid:    (bid + ask) / 2,
			Spread: ask - bid,
			Ts:     ts,
			Source: domain.SourceDepth,
		}
	}
	return out, nil
}

func (c *RESTClient) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("infoway api error: %d %s", resp.StatusCode, string(body))
	}
	return body, nil
}

// QuoteFetcher adapts the REST client to canonical symbols via the registry.
// It is the query facade's best-effort backfill path.
type QuoteFetcher struct {
	client   *RESTClient
	registry *symbols.Registry
}

func NewQuoteFetcher(client *RESTClient, registry *symbols.Registry) *QuoteFetcher {
	return &QuoteFetcher{client: client, registry: registry}
}

func (f *QuoteFetcher) FetchQuote(ctx context.Context, symbol string) (domain.Quote, error) {
	quotes, err := f.FetchQuotes(ctx, []string{symbol})
	if err != nil {
		return domain.Quote{}, err
	}
	q, ok := quotes[symbol]
	if !ok {
		return domain.Quote{}, fmt.Errorf("no quote for %s", symbol)
	}
	return q, nil
}

func (f *QuoteFetcher) FetchQuotes(ctx context.Context, symbolsReq []string) (map[string]domain.Quote, error) {
	vendorToCanonical := make(map[string]string, len(symbolsReq))
	vendorSymbols := make([]string, 0, len(symbolsReq))
	for _, canonical := range symbolsReq {
		vendorSym, ok := f.registry.ToVendorSymbol(canonical, symbols.VendorInfoway)
		if !ok {
			continue // unknown symbols are a miss, not an error
		}
		vendorToCanonical[vendorSym] = canonical
		vendorSymbols = append(vendorSymbols, vendorSym)
	}

	fetched, err := f.client.fetchVendorQuotes(ctx, vendorSymbols)
	if err != nil {
		return nil, err
	}

	out := make(map[string]domain.Quote, len(fetched))
	for vendorSym, q := range fetched {
		canonical, ok := vendorToCanonical[vendorSym]
		if !ok {
			continue
		}
		q.Symbol = canonical
		out[canonical] = q
	}
	return out, nil
}
