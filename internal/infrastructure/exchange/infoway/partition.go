package infoway

import (
	"github.com/suimfx/suimfx-official/internal/domain"
	"github.com/suimfx/suimfx-official/internal/infrastructure/symbols"
)

// Partition is the set of vendor symbols assigned to one websocket
// connection, bounded by the vendor's per-connection subscription limit.
type Partition struct {
	Business string
	Codes    []string
}

// BuildPartitions splits the registry's vendor symbols across the plan's
// two connections: common carries forex + metals + energy, crypto carries
// crypto. Stocks stay on the REST backfill path. Each partition is capped
// at maxPerConn symbols.
func BuildPartitions(reg *symbols.Registry, maxPerConn int) []Partition {
	var common []string
	common = append(common, reg.VendorCodes(domain.AssetForex)...)
	common = append(common, reg.VendorCodes(domain.AssetMetals)...)
	common = append(common, reg.VendorCodes(domain.AssetEnergy)...)

	return []Partition{
		{Business: BusinessCommon, Codes: capCodes(common, maxPerConn)},
		{Business: BusinessCrypto, Codes: capCodes(reg.VendorCodes(domain.AssetCrypto), maxPerConn)},
	}
}

func capCodes(codes []string, max int) []string {
	if max > 0 && len(codes) > max {
		return codes[:max]
	}
	return codes
}
