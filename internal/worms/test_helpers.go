package worms

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// eelgrassRecordJSON is the registry response for Zostera marina, trimmed to
// the fields the client consumes.
const eelgrassRecordJSON = `{
	"AphiaID": 145795,
	"url": "https://www.marinespecies.org/aphia.php?p=taxdetails&id=145795",
	"scientificname": "Zostera marina",
	"authority": "Linnaeus, 1753",
	"status": "accepted",
	"unacceptreason": null,
	"taxonRankID": 220,
	"rank": "Species",
	"valid_AphiaID": 145795,
	"valid_name": "Zostera marina",
	"valid_authority": "Linnaeus, 1753",
	"parentNameUsageID": 145794,
	"kingdom": "Plantae",
	"phylum": "Tracheophyta",
	"class": "Magnoliopsida",
	"order": "Alismatales",
	"family": "Zosteraceae",
	"genus": "Zostera",
	"citation": "WoRMS (2024). Zostera marina Linnaeus, 1753.",
	"lsid": "urn:lsid:marinespecies.org:taxname:145795",
	"isMarine": 1,
	"match_type": "exact",
	"modified": "2010-03-12T08:27:00.497Z"
}`

// newTestClient creates a client pointed at the given base URL with fast
// rate limiting.
func newTestClient(tb testing.TB, baseURL string) *Client {
	tb.Helper()

	client, err := NewClient(Config{
		BaseURL:     baseURL,
		Timeout:     5 * time.Second,
		CacheTTL:    1 * time.Hour,
		RateLimitMS: 1,
	})
	require.NoError(tb, err)

	if tt, ok := tb.(*testing.T); ok {
		tt.Cleanup(func() {
			client.Close()
		})
	}

	return client
}
