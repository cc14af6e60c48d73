// Package worms provides a client for the WoRMS (World Register of Marine
// Species) REST API.
package worms

import "time"

// AphiaRecord is the single structured record the registry returns for a
// taxon identifier.
type AphiaRecord struct {
	AphiaID           int    `json:"AphiaID"`
	URL               string `json:"url"`
	ScientificName    string `json:"scientificname"`
	Authority         string `json:"authority"`
	Status            string `json:"status"`
	Unacceptreason    string `json:"unacceptreason"`
	TaxonRankID       int    `json:"taxonRankID"`
	Rank              string `json:"rank"`
	ValidAphiaID      int    `json:"valid_AphiaID"`
	ValidName         string `json:"valid_name"`
	ValidAuthority    string `json:"valid_authority"`
	ParentNameUsageID int    `json:"parentNameUsageID"`
	Kingdom           string `json:"kingdom"`
	Phylum            string `json:"phylum"`
	Class             string `json:"class"`
	Order             string `json:"order"`
	Family            string `json:"family"`
	Genus             string `json:"genus"`
	Citation          string `json:"citation"`
	Lsid              string `json:"lsid"`
	IsMarine          int    `json:"isMarine"`
	MatchType         string `json:"match_type"`
	Modified          string `json:"modified"`
}

// Config holds configuration for the WoRMS client
type Config struct {
	BaseURL     string        `json:"base_url"`
	Timeout     time.Duration `json:"timeout"`
	CacheTTL    time.Duration `json:"cache_ttl"`
	RateLimitMS int           `json:"rate_limit_ms"` // Milliseconds between requests
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() Config {
	return Config{
		BaseURL:     "https://www.marinespecies.org/rest",
		Timeout:     30 * time.Second,
		CacheTTL:    24 * time.Hour, // Taxonomy rarely changes
		RateLimitMS: 100,
	}
}
