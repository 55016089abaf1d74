package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network
// requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "scholar-atlas/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// CatalogConfig holds settings for the catalog store.
type CatalogConfig struct {
	// CatalogDir is the base directory for the catalog (contains
	// records/, index/).
	CatalogDir string `json:"catalog_dir" yaml:"catalog_dir"`
}

// RelevanceConfig holds settings for the relevance engine and its caller-side
// report cache.
type RelevanceConfig struct {
	// Depth is the search depth hint: basic, medium, or deep. The engine
	// records it in the report without branching on it.
	Depth Depth `json:"depth" yaml:"depth"`

	// CacheSize bounds the report cache; the oldest entry is retired once
	// the cache exceeds this count (default 20).
	CacheSize int `json:"cache_size" yaml:"cache_size"`
}

// RemoteConfig holds settings for the remote relevance service client.
type RemoteConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the remote relevance service root (e.g.
	// "https://relevance.example.com").
	BaseURL string `json:"base_url" yaml:"base_url"`

	// APIKey is an optional bearer token for the service.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
}

// ContribConfig holds settings for the contribution (forge API) client.
type ContribConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the forge API root (e.g. "https://forge.example.com/api/v1").
	BaseURL string `json:"base_url" yaml:"base_url"`

	// Repo is the catalog repository in owner/name form.
	Repo string `json:"repo" yaml:"repo"`

	// BaseBranch is the branch pull requests target (default "main").
	BaseBranch string `json:"base_branch" yaml:"base_branch"`

	// Token authenticates forge API requests.
	Token string `json:"token,omitempty" yaml:"token,omitempty"`
}

// ServerConfig holds settings for the HTTP API server.
type ServerConfig struct {
	// Addr is the listen address (default ":8470").
	Addr string `json:"addr" yaml:"addr"`
}

// AtlasConfig groups all stage configurations.
type AtlasConfig struct {
	Catalog   CatalogConfig   `json:"catalog" yaml:"catalog"`
	Relevance RelevanceConfig `json:"relevance" yaml:"relevance"`
	Remote    RemoteConfig    `json:"remote" yaml:"remote"`
	Contrib   ContribConfig   `json:"contrib" yaml:"contrib"`
	Server    ServerConfig    `json:"server" yaml:"server"`
}
