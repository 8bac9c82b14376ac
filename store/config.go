package store

import "github.com/jacentio/dynacrud/key"

// MaxChunkSize is the store's per-call item ceiling for batch and
// transactional writes.
const MaxChunkSize = 25

// Config holds configuration for the Store.
type Config struct {
	// TableName is the DynamoDB table every query runs against. Required.
	TableName string

	// HashKeyName is the partition key attribute name.
	// Default: "hash"
	HashKeyName string

	// RangeKeyName is the sort key attribute name.
	// Default: "range"
	RangeKeyName string

	// Separator joins key parts.
	// Default: "."
	Separator string

	// ChunkSize is the number of writes sent per batch or transaction call.
	// Default: 25
	// Max: 25
	ChunkSize int
}

// DefaultConfig returns the default key schema and chunk size. TableName
// still has to be set.
func DefaultConfig() Config {
	return Config{
		HashKeyName:  key.DefaultHashKeyName,
		RangeKeyName: key.DefaultRangeKeyName,
		Separator:    key.DefaultSeparator,
		ChunkSize:    MaxChunkSize,
	}
}

// Schema returns the key schema described by the config.
func (c Config) Schema() key.Schema {
	return key.Schema{
		HashKeyName:  c.HashKeyName,
		RangeKeyName: c.RangeKeyName,
		Separator:    c.Separator,
	}.Normalize()
}

// validate ensures config values are within acceptable bounds.
func (c *Config) validate() {
	s := c.Schema()
	c.HashKeyName = s.HashKeyName
	c.RangeKeyName = s.RangeKeyName
	c.Separator = s.Separator
	if c.ChunkSize < 1 || c.ChunkSize > MaxChunkSize {
		c.ChunkSize = MaxChunkSize
	}
}
