package elasticsearch

import "github.com/olivere/elastic/v7"

// NewStoreForTest creates a Store with an injected client (for unit tests).
func NewStoreForTest(c *elastic.Client) *Store {
	return &Store{client: c}
}
