package cache

import (
	"github.com/dgraph-io/ristretto"
	ristretto_store "github.com/eko/gocache/store/ristretto/v4"
)

var R *ristretto.Cache
var S *ristretto_store.RistrettoStore

func NewStore() error {
	backend, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10_000,
		MaxCost:     64 << 20,
		BufferItems: 64,
	})
	if err != nil {
		return err
	}

	R = backend
	S = ristretto_store.NewRistretto(backend)

	return nil
}

// Flush drops every cached entry. Content mutations call this instead of
// evicting per-key, trading precision for simplicity.
func Flush() {
	if R != nil {
		R.Clear()
	}
}
