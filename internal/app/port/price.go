package port

import (
	"context"

	"momentum/internal/entity"
)

// PriceClient defines access to the pair price API.
type PriceClient interface {
	// GetPairs fetches and decodes the pairs of (chain, pairAddress).
	GetPairs(ctx context.Context, chain, pairAddress string) (*entity.PairsResponse, error)
	// GetPairsRaw fetches the same resource and returns the undecoded body.
	GetPairsRaw(ctx context.Context, chain, pairAddress string) ([]byte, error)
}
