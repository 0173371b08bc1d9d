package service

import (
	"fmt"
	"strings"

	domain "momentum/internal/domain/entity"
)

// pairURLSegments is the segment count of "scheme://host/chain/pairAddress" split on "/".
const pairURLSegments = 5

// SplitMessageLines splits chat text into candidate lines, dropping blank ones.
func SplitMessageLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// ParsePairReference reads chain and pair address from a pair URL such as
// https://dexscreener.com/arbitrum/0x90ff2b6b6a2eb3c68d883bc276f6736b1262fa50.
func ParsePairReference(line string) (domain.PairReference, error) {
	parts := strings.Split(line, "/")
	if len(parts) != pairURLSegments {
		return domain.PairReference{}, fmt.Errorf("%w: %q has %d segments, want %d", domain.ErrInvalidFormat, line, len(parts), pairURLSegments)
	}
	ref := domain.PairReference{Chain: parts[3], PairAddress: parts[4]}
	if ref.Chain == "" || ref.PairAddress == "" {
		return domain.PairReference{}, fmt.Errorf("%w: %q has an empty chain or address", domain.ErrInvalidFormat, line)
	}
	return ref, nil
}
