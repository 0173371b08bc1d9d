package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"momentum/internal/app/port"
	domain "momentum/internal/domain/entity"
	"momentum/internal/pkg/metrics"
)

// pairRegistrationServiceImpl implements port.PairRegistrationService for one collection.
type pairRegistrationServiceImpl struct {
	collection string
	prices     port.PriceClient
	store      port.DocumentStore
	logger     port.Logger
	now        func() time.Time
}

// NewPairRegistrationService creates a service writing resolved pairs to collection.
func NewPairRegistrationService(
	collection string,
	prices port.PriceClient,
	store port.DocumentStore,
	l port.Logger,
	now func() time.Time,
) port.PairRegistrationService {
	if now == nil {
		now = time.Now
	}
	return &pairRegistrationServiceImpl{
		collection: collection,
		prices:     prices,
		store:      store,
		logger:     l,
		now:        now,
	}
}

func (s *pairRegistrationServiceImpl) Collection() string {
	return s.collection
}

// Register handles the lines of text in order. Each line is parsed, resolved and
// written before the next is looked at; the first failure stops the batch and
// documents written for earlier lines are kept.
func (s *pairRegistrationServiceImpl) Register(ctx context.Context, text string) ([]domain.ResolvedPair, error) {
	lines := SplitMessageLines(text)
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: empty message", domain.ErrInvalidFormat)
	}

	resolved := make([]domain.ResolvedPair, 0, len(lines))
	for _, line := range lines {
		ref, err := ParsePairReference(line)
		if err != nil {
			return resolved, err
		}

		pair, err := s.resolve(ctx, ref)
		if err != nil {
			return resolved, err
		}

		key := pair.DocumentKey()
		if err := s.store.Set(ctx, s.collection, key, pair); err != nil {
			s.logger.Error("Failed to store resolved pair", "collection", s.collection, "key", key, "pairAddress", pair.PairAddress, "error", err)
			return resolved, fmt.Errorf("failed to store pair %s: %w", pair.PairAddress, err)
		}
		metrics.PairsResolved.WithLabelValues(s.collection).Inc()
		s.logger.Info("Pair stored", "collection", s.collection, "key", key, "chain", pair.Chain, "pairAddress", pair.PairAddress, "name", pair.Name)
		resolved = append(resolved, pair)
	}
	return resolved, nil
}

// resolve looks the pair up on the price API and stamps it with the resolution time.
func (s *pairRegistrationServiceImpl) resolve(ctx context.Context, ref domain.PairReference) (domain.ResolvedPair, error) {
	resp, err := s.prices.GetPairs(ctx, ref.Chain, ref.PairAddress)
	if err != nil {
		return domain.ResolvedPair{}, fmt.Errorf("%w %s/%s: %v", domain.ErrResolution, ref.Chain, ref.PairAddress, err)
	}
	if resp == nil || len(resp.Pairs) == 0 {
		return domain.ResolvedPair{}, fmt.Errorf("%w %s/%s: no pairs returned", domain.ErrResolution, ref.Chain, ref.PairAddress)
	}
	name := resp.Pairs[0].BaseToken.Name
	if strings.TrimSpace(name) == "" {
		return domain.ResolvedPair{}, fmt.Errorf("%w %s/%s: %w", domain.ErrResolution, ref.Chain, ref.PairAddress, domain.ErrMissingName)
	}
	return domain.ResolvedPair{
		Name:        name,
		Chain:       ref.Chain,
		PairAddress: ref.PairAddress,
		AddedTime:   s.now().UTC(),
	}, nil
}

// SuccessReply renders the chat reply for a fully processed batch.
func SuccessReply(pairs []domain.ResolvedPair) string {
	if len(pairs) == 0 {
		return ""
	}
	last := pairs[len(pairs)-1]
	if len(pairs) == 1 {
		return fmt.Sprintf("Pair %s with name %s added successfully at %s.", last.PairAddress, last.Name, last.DocumentKey())
	}
	names := make([]string, len(pairs))
	for i, p := range pairs {
		names[i] = p.Name
	}
	return fmt.Sprintf("Pairs %s added successfully at %s.", strings.Join(names, ", "), last.DocumentKey())
}
