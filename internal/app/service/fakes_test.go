package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	domain "momentum/internal/domain/entity"
	"momentum/internal/entity"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// fakePriceClient serves canned responses keyed by "chain/address".
type fakePriceClient struct {
	mu     sync.Mutex
	names  map[string]string
	raw    map[string][]byte
	errs   map[string]error
	called []string
}

func (f *fakePriceClient) record(chain, addr string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := chain + "/" + addr
	f.called = append(f.called, key)
	return key
}

func (f *fakePriceClient) GetPairs(_ context.Context, chain, addr string) (*entity.PairsResponse, error) {
	key := f.record(chain, addr)
	if err := f.errs[key]; err != nil {
		return nil, err
	}
	name, ok := f.names[key]
	if !ok {
		return &entity.PairsResponse{}, nil
	}
	return &entity.PairsResponse{Pairs: []entity.PairData{{
		ChainID:     chain,
		PairAddress: addr,
		BaseToken:   entity.DEXToken{Name: name},
	}}}, nil
}

func (f *fakePriceClient) GetPairsRaw(_ context.Context, chain, addr string) ([]byte, error) {
	key := f.record(chain, addr)
	if err := f.errs[key]; err != nil {
		return nil, err
	}
	body, ok := f.raw[key]
	if !ok {
		return nil, fmt.Errorf("unexpected request for %s", key)
	}
	return body, nil
}

type storedDoc struct {
	collection string
	key        string
	pair       domain.ResolvedPair
}

type fakeStore struct {
	docs    []storedDoc
	failFor string
}

func (s *fakeStore) Set(_ context.Context, collection, key string, pair domain.ResolvedPair) error {
	if s.failFor != "" && pair.PairAddress == s.failFor {
		return errors.New("store unavailable")
	}
	s.docs = append(s.docs, storedDoc{collection: collection, key: key, pair: pair})
	return nil
}

func (s *fakeStore) Close() error { return nil }

type sentMessage struct {
	chatID entity.ChatID
	text   string
}

type fakeNotifier struct {
	sent []sentMessage
	err  error
}

func (n *fakeNotifier) SendMessage(_ context.Context, chatID entity.ChatID, text string) error {
	n.sent = append(n.sent, sentMessage{chatID: chatID, text: text})
	return n.err
}

type fakeWarehouse struct {
	loads [][]domain.SnapshotRow
	err   error
}

func (w *fakeWarehouse) Load(_ context.Context, rows []domain.SnapshotRow) error {
	if w.err != nil {
		return w.err
	}
	w.loads = append(w.loads, rows)
	return nil
}

func (w *fakeWarehouse) Close() error { return nil }

type staticPairs []domain.TrackedPair

func (p staticPairs) GetTrackedPairs() ([]domain.TrackedPair, error) { return p, nil }

// tickingClock returns start, start+step, start+2*step, ... on successive calls.
func tickingClock(start time.Time, step time.Duration) func() time.Time {
	var mu sync.Mutex
	next := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t := next
		next = next.Add(step)
		return t
	}
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
