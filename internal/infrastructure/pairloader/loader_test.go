package pairloader

import (
	"os"
	"path/filepath"
	"testing"

	"momentum/internal/domain/entity"

	"github.com/stretchr/testify/require"
)

func writePairs(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pairs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestGetTrackedPairs(t *testing.T) {
	path := writePairs(t, `
pairs:
  - chain: arbitrum
    address: "0xabc"
    timeAdded: "2024-05-01T10:30:00"
  - chain: solana
    address: 7xKXtg2CW87d97TXJSDpbD5jBkheTqA83TZRuJosgAsU
    timeAdded: "2024-06-01T00:00:00Z"
`)
	var infos []string
	loader := NewPairFileLoader(path, func(msg string, _ ...any) { infos = append(infos, msg) }, nil)

	pairs, err := loader.GetTrackedPairs()
	require.NoError(t, err)
	require.Equal(t, []entity.TrackedPair{
		{Chain: "arbitrum", Address: "0xabc", TimeAdded: "2024-05-01T10:30:00"},
		{Chain: "solana", Address: "7xKXtg2CW87d97TXJSDpbD5jBkheTqA83TZRuJosgAsU", TimeAdded: "2024-06-01T00:00:00Z"},
	}, pairs)
	require.Len(t, infos, 1)
}

func TestGetTrackedPairs_ReadsOnEveryCall(t *testing.T) {
	path := writePairs(t, "pairs: []\n")
	loader := NewPairFileLoader(path, nil, nil)

	pairs, err := loader.GetTrackedPairs()
	require.NoError(t, err)
	require.Empty(t, pairs)

	require.NoError(t, os.WriteFile(path, []byte("pairs:\n  - {chain: eth, address: \"0x1\", timeAdded: \"2024-01-01\"}\n"), 0o600))
	pairs, err = loader.GetTrackedPairs()
	require.NoError(t, err)
	require.Len(t, pairs, 1)
}

func TestGetTrackedPairs_Errors(t *testing.T) {
	_, err := NewPairFileLoader(filepath.Join(t.TempDir(), "absent.yaml"), nil, nil).GetTrackedPairs()
	require.ErrorContains(t, err, "failed to read pairs file")

	_, err = NewPairFileLoader(writePairs(t, "pairs: {"), nil, nil).GetTrackedPairs()
	require.ErrorContains(t, err, "failed to parse pairs file")

	_, err = NewPairFileLoader(writePairs(t, "pairs:\n  - chain: eth\n    timeAdded: \"2024-01-01\"\n"), nil, nil).GetTrackedPairs()
	require.ErrorContains(t, err, "invalid entry 0")
	require.ErrorContains(t, err, "Address")
}
