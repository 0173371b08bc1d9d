package entity

import "time"

// PairReference identifies a tradeable pair on a given chain.
type PairReference struct {
	Chain       string `json:"chain" yaml:"chain"`
	PairAddress string `json:"pairAddress" yaml:"pairAddress"`
}

// ResolvedPair is a PairReference whose base token name was obtained from the price API.
type ResolvedPair struct {
	Name        string    `json:"name" firestore:"name"`
	Chain       string    `json:"chainId" firestore:"chainId"`
	PairAddress string    `json:"pairAddress" firestore:"pairAddress"`
	AddedTime   time.Time `json:"addedTime" firestore:"addedTime"`
}

// DocumentKey returns the key under which the record is stored.
func (p ResolvedPair) DocumentKey() string {
	return FormatTimestampKey(p.AddedTime)
}

// Fields returns the persisted document fields.
func (p ResolvedPair) Fields() map[string]any {
	return map[string]any{
		"name":        p.Name,
		"chainId":     p.Chain,
		"pairAddress": p.PairAddress,
		"addedTime":   p.AddedTime,
	}
}

const (
	timestampKeyLayout      = "2006-01-02 15:04:05.000000-07:00"
	timestampKeyLayoutWhole = "2006-01-02 15:04:05-07:00"
)

// FormatTimestampKey renders t in UTC as "YYYY-MM-DD HH:MM:SS.ffffff+00:00".
// The fractional part is omitted when the microsecond component is zero, so two
// timestamps collide exactly when they share the same microsecond.
func FormatTimestampKey(t time.Time) string {
	t = t.UTC()
	if t.Nanosecond()/1000 == 0 {
		return t.Format(timestampKeyLayoutWhole)
	}
	return t.Truncate(time.Microsecond).Format(timestampKeyLayout)
}
