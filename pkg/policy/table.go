package policy

import (
	"fmt"
	"sort"

	"github.com/aretw0/passage/pkg/domain"
)

// Default visa facts applied to any pair missing from the table.
const (
	DefaultVisaType       = "Tourist Visa"
	DefaultMaxStay        = "30 days"
	DefaultProcessingTime = "5-10 business days"
	DefaultFee            = "$50-150 USD"
)

// DefaultPolicy returns the conservative fallback for unlisted pairs.
// A fresh value is built on every call.
func DefaultPolicy() domain.VisaPolicy {
	return domain.VisaPolicy{
		VisaRequired:   true,
		VisaType:       domain.Ptr(DefaultVisaType),
		MaxStay:        domain.Ptr(DefaultMaxStay),
		ProcessingTime: domain.Ptr(DefaultProcessingTime),
		Fee:            domain.Ptr(DefaultFee),
	}
}

// Pair is the directional key of the bilateral table.
type Pair struct {
	Origin      domain.CountryCode
	Destination domain.CountryCode
}

// NewPair normalizes both country codes.
func NewPair(origin, destination domain.CountryCode) Pair {
	return Pair{
		Origin:      domain.NormalizeCountry(string(origin)),
		Destination: domain.NormalizeCountry(string(destination)),
	}
}

func (p Pair) String() string {
	return fmt.Sprintf("%s->%s", p.Origin, p.Destination)
}

// Entry is one row of the bilateral table as it appears in policy files.
type Entry struct {
	From              string `yaml:"from" json:"from"`
	To                string `yaml:"to" json:"to"`
	domain.VisaPolicy `yaml:",inline"`
}

// Table is an immutable bilateral policy table.
type Table struct {
	entries map[Pair]domain.VisaPolicy
}

// NewTable builds a table from entries. Duplicate pairs and blank countries are rejected.
func NewTable(entries ...Entry) (*Table, error) {
	t := &Table{entries: make(map[Pair]domain.VisaPolicy, len(entries))}
	for i, e := range entries {
		pair := NewPair(domain.CountryCode(e.From), domain.CountryCode(e.To))
		if pair.Origin == "" || pair.Destination == "" {
			return nil, fmt.Errorf("policy entry %d: from and to are required", i)
		}
		if _, dup := t.entries[pair]; dup {
			return nil, fmt.Errorf("policy entry %d: duplicate pair %s", i, pair)
		}
		t.entries[pair] = e.VisaPolicy.Clone()
	}
	return t, nil
}

// Resolve returns the visa facts for travel from origin to destination.
// It never fails: unknown countries and unlisted pairs get DefaultPolicy.
func (t *Table) Resolve(origin, destination domain.CountryCode) domain.VisaPolicy {
	if p, ok := t.Lookup(origin, destination); ok {
		return p
	}
	return DefaultPolicy()
}

// Lookup returns the listed facts for the pair and whether the pair is listed.
func (t *Table) Lookup(origin, destination domain.CountryCode) (domain.VisaPolicy, bool) {
	if t == nil {
		return domain.VisaPolicy{}, false
	}
	p, ok := t.entries[NewPair(origin, destination)]
	if !ok {
		return domain.VisaPolicy{}, false
	}
	return p.Clone(), true
}

// Entries returns a copy of the table sorted by origin, then destination.
func (t *Table) Entries() []Entry {
	if t == nil {
		return []Entry{}
	}
	out := make([]Entry, 0, len(t.entries))
	for pair, p := range t.entries {
		out = append(out, Entry{
			From:       string(pair.Origin),
			To:         string(pair.Destination),
			VisaPolicy: p.Clone(),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}
		return out[i].To < out[j].To
	})
	return out
}

// Len returns the number of listed pairs.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}
