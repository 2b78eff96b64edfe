package policy

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/aretw0/passage/pkg/domain"
	"gopkg.in/yaml.v3"
)

//go:embed policies.yaml
var builtinPolicies []byte

// File is the on-disk layout of a policy file (YAML or JSON).
type File struct {
	Policies []Entry   `yaml:"policies" json:"policies"`
	Rules    RulesFile `yaml:"rules" json:"rules"`
}

// RulesFile lists the destination sets of a policy file.
type RulesFile struct {
	InsuranceRequired []string `yaml:"insurance_required" json:"insurance_required"`
	HighCost          []string `yaml:"high_cost" json:"high_cost"`
}

// Catalog bundles the bilateral table with the document rules.
type Catalog struct {
	Table *Table
	Rules Rules
}

var builtin = sync.OnceValues(func() (Catalog, error) {
	return Parse(builtinPolicies, FormatYAML)
})

// Builtin returns the catalog compiled into the binary.
// It is parsed once per process.
func Builtin() Catalog {
	c, err := builtin()
	if err != nil {
		panic(fmt.Sprintf("policy: embedded policies.yaml is invalid: %v", err))
	}
	return c
}

// Format selects the decoder used by Parse.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Parse decodes a policy file.
func Parse(data []byte, format Format) (Catalog, error) {
	var f File
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &f); err != nil {
			return Catalog{}, fmt.Errorf("failed to parse policy json: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &f); err != nil {
			return Catalog{}, fmt.Errorf("failed to parse policy yaml: %w", err)
		}
	}

	table, err := NewTable(f.Policies...)
	if err != nil {
		return Catalog{}, err
	}

	return Catalog{
		Table: table,
		Rules: NewRules(f.Rules.InsuranceRequired, f.Rules.HighCost),
	}, nil
}

// LoadFile reads a policy file. A ".json" extension selects JSON, anything else YAML.
func LoadFile(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("failed to read policy file: %w", err)
	}

	format := FormatYAML
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		format = FormatJSON
	}

	c, err := Parse(data, format)
	if err != nil {
		return Catalog{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func sortedKeys(set map[domain.CountryCode]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, string(k))
	}
	sort.Strings(out)
	return out
}
