package policy_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/aretw0/passage/pkg/domain"
	"github.com/aretw0/passage/pkg/policy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltin_Resolve(t *testing.T) {
	table := policy.Builtin().Table

	t.Run("Visa free pair", func(t *testing.T) {
		p := table.Resolve("canada", "japan")
		assert.False(t, p.VisaRequired)
		require.NotNil(t, p.MaxStay)
		assert.Equal(t, "90 days", *p.MaxStay)
		assert.Nil(t, p.VisaType)
		assert.Nil(t, p.Fee)
	})

	t.Run("Case insensitive", func(t *testing.T) {
		assert.Equal(t, table.Resolve("canada", "uk"), table.Resolve(" CANADA", "Uk "))
	})

	t.Run("Visa required pair", func(t *testing.T) {
		p := table.Resolve("China", "USA")
		assert.True(t, p.VisaRequired)
		assert.Equal(t, "B-2 Tourist Visa", *p.VisaType)
		assert.Equal(t, "6 months", *p.MaxStay)
		assert.Equal(t, "3-5 weeks", *p.ProcessingTime)
		assert.Equal(t, "$160 USD", *p.Fee)
	})

	t.Run("Directional", func(t *testing.T) {
		forward := table.Resolve("canada", "japan")
		reverse := table.Resolve("japan", "canada")
		assert.False(t, forward.VisaRequired)
		assert.Equal(t, policy.DefaultPolicy(), reverse)

		_, listed := table.Lookup("japan", "canada")
		assert.False(t, listed)
	})

	t.Run("Unlisted pair gets exact default", func(t *testing.T) {
		p := table.Resolve("brazil", "kenya")
		assert.True(t, p.VisaRequired)
		assert.Equal(t, "Tourist Visa", *p.VisaType)
		assert.Equal(t, "30 days", *p.MaxStay)
		assert.Equal(t, "5-10 business days", *p.ProcessingTime)
		assert.Equal(t, "$50-150 USD", *p.Fee)
	})

	t.Run("Unknown countries are not errors", func(t *testing.T) {
		assert.Equal(t, policy.DefaultPolicy(), table.Resolve("atlantis", ""))
	})

	t.Run("Results do not alias the table", func(t *testing.T) {
		p := table.Resolve("india", "japan")
		*p.Fee = "free"
		assert.Equal(t, "$50 USD", *table.Resolve("india", "japan").Fee)
	})

	t.Run("Entries sorted", func(t *testing.T) {
		entries := table.Entries()
		require.Len(t, entries, 11)
		assert.Equal(t, "canada", entries[0].From)
		assert.Equal(t, "germany", entries[0].To)
		assert.Equal(t, 11, table.Len())
	})
}

func TestBuiltin_Rules(t *testing.T) {
	rules := policy.Builtin().Rules

	for _, c := range []string{"schengen", "germany", "France", "ITALY", "spain", "netherlands", "austria", "belgium"} {
		assert.True(t, rules.RequiresInsurance(domain.CountryCode(c)), c)
	}
	// Literal list: Schengen members outside it stay non-Schengen.
	for _, c := range []string{"japan", "usa", "portugal", "switzerland"} {
		assert.False(t, rules.RequiresInsurance(domain.CountryCode(c)), c)
	}

	assert.Equal(t, []string{"japan", "norway", "switzerland"}, rules.HighCost())
	assert.True(t, rules.IsHighCost("Japan"))
	assert.False(t, rules.IsHighCost("usa"))
}

func TestBuiltin_ConcurrentReads(t *testing.T) {
	table := policy.Builtin().Table
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.False(t, table.Resolve("usa", "uk").VisaRequired)
		}()
	}
	wg.Wait()
}

func TestNewTable_Rejects(t *testing.T) {
	_, err := policy.NewTable(
		policy.Entry{From: "a", To: "b"},
		policy.Entry{From: "A", To: "B "},
	)
	assert.ErrorContains(t, err, "duplicate pair")

	_, err = policy.NewTable(policy.Entry{From: "a"})
	assert.ErrorContains(t, err, "from and to are required")
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("YAML", func(t *testing.T) {
		path := filepath.Join(dir, "policies.yaml")
		content := []byte(`
policies:
  - from: japan
    to: canada
    visa_required: false
    max_stay: 6 months
rules:
  insurance_required: [portugal]
  high_cost: [iceland]
`)
		require.NoError(t, os.WriteFile(path, content, 0644))

		c, err := policy.LoadFile(path)
		require.NoError(t, err)
		assert.False(t, c.Table.Resolve("japan", "canada").VisaRequired)
		assert.True(t, c.Table.Resolve("canada", "japan").VisaRequired)
		assert.True(t, c.Rules.RequiresInsurance("portugal"))
		assert.True(t, c.Rules.IsHighCost("iceland"))
	})

	t.Run("JSON", func(t *testing.T) {
		path := filepath.Join(dir, "policies.json")
		content := []byte(`{"policies":[{"from":"kenya","to":"uganda","visa_required":false,"max_stay":"90 days"}]}`)
		require.NoError(t, os.WriteFile(path, content, 0644))

		c, err := policy.LoadFile(path)
		require.NoError(t, err)
		p, ok := c.Table.Lookup("Kenya", "Uganda")
		require.True(t, ok)
		assert.Equal(t, "90 days", *p.MaxStay)
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := policy.LoadFile(filepath.Join(dir, "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("Malformed", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("policies: [::"), 0644))
		_, err := policy.LoadFile(path)
		assert.ErrorContains(t, err, "failed to parse policy yaml")
	})
}
