package requirements_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/aretw0/passage/pkg/domain"
	"github.com/aretw0/passage/pkg/policy"
	"github.com/aretw0/passage/pkg/requirements"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func derive(t *testing.T, from, to string, days any, purpose string) *domain.RequirementReport {
	t.Helper()
	res := requirements.NewDefault().GetRequirements(from, to, days, purpose)
	require.Nil(t, res.Err, "unexpected error result")
	require.NotNil(t, res.Report)
	return res.Report
}

func docTypes(docs []domain.DocumentRequirement) []string {
	out := make([]string, len(docs))
	for i, d := range docs {
		out[i] = d.DocumentType
	}
	return out
}

func TestEngine_CanadaToJapanTourism(t *testing.T) {
	r := derive(t, "Canada", "Japan", 10, "tourism")

	assert.Equal(t, domain.TripInfo{FromCountry: "Canada", ToCountry: "Japan", DurationDays: 10, Purpose: "Tourism"}, r.TripInfo)
	assert.False(t, r.VisaRequirements.VisaRequired)
	assert.Equal(t, "90 days", *r.VisaRequirements.MaxStay)

	assert.Equal(t, []string{
		domain.DocPassport,
		domain.DocReturnTicket,
		domain.DocFinancialProof,
		domain.DocAccommodationProof,
	}, docTypes(r.RequiredDocuments))
	assert.Equal(t, []string{domain.DocTravelInsurance}, docTypes(r.OptionalDocuments))

	funds, ok := r.Find(domain.DocFinancialProof)
	require.True(t, ok)
	assert.Contains(t, funds.Description, "$100-150 per day")

	_, hasVisa := r.Find(domain.DocVisa)
	assert.False(t, hasVisa)

	assert.Equal(t, 5, r.TotalDocuments)
	assert.Equal(t, domain.Summary{RequiredCount: 4, OptionalCount: 1, VisaNeeded: false}, r.Summary)
}

func TestEngine_ChinaToUSABusiness(t *testing.T) {
	r := derive(t, "China", "USA", 20, "business")

	v := r.VisaRequirements
	assert.True(t, v.VisaRequired)
	assert.Equal(t, "B-2 Tourist Visa", *v.VisaType)
	assert.Equal(t, "$160 USD", *v.Fee)

	assert.Equal(t, []string{
		domain.DocPassport,
		domain.DocVisa,
		domain.DocReturnTicket,
		domain.DocFinancialProof,
		domain.DocAccommodationProof,
		domain.DocBusinessInvitation,
	}, docTypes(r.RequiredDocuments))

	visa, _ := r.Find(domain.DocVisa)
	assert.True(t, visa.Required)
	assert.Contains(t, visa.Description, "B-2 Tourist Visa")
	assert.Contains(t, visa.Description, "3-5 weeks")
	assert.Contains(t, visa.Description, "$160 USD")
	assert.Equal(t, "3-5 weeks", visa.ProcessingTime)
	assert.Equal(t, "Fee: $160 USD", visa.AdditionalNotes)

	funds, _ := r.Find(domain.DocFinancialProof)
	assert.Contains(t, funds.Description, "$50-100 per day")

	ins, _ := r.Find(domain.DocTravelInsurance)
	assert.False(t, ins.Required)

	assert.Equal(t, 7, r.TotalDocuments)
	assert.Equal(t, 6, r.Summary.RequiredCount)
	assert.True(t, r.Summary.VisaNeeded)
}

func TestEngine_Invariants(t *testing.T) {
	engine := requirements.NewDefault()
	table := policy.Builtin().Table

	origins := []string{"canada", "usa", "china", "india", "brazil"}
	destinations := []string{"japan", "usa", "uk", "germany", "france", "kenya", "norway"}

	for _, from := range origins {
		for _, to := range destinations {
			for _, purpose := range domain.Purposes {
				name := fmt.Sprintf("%s->%s/%s", from, to, purpose)
				t.Run(name, func(t *testing.T) {
					req, err := domain.NewTripRequest(from, to, 14, string(purpose))
					require.NoError(t, err)

					all := engine.Documents(req)
					r := engine.Derive(req)

					// Partitions recombine to the full sequence.
					assert.Equal(t, len(all), r.TotalDocuments)
					assert.Equal(t, r.TotalDocuments, len(r.RequiredDocuments)+len(r.OptionalDocuments))
					req2, opt2 := domain.Partition(all)
					assert.Equal(t, req2, r.RequiredDocuments)
					assert.Equal(t, opt2, r.OptionalDocuments)

					// Passport always first and required.
					require.NotEmpty(t, all)
					assert.Equal(t, domain.DocPassport, all[0].DocumentType)
					assert.True(t, all[0].Required)

					// Visa entry iff resolver says so, and always required.
					visaNeeded := table.Resolve(domain.CountryCode(from), domain.CountryCode(to)).VisaRequired
					visa, hasVisa := r.Find(domain.DocVisa)
					assert.Equal(t, visaNeeded, hasVisa)
					if hasVisa {
						assert.True(t, visa.Required)
					}
					assert.Equal(t, visaNeeded, r.Summary.VisaNeeded)
					assert.Equal(t, len(r.RequiredDocuments), r.Summary.RequiredCount)
					assert.Equal(t, len(r.OptionalDocuments), r.Summary.OptionalCount)
				})
			}
		}
	}
}

func TestEngine_Insurance(t *testing.T) {
	t.Run("Required in membership set", func(t *testing.T) {
		r := derive(t, "usa", "Germany", 7, "tourism")
		ins, ok := r.Find(domain.DocTravelInsurance)
		require.True(t, ok)
		assert.True(t, ins.Required)
		assert.Contains(t, ins.Description, "€30,000")
		assert.Empty(t, r.OptionalDocuments)
	})

	t.Run("Optional elsewhere", func(t *testing.T) {
		r := derive(t, "usa", "Japan", 7, "tourism")
		ins, ok := r.Find(domain.DocTravelInsurance)
		require.True(t, ok)
		assert.False(t, ins.Required)
		assert.Contains(t, ins.Description, "highly recommended")
	})

	t.Run("Literal set only", func(t *testing.T) {
		r := derive(t, "usa", "Portugal", 7, "tourism")
		ins, _ := r.Find(domain.DocTravelInsurance)
		assert.False(t, ins.Required)
	})
}

func TestEngine_FinancialProof(t *testing.T) {
	for to, want := range map[string]string{
		"japan":       requirements.FundsHighCost,
		"Switzerland": requirements.FundsHighCost,
		"NORWAY":      requirements.FundsHighCost,
		"usa":         requirements.FundsStandard,
		"kenya":       requirements.FundsStandard,
	} {
		r := derive(t, "canada", to, 5, "tourism")
		funds, _ := r.Find(domain.DocFinancialProof)
		assert.Contains(t, funds.Description, want, to)
	}
}

func TestEngine_PurposeDocuments(t *testing.T) {
	engine := requirements.NewDefault()
	base, err := domain.NewTripRequest("usa", "japan", 10, "tourism")
	require.NoError(t, err)
	baseDocs := engine.Documents(base)

	tests := []struct {
		purpose string
		extra   []string
	}{
		{"tourism", nil},
		{"transit", nil},
		{"work", nil},
		{"family visit", nil},
		{"conference", nil},
		{"business", []string{domain.DocBusinessInvitation}},
		{"Study", []string{domain.DocStudentPermit, domain.DocAcceptanceLetter}},
	}
	for _, tc := range tests {
		t.Run(tc.purpose, func(t *testing.T) {
			req, err := domain.NewTripRequest("usa", "japan", 10, tc.purpose)
			require.NoError(t, err)
			docs := engine.Documents(req)

			require.Len(t, docs, len(baseDocs)+len(tc.extra))
			assert.Equal(t, baseDocs, docs[:len(baseDocs)])
			for i, want := range tc.extra {
				d := docs[len(baseDocs)+i]
				assert.Equal(t, want, d.DocumentType)
				assert.True(t, d.Required)
			}
		})
	}
}

func TestEngine_UnlistedPairUsesDefault(t *testing.T) {
	r := derive(t, "brazil", "kenya", 30, "tourism")
	assert.Equal(t, policy.DefaultPolicy(), r.VisaRequirements)

	visa, ok := r.Find(domain.DocVisa)
	require.True(t, ok)
	assert.Contains(t, visa.Description, "Tourist Visa")
	assert.Contains(t, visa.Description, "$50-150 USD")
}

func TestEngine_InvalidDuration(t *testing.T) {
	engine := requirements.NewDefault()
	for _, d := range []any{"abc", 0, -2, "1.5", nil} {
		res := engine.GetRequirements("canada", "japan", d, "tourism")
		assert.Nil(t, res.Report, "duration %v", d)
		require.NotNil(t, res.Err, "duration %v", d)
		assert.NotEmpty(t, res.Err.Error)
		assert.False(t, res.OK())
	}
}

func TestEngine_VisaWithoutOptionalFacts(t *testing.T) {
	table, err := policy.NewTable(policy.Entry{
		From:       "x",
		To:         "y",
		VisaPolicy: domain.VisaPolicy{VisaRequired: true},
	})
	require.NoError(t, err)

	engine := requirements.NewEngine(table, policy.NewRules(nil, nil))
	res := engine.GetRequirements("x", "y", 3, "tourism")
	require.True(t, res.OK())

	visa, ok := res.Report.Find(domain.DocVisa)
	require.True(t, ok)
	assert.Contains(t, visa.Description, policy.DefaultVisaType)
	assert.Equal(t, "Fee: Varies by embassy", visa.AdditionalNotes)
	assert.Nil(t, res.Report.VisaRequirements.Fee)
}

func TestEngine_Concurrent(t *testing.T) {
	engine := requirements.NewDefault()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res := engine.GetRequirements("china", "usa", i+1, "study")
			assert.True(t, res.OK())
			assert.Equal(t, 8, res.Report.TotalDocuments)
		}(i)
	}
	wg.Wait()
}
