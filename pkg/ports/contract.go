package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/passage/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunReportCacheContract runs a suite of tests to verify that a ReportCache implementation
// adheres to the defined interface contract.
// expire advances the cache's clock past ttl; pass nil to skip the expiry case.
func RunReportCacheContract(t *testing.T, cache ReportCache, expire func(ttl time.Duration)) {
	ctx := context.Background()
	key := "contract|" + time.Now().Format("20060102150405.000000000")

	report := &domain.RequirementReport{
		TripInfo: domain.TripInfo{FromCountry: "Canada", ToCountry: "Japan", DurationDays: 10, Purpose: "Tourism"},
		VisaRequirements: domain.VisaPolicy{
			VisaRequired: false,
			MaxStay:      domain.Ptr("90 days"),
		},
		RequiredDocuments: []domain.DocumentRequirement{
			{DocumentType: domain.DocPassport, Required: true, Description: "Valid passport"},
		},
		OptionalDocuments: []domain.DocumentRequirement{
			{DocumentType: domain.DocTravelInsurance, Required: false, Description: "Recommended"},
		},
		TotalDocuments: 2,
		Summary:        domain.Summary{RequiredCount: 1, OptionalCount: 1},
	}

	t.Run("Miss", func(t *testing.T) {
		_, err := cache.Get(ctx, "missing-"+key)
		assert.ErrorIs(t, err, domain.ErrCacheMiss)
	})

	t.Run("Set and Get", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, key, report, 0), "Set should not return error")

		got, err := cache.Get(ctx, key)
		require.NoError(t, err, "Get should not return error")
		assert.Equal(t, report, got)
	})

	t.Run("Returned report is a copy", func(t *testing.T) {
		got, err := cache.Get(ctx, key)
		require.NoError(t, err)
		got.RequiredDocuments[0].Description = "mutated"
		*got.VisaRequirements.MaxStay = "mutated"

		again, err := cache.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "Valid passport", again.RequiredDocuments[0].Description)
		assert.Equal(t, "90 days", *again.VisaRequirements.MaxStay)
	})

	t.Run("Overwrite", func(t *testing.T) {
		updated := *report
		updated.TotalDocuments = 3
		require.NoError(t, cache.Set(ctx, key, &updated, 0))

		got, err := cache.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, 3, got.TotalDocuments)
	})

	if expire != nil {
		t.Run("Expiry", func(t *testing.T) {
			ttlKey := key + "-ttl"
			require.NoError(t, cache.Set(ctx, ttlKey, report, time.Minute))
			_, err := cache.Get(ctx, ttlKey)
			require.NoError(t, err)

			expire(2 * time.Minute)

			_, err = cache.Get(ctx, ttlKey)
			assert.ErrorIs(t, err, domain.ErrCacheMiss)
		})
	}
}
