package guidebook_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripcraft/guidebook/pkg/guidebook"
	"github.com/tripcraft/guidebook/pkg/guidebook/docstore/memory"
)

func TestEffectiveValue(t *testing.T) {
	inherited := guidebook.InheritedData{
		guidebook.FieldCurrency: "EUR",
		guidebook.FieldVoltage:  "230V",
	}
	custom := guidebook.CustomData{
		guidebook.FieldCurrency: "EUR (cash preferred)",
	}

	tests := []struct {
		name      string
		field     guidebook.Field
		overrides guidebook.Overrides
		want      string
	}{
		{
			name:      "no override returns inherited",
			field:     guidebook.FieldCurrency,
			overrides: guidebook.Overrides{},
			want:      "EUR",
		},
		{
			name:      "override returns custom",
			field:     guidebook.FieldCurrency,
			overrides: guidebook.Overrides{guidebook.FieldCurrency: true},
			want:      "EUR (cash preferred)",
		},
		{
			name:      "override with no custom value returns empty",
			field:     guidebook.FieldVoltage,
			overrides: guidebook.Overrides{guidebook.FieldVoltage: true},
			want:      "",
		},
		{
			name:      "no override and no inherited value returns empty",
			field:     guidebook.FieldVisaInfo,
			overrides: guidebook.Overrides{},
			want:      "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := guidebook.EffectiveValue(tt.field, tt.overrides, inherited, custom)
			assert.Equal(t, tt.want, got)
		})
	}
}

// The effective-value invariant must hold for every field and both override
// states, regardless of edit order.
func TestEffectiveValueInvariant(t *testing.T) {
	inherited := guidebook.InheritedData{}
	custom := guidebook.CustomData{}
	for _, f := range guidebook.InheritableFields {
		inherited[f] = "inherited-" + string(f)
		custom[f] = "custom-" + string(f)
	}

	for _, f := range guidebook.InheritableFields {
		for _, on := range []bool{false, true} {
			overrides := guidebook.Overrides{f: on}
			got := guidebook.EffectiveValue(f, overrides, inherited, custom)
			if on {
				assert.Equal(t, custom[f], got)
			} else {
				assert.Equal(t, inherited[f], got)
			}
		}
	}
}

func TestToggleOverride(t *testing.T) {
	city := &guidebook.CityDetail{
		InheritedData: guidebook.InheritedData{guidebook.FieldCurrency: "EUR"},
		Overrides:     guidebook.Overrides{},
		CustomData:    guidebook.CustomData{guidebook.FieldCurrency: "EUR (cash preferred)"},
	}

	t.Run("toggle twice returns to original effective value", func(t *testing.T) {
		before := city.Effective(guidebook.FieldCurrency)

		city.ToggleOverride(guidebook.FieldCurrency)
		assert.Equal(t, "EUR (cash preferred)", city.Effective(guidebook.FieldCurrency))

		city.ToggleOverride(guidebook.FieldCurrency)
		assert.Equal(t, before, city.Effective(guidebook.FieldCurrency))
	})

	t.Run("toggle does not clear custom data", func(t *testing.T) {
		city.ToggleOverride(guidebook.FieldCurrency)
		city.ToggleOverride(guidebook.FieldCurrency)
		assert.Equal(t, "EUR (cash preferred)", city.CustomData[guidebook.FieldCurrency])
	})

	t.Run("toggle on nil overrides map", func(t *testing.T) {
		bare := &guidebook.CityDetail{}
		bare.ToggleOverride(guidebook.FieldVoltage)
		assert.True(t, bare.Overrides[guidebook.FieldVoltage])
	})
}

func TestRefreshInheritance(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	resolver := guidebook.NewInheritanceResolver(store)

	t.Run("missing country detail degrades to placeholder", func(t *testing.T) {
		inherited, err := resolver.RefreshInheritance(ctx, "no-such-country")
		require.NoError(t, err)

		for _, f := range guidebook.InheritableFields {
			assert.Equal(t, guidebook.NoDataPlaceholder, inherited[f])
		}
	})

	t.Run("maps country detail into the six-field shape", func(t *testing.T) {
		svc, err := guidebook.New(guidebook.WithDocumentStore(store))
		require.NoError(t, err)

		country, err := svc.CreateCountry(ctx, guidebook.CreateCountryRequest{
			NameKr: "프랑스", NameEn: "France", ISOCode: "FR", Continent: "Europe",
		})
		require.NoError(t, err)

		_, err = svc.SetCountryDetail(ctx, guidebook.SetCountryDetailRequest{
			CountryID: country.ID,
			PracticalInfo: guidebook.PracticalInfo{
				VisaInfo:     "90-day visa waiver",
				Currency:     "EUR",
				Voltage:      "230V",
				MainLanguage: "French",
			},
			Safety: guidebook.Safety{
				SafetyLevel: guidebook.SafetyLevelSafe,
				SafetyTips:  "Watch for pickpockets around landmarks",
			},
		})
		require.NoError(t, err)

		inherited, err := resolver.RefreshInheritance(ctx, country.ID)
		require.NoError(t, err)

		assert.Equal(t, "90-day visa waiver", inherited[guidebook.FieldVisaInfo])
		assert.Equal(t, "EUR", inherited[guidebook.FieldCurrency])
		assert.Equal(t, "230V", inherited[guidebook.FieldVoltage])
		assert.Equal(t, "French", inherited[guidebook.FieldLanguage])
		assert.Equal(t, string(guidebook.SafetyLevelSafe), inherited[guidebook.FieldSafetyLevel])
		assert.Equal(t, "Watch for pickpockets around landmarks", inherited[guidebook.FieldSafetyTips])
	})
}

// The France/Paris flow: inherit, override, revert.
func TestInheritanceScenario(t *testing.T) {
	ctx := context.Background()
	svc := setupTestService(t)

	country, err := svc.CreateCountry(ctx, guidebook.CreateCountryRequest{
		NameKr: "프랑스", NameEn: "France", ISOCode: "FR", Continent: "Europe",
	})
	require.NoError(t, err)

	_, err = svc.SetCountryDetail(ctx, guidebook.SetCountryDetailRequest{
		CountryID:     country.ID,
		PracticalInfo: guidebook.PracticalInfo{Currency: "EUR"},
	})
	require.NoError(t, err)

	city, err := svc.CreateCityDetail(ctx, guidebook.CreateCityDetailRequest{
		CityCode: "paris", NameKr: "파리", NameEn: "Paris", CountryID: country.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "EUR", city.Effective(guidebook.FieldCurrency))

	// Custom value is pre-staged before the toggle flips.
	city, err = svc.SetCityCustomData(ctx, city.ID, guidebook.FieldCurrency, "EUR (cash preferred)")
	require.NoError(t, err)
	assert.Equal(t, "EUR", city.Effective(guidebook.FieldCurrency))

	city, err = svc.ToggleCityOverride(ctx, city.ID, guidebook.FieldCurrency)
	require.NoError(t, err)
	assert.Equal(t, "EUR (cash preferred)", city.Effective(guidebook.FieldCurrency))

	city, err = svc.ToggleCityOverride(ctx, city.ID, guidebook.FieldCurrency)
	require.NoError(t, err)
	assert.Equal(t, "EUR", city.Effective(guidebook.FieldCurrency))

	effective, err := svc.EffectiveCityInfo(ctx, city.ID)
	require.NoError(t, err)
	assert.Equal(t, "EUR", effective[guidebook.FieldCurrency])
}
