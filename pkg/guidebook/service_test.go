package guidebook_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripcraft/guidebook/pkg/guidebook"
	"github.com/tripcraft/guidebook/pkg/guidebook/docstore/memory"
)

func setupTestService(t *testing.T) guidebook.Service {
	t.Helper()
	svc, err := guidebook.New(guidebook.WithDocumentStore(memory.New()))
	require.NoError(t, err)
	return svc
}

func TestNew(t *testing.T) {
	t.Run("requires a document store", func(t *testing.T) {
		svc, err := guidebook.New()
		assert.Error(t, err)
		assert.Nil(t, svc)
	})

	t.Run("with store", func(t *testing.T) {
		svc, err := guidebook.New(guidebook.WithDocumentStore(memory.New()))
		require.NoError(t, err)
		assert.NotNil(t, svc)
	})

	t.Run("with event sink and clock", func(t *testing.T) {
		fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		svc, err := guidebook.New(
			guidebook.WithDocumentStore(memory.New()),
			guidebook.WithEventSink(guidebook.NewNoopEventSink()),
			guidebook.WithClock(func() time.Time { return fixed }),
		)
		require.NoError(t, err)

		country, err := svc.CreateCountry(context.Background(), guidebook.CreateCountryRequest{
			NameKr: "일본", NameEn: "Japan", ISOCode: "JP", Continent: "Asia",
		})
		require.NoError(t, err)
		assert.Equal(t, fixed, country.CreatedAt)
	})
}

func TestCountryOperations(t *testing.T) {
	ctx := context.Background()
	svc := setupTestService(t)

	t.Run("create and get", func(t *testing.T) {
		country, err := svc.CreateCountry(ctx, guidebook.CreateCountryRequest{
			NameKr: "일본", NameEn: "Japan", ISOCode: "JP", Continent: "Asia",
		})
		require.NoError(t, err)
		require.NotEmpty(t, country.ID)

		got, err := svc.GetCountry(ctx, country.ID)
		require.NoError(t, err)
		assert.Equal(t, "Japan", got.NameEn)
		assert.Equal(t, "JP", got.ISOCode)
	})

	t.Run("get missing", func(t *testing.T) {
		_, err := svc.GetCountry(ctx, "does-not-exist")
		assert.ErrorIs(t, err, guidebook.ErrCountryNotFound)
	})

	t.Run("update", func(t *testing.T) {
		country, err := svc.CreateCountry(ctx, guidebook.CreateCountryRequest{
			NameKr: "태국", NameEn: "Tailand", ISOCode: "TH", Continent: "Asia",
		})
		require.NoError(t, err)

		country.NameEn = "Thailand"
		require.NoError(t, svc.UpdateCountry(ctx, country))

		got, err := svc.GetCountry(ctx, country.ID)
		require.NoError(t, err)
		assert.Equal(t, "Thailand", got.NameEn)
	})

	t.Run("list", func(t *testing.T) {
		countries, err := svc.ListCountries(ctx)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(countries), 2)
	})

	t.Run("delete removes detail too", func(t *testing.T) {
		country, err := svc.CreateCountry(ctx, guidebook.CreateCountryRequest{
			NameKr: "독일", NameEn: "Germany", ISOCode: "DE", Continent: "Europe",
		})
		require.NoError(t, err)

		_, err = svc.SetCountryDetail(ctx, guidebook.SetCountryDetailRequest{
			CountryID:     country.ID,
			PracticalInfo: guidebook.PracticalInfo{Currency: "EUR"},
		})
		require.NoError(t, err)

		require.NoError(t, svc.DeleteCountry(ctx, country.ID))

		_, err = svc.GetCountry(ctx, country.ID)
		assert.ErrorIs(t, err, guidebook.ErrCountryNotFound)
		_, err = svc.GetCountryDetail(ctx, country.ID)
		assert.ErrorIs(t, err, guidebook.ErrCountryDetailNotFound)
	})
}

func TestSetCountryDetail(t *testing.T) {
	ctx := context.Background()
	svc := setupTestService(t)

	country, err := svc.CreateCountry(ctx, guidebook.CreateCountryRequest{
		NameKr: "일본", NameEn: "Japan", ISOCode: "JP", Continent: "Asia",
	})
	require.NoError(t, err)

	t.Run("requires country id", func(t *testing.T) {
		_, err := svc.SetCountryDetail(ctx, guidebook.SetCountryDetailRequest{})
		var verr *guidebook.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, []string{"countryId"}, verr.Fields)
	})

	t.Run("creates on first set", func(t *testing.T) {
		detail, err := svc.SetCountryDetail(ctx, guidebook.SetCountryDetailRequest{
			CountryID:     country.ID,
			PracticalInfo: guidebook.PracticalInfo{Currency: "JPY", Voltage: "100V"},
			Safety:        guidebook.Safety{SafetyLevel: guidebook.SafetyLevelSafe},
		})
		require.NoError(t, err)
		assert.Equal(t, country.ID, detail.CountryID)

		got, err := svc.GetCountryDetail(ctx, country.ID)
		require.NoError(t, err)
		assert.Equal(t, "JPY", got.PracticalInfo.Currency)
	})

	t.Run("replaces on second set", func(t *testing.T) {
		_, err := svc.SetCountryDetail(ctx, guidebook.SetCountryDetailRequest{
			CountryID:     country.ID,
			PracticalInfo: guidebook.PracticalInfo{Currency: "JPY", Voltage: "100V", MainLanguage: "Japanese"},
		})
		require.NoError(t, err)

		got, err := svc.GetCountryDetail(ctx, country.ID)
		require.NoError(t, err)
		assert.Equal(t, "Japanese", got.PracticalInfo.MainLanguage)
	})
}

func TestCityOperations(t *testing.T) {
	ctx := context.Background()
	svc := setupTestService(t)

	country, err := svc.CreateCountry(ctx, guidebook.CreateCountryRequest{
		NameKr: "일본", NameEn: "Japan", ISOCode: "JP", Continent: "Asia",
	})
	require.NoError(t, err)

	_, err = svc.SetCountryDetail(ctx, guidebook.SetCountryDetailRequest{
		CountryID:     country.ID,
		PracticalInfo: guidebook.PracticalInfo{Currency: "JPY"},
	})
	require.NoError(t, err)

	t.Run("create requires city code and country id", func(t *testing.T) {
		_, err := svc.CreateCityDetail(ctx, guidebook.CreateCityDetailRequest{NameKr: "도쿄"})
		var verr *guidebook.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.ElementsMatch(t, []string{"cityCode", "countryId"}, verr.Fields)
	})

	t.Run("create snapshots inheritance", func(t *testing.T) {
		city, err := svc.CreateCityDetail(ctx, guidebook.CreateCityDetailRequest{
			CityCode: "tokyo", NameKr: "도쿄", NameEn: "Tokyo", CountryID: country.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, "JPY", city.InheritedData[guidebook.FieldCurrency])
		assert.NotNil(t, city.Overrides)
		assert.NotNil(t, city.CustomData)
	})

	t.Run("get by code", func(t *testing.T) {
		city, err := svc.GetCityDetailByCode(ctx, "tokyo")
		require.NoError(t, err)
		assert.Equal(t, "Tokyo", city.NameEn)

		_, err = svc.GetCityDetailByCode(ctx, "atlantis")
		assert.ErrorIs(t, err, guidebook.ErrCityNotFound)
	})

	t.Run("list by country", func(t *testing.T) {
		_, err := svc.CreateCityDetail(ctx, guidebook.CreateCityDetailRequest{
			CityCode: "osaka", NameKr: "오사카", NameEn: "Osaka", CountryID: country.ID,
		})
		require.NoError(t, err)

		cities, err := svc.ListCityDetails(ctx, country.ID)
		require.NoError(t, err)
		assert.Len(t, cities, 2)

		cities, err = svc.ListCityDetails(ctx, "other-country")
		require.NoError(t, err)
		assert.Empty(t, cities)
	})

	t.Run("update keeps country binding", func(t *testing.T) {
		city, err := svc.GetCityDetailByCode(ctx, "osaka")
		require.NoError(t, err)

		updated, err := svc.UpdateCityDetail(ctx, guidebook.UpdateCityDetailRequest{
			ID: city.ID, NameKr: "오사카", NameEn: "Osaka City",
		})
		require.NoError(t, err)
		assert.Equal(t, "Osaka City", updated.NameEn)
		assert.Equal(t, country.ID, updated.CountryID)
	})

	t.Run("refresh picks up parent edits", func(t *testing.T) {
		city, err := svc.GetCityDetailByCode(ctx, "tokyo")
		require.NoError(t, err)

		_, err = svc.SetCountryDetail(ctx, guidebook.SetCountryDetailRequest{
			CountryID:     country.ID,
			PracticalInfo: guidebook.PracticalInfo{Currency: "JPY", Voltage: "100V"},
		})
		require.NoError(t, err)

		refreshed, err := svc.RefreshCityInheritance(ctx, city.ID)
		require.NoError(t, err)
		assert.Equal(t, "100V", refreshed.InheritedData[guidebook.FieldVoltage])
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		city, err := svc.GetCityDetailByCode(ctx, "tokyo")
		require.NoError(t, err)

		_, err = svc.ToggleCityOverride(ctx, city.ID, "population")
		assert.ErrorIs(t, err, guidebook.ErrUnknownField)

		_, err = svc.SetCityCustomData(ctx, city.ID, "population", "37M")
		assert.ErrorIs(t, err, guidebook.ErrUnknownField)
	})

	t.Run("delete", func(t *testing.T) {
		city, err := svc.GetCityDetailByCode(ctx, "osaka")
		require.NoError(t, err)

		require.NoError(t, svc.DeleteCityDetail(ctx, city.ID))
		_, err = svc.GetCityDetail(ctx, city.ID)
		assert.ErrorIs(t, err, guidebook.ErrCityNotFound)
	})
}

// Clearing a nullable library binding must reach the store, not just the
// returned struct; a stale stored id would keep auto-linking an unbound
// library object.
func TestClearingLibraryBindingsPersists(t *testing.T) {
	ctx := context.Background()
	svc := setupTestService(t)

	country, err := svc.CreateCountry(ctx, guidebook.CreateCountryRequest{
		NameKr: "프랑스", NameEn: "France", ISOCode: "FR", Continent: "Europe",
	})
	require.NoError(t, err)

	t.Run("city unbind survives reload and stops auto-linking", func(t *testing.T) {
		city, err := svc.CreateCityDetail(ctx, guidebook.CreateCityDetailRequest{
			CityCode: "paris", NameKr: "파리", NameEn: "Paris", CountryID: country.ID,
			TransportationLibraryID: "lib-transport-1",
			FinanceLibraryID:        "lib-finance-1",
		})
		require.NoError(t, err)

		links, err := svc.ResolvePracticalInfo(ctx, "paris")
		require.NoError(t, err)
		require.True(t, links.Transport.AutoLinked())

		_, err = svc.UpdateCityDetail(ctx, guidebook.UpdateCityDetailRequest{
			ID: city.ID, NameKr: "파리", NameEn: "Paris",
		})
		require.NoError(t, err)

		reloaded, err := svc.GetCityDetail(ctx, city.ID)
		require.NoError(t, err)
		assert.Empty(t, reloaded.TransportationLibraryID)
		assert.Empty(t, reloaded.FinanceLibraryID)

		links, err = svc.ResolvePracticalInfo(ctx, "paris")
		require.NoError(t, err)
		assert.True(t, links.Transport.IsZero())
		assert.False(t, links.Transport.AutoLinked())
		assert.True(t, links.Finance.IsZero())
	})

	t.Run("country detail unbind survives reload", func(t *testing.T) {
		_, err := svc.SetCountryDetail(ctx, guidebook.SetCountryDetailRequest{
			CountryID: country.ID, StorytellingLibraryID: "lib-france-story",
		})
		require.NoError(t, err)

		_, err = svc.SetCountryDetail(ctx, guidebook.SetCountryDetailRequest{
			CountryID: country.ID,
		})
		require.NoError(t, err)

		detail, err := svc.GetCountryDetail(ctx, country.ID)
		require.NoError(t, err)
		assert.Empty(t, detail.StorytellingLibraryID)

		links, err := svc.ResolveStorytelling(ctx, country.ID, "")
		require.NoError(t, err)
		assert.True(t, links.Country.IsZero())
	})

	t.Run("cleared tagline survives content object update", func(t *testing.T) {
		obj, err := svc.CreateContentObject(ctx, guidebook.CreateContentObjectRequest{
			Type: guidebook.ContentTypeCityStory, TargetID: "paris",
			Title: "파리 이야기", Tagline: "빛의 도시",
		})
		require.NoError(t, err)

		obj.Tagline = ""
		require.NoError(t, svc.UpdateContentObject(ctx, obj))

		reloaded, err := svc.GetContentObject(ctx, obj.ID)
		require.NoError(t, err)
		assert.Empty(t, reloaded.Tagline)
	})
}

func TestContentLibraryOperations(t *testing.T) {
	ctx := context.Background()
	svc := setupTestService(t)

	t.Run("create validates body against type", func(t *testing.T) {
		_, err := svc.CreateContentObject(ctx, guidebook.CreateContentObjectRequest{
			Type:  guidebook.ContentTypeTransport,
			Title: "파리 교통 가이드",
			Body:  &guidebook.StorytellingBody{Intro: "wrong body"},
		})
		assert.ErrorIs(t, err, guidebook.ErrBodyTypeMismatch)
	})

	t.Run("create rejects unknown type", func(t *testing.T) {
		_, err := svc.CreateContentObject(ctx, guidebook.CreateContentObjectRequest{
			Type: "weather", Title: "날씨",
		})
		assert.ErrorIs(t, err, guidebook.ErrInvalidContentType)
	})

	t.Run("create and get round-trips the body", func(t *testing.T) {
		obj, err := svc.CreateContentObject(ctx, guidebook.CreateContentObjectRequest{
			Type:     guidebook.ContentTypeTransport,
			TargetID: "paris",
			Target:   "city",
			Title:    "파리 교통 가이드",
			Body: &guidebook.TransportBody{
				Overview: "Metro covers the city",
				Modes:    []guidebook.TransportMode{{Name: "Metro", FareInfo: "€2.15 per ride"}},
			},
		})
		require.NoError(t, err)
		require.NotEmpty(t, obj.ID)
		assert.Zero(t, obj.ReferenceCount)

		got, err := svc.GetContentObject(ctx, obj.ID)
		require.NoError(t, err)
		body, ok := got.Body.(*guidebook.TransportBody)
		require.True(t, ok, "body decoded as %T", got.Body)
		assert.Equal(t, "Metro", body.Modes[0].Name)
	})

	t.Run("duplicate copies with suffix and zero refcount", func(t *testing.T) {
		src, err := svc.CreateContentObject(ctx, guidebook.CreateContentObjectRequest{
			Type:     guidebook.ContentTypeCityStory,
			TargetID: "paris",
			Title:    "파리 이야기",
			Body:     &guidebook.StorytellingBody{Intro: "City of light"},
		})
		require.NoError(t, err)

		dup, err := svc.DuplicateContentObject(ctx, src.ID)
		require.NoError(t, err)
		assert.NotEqual(t, src.ID, dup.ID)
		assert.Equal(t, "파리 이야기 (복사본)", dup.Title)
		assert.Zero(t, dup.ReferenceCount)

		// Independent copies: editing one leaves the other alone.
		dup.Title = "파리 이야기 수정본"
		require.NoError(t, svc.UpdateContentObject(ctx, dup))

		orig, err := svc.GetContentObject(ctx, src.ID)
		require.NoError(t, err)
		assert.Equal(t, "파리 이야기", orig.Title)
	})

	t.Run("list filters by type and target", func(t *testing.T) {
		transport := guidebook.ContentTypeTransport
		objs, err := svc.ListContentObjects(ctx, guidebook.ContentObjectFilter{Type: &transport})
		require.NoError(t, err)
		require.Len(t, objs, 1)
		assert.Equal(t, guidebook.ContentTypeTransport, objs[0].Type)

		objs, err = svc.ListContentObjects(ctx, guidebook.ContentObjectFilter{TargetID: "paris"})
		require.NoError(t, err)
		assert.Len(t, objs, 3)

		objs, err = svc.ListContentObjects(ctx, guidebook.ContentObjectFilter{TargetID: "nowhere"})
		require.NoError(t, err)
		assert.Empty(t, objs)
	})

	t.Run("delete", func(t *testing.T) {
		obj, err := svc.CreateContentObject(ctx, guidebook.CreateContentObjectRequest{
			Type: guidebook.ContentTypeEmergency, Title: "긴급 연락처",
		})
		require.NoError(t, err)

		require.NoError(t, svc.DeleteContentObject(ctx, obj.ID))
		_, err = svc.GetContentObject(ctx, obj.ID)
		assert.ErrorIs(t, err, guidebook.ErrContentObjectNotFound)

		err = svc.DeleteContentObject(ctx, obj.ID)
		assert.ErrorIs(t, err, guidebook.ErrContentObjectNotFound)
	})
}

func TestReferenceCounting(t *testing.T) {
	ctx := context.Background()
	svc := setupTestService(t)

	story, err := svc.CreateContentObject(ctx, guidebook.CreateContentObjectRequest{
		Type: guidebook.ContentTypeCityStory, TargetID: "paris", Title: "파리 이야기",
	})
	require.NoError(t, err)
	transport, err := svc.CreateContentObject(ctx, guidebook.CreateContentObjectRequest{
		Type: guidebook.ContentTypeTransport, TargetID: "paris", Title: "파리 교통",
	})
	require.NoError(t, err)

	gb, err := svc.AssembleGuidebook(ctx, guidebook.AssembleRequest{
		TitleKr: "파리 가이드", TitleEn: "Paris Guide", CityCode: "paris",
		Modules: guidebook.GuidebookModules{
			CityStorytelling: guidebook.Ref{ID: story.ID},
			Transport:        guidebook.Ref{ID: transport.ID},
		},
	})
	require.NoError(t, err)

	t.Run("assemble increments referenced objects", func(t *testing.T) {
		got, err := svc.GetContentObject(ctx, story.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, got.ReferenceCount)

		got, err = svc.GetContentObject(ctx, transport.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, got.ReferenceCount)
	})

	t.Run("reassemble adjusts only the diff", func(t *testing.T) {
		_, err := svc.AssembleGuidebook(ctx, guidebook.AssembleRequest{
			ID: gb.ID, TitleKr: "파리 가이드", TitleEn: "Paris Guide", CityCode: "paris",
			Modules: guidebook.GuidebookModules{
				CityStorytelling: guidebook.Ref{ID: story.ID},
			},
		})
		require.NoError(t, err)

		got, err := svc.GetContentObject(ctx, story.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, got.ReferenceCount)

		got, err = svc.GetContentObject(ctx, transport.ID)
		require.NoError(t, err)
		assert.Zero(t, got.ReferenceCount)
	})

	t.Run("delete guidebook releases references", func(t *testing.T) {
		require.NoError(t, svc.DeleteGuidebook(ctx, gb.ID))

		got, err := svc.GetContentObject(ctx, story.ID)
		require.NoError(t, err)
		assert.Zero(t, got.ReferenceCount)
	})

	t.Run("count never goes below zero", func(t *testing.T) {
		got, err := svc.GetContentObject(ctx, transport.ID)
		require.NoError(t, err)
		assert.Zero(t, got.ReferenceCount)
	})
}

func TestGuidebookRefArrayOperations(t *testing.T) {
	ctx := context.Background()
	svc := setupTestService(t)

	gb, err := svc.AssembleGuidebook(ctx, guidebook.AssembleRequest{
		TitleKr: "파리 가이드", TitleEn: "Paris Guide", CityCode: "paris",
		Modules: guidebook.GuidebookModules{
			AttractionPlaceIDs: []string{"louvre", "orsay"},
		},
	})
	require.NoError(t, err)

	t.Run("bulk add dedups against existing", func(t *testing.T) {
		got, err := svc.BulkAddGuidebookRefs(ctx, gb.ID, guidebook.RefArrayAttractionPlaces,
			[]string{"orsay", "eiffel", "louvre"})
		require.NoError(t, err)
		assert.Equal(t, []string{"louvre", "orsay", "eiffel"}, got.Modules.AttractionPlaceIDs)
		assert.Equal(t, 3, got.Counts.L3)
	})

	t.Run("move reorders", func(t *testing.T) {
		got, err := svc.MoveGuidebookRef(ctx, gb.ID, guidebook.RefArrayAttractionPlaces, 2, 0)
		require.NoError(t, err)
		assert.Equal(t, []string{"eiffel", "louvre", "orsay"}, got.Modules.AttractionPlaceIDs)
	})

	t.Run("move out of range", func(t *testing.T) {
		_, err := svc.MoveGuidebookRef(ctx, gb.ID, guidebook.RefArrayAttractionPlaces, 0, 9)
		assert.ErrorIs(t, err, guidebook.ErrIndexOutOfRange)
	})

	t.Run("remove shifts and recounts", func(t *testing.T) {
		got, err := svc.RemoveGuidebookRef(ctx, gb.ID, guidebook.RefArrayAttractionPlaces, 1)
		require.NoError(t, err)
		assert.Equal(t, []string{"eiffel", "orsay"}, got.Modules.AttractionPlaceIDs)
		assert.Equal(t, 2, got.Counts.L3)
	})

	t.Run("unknown array name", func(t *testing.T) {
		_, err := svc.BulkAddGuidebookRefs(ctx, gb.ID, "hotelIds", []string{"x"})
		assert.ErrorIs(t, err, guidebook.ErrUnknownRefArray)
	})

	t.Run("missing guidebook", func(t *testing.T) {
		_, err := svc.BulkAddGuidebookRefs(ctx, "ghost", guidebook.RefArrayShopping, []string{"x"})
		assert.ErrorIs(t, err, guidebook.ErrGuidebookNotFound)
	})
}

func TestGuidebookProvenance(t *testing.T) {
	ctx := context.Background()
	svc := setupTestService(t)

	country, err := svc.CreateCountry(ctx, guidebook.CreateCountryRequest{
		NameKr: "프랑스", NameEn: "France", ISOCode: "FR", Continent: "Europe",
	})
	require.NoError(t, err)

	countryStory, err := svc.CreateContentObject(ctx, guidebook.CreateContentObjectRequest{
		Type: guidebook.ContentTypeCountryStory, TargetID: country.ID, Title: "프랑스 이야기",
	})
	require.NoError(t, err)

	_, err = svc.SetCountryDetail(ctx, guidebook.SetCountryDetailRequest{
		CountryID:             country.ID,
		StorytellingLibraryID: countryStory.ID,
	})
	require.NoError(t, err)

	transport, err := svc.CreateContentObject(ctx, guidebook.CreateContentObjectRequest{
		Type: guidebook.ContentTypeTransport, TargetID: "paris", Title: "파리 교통",
	})
	require.NoError(t, err)

	_, err = svc.CreateCityDetail(ctx, guidebook.CreateCityDetailRequest{
		CityCode: "paris", NameKr: "파리", NameEn: "Paris", CountryID: country.ID,
		TransportationLibraryID: transport.ID,
	})
	require.NoError(t, err)

	modules, err := svc.PrefillGuidebookModules(ctx, country.ID, "paris")
	require.NoError(t, err)

	gb, err := svc.AssembleGuidebook(ctx, guidebook.AssembleRequest{
		TitleKr: "파리 가이드", TitleEn: "Paris Guide",
		CityCode: "paris", CountryCode: "FR",
		Modules: modules,
	})
	require.NoError(t, err)

	t.Run("load recomputes provenance from bindings", func(t *testing.T) {
		got, err := svc.GetGuidebook(ctx, gb.ID)
		require.NoError(t, err)
		assert.True(t, got.Modules.CountryStorytelling.AutoLinked())
		assert.True(t, got.Modules.Transport.AutoLinked())
		assert.True(t, got.Modules.CityStorytelling.IsZero())
	})

	t.Run("list carries the same provenance as get", func(t *testing.T) {
		gbs, err := svc.ListGuidebooks(ctx)
		require.NoError(t, err)
		require.Len(t, gbs, 1)
		assert.True(t, gbs[0].Modules.CountryStorytelling.AutoLinked())
		assert.True(t, gbs[0].Modules.Transport.AutoLinked())
	})

	t.Run("manual ref that drifts from binding loads as manual", func(t *testing.T) {
		other, err := svc.CreateContentObject(ctx, guidebook.CreateContentObjectRequest{
			Type: guidebook.ContentTypeTransport, TargetID: "paris", Title: "파리 교통 대안",
		})
		require.NoError(t, err)

		modules.Transport = guidebook.Ref{ID: other.ID}
		_, err = svc.AssembleGuidebook(ctx, guidebook.AssembleRequest{
			ID: gb.ID, TitleKr: "파리 가이드", TitleEn: "Paris Guide",
			CityCode: "paris", CountryCode: "FR",
			Modules: modules,
		})
		require.NoError(t, err)

		got, err := svc.GetGuidebook(ctx, gb.ID)
		require.NoError(t, err)
		assert.Equal(t, guidebook.SourceManual, got.Modules.Transport.Source)
		assert.False(t, got.Modules.Transport.AutoLinked())
	})
}
