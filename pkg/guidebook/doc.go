// Package guidebook implements the content engine behind a travel-guidebook
// admin tool: a shared content library of typed, reusable objects, country to
// city inheritance of practical traveler fields with per-field overrides,
// automatic linking of guidebook modules to library objects, and guidebook
// assembly with derived per-tier counts.
//
// The engine persists through the docstore.Store port (a generic document
// database with CRUD and query-by-field), so an in-memory fake, PostgreSQL,
// or a cached store can back the same Service.
//
// Basic usage:
//
//	store := memory.New()
//	svc, err := guidebook.New(guidebook.WithDocumentStore(store))
//	if err != nil { ... }
//	country, err := svc.CreateCountry(ctx, guidebook.CreateCountryRequest{
//		NameKr: "프랑스", NameEn: "France", ISOCode: "FR", Continent: "Europe",
//	})
package guidebook
