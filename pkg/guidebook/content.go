package guidebook

import (
	"encoding/json"
	"fmt"
	"time"
)

// ContentObject is a standalone, reusable content library entry. It is
// referenced by id from country, city, and guidebook records, never embedded,
// so edits propagate to every referencing entity.
//
// The type-specific payload lives in Body, a tagged union keyed by Type.
// Mutable fields carry no omitempty so cleared values survive the store's
// merge-style Update.
type ContentObject struct {
	ID             string      `json:"id"`
	Type           ContentType `json:"type"`
	TargetID       string      `json:"target_id"`
	Target         string      `json:"target"`
	Title          string      `json:"title"`
	Tagline        string      `json:"tagline"`
	Keywords       []string    `json:"keywords"`
	ReferenceCount int         `json:"reference_count"`
	Body           ContentBody `json:"body"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// ContentBody is the type-specific payload of a content object. The concrete
// type must match the object's Type tag; Validate enforces the pairing.
type ContentBody interface {
	isContentBody()
}

// StorytellingBody is the payload for country-story and city-story objects.
type StorytellingBody struct {
	Intro    string    `json:"intro,omitempty"`
	Chapters []Chapter `json:"chapters,omitempty"`
}

// Chapter is one storytelling section.
type Chapter struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

// TransportBody is the payload for practical-transport objects.
type TransportBody struct {
	Overview string          `json:"overview,omitempty"`
	Modes    []TransportMode `json:"modes,omitempty"`
}

// TransportMode describes one way of getting around.
type TransportMode struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	FareInfo    string `json:"fare_info,omitempty"`
}

// FinanceBody is the payload for practical-finance objects.
type FinanceBody struct {
	CurrencyNotes  string   `json:"currency_notes,omitempty"`
	CardAcceptance string   `json:"card_acceptance,omitempty"`
	TippingCulture string   `json:"tipping_culture,omitempty"`
	ExchangeTips   []string `json:"exchange_tips,omitempty"`
}

// EmergencyBody is the payload for practical-emergency objects.
type EmergencyBody struct {
	PoliceNumber    string   `json:"police_number,omitempty"`
	AmbulanceNumber string   `json:"ambulance_number,omitempty"`
	FireNumber      string   `json:"fire_number,omitempty"`
	EmbassyInfo     string   `json:"embassy_info,omitempty"`
	Hospitals       []string `json:"hospitals,omitempty"`
}

func (StorytellingBody) isContentBody() {}
func (TransportBody) isContentBody()    {}
func (FinanceBody) isContentBody()      {}
func (EmergencyBody) isContentBody()    {}

// bodyFor returns the zero body value for a content type.
func bodyFor(t ContentType) (ContentBody, error) {
	switch t {
	case ContentTypeCountryStory, ContentTypeCityStory:
		return &StorytellingBody{}, nil
	case ContentTypeTransport:
		return &TransportBody{}, nil
	case ContentTypeFinance:
		return &FinanceBody{}, nil
	case ContentTypeEmergency:
		return &EmergencyBody{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidContentType, t)
	}
}

// Validate checks that the object's type tag is known and that the body's
// concrete type matches it.
func (o *ContentObject) Validate() error {
	if !o.Type.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidContentType, o.Type)
	}
	if o.Body == nil {
		return nil
	}
	ok := false
	switch o.Body.(type) {
	case *StorytellingBody, StorytellingBody:
		ok = o.Type == ContentTypeCountryStory || o.Type == ContentTypeCityStory
	case *TransportBody, TransportBody:
		ok = o.Type == ContentTypeTransport
	case *FinanceBody, FinanceBody:
		ok = o.Type == ContentTypeFinance
	case *EmergencyBody, EmergencyBody:
		ok = o.Type == ContentTypeEmergency
	}
	if !ok {
		return fmt.Errorf("%w: body %T does not match type %q", ErrBodyTypeMismatch, o.Body, o.Type)
	}
	return nil
}

// contentObjectJSON mirrors ContentObject with a raw body for two-phase
// decoding: the Type tag selects the concrete body type.
type contentObjectJSON struct {
	ID             string          `json:"id"`
	Type           ContentType     `json:"type"`
	TargetID       string          `json:"target_id"`
	Target         string          `json:"target"`
	Title          string          `json:"title"`
	Tagline        string          `json:"tagline"`
	Keywords       []string        `json:"keywords"`
	ReferenceCount int             `json:"reference_count"`
	Body           json.RawMessage `json:"body"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// UnmarshalJSON decodes the tagged union, selecting the body type from the
// Type field.
func (o *ContentObject) UnmarshalJSON(data []byte) error {
	var raw contentObjectJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	o.ID = raw.ID
	o.Type = raw.Type
	o.TargetID = raw.TargetID
	o.Target = raw.Target
	o.Title = raw.Title
	o.Tagline = raw.Tagline
	o.Keywords = raw.Keywords
	o.ReferenceCount = raw.ReferenceCount
	o.CreatedAt = raw.CreatedAt
	o.UpdatedAt = raw.UpdatedAt
	o.Body = nil

	if len(raw.Body) == 0 || string(raw.Body) == "null" {
		return nil
	}
	body, err := bodyFor(raw.Type)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw.Body, body); err != nil {
		return fmt.Errorf("decode %s body: %w", raw.Type, err)
	}
	o.Body = body
	return nil
}
