package eventbrite

import (
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// EventStatus represents the lifecycle state of an event
type EventStatus string

const (
	EventStatusDraft     EventStatus = "draft"
	EventStatusLive      EventStatus = "live"
	EventStatusStarted   EventStatus = "started"
	EventStatusEnded     EventStatus = "ended"
	EventStatusCompleted EventStatus = "completed"
	EventStatusCanceled  EventStatus = "canceled"
)

// IsPublic reports whether the event is visible to attendees
func (s EventStatus) IsPublic() bool {
	return s == EventStatusLive || s == EventStatusStarted
}

// MultipartText holds a value in both plain text and HTML form
type MultipartText struct {
	Text string `json:"text,omitempty"`
	HTML string `json:"html,omitempty"`
}

// String returns the plain text, falling back to the HTML
func (m *MultipartText) String() string {
	if m == nil {
		return ""
	}
	if m.Text != "" {
		return m.Text
	}
	return m.HTML
}

// DateTimeTZ is an instant as Eventbrite returns it: the local wall time,
// its timezone and the UTC instant.
type DateTimeTZ struct {
	Timezone string    `json:"timezone,omitempty"`
	Local    string    `json:"local,omitempty"`
	UTC      time.Time `json:"utc"`
}

// NewDateTimeTZ builds a DateTimeTZ from t, using t's location as timezone.
// time.Local has no zone name, so it is resolved through $TZ and falls back
// to UTC. The instant is truncated to whole seconds.
func NewDateTimeTZ(t time.Time) *DateTimeTZ {
	t = t.Truncate(time.Second)
	if t.Location() == time.Local {
		t = t.In(localZone())
	}
	return &DateTimeTZ{
		Timezone: t.Location().String(),
		Local:    t.Format(dateLayout),
		UTC:      t.UTC(),
	}
}

// localZone returns the named location behind time.Local, or UTC
func localZone() *time.Location {
	name := strings.TrimPrefix(os.Getenv("TZ"), ":")
	if name == "" || name == "Local" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// IsZero reports whether the instant is unset
func (d *DateTimeTZ) IsZero() bool {
	return d == nil || d.UTC.IsZero()
}

// Money is a currency amount; Value is in minor units (cents)
type Money struct {
	Currency   string          `json:"currency"`
	Value      int64           `json:"value"`
	MajorValue decimal.Decimal `json:"major_value"`
	Display    string          `json:"display,omitempty"`
}

// Address is a postal address with optional coordinates
type Address struct {
	Address1                string `json:"address_1,omitempty"`
	Address2                string `json:"address_2,omitempty"`
	City                    string `json:"city,omitempty"`
	Region                  string `json:"region,omitempty"`
	PostalCode              string `json:"postal_code,omitempty"`
	Country                 string `json:"country,omitempty"`
	Latitude                string `json:"latitude,omitempty"`
	Longitude               string `json:"longitude,omitempty"`
	LocalizedAddressDisplay string `json:"localized_address_display,omitempty"`
}

// Event represents an Eventbrite event
type Event struct {
	ID                string         `json:"id,omitempty"`
	Name              *MultipartText `json:"name,omitempty"`
	Description       *MultipartText `json:"description,omitempty"`
	Summary           string         `json:"summary,omitempty"`
	URL               string         `json:"url,omitempty"`
	Start             *DateTimeTZ    `json:"start,omitempty"`
	End               *DateTimeTZ    `json:"end,omitempty"`
	Created           *time.Time     `json:"created,omitempty"`
	Changed           *time.Time     `json:"changed,omitempty"`
	Published         *time.Time     `json:"published,omitempty"`
	Status            EventStatus    `json:"status,omitempty"`
	Currency          string         `json:"currency,omitempty"`
	Capacity          int            `json:"capacity,omitempty"`
	OnlineEvent       bool           `json:"online_event"`
	Listed            bool           `json:"listed"`
	Shareable         bool           `json:"shareable"`
	InviteOnly        bool           `json:"invite_only"`
	ShowRemaining     bool           `json:"show_remaining"`
	IsFree            bool           `json:"is_free"`
	IsSeries          bool           `json:"is_series,omitempty"`
	IsReservedSeating bool           `json:"is_reserved_seating,omitempty"`
	Locale            string         `json:"locale,omitempty"`
	OrganizerID       string         `json:"organizer_id,omitempty"`
	VenueID           string         `json:"venue_id,omitempty"`
	CategoryID        string         `json:"category_id,omitempty"`
	SubcategoryID     string         `json:"subcategory_id,omitempty"`
	FormatID          string         `json:"format_id,omitempty"`
	LogoID            string         `json:"logo_id,omitempty"`
}

// Title returns the event's plain-text name
func (e *Event) Title() string {
	return e.Name.String()
}

// EventDescription is the full HTML description of an event
type EventDescription struct {
	Description string `json:"description"`
}

// Venue represents a physical or virtual event location
type Venue struct {
	ID             string  `json:"id,omitempty"`
	Name           string  `json:"name,omitempty"`
	Address        Address `json:"address"`
	Capacity       int     `json:"capacity,omitempty"`
	AgeRestriction string  `json:"age_restriction,omitempty"`
	Latitude       string  `json:"latitude,omitempty"`
	Longitude      string  `json:"longitude,omitempty"`
	ResourceURI    string  `json:"resource_uri,omitempty"`
}

// Organizer represents an event organizer profile
type Organizer struct {
	ID              string         `json:"id,omitempty"`
	Name            string         `json:"name,omitempty"`
	Description     *MultipartText `json:"description,omitempty"`
	LongDescription *MultipartText `json:"long_description,omitempty"`
	Website         string         `json:"website,omitempty"`
	URL             string         `json:"url,omitempty"`
	LogoID          string         `json:"logo_id,omitempty"`
	NumPastEvents   int            `json:"num_past_events,omitempty"`
	NumFutureEvents int            `json:"num_future_events,omitempty"`
}

// AttendeeProfile holds the attendee's contact details
type AttendeeProfile struct {
	Name      string `json:"name,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email,omitempty"`
}

// AttendeeCosts breaks down what an attendee paid
type AttendeeCosts struct {
	BasePrice Money `json:"base_price"`
	Gross     Money `json:"gross"`
	Tax       Money `json:"tax"`
	Fee       Money `json:"eventbrite_fee"`
}

// Attendee represents a single ticket holder for an event
type Attendee struct {
	ID              string          `json:"id,omitempty"`
	Created         *time.Time      `json:"created,omitempty"`
	Changed         *time.Time      `json:"changed,omitempty"`
	EventID         string          `json:"event_id,omitempty"`
	OrderID         string          `json:"order_id,omitempty"`
	TicketClassID   string          `json:"ticket_class_id,omitempty"`
	TicketClassName string          `json:"ticket_class_name,omitempty"`
	Status          string          `json:"status,omitempty"`
	Quantity        int             `json:"quantity,omitempty"`
	CheckedIn       bool            `json:"checked_in"`
	Cancelled       bool            `json:"cancelled"`
	Refunded        bool            `json:"refunded"`
	Profile         AttendeeProfile `json:"profile"`
	Costs           *AttendeeCosts  `json:"costs,omitempty"`
}

// TicketClass represents a ticket type offered for an event
type TicketClass struct {
	ID              string     `json:"id,omitempty"`
	EventID         string     `json:"event_id,omitempty"`
	Name            string     `json:"name,omitempty"`
	Description     string     `json:"description,omitempty"`
	Cost            *Money     `json:"cost,omitempty"`
	Fee             *Money     `json:"fee,omitempty"`
	Free            bool       `json:"free"`
	Donation        bool       `json:"donation"`
	Hidden          bool       `json:"hidden"`
	IncludeFee      bool       `json:"include_fee"`
	QuantityTotal   int        `json:"quantity_total,omitempty"`
	QuantitySold    int        `json:"quantity_sold,omitempty"`
	MinimumQuantity int        `json:"minimum_quantity,omitempty"`
	MaximumQuantity int        `json:"maximum_quantity,omitempty"`
	SalesStart      *time.Time `json:"sales_start,omitempty"`
	SalesEnd        *time.Time `json:"sales_end,omitempty"`
	OnSaleStatus    string     `json:"on_sale_status,omitempty"`
}

// Remaining returns how many tickets of this class are still available
func (t *TicketClass) Remaining() int {
	return max(t.QuantityTotal-t.QuantitySold, 0)
}

// AccessCode unlocks hidden ticket classes for an event
type AccessCode struct {
	ID                string      `json:"id,omitempty"`
	Code              string      `json:"code"`
	TicketIDs         []string    `json:"ticket_ids,omitempty"`
	QuantityAvailable int         `json:"quantity_available"`
	QuantitySold      int         `json:"quantity_sold"`
	StartDate         *DateTimeTZ `json:"start_date,omitempty"`
	EndDate           *DateTimeTZ `json:"end_date,omitempty"`
	EventID           string      `json:"event_id,omitempty"`
}

// Category is an event category such as Music or Business
type Category struct {
	ID                 string        `json:"id,omitempty"`
	Name               string        `json:"name,omitempty"`
	NameLocalized      string        `json:"name_localized,omitempty"`
	ShortName          string        `json:"short_name,omitempty"`
	ShortNameLocalized string        `json:"short_name_localized,omitempty"`
	ResourceURI        string        `json:"resource_uri,omitempty"`
	Subcategories      []Subcategory `json:"subcategories,omitempty"`
}

// Subcategory is a child of a Category
type Subcategory struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ResourceURI string `json:"resource_uri,omitempty"`
}

// ImageOriginal describes the uploaded, uncropped image
type ImageOriginal struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// CropMask is the region of the original image that is displayed
type CropMask struct {
	TopLeft struct {
		X int `json:"x"`
		Y int `json:"y"`
	} `json:"top_left"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Image is an uploaded media item such as an event logo
type Image struct {
	ID          string         `json:"id,omitempty"`
	URL         string         `json:"url,omitempty"`
	AspectRatio string         `json:"aspect_ratio,omitempty"`
	EdgeColor   string         `json:"edge_color,omitempty"`
	CropMask    *CropMask      `json:"crop_mask,omitempty"`
	Original    *ImageOriginal `json:"original,omitempty"`
}

// UserEmail is one of the addresses attached to a user account
type UserEmail struct {
	Email    string `json:"email"`
	Verified bool   `json:"verified"`
	Primary  bool   `json:"primary"`
}

// User represents an Eventbrite account
type User struct {
	ID        string      `json:"id,omitempty"`
	Name      string      `json:"name,omitempty"`
	FirstName string      `json:"first_name,omitempty"`
	LastName  string      `json:"last_name,omitempty"`
	Emails    []UserEmail `json:"emails,omitempty"`
}

// PrimaryEmail returns the user's primary email, or the first one listed
func (u *User) PrimaryEmail() string {
	for _, e := range u.Emails {
		if e.Primary {
			return e.Email
		}
	}
	if len(u.Emails) > 0 {
		return u.Emails[0].Email
	}
	return ""
}

// GetDisplayName returns the best available display name for the user
func (u *User) GetDisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	if full := strings.TrimSpace(u.FirstName + " " + u.LastName); full != "" {
		return full
	}
	return u.PrimaryEmail()
}
