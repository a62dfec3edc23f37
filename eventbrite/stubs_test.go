package eventbrite

import (
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"
)

type EventStub struct {
	event Event
}

func NewEventStub() EventStub {
	start := time.Now().UTC().Add(72 * time.Hour).Truncate(time.Second)
	created := time.Now().UTC().Add(-24 * time.Hour).Truncate(time.Second)

	event := Event{
		ID:          gofakeit.Numerify("##########"),
		Name:        &MultipartText{Text: gofakeit.Sentence(3)},
		Description: &MultipartText{Text: gofakeit.Sentence(10), HTML: "<p>" + gofakeit.Word() + "</p>"},
		Summary:     gofakeit.Sentence(6),
		URL:         gofakeit.URL(),
		Start:       NewDateTimeTZ(start),
		End:         NewDateTimeTZ(start.Add(3 * time.Hour)),
		Created:     &created,
		Status:      EventStatusDraft,
		Currency:    "USD",
		Capacity:    gofakeit.Number(10, 500),
		Listed:      true,
		Shareable:   true,
		Locale:      "en_US",
		OrganizerID: gofakeit.Numerify("########"),
		VenueID:     gofakeit.Numerify("########"),
		CategoryID:  "103",
	}

	return EventStub{event: event}
}

func (es EventStub) WithID(id string) EventStub {
	es.event.ID = id
	return es
}

func (es EventStub) WithName(name string) EventStub {
	es.event.Name = &MultipartText{Text: name}
	return es
}

func (es EventStub) WithStatus(status EventStatus) EventStub {
	es.event.Status = status
	return es
}

func (es EventStub) WithStart(start time.Time) EventStub {
	es.event.Start = NewDateTimeTZ(start)
	return es
}

func (es EventStub) Get() Event {
	return es.event
}

type AccessCodeStub struct {
	code AccessCode
}

func NewAccessCodeStub() AccessCodeStub {
	start := time.Now().UTC().Truncate(time.Second)

	code := AccessCode{
		ID:                gofakeit.Numerify("#########"),
		Code:              gofakeit.LetterN(8),
		TicketIDs:         []string{gofakeit.Numerify("#########"), gofakeit.Numerify("#########")},
		QuantityAvailable: gofakeit.Number(1, 100),
		StartDate:         NewDateTimeTZ(start),
		EndDate:           NewDateTimeTZ(start.Add(14 * 24 * time.Hour)),
		EventID:           gofakeit.Numerify("##########"),
	}

	return AccessCodeStub{code: code}
}

func (as AccessCodeStub) WithEventID(eventID string) AccessCodeStub {
	as.code.EventID = eventID
	return as
}

func (as AccessCodeStub) WithTicketIDs(ids ...string) AccessCodeStub {
	as.code.TicketIDs = ids
	return as
}

func (as AccessCodeStub) Get() AccessCode {
	return as.code
}

func NewVenueStub() Venue {
	return Venue{
		ID:   gofakeit.Numerify("########"),
		Name: gofakeit.Company(),
		Address: Address{
			Address1:   gofakeit.Street(),
			City:       gofakeit.City(),
			PostalCode: gofakeit.Zip(),
			Country:    gofakeit.CountryAbr(),
		},
		Capacity:       gofakeit.Number(50, 5000),
		AgeRestriction: "18+",
	}
}

func NewOrganizerStub() Organizer {
	return Organizer{
		ID:              gofakeit.Numerify("########"),
		Name:            gofakeit.Company(),
		Description:     &MultipartText{Text: gofakeit.Sentence(8)},
		Website:         gofakeit.URL(),
		NumFutureEvents: gofakeit.Number(0, 20),
	}
}

func NewTicketClassStub(eventID string) TicketClass {
	salesStart := time.Now().UTC().Truncate(time.Second)
	salesEnd := salesStart.Add(7 * 24 * time.Hour)
	cents := int64(gofakeit.Number(500, 10000))

	return TicketClass{
		ID:          gofakeit.Numerify("#########"),
		EventID:     eventID,
		Name:        gofakeit.Word(),
		Description: gofakeit.Sentence(5),
		Cost: &Money{
			Currency:   "USD",
			Value:      cents,
			MajorValue: decimal.New(cents, -2),
		},
		QuantityTotal:   100,
		QuantitySold:    gofakeit.Number(0, 100),
		MaximumQuantity: 10,
		SalesStart:      &salesStart,
		SalesEnd:        &salesEnd,
	}
}
