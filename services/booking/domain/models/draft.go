package models

import "github.com/ghuser/homebook/pkg/geo"

// ServiceRef identifies the service being booked. It is fixed when the
// wizard starts.
type ServiceRef struct {
	ServiceID string `json:"serviceId"`
	Title     string `json:"title"`
	Category  string `json:"category"`
	// UnitPrice is the display price, e.g. "₹1,299".
	UnitPrice string `json:"unitPrice"`
}

// Schedule is the chosen date and start time. A nil Date or empty Time
// means not chosen yet.
type Schedule struct {
	Date *Date `json:"date,omitempty"`
	Time Slot  `json:"time,omitempty"`
}

// Location is where the service is performed.
type Location struct {
	Address     string           `json:"address,omitempty"`
	Landmark    string           `json:"landmark,omitempty"`
	Coordinates *geo.Coordinates `json:"coordinates,omitempty"`
}

// Contact is how the professional reaches the customer.
type Contact struct {
	Phone        string `json:"phone,omitempty"`
	Instructions string `json:"instructions,omitempty"`
}

// Payment is the selected payment method id.
type Payment struct {
	MethodID PaymentMethod `json:"methodId,omitempty"`
}

// Draft is the in-progress booking collected by the wizard.
type Draft struct {
	Service    ServiceRef  `json:"service"`
	Schedule   Schedule    `json:"schedule"`
	Location   Location    `json:"location"`
	Contact    Contact     `json:"contact"`
	Payment    Payment     `json:"payment"`
	Surcharges []Surcharge `json:"surcharges,omitempty"`
}

// Clone returns a deep copy of d.
func (d Draft) Clone() Draft {
	c := d
	if d.Schedule.Date != nil {
		date := *d.Schedule.Date
		c.Schedule.Date = &date
	}
	if d.Location.Coordinates != nil {
		coords := *d.Location.Coordinates
		c.Location.Coordinates = &coords
	}
	if d.Surcharges != nil {
		c.Surcharges = append([]Surcharge(nil), d.Surcharges...)
	}
	return c
}

// Total is the draft's price including surcharges.
func (d Draft) Total() int64 {
	return Total(d.Service, d.Surcharges...)
}
