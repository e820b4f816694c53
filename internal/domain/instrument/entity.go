package instrument

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyMaker    = errors.New("instrument must have a maker")
	ErrEmptyType     = errors.New("instrument must have a type")
	ErrInvalidStatus = errors.New("invalid instrument status")
)

// Status is the sales state of an instrument.
type Status string

const (
	StatusAvailable   Status = "Available"
	StatusBooked      Status = "Booked"
	StatusSold        Status = "Sold"
	StatusReserved    Status = "Reserved"
	StatusMaintenance Status = "Maintenance"
)

// ParseStatus validates a status string.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusAvailable, StatusBooked, StatusSold, StatusReserved, StatusMaintenance:
		return Status(s), nil
	}
	return "", ErrInvalidStatus
}

// Instrument is an item in the shop's inventory.
type Instrument struct {
	ID           string          `json:"id"`
	Maker        string          `json:"maker"`
	Type         string          `json:"type"`
	Subtype      string          `json:"subtype"`
	SerialNumber *string         `json:"serial_number"`
	Year         int             `json:"year"`
	Price        decimal.Decimal `json:"price"`
	Certificate  bool            `json:"certificate"`
	Status       Status          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// NewInstrument creates a new inventory item in Available status.
func NewInstrument(maker, instrumentType, subtype string, year int, price decimal.Decimal, certificate bool) (*Instrument, error) {
	if maker == "" {
		return nil, ErrEmptyMaker
	}
	if instrumentType == "" {
		return nil, ErrEmptyType
	}

	now := time.Now()
	return &Instrument{
		ID:          uuid.New().String(),
		Maker:       maker,
		Type:        instrumentType,
		Subtype:     subtype,
		Year:        year,
		Price:       price,
		Certificate: certificate,
		Status:      StatusAvailable,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Label returns "maker type" trimmed, used in exports and receipts.
func (i *Instrument) Label() string {
	if i.Maker != "" && i.Type != "" {
		return i.Maker + " " + i.Type
	}
	if i.Maker != "" {
		return i.Maker
	}
	return i.Type
}

// SetSerialNumber assigns the generated serial number.
func (i *Instrument) SetSerialNumber(number string) {
	i.SerialNumber = &number
	i.UpdatedAt = time.Now()
}

// SetStatus moves the instrument to a new sales state.
func (i *Instrument) SetStatus(status Status) error {
	if _, err := ParseStatus(string(status)); err != nil {
		return err
	}
	i.Status = status
	i.UpdatedAt = time.Now()
	return nil
}

// Update replaces the mutable fields of the instrument.
func (i *Instrument) Update(maker, instrumentType, subtype string, year int, price decimal.Decimal, certificate bool) error {
	if maker == "" {
		return ErrEmptyMaker
	}
	if instrumentType == "" {
		return ErrEmptyType
	}

	i.Maker = maker
	i.Type = instrumentType
	i.Subtype = subtype
	i.Year = year
	i.Price = price
	i.Certificate = certificate
	i.UpdatedAt = time.Now()
	return nil
}
