package models

import (
	"strings"
	"unicode"

	gpvalidator "github.com/go-playground/validator/v10"

	"github.com/ghuser/homebook/pkg/validator"
)

// PhoneDigits is the number of digits a contact phone must have.
const PhoneDigits = 10

// BookingRequest is the POST /bookings payload.
type BookingRequest struct {
	ServiceID     string   `json:"serviceId"              validate:"required,max=64"      example:"svc-deep-clean"`
	ServiceTitle  string   `json:"serviceTitle"           validate:"required,max=200"     example:"Deep Home Cleaning"`
	Category      string   `json:"category"               validate:"required,max=100"     example:"cleaning"`
	Date          string   `json:"date"                   validate:"required,datetime=2006-01-02" example:"2026-10-20"`
	Time          string   `json:"time"                   validate:"required,timeslot"    example:"10:00 AM"`
	Address       string   `json:"address"                validate:"required,min=10,max=500" example:"42, MG Road, Bengaluru 560001"`
	Landmark      string   `json:"landmark,omitempty"     validate:"max=200"              example:"Opposite metro station"`
	Phone         string   `json:"phone"                  validate:"required,phone"       example:"98765-43210"`
	Instructions  string   `json:"instructions,omitempty" validate:"max=1000"             example:"Ring the bell twice"`
	PaymentMethod string   `json:"paymentMethod"          validate:"required,paymentmethod" example:"upi"`
	Price         string   `json:"price"                  validate:"required,max=32"      example:"₹1,299"`
	Latitude      *float64 `json:"latitude,omitempty"     validate:"omitempty,latitude"   example:"12.9716"`
	Longitude     *float64 `json:"longitude,omitempty"    validate:"omitempty,longitude"  example:"77.5946"`
} // @name BookingRequest

func init() {
	mustRegister("phone", func(fl gpvalidator.FieldLevel) bool {
		return ValidPhone(fl.Field().String())
	}, "Please enter a valid phone number")
	mustRegister("timeslot", func(fl gpvalidator.FieldLevel) bool {
		return Slot(fl.Field().String()).Valid()
	}, "Please select a time")
	mustRegister("paymentmethod", func(fl gpvalidator.FieldLevel) bool {
		return PaymentMethod(fl.Field().String()).Valid()
	}, "Please select a payment method")
}

func mustRegister(tag string, fn gpvalidator.Func, msg string) {
	if err := validator.RegisterValidation(tag, fn, msg); err != nil {
		panic(err)
	}
}

// PhoneDigitsOf strips everything but ASCII digits from s.
func PhoneDigitsOf(s string) string {
	return strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}

// ValidPhone reports whether s has exactly PhoneDigits digits once every
// other character is removed.
func ValidPhone(s string) bool {
	return len(PhoneDigitsOf(s)) == PhoneDigits
}
