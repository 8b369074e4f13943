package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrInvalidCity   = errors.New("invalid city")
	ErrInvalidGuests = errors.New("invalid guest count")
)

type City string

const (
	Delhi     City = "Delhi"
	Mumbai    City = "Mumbai"
	Bangalore City = "Bangalore"

	DefaultCity = Delhi
)

var cities = []City{Delhi, Mumbai, Bangalore}

// Cities returns the selectable cities in display order.
func Cities() []City {
	out := make([]City, len(cities))
	copy(out, cities)
	return out
}

func (c City) String() string { return string(c) }

func (c City) Valid() bool {
	for _, x := range cities {
		if c == x {
			return true
		}
	}
	return false
}

// ParseCity matches s against the fixed city set ignoring case and surrounding
// space. An empty value selects DefaultCity.
func ParseCity(s string) (City, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultCity, nil
	}
	for _, c := range cities {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCity, s)
}

type Guests int

const (
	MinGuests     Guests = 1
	MaxGuests     Guests = 10
	DefaultGuests Guests = 2
)

func NewGuests(n int) (Guests, error) {
	g := Guests(n)
	if g < MinGuests || g > MaxGuests {
		return 0, fmt.Errorf("%w: %d not in [%d,%d]", ErrInvalidGuests, n, MinGuests, MaxGuests)
	}
	return g, nil
}

// ParseGuests parses a slider value; empty selects DefaultGuests.
func ParseGuests(s string) (Guests, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultGuests, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrInvalidGuests, s)
	}
	return NewGuests(n)
}

func (g Guests) Int() int { return int(g) }

// Clamp pins n into [MinGuests, MaxGuests]; used by controls that step the value.
func Clamp(n int) Guests {
	switch {
	case n < int(MinGuests):
		return MinGuests
	case n > int(MaxGuests):
		return MaxGuests
	}
	return Guests(n)
}

type Filters struct {
	City   City   `json:"city"`
	Guests Guests `json:"guests"`
}

func DefaultFilters() Filters { return Filters{City: DefaultCity, Guests: DefaultGuests} }

// ParseFilters validates raw control values. Both fields are checked so the
// caller sees every problem at once.
func ParseFilters(city, guests string) (Filters, error) {
	c, cerr := ParseCity(city)
	g, gerr := ParseGuests(guests)
	if err := errors.Join(cerr, gerr); err != nil {
		return Filters{}, err
	}
	return Filters{City: c, Guests: g}, nil
}

func (f Filters) Validate() error {
	var errs []error
	if !f.City.Valid() {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidCity, string(f.City)))
	}
	if _, err := NewGuests(int(f.Guests)); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Message is the success line shown for the current selection. The "guest(s)"
// wording is fixed regardless of count.
func Message(f Filters) string {
	return fmt.Sprintf("Showing hotels in %s for %d guest(s).", f.City, f.Guests)
}
