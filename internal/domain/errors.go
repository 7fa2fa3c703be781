package domain

import "errors"

var (
	// The order has no lines, so no candidate set can be computed.
	ErrInvalidOrder = errors.New("invalid order")
	// The geocoding provider found nothing for the address.
	ErrGeocodeNoResult = errors.New("geocode: no result")
	// The geocoding provider could not be reached or answered with an error.
	ErrGeocodeUnavailable = errors.New("geocode: provider unavailable")
)
