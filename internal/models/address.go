package models

import "fmt"

// Address is a structured street address returned by the postal directory for a postal code.
type Address struct {
	PostalCode string `json:"postal_code"` // PostalCode is the code the address was resolved from.
	Street     string `json:"street"`      // Street is the street name (logradouro).
	District   string `json:"district"`    // District is the neighbourhood (bairro).
	City       string `json:"city"`        // City is the municipality (localidade).
	Region     string `json:"region"`      // Region is the state abbreviation (uf).
}

// String renders the address as free text for geocoding: "{street}, {district}, {city} - {region}".
func (a Address) String() string {
	return fmt.Sprintf("%s, %s, %s - %s", a.Street, a.District, a.City, a.Region)
}
