package models_test

import (
	"testing"

	"github.com/UnknownOlympus/pinpoint/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestAddress_String(t *testing.T) {
	addr := models.Address{Street: "Rua X", District: "Bairro Y", City: "Cidade Z", Region: "UF"}

	assert.Equal(t, "Rua X, Bairro Y, Cidade Z - UF", addr.String())
}

func TestAddress_StringWithEmptyFields(t *testing.T) {
	// ViaCEP returns empty street and district for city-wide postal codes.
	addr := models.Address{City: "Bertioga", Region: "SP"}

	assert.Equal(t, ", , Bertioga - SP", addr.String())
}
