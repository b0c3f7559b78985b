package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Customer is the flat record exchanged with the customers endpoint.
type Customer struct {
	ID            int    `json:"id" yaml:"id"`
	FirstName     string `json:"firstName" yaml:"firstName"`
	LastName      string `json:"lastName" yaml:"lastName"`
	Email         string `json:"email" yaml:"email"`
	Telephone     string `json:"telephone" yaml:"telephone"`
	StreetAddress string `json:"streetAddress" yaml:"streetAddress"`
	City          string `json:"city" yaml:"city"`
	Country       string `json:"country" yaml:"country"`
	Postcode      string `json:"postcode" yaml:"postcode"`
}

// DemoCustomer returns the record sent by the create operation.
// ID is 0 so the server assigns the real identifier.
func DemoCustomer() Customer {
	return Customer{
		ID:            0,
		FirstName:     "Jane",
		LastName:      "Doe",
		Email:         "jane.doe@mia.com",
		Telephone:     "0871234567",
		StreetAddress: "123 Main Street",
		City:          "Dublin",
		Country:       "Ireland",
		Postcode:      "D01 AB23",
	}
}

// LoadCustomer reads a customer record from a YAML or JSON file.
func LoadCustomer(path string) (Customer, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Customer{}, errors.New("customer file path is empty")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Customer{}, fmt.Errorf("read customer file: %w", err)
	}

	var c Customer
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, &c)
	case ".json":
		err = json.Unmarshal(raw, &c)
	default:
		return Customer{}, fmt.Errorf("customer file format %q not recognized (expected YAML or JSON)", ext)
	}
	if err != nil {
		return Customer{}, fmt.Errorf("decode customer file: %w", err)
	}
	return c, nil
}
