package types

import "strings"

// ShippingInfo is the free-text contact and address block captured at checkout.
type ShippingInfo struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zip_code"`
}

// MissingFields lists the required fields that are blank, in a stable order.
func (s ShippingInfo) MissingFields() []string {
	required := []struct {
		name  string
		value string
	}{
		{"first_name", s.FirstName},
		{"last_name", s.LastName},
		{"email", s.Email},
		{"address", s.Address},
		{"city", s.City},
		{"state", s.State},
		{"zip_code", s.ZipCode},
	}

	var missing []string
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			missing = append(missing, field.name)
		}
	}
	return missing
}

// FormatAddress renders the single-line shipping address stored on the order.
func (s ShippingInfo) FormatAddress() string {
	return s.Address + ", " + s.City + ", " + s.State + " " + s.ZipCode
}
