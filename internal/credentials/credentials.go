// Package credentials loads and checks the service-account key used to reach
// the document store.
package credentials

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/bilgisen/newsseed/internal/models"
)

// ServiceAccount holds the fields of a Google service-account key that are
// required to open a client.
type ServiceAccount struct {
	Type        string `json:"type" validate:"required,eq=service_account"`
	ProjectID   string `json:"project_id" validate:"required"`
	ClientEmail string `json:"client_email" validate:"required,email"`
	PrivateKey  string `json:"private_key" validate:"required"`

	// Raw is the file content handed to the SDK unchanged
	Raw []byte `json:"-"`
}

// Load reads the key file at path and validates it
func Load(path string) (*ServiceAccount, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates key file content
func Parse(data []byte) (*ServiceAccount, error) {
	var sa ServiceAccount
	if err := json.Unmarshal(data, &sa); err != nil {
		return nil, fmt.Errorf("failed to parse credentials: %w", err)
	}
	if err := models.NewValidator().Struct(&sa); err != nil {
		return nil, fmt.Errorf("invalid service account key: %w", err)
	}
	sa.Raw = data
	return &sa, nil
}
