package models

import "github.com/shopspring/decimal"

// ServiceDefinition describes one service the business offers (a permit
// tramitation, a study, ...) and the workflow resource that implements it.
type ServiceDefinition struct {
	ID          string          `json:"id,omitempty"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Resource    string          `json:"resource"`
	Price       decimal.Decimal `json:"price"`
	Active      bool            `json:"active"`
	CreatedAt   string          `json:"created_at,omitempty"`
}
