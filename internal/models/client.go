package models

// ClientType discriminates the two kinds of clients the platform manages.
type ClientType string

const (
	ClientNatural   ClientType = "natural"
	ClientJuridical ClientType = "juridical"
)

// Address references ubigeo entries both by id and by denormalized name,
// mirroring what the backend stores.
type Address struct {
	Street         string `json:"street"`
	DepartmentID   string `json:"department_id"`
	DepartmentName string `json:"department_name"`
	ProvinceID     string `json:"province_id"`
	ProvinceName   string `json:"province_name"`
	DistrictID     string `json:"district_id"`
	DistrictName   string `json:"district_name"`
}

// Spouse is only present on natural clients that declare one.
type Spouse struct {
	Names           string `json:"names"`
	PaternalSurname string `json:"paternal_surname"`
	MaternalSurname string `json:"maternal_surname"`
	DocumentType    string `json:"document_type"`
	DocumentNumber  string `json:"document_number"`
}

// Client is a customer of the permitting business. Natural clients carry
// personal names and an identity document; juridical clients carry a
// business name and RUC.
type Client struct {
	ID         string     `json:"id,omitempty"`
	ClientType ClientType `json:"clientType"`

	// Natural person fields.
	Names           string  `json:"names,omitempty"`
	PaternalSurname string  `json:"paternalSurname,omitempty"`
	MaternalSurname string  `json:"maternalSurname,omitempty"`
	DocumentType    string  `json:"docType,omitempty"`
	DocumentNumber  string  `json:"docNumber,omitempty"`
	Spouse          *Spouse `json:"spouse,omitempty"`

	// Juridical person fields.
	BusinessName string `json:"businessName,omitempty"`
	RUC          string `json:"ruc,omitempty"`

	Email     string  `json:"email,omitempty"`
	Phone     string  `json:"phone,omitempty"`
	Address   Address `json:"address"`
	CreatedAt string  `json:"created_at,omitempty"`
	UpdatedAt string  `json:"updated_at,omitempty"`
}

// DisplayName returns the name a list view shows for the client.
func (c *Client) DisplayName() string {
	if c.ClientType == ClientJuridical {
		return c.BusinessName
	}
	name := c.Names
	if c.PaternalSurname != "" {
		name += " " + c.PaternalSurname
	}
	if c.MaternalSurname != "" {
		name += " " + c.MaternalSurname
	}
	return name
}
