package domain

type Address struct {
	ID          uint
	City        string
	Street      string
	HouseNumber string
	PostalCode  *string
	Apartment   *string
	Note        *string
}

// Company is identified by its tax id, which is unique across companies.
type Company struct {
	ID        uint
	Name      string
	TaxID     string
	Addresses []Address
}

const (
	DocumentTypeNationalID = "national_id"
	DocumentTypePassport   = "passport"
	DocumentTypeIDCard     = "id_card"
	DocumentTypeOther      = "other"
)

func IsValidDocumentType(t string) bool {
	switch t {
	case DocumentTypeNationalID, DocumentTypePassport, DocumentTypeIDCard, DocumentTypeOther:
		return true
	}
	return false
}

// Client is identified by the (document id, document type) pair, which is
// unique across clients.
type Client struct {
	ID           uint
	FirstName    string
	LastName     string
	Phone        *string
	Email        *string
	DocumentID   string
	DocumentType string
	Companies    []Company
}
