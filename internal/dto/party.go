package dto

import "github.com/sind14/Gastronomy-Service/internal/domain"

type AddressRequest struct {
	City        string  `json:"city"`
	Street      string  `json:"street"`
	HouseNumber string  `json:"house_number"`
	PostalCode  *string `json:"postal_code"`
	Apartment   *string `json:"apartment"`
	Note        *string `json:"note"`
}

type AddressResponse struct {
	ID          uint    `json:"id"`
	City        string  `json:"city"`
	Street      string  `json:"street"`
	HouseNumber string  `json:"house_number"`
	PostalCode  *string `json:"postal_code"`
	Apartment   *string `json:"apartment"`
	Note        *string `json:"note"`
}

type CompanyRequest struct {
	Name       string `json:"name"`
	TaxID      string `json:"tax_id"`
	AddressIDs []uint `json:"addresses"`
}

type CompanyResponse struct {
	ID        uint              `json:"id"`
	Name      string            `json:"name"`
	TaxID     string            `json:"tax_id"`
	Addresses []AddressResponse `json:"addresses"`
}

type ClientRequest struct {
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	Phone        *string `json:"phone"`
	Email        *string `json:"email"`
	DocumentID   string  `json:"document_id"`
	DocumentType string  `json:"document_type"`
	CompanyIDs   []uint  `json:"companies"`
}

type ClientResponse struct {
	ID           uint              `json:"id"`
	FirstName    string            `json:"first_name"`
	LastName     string            `json:"last_name"`
	Phone        *string           `json:"phone"`
	Email        *string           `json:"email"`
	DocumentID   string            `json:"document_id"`
	DocumentType string            `json:"document_type"`
	Companies    []CompanyResponse `json:"companies"`
}

func NewAddressResponse(a domain.Address) AddressResponse {
	return AddressResponse{
		ID:          a.ID,
		City:        a.City,
		Street:      a.Street,
		HouseNumber: a.HouseNumber,
		PostalCode:  a.PostalCode,
		Apartment:   a.Apartment,
		Note:        a.Note,
	}
}

func NewCompanyResponse(c domain.Company) CompanyResponse {
	addresses := make([]AddressResponse, len(c.Addresses))
	for i, a := range c.Addresses {
		addresses[i] = NewAddressResponse(a)
	}
	return CompanyResponse{ID: c.ID, Name: c.Name, TaxID: c.TaxID, Addresses: addresses}
}

func NewClientResponse(c domain.Client) ClientResponse {
	companies := make([]CompanyResponse, len(c.Companies))
	for i, co := range c.Companies {
		companies[i] = NewCompanyResponse(co)
	}
	return ClientResponse{
		ID:           c.ID,
		FirstName:    c.FirstName,
		LastName:     c.LastName,
		Phone:        c.Phone,
		Email:        c.Email,
		DocumentID:   c.DocumentID,
		DocumentType: c.DocumentType,
		Companies:    companies,
	}
}
