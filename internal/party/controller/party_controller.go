package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/sind14/Gastronomy-Service/internal/commons"
	"github.com/sind14/Gastronomy-Service/internal/domain"
	"github.com/sind14/Gastronomy-Service/internal/dto"
	apperrors "github.com/sind14/Gastronomy-Service/internal/errors"
)

type AddressRepository interface {
	Insert(ctx context.Context, a domain.Address) (*domain.Address, error)
	FindByID(ctx context.Context, id uint) (*domain.Address, error)
	FindAll(ctx context.Context) ([]domain.Address, error)
	Update(ctx context.Context, a domain.Address) error
	Delete(ctx context.Context, id uint) error
}

type CompanyRepository interface {
	Insert(ctx context.Context, name, taxID string, addressIDs []uint) (*domain.Company, error)
	FindByID(ctx context.Context, id uint) (*domain.Company, error)
	FindAll(ctx context.Context) ([]domain.Company, error)
	Update(ctx context.Context, id uint, name, taxID string, addressIDs []uint) (*domain.Company, error)
	Delete(ctx context.Context, id uint) error
}

type ClientRepository interface {
	Insert(ctx context.Context, c domain.Client, companyIDs []uint) (*domain.Client, error)
	FindByID(ctx context.Context, id uint) (*domain.Client, error)
	FindAll(ctx context.Context) ([]domain.Client, error)
	Update(ctx context.Context, c domain.Client, companyIDs []uint) (*domain.Client, error)
	Delete(ctx context.Context, id uint) error
}

// PartyController serves CRUD over the parties an order can reference:
// delivery addresses, companies and clients.
type PartyController struct {
	addresses AddressRepository
	companies CompanyRepository
	clients   ClientRepository
	logger    *zap.Logger
}

func NewPartyController(
	addresses AddressRepository,
	companies CompanyRepository,
	clients ClientRepository,
	logger *zap.Logger,
) *PartyController {
	return &PartyController{
		addresses: addresses,
		companies: companies,
		clients:   clients,
		logger:    logger,
	}
}

func (c *PartyController) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		commons.WriteValidationError(c.logger, w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return false
	}
	return true
}

func validateAddressRequest(req dto.AddressRequest) error {
	var details []apperrors.ValidationDetail
	if req.City == "" {
		details = append(details, apperrors.ValidationDetail{Field: "city", Message: "city must not be empty"})
	}
	if req.Street == "" {
		details = append(details, apperrors.ValidationDetail{Field: "street", Message: "street must not be empty"})
	}
	if req.HouseNumber == "" {
		details = append(details, apperrors.ValidationDetail{Field: "house_number", Message: "house_number must not be empty"})
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}
	return nil
}

func validateCompanyRequest(req dto.CompanyRequest) error {
	var details []apperrors.ValidationDetail
	if req.Name == "" {
		details = append(details, apperrors.ValidationDetail{Field: "name", Message: "name must not be empty"})
	}
	if req.TaxID == "" {
		details = append(details, apperrors.ValidationDetail{Field: "tax_id", Message: "tax_id must not be empty"})
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}
	return nil
}

func validateClientRequest(req dto.ClientRequest) error {
	var details []apperrors.ValidationDetail
	if req.FirstName == "" {
		details = append(details, apperrors.ValidationDetail{Field: "first_name", Message: "first_name must not be empty"})
	}
	if req.LastName == "" {
		details = append(details, apperrors.ValidationDetail{Field: "last_name", Message: "last_name must not be empty"})
	}
	if req.DocumentID == "" {
		details = append(details, apperrors.ValidationDetail{Field: "document_id", Message: "document_id must not be empty"})
	}
	if !domain.IsValidDocumentType(req.DocumentType) {
		details = append(details, apperrors.ValidationDetail{
			Field:   "document_type",
			Message: "document_type must be one of: national_id, passport, id_card, other",
		})
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}
	return nil
}

// Addresses

func (c *PartyController) CreateAddress(w http.ResponseWriter, r *http.Request) {
	var req dto.AddressRequest
	if !c.decode(w, r, &req) {
		return
	}
	if err := validateAddressRequest(req); err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}

	address, err := c.addresses.Insert(r.Context(), domain.Address{
		City:        req.City,
		Street:      req.Street,
		HouseNumber: req.HouseNumber,
		PostalCode:  req.PostalCode,
		Apartment:   req.Apartment,
		Note:        req.Note,
	})
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	commons.WriteJSON(c.logger, w, http.StatusCreated, dto.NewAddressResponse(*address))
}

func (c *PartyController) ListAddresses(w http.ResponseWriter, r *http.Request) {
	addresses, err := c.addresses.FindAll(r.Context())
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	responses := make([]dto.AddressResponse, len(addresses))
	for i, a := range addresses {
		responses[i] = dto.NewAddressResponse(a)
	}
	commons.WriteJSON(c.logger, w, http.StatusOK, responses)
}

func (c *PartyController) GetAddress(w http.ResponseWriter, r *http.Request) {
	id, err := commons.ParseIDParam(r, "id")
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	address, err := c.addresses.FindByID(r.Context(), id)
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	commons.WriteJSON(c.logger, w, http.StatusOK, dto.NewAddressResponse(*address))
}

func (c *PartyController) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	id, err := commons.ParseIDParam(r, "id")
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	var req dto.AddressRequest
	if !c.decode(w, r, &req) {
		return
	}
	if err := validateAddressRequest(req); err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}

	err = c.addresses.Update(r.Context(), domain.Address{
		ID:          id,
		City:        req.City,
		Street:      req.Street,
		HouseNumber: req.HouseNumber,
		PostalCode:  req.PostalCode,
		Apartment:   req.Apartment,
		Note:        req.Note,
	})
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	address, err := c.addresses.FindByID(r.Context(), id)
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	commons.WriteJSON(c.logger, w, http.StatusOK, dto.NewAddressResponse(*address))
}

func (c *PartyController) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	id, err := commons.ParseIDParam(r, "id")
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	if err := c.addresses.Delete(r.Context(), id); err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Companies

func (c *PartyController) CreateCompany(w http.ResponseWriter, r *http.Request) {
	var req dto.CompanyRequest
	if !c.decode(w, r, &req) {
		return
	}
	if err := validateCompanyRequest(req); err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}

	company, err := c.companies.Insert(r.Context(), req.Name, req.TaxID, req.AddressIDs)
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	commons.WriteJSON(c.logger, w, http.StatusCreated, dto.NewCompanyResponse(*company))
}

func (c *PartyController) ListCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := c.companies.FindAll(r.Context())
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	responses := make([]dto.CompanyResponse, len(companies))
	for i, company := range companies {
		responses[i] = dto.NewCompanyResponse(company)
	}
	commons.WriteJSON(c.logger, w, http.StatusOK, responses)
}

func (c *PartyController) GetCompany(w http.ResponseWriter, r *http.Request) {
	id, err := commons.ParseIDParam(r, "id")
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	company, err := c.companies.FindByID(r.Context(), id)
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	commons.WriteJSON(c.logger, w, http.StatusOK, dto.NewCompanyResponse(*company))
}

func (c *PartyController) UpdateCompany(w http.ResponseWriter, r *http.Request) {
	id, err := commons.ParseIDParam(r, "id")
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	var req dto.CompanyRequest
	if !c.decode(w, r, &req) {
		return
	}
	if err := validateCompanyRequest(req); err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}

	company, err := c.companies.Update(r.Context(), id, req.Name, req.TaxID, req.AddressIDs)
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	commons.WriteJSON(c.logger, w, http.StatusOK, dto.NewCompanyResponse(*company))
}

func (c *PartyController) DeleteCompany(w http.ResponseWriter, r *http.Request) {
	id, err := commons.ParseIDParam(r, "id")
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	if err := c.companies.Delete(r.Context(), id); err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Clients

func (c *PartyController) CreateClient(w http.ResponseWriter, r *http.Request) {
	var req dto.ClientRequest
	if !c.decode(w, r, &req) {
		return
	}
	if err := validateClientRequest(req); err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}

	client, err := c.clients.Insert(r.Context(), domain.Client{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		Email:        req.Email,
		DocumentID:   req.DocumentID,
		DocumentType: req.DocumentType,
	}, req.CompanyIDs)
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	commons.WriteJSON(c.logger, w, http.StatusCreated, dto.NewClientResponse(*client))
}

func (c *PartyController) ListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := c.clients.FindAll(r.Context())
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	responses := make([]dto.ClientResponse, len(clients))
	for i, client := range clients {
		responses[i] = dto.NewClientResponse(client)
	}
	commons.WriteJSON(c.logger, w, http.StatusOK, responses)
}

func (c *PartyController) GetClient(w http.ResponseWriter, r *http.Request) {
	id, err := commons.ParseIDParam(r, "id")
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	client, err := c.clients.FindByID(r.Context(), id)
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	commons.WriteJSON(c.logger, w, http.StatusOK, dto.NewClientResponse(*client))
}

func (c *PartyController) UpdateClient(w http.ResponseWriter, r *http.Request) {
	id, err := commons.ParseIDParam(r, "id")
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	var req dto.ClientRequest
	if !c.decode(w, r, &req) {
		return
	}
	if err := validateClientRequest(req); err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}

	client, err := c.clients.Update(r.Context(), domain.Client{
		ID:           id,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		Email:        req.Email,
		DocumentID:   req.DocumentID,
		DocumentType: req.DocumentType,
	}, req.CompanyIDs)
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	commons.WriteJSON(c.logger, w, http.StatusOK, dto.NewClientResponse(*client))
}

func (c *PartyController) DeleteClient(w http.ResponseWriter, r *http.Request) {
	id, err := commons.ParseIDParam(r, "id")
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	if err := c.clients.Delete(r.Context(), id); err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
