package partner

import (
	"context"

	"github.com/mampirjaya/backoffice/internal/domain/partner"
	"github.com/mampirjaya/backoffice/internal/domain/shared"
)

// PartnerService handles administrative customer and supplier operations
type PartnerService struct {
	customerRepo partner.CustomerRepository
	supplierRepo partner.SupplierRepository
}

// NewPartnerService creates a new PartnerService
func NewPartnerService(customerRepo partner.CustomerRepository, supplierRepo partner.SupplierRepository) *PartnerService {
	return &PartnerService{
		customerRepo: customerRepo,
		supplierRepo: supplierRepo,
	}
}

// CreateCustomer creates a new customer
func (s *PartnerService) CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*CustomerResponse, error) {
	customer, err := partner.NewCustomer(req.Name, req.Address, req.Phone)
	if err != nil {
		return nil, err
	}
	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}
	response := ToCustomerResponse(customer)
	return &response, nil
}

// GetCustomer retrieves a customer by ID
func (s *PartnerService) GetCustomer(ctx context.Context, id uint64) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToCustomerResponse(customer)
	return &response, nil
}

// ListCustomers retrieves customers ordered by name
func (s *PartnerService) ListCustomers(ctx context.Context, filter ListFilter) ([]CustomerResponse, int64, error) {
	f := toSharedFilter(filter)
	customers, err := s.customerRepo.FindAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.customerRepo.Count(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	out := make([]CustomerResponse, len(customers))
	for i := range customers {
		out[i] = ToCustomerResponse(&customers[i])
	}
	return out, total, nil
}

// CreateSupplier creates a new supplier
func (s *PartnerService) CreateSupplier(ctx context.Context, req CreateSupplierRequest) (*SupplierResponse, error) {
	supplier, err := partner.NewSupplier(req.Name, req.Address, req.Phone, req.Email)
	if err != nil {
		return nil, err
	}
	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}
	response := ToSupplierResponse(supplier)
	return &response, nil
}

// GetSupplier retrieves a supplier by ID
func (s *PartnerService) GetSupplier(ctx context.Context, id uint64) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToSupplierResponse(supplier)
	return &response, nil
}

// ListSuppliers retrieves suppliers ordered by name
func (s *PartnerService) ListSuppliers(ctx context.Context, filter ListFilter) ([]SupplierResponse, int64, error) {
	f := toSharedFilter(filter)
	suppliers, err := s.supplierRepo.FindAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.supplierRepo.Count(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	out := make([]SupplierResponse, len(suppliers))
	for i := range suppliers {
		out[i] = ToSupplierResponse(&suppliers[i])
	}
	return out, total, nil
}

func toSharedFilter(filter ListFilter) shared.Filter {
	f := shared.DefaultFilter()
	f.OrderBy = "name"
	f.OrderDir = "asc"
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	f.Search = filter.Search
	return f
}
