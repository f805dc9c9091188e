package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/iho/ledgerclient/internal/domain"
)

// CompanyUseCase manages counterparties and their payment profiles.
type CompanyUseCase struct {
	companies CompanyGateway
	policy    domain.DuplicatePolicy
	logger    zerolog.Logger
}

// NewCompanyUseCase creates a new CompanyUseCase. An empty policy means
// domain.DuplicateFirstMatch.
func NewCompanyUseCase(companies CompanyGateway, policy domain.DuplicatePolicy, logger zerolog.Logger) *CompanyUseCase {
	if policy == "" {
		policy = domain.DuplicateFirstMatch
	}
	return &CompanyUseCase{
		companies: companies,
		policy:    policy,
		logger:    logger,
	}
}

// FindOrCreateResult is the company and payment profile a FindOrCreate call settled on.
type FindOrCreateResult struct {
	Company        domain.Company
	PaymentProfile domain.PaymentProfile
	CompanyCreated bool
	ProfileCreated bool
}

// FindOrCreate looks the company up by exact name, creating it when absent, then does
// the same for a payment profile on the same route.
func (uc *CompanyUseCase) FindOrCreate(ctx context.Context, name string, profile domain.PaymentProfile) (*FindOrCreateResult, error) {
	companies, err := uc.companies.ListCompanies(ctx)
	if err != nil {
		return nil, err
	}

	company, found, err := domain.MatchCompany(companies, name, uc.policy)
	if err != nil {
		return nil, err
	}

	result := &FindOrCreateResult{}
	if !found {
		uuid, err := uc.companies.InsertCompany(ctx, name)
		if err != nil {
			return nil, err
		}
		company = domain.Company{UUID: uuid, Name: name}
		result.CompanyCreated = true
		uc.logger.Info().Str("company_uuid", uuid).Str("name", name).Msg("company created")
	}
	result.Company = company

	profile.CompanyUUID = company.UUID

	// A new company cannot have profiles yet.
	if !result.CompanyCreated {
		existing, err := uc.companies.ListPaymentProfiles(ctx, company.UUID)
		if err != nil {
			return nil, err
		}
		for _, p := range existing {
			if p.SameRoute(profile) {
				result.PaymentProfile = p
				return result, nil
			}
		}
	}

	id, err := uc.companies.InsertPaymentProfile(ctx, profile)
	if err != nil {
		return nil, err
	}
	profile.ID = id
	result.PaymentProfile = profile
	result.ProfileCreated = true

	return result, nil
}
