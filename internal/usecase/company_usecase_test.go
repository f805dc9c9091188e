package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/iho/ledgerclient/internal/domain"
	"github.com/iho/ledgerclient/internal/usecase"
	"github.com/iho/ledgerclient/internal/usecase/mocks"
)

func TestCompanyUseCase_FindOrCreate(t *testing.T) {
	profile := domain.PaymentProfile{Account: domain.AccountRef{ID: 1}, IBAN: "CH9300762011623852957", Type: 1}

	tests := []struct {
		name           string
		policy         domain.DuplicatePolicy
		setup          func(*mocks.MockCompanyGateway)
		wantUUID       string
		companyCreated bool
		profileCreated bool
		wantErr        error
	}{
		{
			name:           "creates company and profile",
			setup:          func(*mocks.MockCompanyGateway) {},
			wantUUID:       "company-1",
			companyCreated: true,
			profileCreated: true,
		},
		{
			name: "reuses company and matching profile",
			setup: func(gw *mocks.MockCompanyGateway) {
				_, _ = gw.InsertCompany(context.Background(), "Acme AG")
				gw.AddPaymentProfile(domain.PaymentProfile{ID: 5, CompanyUUID: "company-1", Account: profile.Account, IBAN: profile.IBAN, Type: profile.Type})
			},
			wantUUID: "company-1",
		},
		{
			name: "adds profile for a different route",
			setup: func(gw *mocks.MockCompanyGateway) {
				_, _ = gw.InsertCompany(context.Background(), "Acme AG")
				gw.AddPaymentProfile(domain.PaymentProfile{ID: 5, CompanyUUID: "company-1", Account: profile.Account, IBAN: "CH00", Type: profile.Type})
			},
			wantUUID:       "company-1",
			profileCreated: true,
		},
		{
			name: "first match wins",
			setup: func(gw *mocks.MockCompanyGateway) {
				_, _ = gw.InsertCompany(context.Background(), "Acme AG")
				_, _ = gw.InsertCompany(context.Background(), "Acme AG")
			},
			wantUUID:       "company-1",
			profileCreated: true,
		},
		{
			name:   "duplicates rejected",
			policy: domain.DuplicateReject,
			setup: func(gw *mocks.MockCompanyGateway) {
				_, _ = gw.InsertCompany(context.Background(), "Acme AG")
				_, _ = gw.InsertCompany(context.Background(), "Acme AG")
			},
			wantErr: domain.ErrAmbiguousMatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := mocks.NewMockCompanyGateway()
			tt.setup(gw)

			uc := usecase.NewCompanyUseCase(gw, tt.policy, zerolog.Nop())
			result, err := uc.FindOrCreate(context.Background(), "Acme AG", profile)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.Company.UUID != tt.wantUUID {
				t.Errorf("expected company %s, got %s", tt.wantUUID, result.Company.UUID)
			}
			if result.CompanyCreated != tt.companyCreated {
				t.Errorf("expected CompanyCreated=%v", tt.companyCreated)
			}
			if result.ProfileCreated != tt.profileCreated {
				t.Errorf("expected ProfileCreated=%v", tt.profileCreated)
			}
			if result.PaymentProfile.CompanyUUID != tt.wantUUID || result.PaymentProfile.ID == 0 {
				t.Errorf("unexpected profile %+v", result.PaymentProfile)
			}
		})
	}
}

func TestCompanyUseCase_FindOrCreate_InsertError(t *testing.T) {
	gw := mocks.NewMockCompanyGateway()
	gw.InsertCompanyFunc = func(ctx context.Context, name string) (string, error) {
		return "", errors.New("conflict")
	}

	uc := usecase.NewCompanyUseCase(gw, "", zerolog.Nop())
	if _, err := uc.FindOrCreate(context.Background(), "Acme AG", domain.PaymentProfile{}); err == nil {
		t.Fatal("expected error")
	}
}
