// Package mocks provides mock expectation helpers for common testing patterns
package mocks

import (
	"go.uber.org/mock/gomock"

	strainapimock "github.com/KirkDiggler/strain-screen/internal/clients/strainapi/mock"
	"github.com/KirkDiggler/strain-screen/internal/entities"
)

// StrainPayloads are the three responses the strain API returns for one strain
type StrainPayloads struct {
	Effects     *entities.Effects
	Description entities.Description
	Flavors     []string
}

// ExpectStrainFetch expects exactly one call to each endpoint for strainID.
// The context is matched with gomock.Any because the loader derives its own.
func ExpectStrainFetch(mockClient *strainapimock.MockClient, strainID string, payloads StrainPayloads) {
	mockClient.EXPECT().
		GetEffects(gomock.Any(), strainID).
		Return(payloads.Effects, nil)

	mockClient.EXPECT().
		GetDescription(gomock.Any(), strainID).
		Return(payloads.Description, nil)

	mockClient.EXPECT().
		GetFlavors(gomock.Any(), strainID).
		Return(payloads.Flavors, nil)
}

// ExpectStrainFetchFailure makes the flavors call fail with err. The other two
// calls may or may not happen depending on scheduling.
func ExpectStrainFetchFailure(mockClient *strainapimock.MockClient, strainID string, payloads StrainPayloads, err error) {
	mockClient.EXPECT().
		GetEffects(gomock.Any(), strainID).
		Return(payloads.Effects, nil).
		MaxTimes(1)

	mockClient.EXPECT().
		GetDescription(gomock.Any(), strainID).
		Return(payloads.Description, nil).
		MaxTimes(1)

	mockClient.EXPECT().
		GetFlavors(gomock.Any(), strainID).
		Return(nil, err)
}
