package testutils

import (
	"github.com/KirkDiggler/strain-screen/internal/entities"
)

// Fixture strain used across tests
const (
	TestStrainID   = "1024"
	TestStrainName = "Northern Lights"
	TestStrainRace = "indica"

	// TestStrainDesc is the description text of the fixture strain
	TestStrainDesc = "One of the most famous strains of all time."
)

// CreateTestRouteParams returns route params for the fixture strain
func CreateTestRouteParams() entities.RouteParams {
	return entities.RouteParams{
		ID:   TestStrainID,
		Name: TestStrainName,
		Race: TestStrainRace,
	}
}

// CreateTestEffects returns the effects payload for the fixture strain
func CreateTestEffects() *entities.Effects {
	return &entities.Effects{
		Medical:  []string{"Depression", "Insomnia", "Pain", "Stress"},
		Positive: []string{"Relaxed", "Sleepy", "Happy"},
		Negative: []string{"Dry Mouth", "Dry Eyes"},
	}
}

// CreateTestDescription returns the description payload for the fixture strain
func CreateTestDescription() entities.Description {
	return entities.Description{
		"desc": TestStrainDesc,
	}
}

// CreateTestFlavors returns the flavor list for the fixture strain
func CreateTestFlavors() []string {
	return []string{"Earthy", "Pine", "Sweet"}
}

// CreateTestStrainView returns the merged view of the fixture payloads
func CreateTestStrainView() *entities.StrainView {
	return entities.MergeStrainView(TestStrainID, CreateTestEffects(), CreateTestDescription(), CreateTestFlavors())
}
