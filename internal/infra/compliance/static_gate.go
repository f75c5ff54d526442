package compliance

import (
	"context"

	"freight-core/internal/usecase/shared"

	"github.com/google/uuid"
)

// StaticGate reports every pair compliant. Local development only.
type StaticGate struct{}

func NewStaticGate() StaticGate {
	return StaticGate{}
}

func (StaticGate) Check(_ context.Context, _, _ uuid.UUID) (shared.ComplianceResult, error) {
	return shared.ComplianceResult{
		Compliant:        true,
		ExpiredDocuments: []string{},
		MissingDocuments: []string{},
	}, nil
}
