package service

import (
	"context"

	"github.com/sakif/skillup/internal/model"
)

// ItemTemplate is one item an ItemSource proposes for a new checklist.
type ItemTemplate struct {
	Type        model.ItemType
	Name        string
	Description *string
	Priority    int
}

// ItemSource produces the items for a freshly generated checklist. The
// generator validates whatever comes back, so an implementation backed by
// a model or an external API can be swapped in without touching callers.
type ItemSource interface {
	ProduceItems(ctx context.Context, path model.CareerPath) ([]ItemTemplate, error)
}

// PlaceholderSource returns the same four items for every career path.
type PlaceholderSource struct{}

var _ ItemSource = PlaceholderSource{}

func (PlaceholderSource) ProduceItems(_ context.Context, _ model.CareerPath) ([]ItemTemplate, error) {
	return []ItemTemplate{
		{Type: model.ItemTypeTechSkill, Name: "Fundamentals", Priority: 1},
		{Type: model.ItemTypeTechSkill, Name: "Tools & Platforms", Priority: 2},
		{Type: model.ItemTypeCertification, Name: "Entry-level Certification", Priority: 3},
		{Type: model.ItemTypeSoftSkill, Name: "Problem Solving", Priority: 4},
	}, nil
}
