package formatter

import (
	"fmt"

	"github.com/nicheroot/wizard-backend/internal/entity"
)

const fallbackTitle = "Business Blueprint"

type Formatter interface {
	Format(bp *entity.BusinessBlueprint) ([]byte, error)
	ContentType() string
	FileExtension() string
}

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) Create(format entity.ResultFormat) (Formatter, error) {
	switch format {
	case entity.FormatMarkdown:
		return NewMarkdownFormatter(), nil
	case entity.FormatDOCX:
		return NewDOCXFormatter(), nil
	case entity.FormatPDF:
		return NewPDFFormatter(), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

func titleOf(bp *entity.BusinessBlueprint) string {
	if bp.Title != "" {
		return bp.Title
	}
	return fallbackTitle
}

// textSections pairs headings with the blueprint's prose fields, skipping
// empty ones, in render order.
func textSections(bp *entity.BusinessBlueprint) []entity.BlueprintSection {
	sections := []entity.BlueprintSection{}
	for _, s := range []struct {
		heading string
		text    string
	}{
		{"Your situation", bp.SituationSummary},
		{"Recommended direction", bp.RecommendedDirection},
		{"Business model", bp.BusinessModelSummary},
	} {
		if s.text != "" {
			sections = append(sections, entity.BlueprintSection{
				Heading: s.heading,
				Items:   []string{s.text},
			})
		}
	}
	return sections
}
