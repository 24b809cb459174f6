package formatter

import (
	"bytes"
	"fmt"

	"github.com/nicheroot/wizard-backend/internal/entity"
)

const (
	markdownContentType   = "text/markdown; charset=utf-8"
	markdownFileExtension = ".md"
)

type MarkdownFormatter struct{}

func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

func (mf *MarkdownFormatter) Format(bp *entity.BusinessBlueprint) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# %s\n\n", titleOf(bp))
	if bp.Subtitle != "" {
		fmt.Fprintf(&buf, "*%s*\n\n", bp.Subtitle)
	}

	for _, section := range textSections(bp) {
		fmt.Fprintf(&buf, "## %s\n\n%s\n\n", section.Heading, section.Items[0])
	}

	for _, section := range bp.ListSections() {
		if len(section.Items) == 0 {
			continue
		}
		fmt.Fprintf(&buf, "## %s\n\n", section.Heading)
		for _, item := range section.Items {
			fmt.Fprintf(&buf, "- %s\n", item)
		}
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

func (mf *MarkdownFormatter) ContentType() string {
	return markdownContentType
}

func (mf *MarkdownFormatter) FileExtension() string {
	return markdownFileExtension
}
