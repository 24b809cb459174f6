package formatter

import (
	"bytes"

	"github.com/unidoc/unioffice/document"

	"github.com/nicheroot/wizard-backend/internal/entity"
)

const (
	docxContentType   = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	docxFileExtension = ".docx"
)

type DOCXFormatter struct{}

func NewDOCXFormatter() *DOCXFormatter {
	return &DOCXFormatter{}
}

func (mf *DOCXFormatter) Format(bp *entity.BusinessBlueprint) ([]byte, error) {
	doc := document.New()
	defer doc.Close()

	titlePar := doc.AddParagraph()
	titlePar.SetStyle("Heading1")
	titlePar.AddRun().AddText(titleOf(bp))

	if bp.Subtitle != "" {
		subPar := doc.AddParagraph()
		subPar.AddRun().AddText(bp.Subtitle)
	}

	addSection := func(heading string, lines []string) {
		doc.AddParagraph()

		headingPar := doc.AddParagraph()
		headingPar.SetStyle("Heading2")
		headingPar.AddRun().AddText(heading)

		for _, line := range lines {
			bodyPar := doc.AddParagraph()
			bodyPar.AddRun().AddText(line)
		}
	}

	for _, section := range textSections(bp) {
		addSection(section.Heading, section.Items)
	}

	for _, section := range bp.ListSections() {
		if len(section.Items) == 0 {
			continue
		}
		items := make([]string, 0, len(section.Items))
		for _, item := range section.Items {
			items = append(items, "- "+item)
		}
		addSection(section.Heading, items)
	}

	var buf bytes.Buffer
	if err := doc.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (mf *DOCXFormatter) ContentType() string {
	return docxContentType
}

func (mf *DOCXFormatter) FileExtension() string {
	return docxFileExtension
}
