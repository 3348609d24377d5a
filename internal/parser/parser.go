// Package parser converts raw trademark-application XML documents into
// candidate records for the registry.
//
// Application XML is a semi-structured external format: a single optional
// namespace, a fixed nested element path, and fields that may be missing on
// any given document. The parser is deliberately tolerant — malformed input
// is reported as a tagged outcome, never as a panic or an error the caller
// has to interpret.
package parser

import (
	"encoding/xml"
	"log/slog"
	"time"
)

// Outcome classifies the result of parsing one application document.
// Everything except OutcomeOK means "skip this document"; the tag exists so
// callers can log precisely why it was skipped.
type Outcome int

const (
	// OutcomeOK means the document was parsed and an Application extracted.
	OutcomeOK Outcome = iota
	// OutcomeMalformed means the text is not well-formed XML.
	OutcomeMalformed
	// OutcomeMissingStructure means the XML is well-formed but the mandatory
	// TradeMarkTransactionBody/.../TradeMark element path is absent.
	OutcomeMissingStructure
	// OutcomeNotWordMark means the document describes a figurative, combined
	// or otherwise non-word mark. Out of scope, not an error.
	OutcomeNotWordMark
)

// String returns a short machine-friendly label for log fields.
func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeMalformed:
		return "malformed"
	case OutcomeMissingStructure:
		return "missing_structure"
	case OutcomeNotWordMark:
		return "not_word_mark"
	default:
		return "unknown"
	}
}

// Application is the intermediate produced from one document. It is not
// persisted; the loader and register workflow turn it into a domain.Trademark.
// Every field is optional — a missing node yields nil, never an error.
type Application struct {
	Title             *string
	Description       *string
	ApplicationNumber *string
	ApplicationDate   *time.Time
	RegistrationDate  *time.Time
	ExpiryDate        *time.Time
}

// IsValid reports whether the application carries the two fields a registry
// record cannot exist without: a title and a registration date.
func (a Application) IsValid() bool {
	return a.Title != nil && a.RegistrationDate != nil
}

// Result is the closed outcome of Parse. Application is non-nil exactly when
// Outcome is OutcomeOK.
type Result struct {
	Outcome     Outcome
	Application *Application
}

// OK reports whether the parse produced a usable Application.
// Callers must still check Application.IsValid before persisting.
func (r Result) OK() bool {
	return r.Outcome == OutcomeOK && r.Application != nil
}

// Parser parses trademark-application XML documents.
type Parser struct {
	log *slog.Logger
}

// New constructs a Parser that logs skipped documents via the given logger.
func New(log *slog.Logger) *Parser {
	return &Parser{log: log}
}

// The mandatory element path below the document root. Each level is a
// pointer so an absent segment surfaces as nil instead of a zero struct.
// Element names carry no namespace on purpose: encoding/xml then matches on
// local name alone, which handles both namespaced and namespace-free
// documents. Documents mixing several namespaces are not supported.
type xmlTransaction struct {
	Body *xmlTransactionBody `xml:"TradeMarkTransactionBody"`
}

type xmlTransactionBody struct {
	ContentDetails *xmlContentDetails `xml:"TransactionContentDetails"`
}

type xmlContentDetails struct {
	Data *xmlTransactionData `xml:"TransactionData"`
}

type xmlTransactionData struct {
	Details *xmlTradeMarkDetails `xml:"TradeMarkDetails"`
}

type xmlTradeMarkDetails struct {
	TradeMark *xmlTradeMark `xml:"TradeMark"`
}

type xmlTradeMark struct {
	MarkFeature       *string                  `xml:"MarkFeature"`
	WordMark          *xmlWordMarkSpec         `xml:"WordMarkSpecification"`
	ApplicationNumber *string                  `xml:"ApplicationNumber"`
	ApplicationDate   *string                  `xml:"ApplicationDate"`
	RegistrationDate  *string                  `xml:"RegistrationDate"`
	ExpiryDate        *string                  `xml:"ExpiryDate"`
	GoodsServices     *xmlGoodsServicesDetails `xml:"GoodsServicesDetails"`
}

type xmlWordMarkSpec struct {
	VerbalElement *string `xml:"MarkVerbalElementText"`
}

type xmlGoodsServicesDetails struct {
	GoodsServices []xmlGoodsServices `xml:"GoodsServices"`
}

type xmlGoodsServices struct {
	ClassDescriptionDetails *xmlClassDescriptionDetails `xml:"ClassDescriptionDetails"`
}

type xmlClassDescriptionDetails struct {
	ClassDescriptions []xmlClassDescription `xml:"ClassDescription"`
}

type xmlClassDescription struct {
	Descriptions []xmlGoodsDescription `xml:"GoodsServicesDescription"`
}

type xmlGoodsDescription struct {
	LanguageCode string `xml:"languageCode,attr"`
	Text         string `xml:",chardata"`
}

// markFeatureWord is the only mark type the registry accepts.
const markFeatureWord = "Word"

// dateLayout is the calendar-date format used by application XML.
const dateLayout = "2006-01-02"

// Parse converts one raw XML document into a Result. It never panics and
// never returns a Go error: every failure mode is a tagged Outcome.
func (p *Parser) Parse(xmlText string) Result {
	var doc xmlTransaction
	if err := xml.Unmarshal([]byte(xmlText), &doc); err != nil {
		p.log.Error("cannot parse application", "error", err)
		return Result{Outcome: OutcomeMalformed}
	}

	mark := contentNode(doc)
	if mark == nil {
		p.log.Error("application has no trademark content node")
		return Result{Outcome: OutcomeMissingStructure}
	}

	if feature := textOrNil(mark.MarkFeature); feature == nil || *feature != markFeatureWord {
		p.log.Debug("skipping non-word trademark")
		return Result{Outcome: OutcomeNotWordMark}
	}

	app := &Application{
		Title:             mark.title(),
		Description:       mark.englishDescription(),
		ApplicationNumber: textOrNil(mark.ApplicationNumber),
		ApplicationDate:   dateOrNil(mark.ApplicationDate),
		RegistrationDate:  dateOrNil(mark.RegistrationDate),
		ExpiryDate:        dateOrNil(mark.ExpiryDate),
	}
	return Result{Outcome: OutcomeOK, Application: app}
}

// contentNode walks the mandatory element path and returns the TradeMark
// node, or nil if any segment along the way is absent.
func contentNode(doc xmlTransaction) *xmlTradeMark {
	if doc.Body == nil || doc.Body.ContentDetails == nil {
		return nil
	}
	data := doc.Body.ContentDetails.Data
	if data == nil || data.Details == nil {
		return nil
	}
	return data.Details.TradeMark
}

func (m *xmlTradeMark) title() *string {
	if m.WordMark == nil {
		return nil
	}
	return textOrNil(m.WordMark.VerbalElement)
}

// englishDescription returns the first goods/services description whose
// languageCode attribute equals "en", or nil when none is present.
func (m *xmlTradeMark) englishDescription() *string {
	if m.GoodsServices == nil {
		return nil
	}
	for _, gs := range m.GoodsServices.GoodsServices {
		if gs.ClassDescriptionDetails == nil {
			continue
		}
		for _, cd := range gs.ClassDescriptionDetails.ClassDescriptions {
			for _, desc := range cd.Descriptions {
				if desc.LanguageCode == "en" && desc.Text != "" {
					text := desc.Text
					return &text
				}
			}
		}
	}
	return nil
}

// textOrNil normalizes an extracted element value: an absent node or an
// empty element both mean "no value".
func textOrNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

// dateOrNil parses a calendar date in ISO form. An absent node or an
// unparseable value yields nil — extraction never fails the document.
func dateOrNil(s *string) *time.Time {
	v := textOrNil(s)
	if v == nil {
		return nil
	}
	t, err := time.Parse(dateLayout, *v)
	if err != nil {
		return nil
	}
	return &t
}
