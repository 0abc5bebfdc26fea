package model

// Kind tells which variant a Response holds.
type Kind int

const (
	KindRecords Kind = iota
	KindDocument
	KindText
)

// Response is a decoded service response. It is one of Records, Document or Text.
type Response interface {
	Kind() Kind
}

// Records is a JSON array response. Elements are usually per-day objects
// keyed by field name (year, yday, prcp, tmax, tmin, ...).
type Records []any

// Document is any JSON response that is not an array.
type Document struct {
	Value any
}

// Text is a non-JSON body, e.g. CSV or HTML, kept verbatim.
type Text string

func (Records) Kind() Kind  { return KindRecords }
func (Document) Kind() Kind { return KindDocument }
func (Text) Kind() Kind     { return KindText }
