package entity

// Kind identifies the table a Ref points into.
type Kind string

const (
	KindLeaveRecord      Kind = "leave_record"
	KindDocument         Kind = "document"
	KindPersonalDocument Kind = "personal_document"
	KindUser             Kind = "user"
)

// Ref is a typed reference to another record, used by notifications and
// audit entries instead of a polymorphic foreign key.
type Ref struct {
	Kind Kind   `json:"kind"`
	ID   string `json:"id"`
}
