package chain

// ValidatorFunc normalizes or rejects a raw extracted value. Rejections
// must be reported as *ValidationError so their messages can be collected
// into the remediation prompt; any other error aborts the turn cascade
// and degrades to the generic apology.
type ValidatorFunc func(value any) (any, error)

// Field declares a named piece of information a goal gathers from the
// conversation. The description is shown to the model as part of the
// exhaustive "information to be gathered" list; the format hint, when
// set, is appended to the extraction prompt.
type Field struct {
	Description string
	FormatHint  string
	Validator   ValidatorFunc
}

// fieldDecl pairs a field with its extraction key. Goals hold an explicit
// ordered list of these, declared through Goal.AddField; there is no
// runtime reflection over goal attributes.
type fieldDecl struct {
	name  string
	field Field
}
