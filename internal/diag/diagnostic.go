package diag

// Note adds context about another subject, e.g. the constraint that clashed.
type Note struct {
	Subject string
	Msg     string
}

// Diagnostic is one finding. Subject names what it is about: a literal, a
// scenario case, a file.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Subject  string
	Notes    []Note
}
