package acme

import "strings"

// Problem is an RFC 7807 problem document as returned by an ACME server on
// error.
//
// See https://tools.ietf.org/html/rfc8555#section-6.7
type Problem struct {
	// Type is an absolute URI identifying the problem type. Required.
	Type string `json:"type"`
	// Title is a short, human readable summary of the problem type.
	Title string `json:"title,omitempty"`
	// Detail is a human readable explanation specific to this occurrence.
	Detail string `json:"detail,omitempty"`
	// Instance is a URI identifying the specific occurrence of the problem.
	Instance string `json:"instance,omitempty"`
	// Identifier is the Identifier this problem relates to, if any.
	Identifier *Identifier `json:"identifier,omitempty"`
	// Subproblems holds additional problems associated with the same request,
	// e.g. one per identifier in a multi-identifier order.
	Subproblems []Problem `json:"subproblems,omitempty"`
}

// Error implements the error interface. The message favors Detail, falls
// back to Title, then Type, and appends sub-problems parenthetically.
func (p *Problem) Error() string {
	msg := p.Detail
	if msg == "" {
		msg = p.Title
	}
	if msg == "" {
		msg = p.Type
	}

	if len(p.Subproblems) == 0 {
		return msg
	}

	subMsgs := make([]string, 0, len(p.Subproblems))
	for i := range p.Subproblems {
		sub := p.Subproblems[i]
		subMsgs = append(subMsgs, sub.Error())
	}
	return msg + " (" + strings.Join(subMsgs, " – ") + ")"
}
