package codegen

import "fmt"

// GenError is the error reported when a grammar cannot be compiled:
// a symbol referencing an undeclared rule, an empty choice, and the
// like.  Generation errors abort the whole run; no partial output is
// meaningful.
type GenError struct {
	Rule    string
	Message string
}

// Error returns the human readable representation of the error.
func (e GenError) Error() string {
	if e.Rule == "" {
		return e.Message
	}
	return fmt.Sprintf("rule %s: %s", e.Rule, e.Message)
}
