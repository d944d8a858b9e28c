package constraints

import "github.com/ZanzyTHEbar/errbuilder-go"

// newInvalidConstraint builds the InvalidConstraint error kind (spec
// §6/§7): a Requirement constructed from structurally illegal input —
// more than one package name, or more than one disjunct.
func newInvalidConstraint(msg string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg("invalid constraint: " + msg)
}

// newInvalidDependencyString builds the InvalidDependencyString error
// kind: parse failure of a requirement string.
func newInvalidDependencyString(msg string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg("invalid dependency string: " + msg)
}

// newSolverException builds the generic SolverException error kind:
// malformed package full name or other unparseable solver input.
func newSolverException(msg string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg("solver exception: " + msg)
}
