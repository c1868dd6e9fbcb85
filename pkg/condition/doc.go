/*
Package condition evaluates small boolean gate expressions over a flat fact
map, e.g. "visa_required == true && interview_done".

The grammar is deliberately tiny: bare facts, equality/inequality against the
literals true/false, '&&', '||' and parentheses. Expressions are parsed into
an AST and evaluated against a typed map; there is no runtime code
construction of any kind.

An empty expression means "no gate" and evaluates to true. A malformed
expression fails OPEN: Evaluate returns true together with a non-nil error so
the caller can log the defect. Treating unparseable gates as non-blocking is a
deliberate availability-over-strictness policy.
*/
package condition
