package flavors

import "strings"

// Transformer is the capability contract for rendering strings. A
// concrete behavior is selected by the caller and injected wherever
// rendering is configurable (Delegator, Board).
type Transformer interface {
	Transform(input string) string
}

// TransformerFunc adapts a function to the Transformer interface.
type TransformerFunc func(string) string

// Transform implements Transformer.
func (f TransformerFunc) Transform(input string) string {
	if f == nil {
		return input
	}
	return f(input)
}

var (
	// Identity returns input unchanged.
	Identity Transformer = TransformerFunc(func(s string) string { return s })

	// UpperCase maps input to upper case using the locale-independent
	// Unicode case mapping.
	UpperCase Transformer = TransformerFunc(strings.ToUpper)

	// LowerCase maps input to lower case.
	LowerCase Transformer = TransformerFunc(strings.ToLower)
)

// Delegator holds exactly one Transformer for its lifetime and
// forwards Apply calls to it verbatim.
type Delegator struct {
	transformer Transformer
}

// NewDelegator binds a Delegator to a concrete behavior. A nil
// behavior degrades to Identity so Apply stays total.
// @group Transforms
//
// Example: strategy selection at construction
//
//	d := flavors.NewDelegator(flavors.UpperCase)
//	fmt.Println(d.Apply("O tempora, o mores!")) // O TEMPORA, O MORES!
func NewDelegator(t Transformer) *Delegator {
	if t == nil {
		t = Identity
	}
	return &Delegator{transformer: t}
}

// Apply forwards input to the held behavior and returns its result.
func (d *Delegator) Apply(input string) string {
	return d.transformer.Transform(input)
}

// Transformer returns the held behavior.
func (d *Delegator) Transformer() Transformer {
	return d.transformer
}
