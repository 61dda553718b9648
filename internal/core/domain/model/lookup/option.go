// Package lookup holds the small reference lists served to order edit
// forms, such as active order sources and courier branches.
package lookup

// Option is a single selectable entry in a lookup list. Value is the
// machine token submitted back to the API and Label is the human-readable
// text shown in the form.
type Option struct {
	Value string
	Label string
}
