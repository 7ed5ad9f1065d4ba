// Package guard enforces construction through constructors for value types
// whose zero value would otherwise pass as valid.
package guard

import "errors"

var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in commands and queries. Its zero value reports
// "not constructed"; NewConstructorGuard returns the constructed form.
type ConstructorGuard struct {
	isConstructed bool
}

func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns err (or ErrDefaultConstructorGuard when err is nil) for a
// zero-value guard and nil otherwise.
func (g ConstructorGuard) Validate(err error) error {
	if g.isConstructed {
		return nil
	}
	if err == nil {
		return ErrDefaultConstructorGuard
	}
	return err
}
