package scope

import "fmt"

type TooManyLocalsError struct {
	Name string
}

func (e *TooManyLocalsError) Error() string {
	return fmt.Sprintf("scope: too many locals in this function, cannot declare %q (max %d)", e.Name, MaxLocals)
}

func errTooManyLocals(name string) error {
	return &TooManyLocalsError{Name: name}
}
