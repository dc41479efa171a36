package kernel

// Error describes a kernel error. Kernel errors are declared as global
// variables holding pointers to an Error so that reporting one never needs
// the Go allocator.
type Error struct {
	// The module where the error occurred.
	Module string

	// The error message
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}
