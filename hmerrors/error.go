package hmerrors

// NoRecordFound - Custom error to inform that no record was found
type NoRecordFound struct {
	Msg string
}

// Error - Used to notify that no record was found
func (E NoRecordFound) Error() string {
	if E.Msg == "" {
		return "no record found"
	}
	return E.Msg
}

// Is - Makes errors.Is match any NoRecordFound regardless of message
func (E NoRecordFound) Is(target error) bool {
	_, ok := target.(NoRecordFound)
	return ok
}

// AllocationFailure - Custom error to inform that the allocator refused a request for a record
type AllocationFailure struct {
	Msg string
}

// Error - Used to notify that an allocation failed
func (A AllocationFailure) Error() string {
	if A.Msg == "" {
		return "allocation failure"
	}
	return A.Msg
}

// Is - Makes errors.Is match any AllocationFailure regardless of message
func (A AllocationFailure) Is(target error) bool {
	_, ok := target.(AllocationFailure)
	return ok
}

// UninitializedState - Custom error to inform that an operation was attempted on a nil or destroyed structure
type UninitializedState struct {
	Msg string
}

// Error - Used to notify that the structure is not initialized
func (U UninitializedState) Error() string {
	if U.Msg == "" {
		return "uninitialized state"
	}
	return U.Msg
}

// Is - Makes errors.Is match any UninitializedState regardless of message
func (U UninitializedState) Is(target error) bool {
	_, ok := target.(UninitializedState)
	return ok
}
