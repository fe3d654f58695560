package commons

import "errors"

var ErrRecordNotFound = errors.New("Record not found")
var ErrInsufficientBalance = errors.New("Insufficient balance")
var ErrInvalidAmount = errors.New("Amount must be greater than zero")
var ErrMissingAccountDetails = errors.New("Account details are required")
var ErrWithdrawNotAllowed = errors.New("Member is not allowed to withdraw")
var ErrInvalidPin = errors.New("Transaction pin is invalid")
var ErrAlreadyResolved = errors.New("Request has already been resolved")
var ErrAssignmentActive = errors.New("Member already has an active assignment")
var ErrNoActiveAssignment = errors.New("Member has no active assignment")
var ErrAssignmentCompleted = errors.New("Assignment has already been completed")
var ErrSetExhausted = errors.New("Set has no task at the current index")
