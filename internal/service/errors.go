package service

import "errors"

// ErrorKind classifies domain failures so callers can pick a reply without matching every error.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindValidation
	KindInvalidDate
	KindInvalidAmount
	KindNotFound
	KindConflict
	KindPastPeriod
	KindRangeInverted
	KindEmptyResult
)

var (
	ErrMalformedCommand       = errors.New("malformed command")
	ErrInvalidName            = errors.New("invalid category name")
	ErrInvalidDate            = errors.New("invalid date")
	ErrInvalidAmount          = errors.New("invalid amount")
	ErrUserNotFound           = errors.New("user not found")
	ErrCategoryNotFound       = errors.New("category not found")
	ErrBudgetNotFound         = errors.New("budget not found")
	ErrStandardCategoryExists = errors.New("standard category already exists")
	ErrPersonalCategoryExists = errors.New("personal category already exists")
	ErrBudgetExists           = errors.New("budget already exists")
	ErrPastPeriod             = errors.New("period is in the past")
	ErrRangeInverted          = errors.New("range start is after range end")
	ErrEmptyReport            = errors.New("no operations for report")
	ErrNoBudgets              = errors.New("no budgets in period")
)

var errorKinds = []struct {
	err  error
	kind ErrorKind
}{
	{ErrMalformedCommand, KindValidation},
	{ErrInvalidName, KindValidation},
	{ErrInvalidDate, KindInvalidDate},
	{ErrInvalidAmount, KindInvalidAmount},
	{ErrUserNotFound, KindNotFound},
	{ErrCategoryNotFound, KindNotFound},
	{ErrBudgetNotFound, KindNotFound},
	{ErrStandardCategoryExists, KindConflict},
	{ErrPersonalCategoryExists, KindConflict},
	{ErrBudgetExists, KindConflict},
	{ErrPastPeriod, KindPastPeriod},
	{ErrRangeInverted, KindRangeInverted},
	{ErrEmptyReport, KindEmptyResult},
	{ErrNoBudgets, KindEmptyResult},
}

// KindOf returns the kind of a domain error. Storage and unexpected errors are KindUnknown.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindUnknown
	}
	for _, item := range errorKinds {
		if errors.Is(err, item.err) {
			return item.kind
		}
	}
	return KindUnknown
}

// IsDomainError reports whether err is an anticipated rule failure rather than a storage fault.
func IsDomainError(err error) bool {
	return KindOf(err) != KindUnknown
}
