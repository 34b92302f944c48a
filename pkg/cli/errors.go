package cli

import "errors"

var (
	errUnknownCommand      = errors.New("unknown command")
	errNotLoggedIn         = errors.New("not logged in, run: buildmon login")
	errEmailRequired       = errors.New("email is required")
	errPasswordRequired    = errors.New("password is required")
	errReportFieldsMissing = errors.New("report creation requires -location and -description")
	errStatusNeedsID       = errors.New("-set-status requires -id")
	errInvalidBounds       = errors.New("bounds must be north,south,east,west")
	errInvalidRange        = errors.New("range must be one of: all, 7d, 30d, 90d")
)
