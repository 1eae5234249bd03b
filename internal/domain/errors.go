package domain

import "errors"

// Определение бизнес-ошибок
var (
	ErrPositionNotFound       = errors.New("position not found")
	ErrPersonnelNotFound      = errors.New("personnel not found")
	ErrDuplicatePosition      = errors.New("position with the same department, title and duty location already exists")
	ErrDuplicateRegistry      = errors.New("personnel with this registry number already exists in the organization")
	ErrSelfReference          = errors.New("position cannot report to itself")
	ErrCyclicReference        = errors.New("reporting line would create a cycle")
	ErrManagerNotFound        = errors.New("supervising position not found")
	ErrInvalidOrganization    = errors.New("invalid organization")
	ErrUnsupportedFileType    = errors.New("unsupported file type")
	ErrUnreadableFile         = errors.New("spreadsheet cannot be read")
	ErrMissingHeader          = errors.New("spreadsheet has no header row or no data rows")
	ErrNoRecognizedColumns    = errors.New("spreadsheet header has no recognized columns")
	ErrAssignmentOutsideScope = errors.New("assigned personnel belongs to another organization")
)
