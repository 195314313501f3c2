package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Domain-specific sentinel errors for the file and project lifecycles.
var (
	ErrFileNotFound              = errors.New("file not found")
	ErrJobProcessing             = errors.New("file not deleted, job is processing")
	ErrUnknownFileType           = errors.New("unknown file type")
	ErrNoProjectDeletePermission = errors.New("no project delete permission")
	ErrClientNameTaken           = errors.New("client with name already exists")
	ErrClientPseudonymTaken      = errors.New("client with pseudonym already exists")
)

func NewFileNotFoundError(fileID string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusNotFound,
		err:        ErrFileNotFound,
		Details:    fmt.Sprintf("No file with id %s in files or shared files", fileID),
	}
}

func NewJobProcessingError(fileID string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusConflict,
		err:        ErrJobProcessing,
		Details:    fmt.Sprintf("File %s has a job in Processing status", fileID),
	}
}

func NewUnknownFileTypeError(fileType string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrUnknownFileType,
		Details:    fmt.Sprintf("File type %q is not deletable", fileType),
		Field:      "type",
	}
}

func NewNoProjectDeletePermissionError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusForbidden,
		err:        ErrNoProjectDeletePermission,
	}
}

func NewClientNameTakenError(name string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusConflict,
		err:        ErrClientNameTaken,
		Details:    fmt.Sprintf("A client named %q already exists (names are case-insensitive)", name),
		Field:      "name",
	}
}

func NewClientPseudonymTakenError(pseudonym string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusConflict,
		err:        ErrClientPseudonymTaken,
		Details:    fmt.Sprintf("A client with pseudonym %q already exists (pseudonyms are case-insensitive)", pseudonym),
		Field:      "pseudonym",
	}
}

func IsFileNotFound(err error) bool {
	return errors.Is(err, ErrFileNotFound)
}

func IsJobProcessing(err error) bool {
	return errors.Is(err, ErrJobProcessing)
}

func IsUnknownFileType(err error) bool {
	return errors.Is(err, ErrUnknownFileType)
}

func IsNoProjectDeletePermission(err error) bool {
	return errors.Is(err, ErrNoProjectDeletePermission)
}
