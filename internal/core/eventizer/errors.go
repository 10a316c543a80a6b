package eventizer

import (
	perr "github.com/chaoss/grimoirelab-chronicler/internal/platform/errors"
)

// Sentinels for errors.Is; they match any error carrying the same code
var (
	ErrMissingField        = perr.Sentinel(perr.ErrorCodeMissingField)
	ErrUnsupportedItem     = perr.Sentinel(perr.ErrorCodeUnsupportedItem)
	ErrUnsupportedCategory = perr.Sentinel(perr.ErrorCodeUnsupportedCategory)
	ErrUnknownSource       = perr.Sentinel(perr.ErrorCodeUnknownSource)
)

// MissingFieldError reports a required attribute absent on an item
func MissingFieldError(field string) error {
	return perr.WithField(perr.Newf(perr.ErrorCodeMissingField, "'%s' attribute not found on item.", field), field)
}

// UnsupportedItemError reports an item collected by another backend
func UnsupportedItemError(uuid, source string) error {
	return perr.WithField(perr.Newf(perr.ErrorCodeUnsupportedItem, "Item %s is not a '%s' item.", uuid, source), "backend_name")
}

// UnsupportedCategoryError reports an item category the eventizer does not handle
func UnsupportedCategoryError(category, uuid string) error {
	return perr.WithField(perr.Newf(perr.ErrorCodeUnsupportedCategory, "Invalid category '%s' for '%s' item.", category, uuid), "category")
}

// UnknownSourceError reports a data source with no registered eventizer
func UnknownSourceError(name string) error {
	return perr.Newf(perr.ErrorCodeUnknownSource, "unknown eventizer \"%s\"", name)
}
