package git

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/chaoss/grimoirelab-chronicler/internal/core/eventizer"
	perr "github.com/chaoss/grimoirelab-chronicler/internal/platform/errors"

	"github.com/go-playground/validator/v10"
)

// itemRules are the envelope checks of a git item, in the order they are reported
type itemRules struct {
	UUID        string `json:"uuid" validate:"required"`
	BackendName string `json:"backend_name" validate:"eq=Git"`
	Category    string `json:"category" validate:"eq=commit"`
	Origin      string `json:"origin" validate:"required"`
	UpdatedOn   string `json:"updated_on" validate:"required"`
}

var (
	vOnce sync.Once
	v     *validator.Validate
)

func rules() *validator.Validate {
	vOnce.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())
		// report json names so failures read like the item
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
	})
	return v
}

// validateItem checks the item envelope. When several rules fail they are
// reported in field order: uuid, backend_name, category, origin, updated_on
func validateItem(it eventizer.Item) error {
	err := rules().Struct(itemRules{
		UUID:        it.UUID,
		BackendName: it.BackendName,
		Category:    it.Category,
		Origin:      it.Origin,
		UpdatedOn:   it.UpdatedOn.String(),
	})
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return perr.Wrap(err, perr.ErrorCodeUnknown, "validate git item")
	}

	failed := map[string]bool{}
	for _, fe := range verrs {
		failed[fe.Field()] = true
	}
	switch {
	case failed["uuid"]:
		return eventizer.MissingFieldError("uuid")
	case failed["backend_name"]:
		return eventizer.UnsupportedItemError(it.UUID, Name)
	case failed["category"]:
		return eventizer.UnsupportedCategoryError(it.Category, it.UUID)
	case failed["origin"]:
		return eventizer.MissingFieldError("origin")
	default:
		return eventizer.MissingFieldError("updated_on")
	}
}
