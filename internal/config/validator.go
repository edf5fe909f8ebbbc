package config

import (
	"fmt"
	"regexp"
	"sync"

	"github.com/go-playground/validator/v10"

	lenserrors "github.com/lensbook/lensbook/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	sectionIDPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("section_id", func(fl validator.FieldLevel) bool {
			return sectionIDPattern.MatchString(fl.Field().String())
		})

		validateInst = v
	})

	return validateInst
}

// ValidateDocument performs schema and cross-reference validation on the
// brand book.
func ValidateDocument(doc *Document) error {
	if doc == nil {
		return lenserrors.NewValidationError("document", "document is nil", nil)
	}

	v := validatorInstance()
	if err := v.Struct(doc); err != nil {
		return convertValidationError(err)
	}

	sectionIDs := make(map[string]struct{}, len(doc.Sections))
	for i, section := range doc.Sections {
		if _, exists := sectionIDs[section.ID]; exists {
			return lenserrors.NewValidationError(
				fmt.Sprintf("sections[%d].id", i),
				fmt.Sprintf("duplicate section id %q", section.ID), nil)
		}
		sectionIDs[section.ID] = struct{}{}

		for j, block := range section.Blocks {
			if block.Text == "" && block.Copy == "" && len(block.Segmented) == 0 {
				return lenserrors.NewValidationError(
					fmt.Sprintf("sections[%d].blocks[%d]", i, j),
					"block must carry text, copy, or segmented items", nil)
			}
			if len(block.Segmented) == 1 {
				return lenserrors.NewValidationError(
					fmt.Sprintf("sections[%d].blocks[%d].segmented", i, j),
					"segmented control needs at least two items", nil)
			}
		}
	}

	for i, group := range doc.Sidebar {
		for j, entry := range group.Entries {
			if _, ok := sectionIDs[entry.Target]; !ok {
				return lenserrors.NewValidationError(
					fmt.Sprintf("sidebar[%d].entries[%d].target", i, j),
					fmt.Sprintf("unknown section %q", entry.Target), nil)
			}
		}
	}

	for i, item := range doc.Nav {
		if _, ok := sectionIDs[item.Target]; !ok {
			return lenserrors.NewValidationError(
				fmt.Sprintf("nav[%d].target", i),
				fmt.Sprintf("unknown section %q", item.Target), nil)
		}
	}

	return nil
}

func convertValidationError(err error) error {
	if err == nil {
		return nil
	}

	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		first := errs[0]
		return lenserrors.NewValidationError(first.Namespace(),
			fmt.Sprintf("failed %q constraint", first.Tag()), err)
	}

	return lenserrors.NewValidationError("", err.Error(), err)
}
