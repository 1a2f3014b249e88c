package validation

import (
	"time"

	"task-widget/internal/config"
	"task-widget/internal/domain"
)

// Field names used in task validation errors
const (
	FieldText        = "text"
	FieldDescription = "description"
	FieldCourse      = "course"
	FieldDueDate     = "due_date"
)

// TaskValidator provides validation for Task-related operations
type TaskValidator struct {
	validator *Validator
}

// NewTaskValidator creates a new task validator using default limits
func NewTaskValidator() *TaskValidator {
	return &TaskValidator{
		validator: NewValidator(),
	}
}

// NewTaskValidatorWithConfig creates a task validator using configured limits
func NewTaskValidatorWithConfig(cfg *config.Config) *TaskValidator {
	return &TaskValidator{
		validator: NewValidatorWithConfig(cfg),
	}
}

// ValidateText validates task text for creation or update
func (tv *TaskValidator) ValidateText(text string) error {
	validationError := NewValidationError()

	trimmed := tv.validator.TrimAndValidateString(text)
	if !tv.validator.IsNonEmptyString(trimmed) {
		validationError.AddRequiredError(FieldText)
		return validationError
	}

	if !tv.validator.IsValidTextLength(trimmed) {
		validationError.AddInvalidLengthError(FieldText, trimmed, tv.validator.TextMaxLength())
	}

	if !tv.validator.HasNoControlCharacters(trimmed) {
		validationError.AddInvalidCharacterError(FieldText, trimmed)
	}

	return validationError.ErrOrNil()
}

// ValidateDescription validates an optional description
func (tv *TaskValidator) ValidateDescription(description string) error {
	validationError := NewValidationError()
	if !tv.validator.IsValidDescriptionLength(description) {
		validationError.AddInvalidLengthError(FieldDescription, description, tv.validator.DescriptionMaxLength())
	}
	return validationError.ErrOrNil()
}

// ValidateCourse validates an optional course tag
func (tv *TaskValidator) ValidateCourse(course string) error {
	validationError := NewValidationError()
	if !tv.validator.IsValidTextLength(course) {
		validationError.AddInvalidLengthError(FieldCourse, course, tv.validator.TextMaxLength())
	}
	if !tv.validator.HasNoControlCharacters(course) {
		validationError.AddInvalidCharacterError(FieldCourse, course)
	}
	return validationError.ErrOrNil()
}

// ValidateTask validates a domain.Task before it enters the store
func (tv *TaskValidator) ValidateTask(task domain.Task) error {
	validationError := NewValidationError()

	validationError.Merge(tv.ValidateText(task.Text))
	validationError.Merge(tv.ValidateDescription(task.Description))
	validationError.Merge(tv.ValidateCourse(task.Course))

	if task.Category == domain.CategoryDaily && task.DueDate != nil {
		validationError.AddInvalidValueError(FieldDueDate, task.DueDate, "daily tasks cannot have a due date")
	}

	return validationError.ErrOrNil()
}

// ValidatePatch validates the fields an edit would change
func (tv *TaskValidator) ValidatePatch(patch domain.TaskPatch) error {
	validationError := NewValidationError()

	if patch.IsEmpty() {
		validationError.AddInvalidValueError("patch", nil, "nothing to change")
		return validationError
	}
	if patch.Text != nil {
		validationError.Merge(tv.ValidateText(*patch.Text))
	}
	if patch.Description != nil {
		validationError.Merge(tv.ValidateDescription(*patch.Description))
	}
	if patch.Course != nil {
		validationError.Merge(tv.ValidateCourse(*patch.Course))
	}

	return validationError.ErrOrNil()
}

// ParseDueDate parses a typed MM/DD/YYYY due date. Blank input means no due date.
func (tv *TaskValidator) ParseDueDate(s string) (*time.Time, error) {
	if !tv.validator.IsNonEmptyString(s) {
		return nil, nil
	}

	t, err := tv.validator.ParseManualDate(s)
	if err != nil {
		validationError := NewValidationError()
		validationError.AddInvalidDateError(FieldDueDate, s)
		return nil, validationError
	}

	return domain.NormalizeDatePtr(&t), nil
}
