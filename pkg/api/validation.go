package api

// Validate validates the root configuration.
// Rules are:
// - role is present
// - tasks is present and not empty
// It must run before any synthesis starts, absence of either field makes
// all downstream work meaningless.
func (c RootConfig) Validate() error {
	if c.Role == "" {
		return MissingFieldError{Field: "role"}
	}
	if len(c.Tasks) == 0 {
		return MissingFieldError{Field: "tasks"}
	}
	return nil
}

// Validate validates one task specification, identified by its key in the task map.
func (t TaskSpec) Validate(id string) error {
	if t.Image.Empty() {
		return MissingFieldError{Task: id, Field: "image"}
	}
	return nil
}
