package salarystructure

import "errors"

var (
	ErrStructureNotFound      = errors.New("salary structure not found")
	ErrStructureExists        = errors.New("employee already has a salary structure")
	ErrStructureNotConfigured = errors.New("employee has no salary structure configured")
	ErrComponentAlreadyLinked = errors.New("component already attached to this structure")
	ErrComponentNotLinked     = errors.New("component not attached to this structure")
)
