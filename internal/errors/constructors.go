package errors

// Convenience functions for common error patterns

// Config errors

func ConfigNotFound(path string) *BlogBuilderError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ConfigInvalid(cause error, path string) *BlogBuilderError {
	return Wrap(cause, CategoryConfig, SeverityFatal, "configuration file invalid").
		WithContext("path", path)
}

func ValidationFailed(field, reason string) *BlogBuilderError {
	return New(CategoryValidation, SeverityFatal, "validation failed").
		WithContext("field", field).
		WithContext("reason", reason)
}

// Build input errors

func PostsDirMissing(path string) *BlogBuilderError {
	return New(CategoryPosts, SeverityFatal, "posts directory not found").
		WithContext("path", path)
}

func PostsDirUnreadable(cause error, path string) *BlogBuilderError {
	return Wrap(cause, CategoryPosts, SeverityFatal, "posts directory not readable").
		WithContext("path", path)
}

func TemplateMissing(path string) *BlogBuilderError {
	return New(CategoryTemplate, SeverityFatal, "template file not found").
		WithContext("path", path)
}

func TemplateTokenMissing(path, token string) *BlogBuilderError {
	return New(CategoryTemplate, SeverityFatal, "template placeholder missing").
		WithContext("path", path).
		WithContext("token", token)
}

// Build and output errors

func BuildFailed(stage string, cause error) *BlogBuilderError {
	return Wrap(cause, CategoryBuild, SeverityFatal, "build failed").
		WithContext("stage", stage)
}

func OutputWriteFailed(cause error, path string) *BlogBuilderError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "output write failed").
		WithContext("path", path)
}

func PageVerifyFailed(targets []string) *BlogBuilderError {
	return New(CategoryBuild, SeverityFatal, "page verification failed").
		WithContext("dangling_links", targets)
}

// Runtime errors

func PreviewFailed(cause error) *BlogBuilderError {
	return Wrap(cause, CategoryRuntime, SeverityFatal, "preview server failed")
}

func HistoryUnavailable(cause error, path string) *BlogBuilderError {
	return Wrap(cause, CategoryRuntime, SeverityWarning, "build history unavailable").
		WithContext("path", path)
}
