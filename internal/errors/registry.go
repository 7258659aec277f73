package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

const docBase = "https://github.com/vango-dev/fileroutes/blob/main/docs/errors.md#"

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// Configuration (E120-E139)
	"E120": {
		Category: CategoryConfig,
		Message:  "Invalid fileroutes.json",
		Detail:   "The fileroutes.json configuration file is malformed.",
		DocURL:   docBase + "e120",
	},
	"E121": {
		Category: CategoryConfig,
		Message:  "Missing required configuration",
		Detail:   "A required configuration value is not set.",
		DocURL:   docBase + "e121",
	},
	"E122": {
		Category: CategoryConfig,
		Message:  "Invalid port number",
		Detail:   "The configured port number must be between 0 and 65535.",
		DocURL:   docBase + "e122",
	},
	"E123": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
		Detail:   "A configuration value failed validation.",
		DocURL:   docBase + "e123",
	},

	// CLI (E140-E159)
	"E141": {
		Category: CategoryCLI,
		Message:  "Configuration file not found",
		Detail:   "The configuration file passed with --config does not exist.",
		DocURL:   docBase + "e141",
	},
	"E142": {
		Category: CategoryCLI,
		Message:  "Views directory not found",
		Detail:   "The views directory configured in paths.views does not exist.",
		DocURL:   docBase + "e142",
	},
	"E143": {
		Category: CategoryCLI,
		Message:  "Output could not be written",
		Detail:   "The generated route document could not be written to disk.",
		DocURL:   docBase + "e143",
	},
	"E144": {
		Category: CategoryPublish,
		Message:  "Publish failed",
		Detail:   "The route document could not be uploaded to the configured bucket.",
		DocURL:   docBase + "e144",
	},
	"E145": {
		Category: CategoryCLI,
		Message:  "Manifest could not be read",
		Detail:   "The metadata manifest is missing or is not valid JSON or YAML.",
		DocURL:   docBase + "e145",
	},
	"E146": {
		Category: CategoryCLI,
		Message:  "Route document out of date",
		Detail:   "The document on disk differs from the one generated from the views.",
		DocURL:   docBase + "e146",
	},
	"E147": {
		Category: CategoryCLI,
		Message:  "Invalid command usage",
		Detail:   "A flag has an unsupported value or conflicts with another flag.",
		DocURL:   docBase + "e147",
	},

	// Route generation (E170-E179)
	"E170": {
		Category: CategoryRoutes,
		Message:  "Invalid route segment",
		Detail:   "A file or directory name produced a segment with ':' outside the leading parameter marker.",
		DocURL:   docBase + "e170",
	},
	"E171": {
		Category: CategoryRoutes,
		Message:  "Ambiguous parameter name",
		Detail:   "Two parameters at the same level, or a parameter and one of its ancestors, cannot be told apart by the router.",
		DocURL:   docBase + "e171",
	},
	"E172": {
		Category: CategoryRoutes,
		Message:  "Duplicate route",
		Detail:   "Two entries in the same directory resolve to the same route.",
		DocURL:   docBase + "e172",
	},
	"E173": {
		Category: CategoryRoutes,
		Message:  "View file could not be parsed",
		Detail:   "Exports are read from view and layout files with the Go parser; the file has a syntax error.",
		DocURL:   docBase + "e173",
	},
	"E174": {
		Category: CategoryRoutes,
		Message:  "Route generation failed",
		Detail:   "The route tree could not be generated.",
		DocURL:   docBase + "e174",
	},
}

// GetAllCodes returns all registered error codes in order.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
