package apierror

// Error type URIs following the urn:wellcoach:error:* pattern.
// These are used as the "type" field in RFC 9457 Problem Details.
const (
	// TypeValidation indicates request validation failed (400)
	TypeValidation = "urn:wellcoach:error:validation"

	// TypeInvalidWindow indicates an analysis window outside the allowed range (400)
	TypeInvalidWindow = "urn:wellcoach:error:invalid_window"

	// TypeNotFound indicates the requested route or resource was not found (404)
	TypeNotFound = "urn:wellcoach:error:not_found"

	// TypeRateLimit indicates too many requests (429)
	TypeRateLimit = "urn:wellcoach:error:rate_limit"

	// TypeUnauthorized indicates missing or invalid authentication (401)
	TypeUnauthorized = "urn:wellcoach:error:unauthorized"

	// TypeInternal indicates an unexpected server error (500)
	TypeInternal = "urn:wellcoach:error:internal"
)

// Titles for each error type - human-readable summaries
const (
	TitleValidation    = "Validation Error"
	TitleInvalidWindow = "Invalid Analysis Window"
	TitleNotFound      = "Resource Not Found"
	TitleRateLimit     = "Rate Limit Exceeded"
	TitleUnauthorized  = "Authentication Required"
	TitleInternal      = "Internal Server Error"
)
