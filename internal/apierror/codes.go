package apierror

// Error type URIs following the urn:trackit:error:* pattern.
// These are used as the "type" field in RFC 9457 Problem Details.
const (
	// TypeValidation indicates request validation failed (400)
	TypeValidation = "urn:trackit:error:validation"

	// TypeNotFound indicates the requested resource was not found (404)
	TypeNotFound = "urn:trackit:error:not_found"

	// TypeInvalidWeek indicates a malformed or out-of-range ISO week
	// identifier in the request (400)
	TypeInvalidWeek = "urn:trackit:error:invalid_week"

	// TypeInvalidID indicates a non-numeric entry identifier (400)
	TypeInvalidID = "urn:trackit:error:invalid_id"

	// TypeInternal indicates an unexpected server error (500)
	TypeInternal = "urn:trackit:error:internal"

	// TypeBadRequest indicates a malformed or invalid request (400)
	TypeBadRequest = "urn:trackit:error:bad_request"
)

// Titles for each error type - human-readable summaries
const (
	TitleValidation  = "Validation Error"
	TitleNotFound    = "Resource Not Found"
	TitleInvalidWeek = "Invalid Week Identifier"
	TitleInvalidID   = "Invalid Identifier"
	TitleInternal    = "Internal Server Error"
	TitleBadRequest  = "Bad Request"
)
