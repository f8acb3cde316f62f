package errors

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Lexer errors
	CodeLexUnexpectedCharacter Code = "LEX_UNEXPECTED_CHARACTER"
	CodeLexNumberOverflow      Code = "LEX_NUMBER_OVERFLOW"

	// Parser errors
	CodeParseUnexpectedEOF    Code = "PARSE_UNEXPECTED_EOF"
	CodeParseTrailingOperator Code = "PARSE_TRAILING_OPERATOR"
	CodeParseDoubleDie        Code = "PARSE_DOUBLE_DIE"
	CodeParseUnexpectedToken  Code = "PARSE_UNEXPECTED_TOKEN"

	// Roll request errors
	CodeRollNotationEmpty Code = "ROLL_NOTATION_EMPTY"
	CodeRollInvalidBody   Code = "ROLL_INVALID_BODY"
	CodeRollInvalidLimit  Code = "ROLL_INVALID_LIMIT"
	CodeRollSampleRange   Code = "ROLL_SAMPLE_OUT_OF_RANGE"

	// History errors
	CodeHistoryNotFound Code = "HISTORY_NOT_FOUND"
	CodeHistoryEmptyID  Code = "HISTORY_EMPTY_ID"

	// Auth errors
	CodeAuthTokenMissing Code = "AUTH_TOKEN_MISSING"
	CodeAuthTokenInvalid Code = "AUTH_TOKEN_INVALID"
	CodeAuthTokenExpired Code = "AUTH_TOKEN_EXPIRED"
)

// HTTPStatus maps domain codes to HTTP status codes.
func (c Code) HTTPStatus() int {
	switch c {
	// Bad request - validation and syntax failures
	case CodeLexUnexpectedCharacter,
		CodeLexNumberOverflow,
		CodeParseUnexpectedEOF,
		CodeParseTrailingOperator,
		CodeParseDoubleDie,
		CodeParseUnexpectedToken,
		CodeRollNotationEmpty,
		CodeRollInvalidBody,
		CodeRollInvalidLimit,
		CodeRollSampleRange,
		CodeHistoryEmptyID:
		return http.StatusBadRequest

	// Not found
	case CodeHistoryNotFound:
		return http.StatusNotFound

	// Unauthorized
	case CodeAuthTokenMissing,
		CodeAuthTokenInvalid,
		CodeAuthTokenExpired:
		return http.StatusUnauthorized

	default:
		return http.StatusInternalServerError
	}
}
