package v1

var (
	ErrSuccess             = newError(0, "Success")
	ErrBadRequest          = newError(400, "InvalidRequest")
	ErrUnauthorized        = newError(401, "Unauthorized")
	ErrForbidden           = newError(403, "PermissionDenied")
	ErrNotFound            = newError(404, "NotFound")
	ErrOperationFailed     = newError(409, "OperationFailed")
	ErrInternalServerError = newError(500, "InternalServerError")
)
