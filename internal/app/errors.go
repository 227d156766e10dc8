package app

// AppError is a client-visible failure. The code doubles as the HTTP status
// of the response; anything that is not an AppError surfaces as a 500.
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}
