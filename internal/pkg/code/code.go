package code

import "github.com/HappyLadySauce/errors"

// ErrCode implements errors.Coder for the codes registered in this package.
type ErrCode struct {
	// C is the business error code.
	C int
	// HTTP is the HTTP status this error code maps to.
	HTTP int
	// Ext is the external, user-safe message.
	Ext string
	// Ref is an optional reference document URL.
	Ref string
}

var _ errors.Coder = ErrCode{}

func (c ErrCode) Code() int { return c.C }

func (c ErrCode) String() string { return c.Ext }

func (c ErrCode) HTTPStatus() int {
	if c.HTTP == 0 {
		return 500
	}
	return c.HTTP
}

func (c ErrCode) Reference() string { return c.Ref }

var codes = map[int]ErrCode{}

func register(code int, httpStatus int, message string) {
	coder := ErrCode{C: code, HTTP: httpStatus, Ext: message}
	codes[code] = coder
	errors.MustRegister(coder)
}

// Message returns the registered external message for a code, or a fallback.
func Message(code int) string {
	if c, ok := codes[code]; ok {
		return c.Ext
	}
	return "unknown error"
}
