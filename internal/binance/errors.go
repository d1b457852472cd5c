package binance

import "errors"

var (
	// ErrNetwork covers transport failures and non-200 responses.
	ErrNetwork = errors.New("network error")
	// ErrDecode is returned when a response body or a kline row is malformed.
	ErrDecode = errors.New("decode error")
	// ErrParse is returned when a numeric string field cannot be parsed.
	ErrParse = errors.New("parse error")
	// ErrInvalidInterval is returned by ParseInterval for unsupported tokens.
	ErrInvalidInterval = errors.New("invalid interval")
)
