package transport

// Logger defines the interface for logging operations in the client packages.
// *logger.Logger from this module satisfies it, as does any implementation
// with the same method set.
//
//go:generate mockgen -source=logger.go -destination=mock_logger.go -package=transport
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}
