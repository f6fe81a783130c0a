// Package log provides logging with automatic masking of customer data,
// built on top of the standard slog package.
//
// Delivery exports carry more than the four columns the report reads:
// customer names, phone numbers, e-mail and delivery addresses travel in
// the same rows. When a row is logged for diagnostics, those values must
// not end up in log files that are shared with operators.
//
// # Masking
//
// The MaskingHandler replaces attribute values when either:
//   - the key names customer data (phone, email, address, customer, ...)
//     or a credential (password, token, cookie, authorization, ...)
//   - the value looks like an e-mail address or an Indian mobile number
//
// Masking applies in verbose mode too.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, verbose)
//	logger.Debug("unparseable timestamp",
//	    "row", 12,
//	    "phone", "9876543210", // logged as ***REDACTED***
//	)
//	slog.SetDefault(logger)
package log
