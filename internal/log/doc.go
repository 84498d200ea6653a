// Package log provides slog loggers that mask ESPN credentials.
//
// SecureHandler wraps any slog.Handler and replaces secret attribute values
// with MaskValue before they are written:
//   - keys naming the espn_s2 and SWID cookies, cookie and authorization
//     headers, passwords and tokens
//   - values shaped like a SWID (a braced GUID), an espn_s2 session blob,
//     or a cookie string naming either cookie
//
// Verbose loggers write debug records; the masking applies at every
// level, so logs of a private league can be shared.
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, true)
//
//	logger.Debug("credentials loaded",
//	    "swid", creds.SWID, // logged as ***REDACTED***
//	    "league_id", 123456,
//	)
//
//	slog.SetDefault(logger)
package log
