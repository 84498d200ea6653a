package log

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"strings"
)

// MaskValue is the string used to replace sensitive values.
const MaskValue = "***REDACTED***"

// secretKeys are attribute keys whose values are always masked, compared
// case-insensitively.
var secretKeys = map[string]bool{
	// ESPN league cookies and their config and env names
	"espn_s2":   true,
	"espn-s2":   true,
	"espns2":    true,
	"s2":        true,
	"swid":      true,
	"espn_swid": true,

	// Request headers that can carry the cookies
	"cookie":        true,
	"set-cookie":    true,
	"authorization": true,

	// Generic names
	"password": true,
	"secret":   true,
	"token":    true,
}

// secretKeywords mask any key containing them, such as "request_cookie".
// A bare "auth" or "key" would also hide "authenticated" or "league_key".
var secretKeywords = []string{
	"espn_s2", "swid", "cookie", "authorization", "password", "secret", "token", "credential",
}

// secretValues match credential-shaped values logged under any key.
var secretValues = []*regexp.Regexp{
	// SWID: a braced GUID
	regexp.MustCompile(`^\{[0-9A-Fa-f]{8}-[0-9A-Fa-f]{4}-[0-9A-Fa-f]{4}-[0-9A-Fa-f]{4}-[0-9A-Fa-f]{12}\}$`),

	// espn_s2: a long URL-encoded session blob
	regexp.MustCompile(`^[A-Za-z0-9%+/=._-]{64,}$`),

	// Cookie header or query string naming either cookie
	regexp.MustCompile(`(?i)(espn_s2|swid)=`),

	// Authorization header value
	regexp.MustCompile(`(?i)^bearer\s+.+`),
}

// SecureHandler wraps an slog.Handler and masks the values of secret
// attributes before the wrapped handler sees them. Groups are walked, and
// attributes added with WithAttrs are masked once when they are added.
type SecureHandler struct {
	handler slog.Handler
}

// NewSecureHandler creates a SecureHandler around handler.
// A nil handler uses slog.Default().Handler().
func NewSecureHandler(handler slog.Handler) *SecureHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &SecureHandler{handler: handler}
}

// Enabled delegates to the wrapped handler.
func (h *SecureHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle masks the record's attributes and passes it on.
func (h *SecureHandler) Handle(ctx context.Context, r slog.Record) error {
	masked := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		masked.AddAttrs(mask(a))
		return true
	})
	return h.handler.Handle(ctx, masked)
}

// WithAttrs returns a handler with the masked attributes added.
func (h *SecureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		out[i] = mask(a)
	}
	return &SecureHandler{handler: h.handler.WithAttrs(out)}
}

// WithGroup returns a handler that nests attributes under name.
func (h *SecureHandler) WithGroup(name string) slog.Handler {
	return &SecureHandler{handler: h.handler.WithGroup(name)}
}

// mask replaces the value of a secret attribute, recursing into groups.
func mask(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		group := a.Value.Group()
		out := make([]slog.Attr, len(group))
		for i, ga := range group {
			out[i] = mask(ga)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(out...)}
	}

	if isSecretKey(a.Key) {
		return slog.String(a.Key, MaskValue)
	}
	if a.Value.Kind() == slog.KindString && isSecretValue(a.Value.String()) {
		return slog.String(a.Key, MaskValue)
	}
	return a
}

// isSecretKey reports whether values logged under key must be masked.
func isSecretKey(key string) bool {
	key = strings.ToLower(key)
	if secretKeys[key] {
		return true
	}
	for _, kw := range secretKeywords {
		if strings.Contains(key, kw) {
			return true
		}
	}
	return false
}

// isSecretValue reports whether value looks like an ESPN credential.
func isSecretValue(value string) bool {
	for _, re := range secretValues {
		if re.MatchString(value) {
			return true
		}
	}
	return false
}

// NewSecureLogger returns a text logger that masks secrets.
// Verbose enables debug output; otherwise only warnings and errors are
// written.
func NewSecureLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(NewSecureHandler(slog.NewTextHandler(w, handlerOptions(verbose))))
}

// NewSecureJSONLogger is NewSecureLogger with JSON output.
func NewSecureJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(NewSecureHandler(slog.NewJSONHandler(w, handlerOptions(verbose))))
}

func handlerOptions(verbose bool) *slog.HandlerOptions {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return &slog.HandlerOptions{Level: level}
}
