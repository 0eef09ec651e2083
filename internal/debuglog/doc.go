// Package debuglog provides the internal diagnostic logger used by hl
// itself, as distinct from the structured logs hl displays to the user.
//
// Diagnostics are opt-in: [Config.Open] returns a no-op [*Logger] unless a
// path is configured (normally via the HL_DEBUG_LOG environment variable),
// so a successful run stays silent on stderr per SPEC_FULL §7's
// propagation policy. When enabled, records are written as logfmt or JSON
// lines via [log/slog], one per source/record-scoped error, plus an
// aggregate summary emitted by [Logger.Close].
//
//	cfg := debuglog.NewConfig()
//	cfg.RegisterFlags(rootCmd.PersistentFlags())
//
//	logger, err := cfg.Open()
//	defer logger.Close()
//
//	logger.RecordError(debuglog.KindMessageTooLarge, "app.log", err)
package debuglog
