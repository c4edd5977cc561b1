// Package config loads the server configuration from the `server:` section
// of config.yaml.
//
// Config fields:
//   - HTTPPort: port for the REST API, charts, metrics and sessions (default 8080)
//   - GRPCPort: port for the gRPC health probe (default 50051)
//   - LogLevel: debug|info|warn|error (default info); hot-reloadable
//   - Dataset.Path: launch CSV loaded once at startup
//   - Slider: display bounds of the payload control (0 to 10000, step 1000)
//   - CORS.AllowedOrigins: origins allowed to call the API (default any)
//   - Session.PingPeriod: WebSocket keepalive interval (default 54s)
//
// Load(path) applies defaults before unmarshalling, then validates.
// Watch(ctx, path, onChange) reloads the file through fsnotify.
package config
