// Package confloader loads layered configuration with koanf.
//
// Sources, lowest to highest priority:
//
//  1. Values already present in the target struct (defaults)
//  2. YAML configuration file
//  3. Environment variables (TOKGATE_ prefix)
//  4. Explicit overrides from LoadMap, typically command-line flags
//
// Environment variable names are matched against the koanf tags of the
// target struct, so TOKGATE_NOTIFY_POSTMARK_SERVER_TOKEN resolves to
// notify.postmark.server_token even though the key itself contains an
// underscore.
//
// Watcher reports changes to the configuration file so that reloadable
// settings can be applied without a restart.
package confloader
