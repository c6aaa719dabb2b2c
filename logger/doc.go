// Package logger wraps zerolog with the conventions the authkit packages
// share: component-scoped loggers, map-based structured fields, and a
// console writer for local development.
//
// Init wires the global logger from a Config (usually the logging section
// of a service config) and seeds a named registry, so token, password, and
// config code can pick up their loggers without any plumbing:
//
//	log := logger.Get(logger.ComponentToken)
//	log.Info("token issued", logger.OpFields("issue", logger.FieldTokenType, "access"))
//
// Field names used across authkit live in fields.go; identifiers are logged,
// credentials never are.
package logger
