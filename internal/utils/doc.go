// Package utils holds the ambient plumbing shared by every cln command:
// the Viper-backed ConfigurationLoader, the zap LoggerFactory, and the
// CommandContextAccessor that carries resolved paths through cobra contexts.
package utils
