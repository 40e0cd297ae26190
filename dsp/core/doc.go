// Package core holds numeric helpers and the processor configuration shared
// by the measurement packages.
package core
