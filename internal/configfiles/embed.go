// Package configfiles provides embedded configuration files for RetailScope.
// They are used as templates for initializing user configuration.
package configfiles

import (
	_ "embed"
)

//go:embed retailscope.example.yaml
var configExample []byte

// ExampleName is the file name of the embedded example configuration
const ExampleName = "retailscope.example.yaml"

// GetConfigExample returns the annotated example configuration
func GetConfigExample() []byte {
	out := make([]byte, len(configExample))
	copy(out, configExample)
	return out
}
