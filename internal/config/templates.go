package config

import (
	"fmt"
	"os"
)

func Template() string { return stencTemplate }

func WriteTemplate(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(stencTemplate), 0o600)
}

const stencTemplate = `# largest payload accepted when decoding, in bytes
max_payload = 16777215
# MaxLen written into container headers
max_seal = 16777215

log_level = "info"
log_timestamp = false
log_no_color = false

# schema export format: yaml or cbor
output_format = "yaml"
`
