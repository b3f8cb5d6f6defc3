package instance

import "os"

var idEnvVars = []string{"CHECKOUT_INSTANCE_ID", "DYNO", "HOSTNAME"}

// GetID returns the process instance identifier or a default value.
func GetID() string {
	for _, key := range idEnvVars {
		if id := os.Getenv(key); id != "" {
			return id
		}
	}
	return "local"
}
