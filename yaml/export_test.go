package yaml

import "github.com/fwojciec/evalconsole"

// LoadWithEnv exposes load with an injected environment for tests.
func LoadWithEnv(path string, env map[string]string) (evalconsole.Config, error) {
	return load(path, func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})
}
