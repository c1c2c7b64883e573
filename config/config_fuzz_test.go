package config

import (
	"os"
	"testing"
)

func FuzzLoadConfig(f *testing.F) {
	f.Add([]byte(`
[global]
logLevel = "info"
[group]
recordFile = "favoriteMovies.txt"
`))

	f.Add([]byte(""))

	f.Add([]byte(`
[topk]
scoreFile = "timeSpent.txt"
k = 3
`))

	f.Add([]byte(`
global = 1
[topk]
k = "x"
`))

	f.Fuzz(func(t *testing.T, data []byte) {
		configPath := t.TempDir() + "/fuzz.toml"
		if err := os.WriteFile(configPath, data, 0644); err != nil {
			return
		}
		// invalid configs return errors, never panic
		config, err := LoadConfig(configPath)
		if err == nil && config.Global == nil {
			t.Fatal("Global section must never be nil")
		}
	})
}
