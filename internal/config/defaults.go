package config

import (
	"gopkg.in/yaml.v2"
)

// Default returns the configuration used when a key is absent from the file.
// An empty trash_dir resolves to ~/.Trash.
func Default() Config {
	return Config{
		Core: Core{
			TrashDir: "",
			Summary:  false,
			Protect: Protect{
				Globs: []string{},
			},
		},
		UI: UI{
			Color: "auto", // or always, never
		},
		Logging: Logging{
			Enabled: false,
			Level:   "info",
			Rotation: Rotation{
				MaxSize:  "10MB",
				MaxFiles: 3,
				MaxAge:   "30 days",
			},
		},
	}
}

func defaultContents() string {
	content, _ := yaml.Marshal(Default())
	return string(content)
}
