// Package config handles loading and saving the mesh tool configuration.
package config

// Config holds all tool settings.
type Config struct {
	Assets  AssetsConfig  `yaml:"assets"`
	Preview PreviewConfig `yaml:"preview"`
	Export  ExportConfig  `yaml:"export"`
	Logging LoggingConfig `yaml:"logging"`
}

// AssetsConfig holds the paths of the externally loaded assets a map refers to.
type AssetsConfig struct {
	Atlas   string `yaml:"atlas"`    // 16x16 tile texture atlas
	Floor   string `yaml:"floor"`    // floor overlay texture
	KeyGate string `yaml:"key_gate"` // scene placed on locked connections
}

// PreviewConfig holds the colors of the generated materials.
// Colors are "#RRGGBB" or "#RRGGBBAA".
type PreviewConfig struct {
	BlockColor      string  `yaml:"block_color"`
	TrimColor       string  `yaml:"trim_color"`
	HighlightColor  string  `yaml:"highlight_color"`
	HighlightOffset float32 `yaml:"highlight_offset"`
}

// ExportConfig holds mesh export settings.
type ExportConfig struct {
	OutDir  string `yaml:"out_dir"`
	Normals bool   `yaml:"normals"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with the editor's stock values.
func Default() *Config {
	return &Config{
		Assets: AssetsConfig{
			Atlas:   "textures/atlas.png",
			Floor:   "textures/floor.png",
			KeyGate: "objects/key_gate.glb#Scene0",
		},
		Preview: PreviewConfig{
			BlockColor:      "#111111",
			TrimColor:       "#AAAAAA",
			HighlightColor:  "#54AFE780",
			HighlightOffset: 0.01,
		},
		Export: ExportConfig{
			OutDir:  ".",
			Normals: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
