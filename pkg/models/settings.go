package models

// Settings is the persisted application settings record. Field names match
// the original export format. Cosmetic settings the terminal UI cannot honor
// are still round-tripped so imported state is not lost.
type Settings struct {
	Theme          string `json:"theme"`
	AccentColor    string `json:"accentColor"`
	EditorFontSize int    `json:"editorFontSize"`
	AutoSave       bool   `json:"autoSave"`
	LivePreview    bool   `json:"livePreview"`
	PythonPreload  bool   `json:"pythonPreload"`
}

// DefaultSettings returns the settings applied before anything is persisted.
func DefaultSettings() Settings {
	return Settings{
		Theme:          "dark",
		AccentColor:    "#6366f1",
		EditorFontSize: 14,
		AutoSave:       true,
		LivePreview:    true,
	}
}
