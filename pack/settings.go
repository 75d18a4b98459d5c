package pack

import "encoding/json"

// Settings is the decoded form of the settings.rpfm_reserved embedded
// file: four typed key/value maps shared across installations that open
// the same Pack.
type Settings struct {
	Text   map[string]string `json:"settings_text"`
	String map[string]string `json:"settings_string"`
	Bool   map[string]bool   `json:"settings_bool"`
	Number map[string]int32  `json:"settings_number"`
}

// NewSettings returns an empty Settings document.
func NewSettings() *Settings {
	return &Settings{
		Text:   make(map[string]string),
		String: make(map[string]string),
		Bool:   make(map[string]bool),
		Number: make(map[string]int32),
	}
}

// LoadSettings parses a settings.rpfm_reserved payload.
func LoadSettings(data []byte) (*Settings, error) {
	s := NewSettings()
	if len(data) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(data, s); err != nil {
		return nil, err
	}
	s.fillNil()
	return s, nil
}

// Marshal serializes Settings back to its JSON wire form.
func (s *Settings) Marshal() ([]byte, error) {
	s.fillNil()
	return json.MarshalIndent(s, "", "  ")
}

func (s *Settings) fillNil() {
	if s.Text == nil {
		s.Text = make(map[string]string)
	}
	if s.String == nil {
		s.String = make(map[string]string)
	}
	if s.Bool == nil {
		s.Bool = make(map[string]bool)
	}
	if s.Number == nil {
		s.Number = make(map[string]int32)
	}
}

func (s *Settings) SetText(key, value string)         { s.Text[key] = value }
func (s *Settings) SetString(key, value string)       { s.String[key] = value }
func (s *Settings) SetBool(key string, value bool)    { s.Bool[key] = value }
func (s *Settings) SetNumber(key string, value int32) { s.Number[key] = value }

func (s *Settings) GetText(key string) (string, bool)   { v, ok := s.Text[key]; return v, ok }
func (s *Settings) GetString(key string) (string, bool) { v, ok := s.String[key]; return v, ok }
func (s *Settings) GetBool(key string) (bool, bool)     { v, ok := s.Bool[key]; return v, ok }
func (s *Settings) GetNumber(key string) (int32, bool)  { v, ok := s.Number[key]; return v, ok }

func (s *Settings) DeleteText(key string)   { delete(s.Text, key) }
func (s *Settings) DeleteString(key string) { delete(s.String, key) }
func (s *Settings) DeleteBool(key string)   { delete(s.Bool, key) }
func (s *Settings) DeleteNumber(key string) { delete(s.Number, key) }
