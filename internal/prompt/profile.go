package prompt

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/dmorgan81/wastebot/internal/gemini"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

const (
	Basic    = "basic"
	Detailed = "detailed"

	DefaultProfile  = Detailed
	DefaultMimeType = "image/jpeg"
)

//go:embed assets/*.yaml
var assets embed.FS

// Profile is everything about the outbound request that does not come from the
// caller: the instruction text, the inline data media type and the optional
// generation and safety controls.
type Profile struct {
	Instruction      string                   `yaml:"instructionTemplate"`
	MimeType         string                   `yaml:"mimeType,omitempty"`
	GenerationConfig *gemini.GenerationConfig `yaml:"generationConfig,omitempty"`
	SafetySettings   []gemini.SafetySetting   `yaml:"safetySettings,omitempty"`
}

func Parse(data []byte) (Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("parse profile: %w", err)
	}
	p.MimeType = lo.Ternary(p.MimeType != "", p.MimeType, DefaultMimeType)
	return p, p.Validate()
}

func Builtin(name string) (Profile, error) {
	data, err := assets.ReadFile("assets/" + name + ".yaml")
	if err != nil {
		return Profile{}, fmt.Errorf("unknown prompt profile %q", name)
	}
	return Parse(data)
}

func (p Profile) Validate() error {
	var errs []error
	if strings.TrimSpace(p.Instruction) == "" {
		errs = append(errs, errors.New("instructionTemplate is empty"))
	}
	if c := p.GenerationConfig; c != nil {
		if t := lo.FromPtr(c.Temperature); t < 0 || t > 2 {
			errs = append(errs, fmt.Errorf("temperature %v outside [0, 2]", t))
		}
		if t := lo.FromPtr(c.TopP); t < 0 || t > 1 {
			errs = append(errs, fmt.Errorf("topP %v outside [0, 1]", t))
		}
		if lo.FromPtr(c.TopK) < 0 {
			errs = append(errs, errors.New("topK is negative"))
		}
		if lo.FromPtr(c.MaxOutputTokens) < 0 {
			errs = append(errs, errors.New("maxOutputTokens is negative"))
		}
	}
	seen := map[string]bool{}
	for _, s := range p.SafetySettings {
		if !lo.Contains(gemini.HarmCategories, s.Category) {
			errs = append(errs, fmt.Errorf("unknown harm category %q", s.Category))
		}
		if !lo.Contains(gemini.BlockThresholds, s.Threshold) {
			errs = append(errs, fmt.Errorf("unknown block threshold %q", s.Threshold))
		}
		if seen[s.Category] {
			errs = append(errs, fmt.Errorf("duplicate harm category %q", s.Category))
		}
		seen[s.Category] = true
	}
	return errors.Join(errs...)
}

// Request builds the generateContent payload for one base64 encoded image.
func (p Profile) Request(data string) *gemini.GenerateContentRequest {
	return &gemini.GenerateContentRequest{
		Contents: []gemini.Content{{
			Parts: []gemini.Part{
				{Text: p.Instruction},
				{InlineData: &gemini.InlineData{
					MimeType: lo.Ternary(p.MimeType != "", p.MimeType, DefaultMimeType),
					Data:     data,
				}},
			},
		}},
		GenerationConfig: p.GenerationConfig,
		SafetySettings:   p.SafetySettings,
	}
}
