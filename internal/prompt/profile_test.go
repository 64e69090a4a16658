package prompt

import (
	"context"
	"errors"
	"testing"

	"github.com/dmorgan81/wastebot/internal/gemini"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDownloader map[string]string

func (f fakeDownloader) Download(_ context.Context, location string) ([]byte, error) {
	data, ok := f[location]
	if !ok {
		return nil, errors.New("not found")
	}
	return []byte(data), nil
}

func TestBuiltinBasic(t *testing.T) {
	p, err := Builtin(Basic)
	require.NoError(t, err)
	assert.Equal(t, DefaultMimeType, p.MimeType)
	assert.Contains(t, p.Instruction, "Type: [waste type]")
	assert.Contains(t, p.Instruction, "YouTube Query:")
	assert.NotContains(t, p.Instruction, "Environmental Impact")
	assert.Nil(t, p.GenerationConfig)
	assert.Empty(t, p.SafetySettings)
}

func TestBuiltinDetailed(t *testing.T) {
	p, err := Builtin(Detailed)
	require.NoError(t, err)
	assert.Contains(t, p.Instruction, "Environmental Impact:")

	require.NotNil(t, p.GenerationConfig)
	assert.Equal(t, float32(0.4), lo.FromPtr(p.GenerationConfig.Temperature))
	assert.Equal(t, int32(32), lo.FromPtr(p.GenerationConfig.TopK))
	assert.Equal(t, float32(1), lo.FromPtr(p.GenerationConfig.TopP))
	assert.Equal(t, int32(1024), lo.FromPtr(p.GenerationConfig.MaxOutputTokens))

	categories := lo.Map(p.SafetySettings, func(s gemini.SafetySetting, _ int) string { return s.Category })
	assert.ElementsMatch(t, gemini.HarmCategories, categories)
	for _, s := range p.SafetySettings {
		assert.Equal(t, gemini.BlockMediumAndAbove, s.Threshold)
	}
}

func TestBuiltinUnknown(t *testing.T) {
	_, err := Builtin("verbose")
	assert.ErrorContains(t, err, `unknown prompt profile "verbose"`)
}

func TestParseDefaultsMimeType(t *testing.T) {
	p, err := Parse([]byte("instructionTemplate: Describe the item.\n"))
	require.NoError(t, err)
	assert.Equal(t, "Describe the item.", p.Instruction)
	assert.Equal(t, DefaultMimeType, p.MimeType)
}

func TestParseRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"empty instruction": "mimeType: image/png\n",
		"temperature":       "instructionTemplate: x\ngenerationConfig:\n  temperature: 3\n",
		"topP":              "instructionTemplate: x\ngenerationConfig:\n  topP: 1.5\n",
		"topK":              "instructionTemplate: x\ngenerationConfig:\n  topK: -1\n",
		"category":          "instructionTemplate: x\nsafetySettings:\n  - category: HARM_CATEGORY_SPAM\n    threshold: BLOCK_NONE\n",
		"threshold":         "instructionTemplate: x\nsafetySettings:\n  - category: HARM_CATEGORY_HARASSMENT\n    threshold: BLOCK_SOME\n",
		"duplicate": "instructionTemplate: x\nsafetySettings:\n" +
			"  - category: HARM_CATEGORY_HARASSMENT\n    threshold: BLOCK_NONE\n" +
			"  - category: HARM_CATEGORY_HARASSMENT\n    threshold: BLOCK_ONLY_HIGH\n",
		"yaml": "instructionTemplate: [unterminated\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestRequest(t *testing.T) {
	p, err := Builtin(Detailed)
	require.NoError(t, err)

	req := p.Request("XYZ")
	require.Len(t, req.Contents, 1)
	require.Len(t, req.Contents[0].Parts, 2)
	assert.Equal(t, p.Instruction, req.Contents[0].Parts[0].Text)
	assert.Nil(t, req.Contents[0].Parts[0].InlineData)

	data, ok := req.InlineData()
	require.True(t, ok)
	assert.Equal(t, &gemini.InlineData{MimeType: "image/jpeg", Data: "XYZ"}, data)
	assert.Same(t, p.GenerationConfig, req.GenerationConfig)
	assert.Equal(t, p.SafetySettings, req.SafetySettings)
}

func TestLoaderBuiltin(t *testing.T) {
	l := &Loader{downloader: fakeDownloader{}}
	p, err := l.Load(context.Background(), Basic, "")
	require.NoError(t, err)
	assert.Nil(t, p.GenerationConfig)
}

func TestLoaderSource(t *testing.T) {
	l := &Loader{downloader: fakeDownloader{
		"s3://bucket/profile.yaml": "instructionTemplate: Sort it.\nmimeType: image/png\n",
		"bad.yaml":                 "mimeType: image/png\n",
	}}

	p, err := l.Load(context.Background(), Detailed, "s3://bucket/profile.yaml")
	require.NoError(t, err)
	assert.Equal(t, "Sort it.", p.Instruction)
	assert.Equal(t, "image/png", p.MimeType)
	assert.Nil(t, p.GenerationConfig)

	_, err = l.Load(context.Background(), Detailed, "bad.yaml")
	assert.ErrorContains(t, err, "instructionTemplate is empty")

	_, err = l.Load(context.Background(), Detailed, "missing.yaml")
	assert.ErrorContains(t, err, "not found")
}
