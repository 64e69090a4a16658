package gemini

// Harm categories accepted in SafetySetting.Category.
const (
	HarmCategoryHarassment       = "HARM_CATEGORY_HARASSMENT"
	HarmCategoryHateSpeech       = "HARM_CATEGORY_HATE_SPEECH"
	HarmCategorySexuallyExplicit = "HARM_CATEGORY_SEXUALLY_EXPLICIT"
	HarmCategoryDangerousContent = "HARM_CATEGORY_DANGEROUS_CONTENT"
)

// Block thresholds accepted in SafetySetting.Threshold.
const (
	BlockThresholdUnspecified = "HARM_BLOCK_THRESHOLD_UNSPECIFIED"
	BlockNone                 = "BLOCK_NONE"
	BlockOnlyHigh             = "BLOCK_ONLY_HIGH"
	BlockMediumAndAbove       = "BLOCK_MEDIUM_AND_ABOVE"
	BlockLowAndAbove          = "BLOCK_LOW_AND_ABOVE"
)

var (
	HarmCategories  = []string{HarmCategoryHarassment, HarmCategoryHateSpeech, HarmCategorySexuallyExplicit, HarmCategoryDangerousContent}
	BlockThresholds = []string{BlockThresholdUnspecified, BlockNone, BlockOnlyHigh, BlockMediumAndAbove, BlockLowAndAbove}
)

type GenerateContentRequest struct {
	Contents         []Content         `json:"contents"`
	GenerationConfig *GenerationConfig `json:"generationConfig,omitempty"`
	SafetySettings   []SafetySetting   `json:"safetySettings,omitempty"`
}

type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

// Part holds either text or inline binary data.
type Part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *InlineData `json:"inlineData,omitempty"`
}

// InlineData carries base64 encoded bytes tagged with their media type.
type InlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type GenerationConfig struct {
	Temperature     *float32 `json:"temperature,omitempty" yaml:"temperature,omitempty"`
	TopK            *int32   `json:"topK,omitempty" yaml:"topK,omitempty"`
	TopP            *float32 `json:"topP,omitempty" yaml:"topP,omitempty"`
	MaxOutputTokens *int32   `json:"maxOutputTokens,omitempty" yaml:"maxOutputTokens,omitempty"`
}

type SafetySetting struct {
	Category  string `json:"category" yaml:"category"`
	Threshold string `json:"threshold" yaml:"threshold"`
}

type GenerateContentResponse struct {
	Candidates     []Candidate     `json:"candidates,omitempty"`
	PromptFeedback *PromptFeedback `json:"promptFeedback,omitempty"`
	UsageMetadata  *UsageMetadata  `json:"usageMetadata,omitempty"`
	Error          *Status         `json:"error,omitempty"`
}

type Candidate struct {
	Content       *Content       `json:"content,omitempty"`
	FinishReason  string         `json:"finishReason,omitempty"`
	SafetyRatings []SafetyRating `json:"safetyRatings,omitempty"`
}

type SafetyRating struct {
	Category    string `json:"category"`
	Probability string `json:"probability"`
}

type PromptFeedback struct {
	BlockReason   string         `json:"blockReason,omitempty"`
	SafetyRatings []SafetyRating `json:"safetyRatings,omitempty"`
}

type UsageMetadata struct {
	PromptTokenCount     int32 `json:"promptTokenCount"`
	CandidatesTokenCount int32 `json:"candidatesTokenCount"`
	TotalTokenCount      int32 `json:"totalTokenCount"`
}

// Status is the error object Google APIs embed in failed responses.
type Status struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// Text returns candidates[0].content.parts[0].text. The bool is false when any
// step of that path is missing or the text is empty.
func (r *GenerateContentResponse) Text() (string, bool) {
	if r == nil || len(r.Candidates) == 0 {
		return "", false
	}
	content := r.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 {
		return "", false
	}
	text := content.Parts[0].Text
	return text, text != ""
}

// InlineData returns the first inline data part of the first content.
func (r *GenerateContentRequest) InlineData() (*InlineData, bool) {
	if r == nil || len(r.Contents) == 0 {
		return nil, false
	}
	for _, p := range r.Contents[0].Parts {
		if p.InlineData != nil {
			return p.InlineData, true
		}
	}
	return nil, false
}
