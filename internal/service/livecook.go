package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// FrameAnalysis is the model's read of a single camera frame during live
// cooking.
type FrameAnalysis struct {
	DetectedItems          []string `json:"detected_items"`
	CurrentAction          string   `json:"current_action"`
	Guidance               string   `json:"guidance"`
	Speak                  bool     `json:"speak"`
	Warning                string   `json:"warning,omitempty"`
	Tip                    string   `json:"tip,omitempty"`
	StepCompleteSuggestion bool     `json:"step_complete_suggestion"`
	NextStepPreview        string   `json:"next_step_preview,omitempty"`
	TimingAdvice           string   `json:"timing_advice,omitempty"`
	IngredientAmounts      string   `json:"ingredient_amounts,omitempty"`
}

// CommandResult is the reply to a voice command during live cooking.
// Action is "next_step", "prev_step" or empty.
type CommandResult struct {
	Response       string `json:"response"`
	Action         string `json:"action,omitempty"`
	AdditionalInfo string `json:"additional_info,omitempty"`
}

// RecipeIngredientAmount pairs an ingredient with its recipe quantity, for
// ingredient help during a live session.
type RecipeIngredientAmount struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
}

// LiveCookService gives real-time guidance during a cooking session:
// camera frame analysis, voice commands, ingredient amounts and timing.
// Everything runs on the mini model with low image detail so replies come
// back fast enough to be useful mid-cook.
type LiveCookService struct {
	ai *OpenAIClient
}

// NewLiveCookService creates a new LiveCookService instance
func NewLiveCookService(ai *OpenAIClient) *LiveCookService {
	return &LiveCookService{ai: ai}
}

// AnalyzeFrame reads a camera frame and returns immediate guidance for the
// current recipe step. Unparseable model output degrades to a neutral
// "keep going" reply rather than an error, since frames arrive continuously.
func (s *LiveCookService) AnalyzeFrame(ctx context.Context, imageBase64, recipeName string, currentStep int, currentInstruction string, detectedIngredients []string) (*FrameAnalysis, error) {
	detected := "none yet"
	if len(detectedIngredients) > 0 {
		limit := detectedIngredients
		if len(limit) > 10 {
			limit = limit[:10]
		}
		detected = strings.Join(limit, ", ")
	}

	system := fmt.Sprintf(`You are a live cooking assistant watching someone cook through their camera. Be concise, specific and encouraging. Warn about issues BEFORE they happen. Focus on what you actually SEE in the image.

Current context:
- Recipe: %s
- Current step (%d): %s`, recipeName, currentStep, currentInstruction)

	prompt := fmt.Sprintf(`Look at this image from someone's kitchen as they cook.

Recipe: %s
Current Step %d: %s
Previously detected ingredients: %s

Analyze what you see and provide cooking guidance. Respond in JSON format:
{
    "detected_items": ["visible", "items"],
    "current_action": "what they appear to be doing",
    "guidance": "Brief, specific guidance for right now (1-2 sentences max)",
    "speak": true,
    "warning": "Only if something is concerning, otherwise null",
    "tip": "Optional quick tip, otherwise null",
    "step_complete_suggestion": false,
    "next_step_preview": "Brief preview of next step if this one looks done, otherwise null",
    "timing_advice": "Timing advice like 'flip in 30 seconds' or null",
    "ingredient_amounts": "If they are measuring, advise on amounts, otherwise null"
}

Be specific and actionable. They're cooking right now and need clear, immediate guidance.`,
		recipeName, currentStep, currentInstruction, detected)

	imageURL := imageBase64
	if !strings.HasPrefix(imageURL, "data:") {
		imageURL = "data:image/jpeg;base64," + imageURL
	}

	content, err := s.ai.AnalyzeImageJSON(ctx, ChatModel, imageURL, system, prompt, openai.ImageURLDetailLow, 300, 0.3)
	if err != nil {
		return nil, err
	}

	var analysis FrameAnalysis
	if err := json.Unmarshal([]byte(content), &analysis); err != nil {
		return &FrameAnalysis{Guidance: "Keep going! I'm watching.", Speak: false}, nil
	}
	return &analysis, nil
}

// VoiceCommand answers a spoken command ("how much salt?", "what's next?")
// in the context of the current step.
func (s *LiveCookService) VoiceCommand(ctx context.Context, command, recipeName string, currentStep int, currentInstruction string, detectedIngredients []string, lastAnalysis *FrameAnalysis) (*CommandResult, error) {
	detected := "various items"
	if len(detectedIngredients) > 0 {
		limit := detectedIngredients
		if len(limit) > 10 {
			limit = limit[:10]
		}
		detected = strings.Join(limit, ", ")
	}

	system := fmt.Sprintf(`You are an AI cooking assistant responding to voice commands while someone cooks.

Context:
- Recipe: %s
- Current step (%d): %s
- Visible items: %s

Handle commands like "How much [ingredient]?", "How long [action]?", "What's next?", "Go back", "Is this done?" and general cooking questions. Respond conversationally but concisely.

Respond in JSON:
{
    "response": "Your spoken response (brief and clear)",
    "action": "next_step" or "prev_step" or null,
    "additional_info": "Any extra details they might need"
}`, recipeName, currentStep, currentInstruction, detected)

	var contextInfo strings.Builder
	if lastAnalysis != nil {
		if lastAnalysis.CurrentAction != "" {
			fmt.Fprintf(&contextInfo, "They appear to be: %s. ", lastAnalysis.CurrentAction)
		}
		if lastAnalysis.TimingAdvice != "" {
			fmt.Fprintf(&contextInfo, "Timing note: %s. ", lastAnalysis.TimingAdvice)
		}
	}

	prompt := fmt.Sprintf("Voice command: %q\n\nAdditional context: %s", command, contextInfo.String())

	content, err := s.ai.ChatJSON(ctx, ChatModel, system, prompt, 0.5)
	if err != nil {
		return nil, err
	}

	var result CommandResult
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return &CommandResult{Response: "Sorry, I didn't catch that. Can you repeat?"}, nil
	}
	return &result, nil
}

// IngredientHelp answers how much of an ingredient to use, preferring the
// recipe's own quantity when it lists one.
func (s *LiveCookService) IngredientHelp(ctx context.Context, ingredient, recipeName string, recipeIngredients []RecipeIngredientAmount) (string, error) {
	ingredientsContext := ""
	for _, ing := range recipeIngredients {
		if strings.Contains(strings.ToLower(ing.Name), strings.ToLower(ingredient)) {
			quantity := ing.Quantity
			if quantity == "" {
				quantity = "as needed"
			}
			ingredientsContext = fmt.Sprintf("Recipe calls for: %s - %s", ing.Name, quantity)
			break
		}
	}

	messages := []openai.ChatCompletionMessage{
		{
			Role:    openai.ChatMessageRoleSystem,
			Content: "You are a cooking assistant helping with ingredient amounts. Be specific and practical.",
		},
		{
			Role:    openai.ChatMessageRoleUser,
			Content: fmt.Sprintf("Recipe: %s\n%s\n\nHow much %s should I use?", recipeName, ingredientsContext, ingredient),
		},
	}
	return s.ai.ChatText(ctx, ChatModel, messages, 0.3, 100)
}

// TimingHelp answers how long a cooking action should take.
func (s *LiveCookService) TimingHelp(ctx context.Context, action, currentInstruction, visualContext string) (string, error) {
	context := "Current step: " + currentInstruction
	if visualContext != "" {
		context += "\nWhat I can see: " + visualContext
	}

	messages := []openai.ChatCompletionMessage{
		{
			Role:    openai.ChatMessageRoleSystem,
			Content: "You are a cooking assistant helping with timing. Give specific times in seconds or minutes.",
		},
		{
			Role:    openai.ChatMessageRoleUser,
			Content: fmt.Sprintf("%s\n\nHow long should I %s?", context, action),
		},
	}
	return s.ai.ChatText(ctx, ChatModel, messages, 0.3, 100)
}
