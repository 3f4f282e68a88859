package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const voiceChefSystemPrompt = `You are Chef Pantry, a warm and friendly voice cooking assistant. You're talking to someone who is cooking and has their hands busy, so keep responses conversational and concise.

Rules:
- Keep responses SHORT, 2-4 sentences at most
- Ask ONE follow-up question at a time
- Be proactive: suggest options, ask about preferences
- You are voice-only, so never use bullet points or formatting`

// DefaultVoice is the TTS voice used when the caller does not pick one.
const DefaultVoice = openai.VoiceNova

var recipeKeywords = []string{
	"recipe", "make", "cook", "suggest", "what can i",
	"dinner", "lunch", "breakfast", "meal",
}

// CurrentRecipe carries the recipe being cooked into a voice conversation.
type CurrentRecipe struct {
	Name         string   `json:"name"`
	Instructions []string `json:"instructions"`
}

// VoiceChatResult is a voice reply plus whether retrieval grounded it.
type VoiceChatResult struct {
	Response string `json:"response"`
	UsedRAG  bool   `json:"used_rag"`
}

// VoiceSuggestResult is a spoken recipe recommendation.
type VoiceSuggestResult struct {
	Response         string `json:"response"`
	RetrievedRecipes int    `json:"retrieved_recipes"`
}

// VoiceService provides hands-free cooking assistance: Whisper for speech
// recognition, TTS for replies and retrieval-grounded conversation.
type VoiceService struct {
	ai  *OpenAIClient
	rag *RAGService
}

// NewVoiceService creates a new VoiceService instance
func NewVoiceService(ai *OpenAIClient, rag *RAGService) *VoiceService {
	return &VoiceService{ai: ai, rag: rag}
}

// Transcribe converts recorded speech to text.
func (s *VoiceService) Transcribe(ctx context.Context, audio []byte, format string) (string, error) {
	if format == "" {
		format = "webm"
	}
	text, err := s.ai.Transcribe(ctx, "audio."+format, bytes.NewReader(audio))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// Speak synthesizes a reply as MP3 audio.
func (s *VoiceService) Speak(ctx context.Context, text string, voice string) ([]byte, error) {
	v := DefaultVoice
	if voice != "" {
		v = openai.SpeechVoice(voice)
	}
	return s.ai.Speak(ctx, text, v, 1.0)
}

// Chat holds a voice conversation. When the message sounds like a recipe
// request, or ingredients are known, relevant catalog recipes are retrieved
// and the model is told to recommend only those.
func (s *VoiceService) Chat(ctx context.Context, message string, history []ChatMessage, detectedIngredients []string, currentRecipe *CurrentRecipe) (*VoiceChatResult, error) {
	var contextParts []string

	if len(detectedIngredients) > 0 {
		contextParts = append(contextParts, "The user's available ingredients: "+strings.Join(detectedIngredients, ", "))
	}
	if currentRecipe != nil && currentRecipe.Name != "" {
		contextParts = append(contextParts, "Currently discussing recipe: "+currentRecipe.Name)
		if len(currentRecipe.Instructions) > 0 {
			steps := truncateRunes(strings.Join(currentRecipe.Instructions, " "), 500)
			contextParts = append(contextParts, "Recipe instructions: "+steps)
		}
	}

	usedRAG := len(detectedIngredients) > 0 || mentionsRecipes(message)
	if usedRAG {
		searchQuery := message
		if len(detectedIngredients) > 0 {
			limit := detectedIngredients
			if len(limit) > 5 {
				limit = limit[:5]
			}
			searchQuery += " with " + strings.Join(limit, ", ")
		}

		retrieved, err := s.rag.Search(ctx, searchQuery, 3, "", nil)
		if err == nil && len(retrieved) > 0 {
			var lines []string
			for _, r := range retrieved {
				doc := r.Document
				if truncated := truncateRunes(doc, 200); truncated != doc {
					doc = truncated + "..."
				}
				lines = append(lines, fmt.Sprintf("- %s: %s", r.Name, doc))
			}
			contextParts = append(contextParts,
				"Recipes from our database you can recommend:\n"+strings.Join(lines, "\n"),
				"When suggesting recipes, ONLY recommend ones from the list above. Don't make up recipes.")
		} else {
			usedRAG = false
		}
	}

	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: voiceChefSystemPrompt},
	}
	if len(contextParts) > 0 {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: "Context for this conversation:\n" + strings.Join(contextParts, "\n"),
		})
	}

	start := 0
	if len(history) > 10 {
		start = len(history) - 10
	}
	for _, msg := range history[start:] {
		role := msg.Role
		if role != openai.ChatMessageRoleAssistant {
			role = openai.ChatMessageRoleUser
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: msg.Content})
	}
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: message})

	response, err := s.ai.ChatText(ctx, ChatModel, messages, 0.8, 200)
	if err != nil {
		return nil, err
	}
	return &VoiceChatResult{Response: response, UsedRAG: usedRAG}, nil
}

// Greet generates the opening line once the user's ingredients are known.
func (s *VoiceService) Greet(ctx context.Context, ingredients []string) (string, error) {
	prompt := fmt.Sprintf(`The user has these ingredients available: %s

Generate a warm, enthusiastic greeting that acknowledges 2-3 specific ingredients, expresses excitement about the possibilities and asks ONE question about their preference (cuisine, time, mood). Keep it to 2-3 sentences.`,
		strings.Join(ingredients, ", "))

	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: voiceChefSystemPrompt},
		{Role: openai.ChatMessageRoleUser, Content: prompt},
	}
	return s.ai.ChatText(ctx, ChatModel, messages, 0.8, 150)
}

// Suggest retrieves matching catalog recipes and generates a spoken
// recommendation grounded in them.
func (s *VoiceService) Suggest(ctx context.Context, ingredients []string, cuisinePreference string, dietaryRestrictions []string, timeConstraint string) (*VoiceSuggestResult, error) {
	searchQuery := "recipe using " + strings.Join(ingredients, ", ")
	if cuisinePreference != "" {
		searchQuery += " " + cuisinePreference + " cuisine"
	}
	if len(dietaryRestrictions) > 0 {
		searchQuery += " " + strings.Join(dietaryRestrictions, ", ")
	}
	if timeConstraint != "" {
		searchQuery += " " + timeConstraint
	}

	retrieved, err := s.rag.Search(ctx, searchQuery, 3, cuisinePreference, dietaryRestrictions)
	if err != nil {
		return nil, err
	}

	recipeContext := "No matching recipes found in the database."
	if len(retrieved) > 0 {
		var docs []string
		for _, r := range retrieved {
			docs = append(docs, "RECIPE FROM DATABASE:\n"+r.Document)
		}
		recipeContext = strings.Join(docs, "\n\n")
	}

	var constraints []string
	if cuisinePreference != "" {
		constraints = append(constraints, "They want "+cuisinePreference+" cuisine")
	}
	if len(dietaryRestrictions) > 0 {
		constraints = append(constraints, "Dietary restrictions: "+strings.Join(dietaryRestrictions, ", "))
	}
	if timeConstraint != "" {
		constraints = append(constraints, "Time available: "+timeConstraint)
	}
	constraintText := "No specific preferences mentioned."
	if len(constraints) > 0 {
		constraintText = strings.Join(constraints, ". ")
	}

	prompt := fmt.Sprintf(`Available ingredients from the user: %s
%s

Here are recipes from our cookbook that might work:

%s

Based ONLY on the recipes above: recommend the best matching recipe by name, describe enthusiastically why it fits their ingredients, mention which of their ingredients it uses, and ask if they'd like a guided walkthrough. Never invent recipes. Keep it to 3-4 sentences.`,
		strings.Join(ingredients, ", "), constraintText, recipeContext)

	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: voiceChefSystemPrompt},
		{Role: openai.ChatMessageRoleUser, Content: prompt},
	}
	response, err := s.ai.ChatText(ctx, ChatModel, messages, 0.8, 200)
	if err != nil {
		return nil, err
	}
	return &VoiceSuggestResult{Response: response, RetrievedRecipes: len(retrieved)}, nil
}

// CookingStep narrates one step of a recipe and answers the user's
// question about it.
func (s *VoiceService) CookingStep(ctx context.Context, recipeName string, currentStep, totalSteps int, stepInstruction, userQuestion string) (string, error) {
	question := "Guide them through this step."
	if userQuestion != "" {
		question = "User asked: " + userQuestion
	}

	prompt := fmt.Sprintf(`Recipe: %s
Step %d of %d: %s

%s

Give clear, concise voice instructions for this step. If they asked a question, answer it. End by asking if they're ready for the next step. Keep it to 2-3 sentences.`,
		recipeName, currentStep, totalSteps, stepInstruction, question)

	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: voiceChefSystemPrompt},
		{Role: openai.ChatMessageRoleUser, Content: prompt},
	}
	return s.ai.ChatText(ctx, ChatModel, messages, 0.7, 150)
}

func mentionsRecipes(message string) bool {
	lower := strings.ToLower(message)
	for _, kw := range recipeKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
