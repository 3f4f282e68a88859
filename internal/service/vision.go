package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const ingredientDetectionPrompt = `You are a professional chef and food inventory specialist. Identify EVERY food item and ingredient visible in the image.

Scan the whole image systematically: shelves, drawers, door compartments, counters, corners. Include partially visible items, common staples (butter, eggs, milk, condiments), proteins, dairy, produce, condiments, beverages, pantry items and leftovers. List each distinct item separately.

Return a JSON object:
{
    "ingredients": [
        {"name": "ingredient name", "quantity": "estimated amount", "location": "where in image", "condition": "fresh/frozen/leftover", "category": "protein/dairy/vegetable/fruit/condiment/pantry/beverage/prepared"}
    ],
    "total_count": 0,
    "areas_checked": ["door shelves", "main shelves", "drawers"],
    "summary": "Brief description of what's available",
    "meal_potential": "What meals could be made with these ingredients",
    "notes": "Items that were hard to identify"
}

It is better to list too many items than to miss any. If a container's contents are unreadable, note it as "unidentified container".`

const fastDetectionPrompt = `Identify ALL food items in this image. Return JSON:
{
  "ingredients": [{"name": "item", "quantity": "amount if visible"}],
  "summary": "brief description"
}

Be thorough. Check shelves, drawers, door, counters. Include condiments, produce, dairy, meats, beverages.`

// DetectedIngredient is one food item found in an image. The model
// sometimes returns bare strings instead of objects, so unmarshalling
// accepts both.
type DetectedIngredient struct {
	Name      string `json:"name"`
	Quantity  string `json:"quantity,omitempty"`
	Location  string `json:"location,omitempty"`
	Condition string `json:"condition,omitempty"`
	Category  string `json:"category,omitempty"`
}

func (d *DetectedIngredient) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		d.Name = str
		return nil
	}

	type alias DetectedIngredient
	var obj alias
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*d = DetectedIngredient(obj)
	return nil
}

// VisionAnalysis is the validated result of an image analysis.
type VisionAnalysis struct {
	Ingredients     []DetectedIngredient `json:"ingredients"`
	IngredientNames []string             `json:"ingredient_names"`
	TotalCount      int                  `json:"total_count"`
	AreasChecked    []string             `json:"areas_checked,omitempty"`
	Summary         string               `json:"summary"`
	MealPotential   string               `json:"meal_potential,omitempty"`
	Notes           string               `json:"notes,omitempty"`
}

// VisionService detects ingredients in photos of fridges, pantries and
// kitchen counters.
type VisionService struct {
	ai *OpenAIClient
}

// NewVisionService creates a new VisionService instance
func NewVisionService(ai *OpenAIClient) *VisionService {
	return &VisionService{ai: ai}
}

// AnalyzeImage runs the standard high-detail analysis on raw image bytes.
func (s *VisionService) AnalyzeImage(ctx context.Context, imageData []byte) (*VisionAnalysis, error) {
	return s.analyze(ctx, toDataURL(imageData), VisionModel, openai.ImageURLDetailHigh, 4000, "")
}

// AnalyzeBase64 analyzes an already base64-encoded image. A data URL
// prefix, if present, is kept as-is.
func (s *VisionService) AnalyzeBase64(ctx context.Context, encoded string) (*VisionAnalysis, error) {
	if !strings.HasPrefix(encoded, "data:") {
		encoded = "data:image/jpeg;base64," + encoded
	}
	return s.analyze(ctx, encoded, VisionModel, openai.ImageURLDetailHigh, 4000, "")
}

// AnalyzeURL analyzes a publicly reachable image URL.
func (s *VisionService) AnalyzeURL(ctx context.Context, imageURL string) (*VisionAnalysis, error) {
	return s.analyze(ctx, imageURL, VisionModel, openai.ImageURLDetailHigh, 4000, "")
}

// AnalyzeFast trades thoroughness for latency: the mini model with low
// image detail answers in a few seconds.
func (s *VisionService) AnalyzeFast(ctx context.Context, imageData []byte) (*VisionAnalysis, error) {
	content, err := s.ai.AnalyzeImageJSON(ctx, ChatModel, toDataURL(imageData), "You are a food inventory assistant.", fastDetectionPrompt, openai.ImageURLDetailLow, 1000, 0.1)
	if err != nil {
		return nil, err
	}
	return parseVisionResult(content)
}

// AnalyzeDetailed runs an exhaustive scan, optionally concentrating on the
// given areas of the image.
func (s *VisionService) AnalyzeDetailed(ctx context.Context, imageData []byte, focusAreas []string) (*VisionAnalysis, error) {
	focus := ""
	if len(focusAreas) > 0 {
		focus = "\n\nPay extra attention to these areas: " + strings.Join(focusAreas, ", ")
	}
	return s.analyze(ctx, toDataURL(imageData), VisionModel, openai.ImageURLDetailHigh, 4000, focus)
}

func (s *VisionService) analyze(ctx context.Context, imageURL, model string, detail openai.ImageURLDetail, maxTokens int, extra string) (*VisionAnalysis, error) {
	prompt := "Analyze this image carefully and list every food item and ingredient you can see. Scan every shelf top to bottom, door compartments, drawers and corners. Include common staples and read labels when visible. Respond with the JSON structure described in the system message." + extra

	content, err := s.ai.AnalyzeImageJSON(ctx, model, imageURL, ingredientDetectionPrompt, prompt, detail, maxTokens, 0.2)
	if err != nil {
		return nil, err
	}
	return parseVisionResult(content)
}

func parseVisionResult(content string) (*VisionAnalysis, error) {
	var analysis VisionAnalysis
	if err := json.Unmarshal([]byte(StripJSONFence(content)), &analysis); err != nil {
		return nil, fmt.Errorf("failed to parse vision response: %w", err)
	}

	// Derive the flat name list the suggestion endpoints consume.
	analysis.IngredientNames = analysis.IngredientNames[:0]
	for _, ing := range analysis.Ingredients {
		if ing.Name != "" {
			analysis.IngredientNames = append(analysis.IngredientNames, ing.Name)
		}
	}
	if analysis.TotalCount == 0 {
		analysis.TotalCount = len(analysis.Ingredients)
	}
	if analysis.Summary == "" {
		analysis.Summary = fmt.Sprintf("Found %d items", len(analysis.Ingredients))
	}
	return &analysis, nil
}

func toDataURL(imageData []byte) string {
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(imageData)
}
