package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"
)

// SinglePrompt holds a single system prompt (no user template).
type SinglePrompt struct {
	System string `yaml:"system"`
}

// ExtractionPrompts holds extraction-related prompt templates.
type ExtractionPrompts struct {
	Recipe SinglePrompt `yaml:"recipe"`
}

// Prompts is the top-level prompt configuration.
type Prompts struct {
	Extraction ExtractionPrompts `yaml:"extraction"`
}

// LoadPrompts reads and parses a YAML prompt configuration file.
func LoadPrompts(path string) (*Prompts, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompts file: %w", err)
	}

	var prompts Prompts
	if err := yaml.Unmarshal(data, &prompts); err != nil {
		return nil, fmt.Errorf("failed to parse prompts YAML: %w", err)
	}

	return &prompts, nil
}

// DefaultPrompts returns the compiled-in prompt set, used when no prompts
// file is configured so the CLI works from any directory.
func DefaultPrompts() *Prompts {
	return &Prompts{
		Extraction: ExtractionPrompts{
			Recipe: SinglePrompt{System: defaultExtractionSystemPrompt},
		},
	}
}

// RenderPrompt executes Go template interpolation on a prompt string.
func RenderPrompt(tmpl string, data map[string]interface{}) (string, error) {
	t, err := template.New("prompt").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("failed to parse prompt template: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render prompt template: %w", err)
	}

	return strings.TrimSpace(buf.String()), nil
}

const defaultExtractionSystemPrompt = `You are a recipe extraction expert. Your job is to extract a complete,
well-structured recipe from the provided context.

Extract the following information:
- Title: The name of the dish
- Description: A brief 1-2 sentence description
- Ingredients: Each ingredient with quantity, unit, and name
- Instructions: Step-by-step cooking instructions
- Prep time and cook time (if mentioned)
- Yield/servings (use the field name "serving_yield")

## Trust Score Rubric

You must also assign a Trust Score (0-100) based on the quality of the recipe:

**Base Score: 50 points**

**Additions:**
- +20 points: Exact measurements are used (grams, ounces, cups with precise amounts)
- +10 points: Source is a known culinary authority (Serious Eats, NYT Cooking,
  Bon Appetit, America's Test Kitchen, Food Network, Epicurious, Allrecipes)
- +10 points: Clear, detailed instructions with timing cues
- +5 points: Includes both prep time and cook time
- +5 points: Specifies exact yield/servings

**Deductions:**
- -20 points: Vague ingredient amounts ("some", "a bit", "to taste" for main ingredients)
- -15 points: Missing critical steps or unclear instructions
- -10 points: No source attribution or unknown blog
- -5 points: Missing timing information

Provide clear reasoning for your Trust Score calculation.`
