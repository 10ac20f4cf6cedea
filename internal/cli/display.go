package cli

import (
	"fmt"
	"strings"

	"github.com/brendaninnis/uncluttered-cli/internal/models"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	scoreHighStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("40"))
	scoreMidStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	scoreLowStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// renderScore colors a trust score green, yellow, or red by band.
func renderScore(recipe *models.Recipe) string {
	trust := recipe.Trust()
	if trust == nil {
		return dimStyle.Render("unscored")
	}
	text := fmt.Sprintf("%d", trust.Score)
	switch {
	case trust.Score >= 80:
		return scoreHighStyle.Render(text)
	case trust.Score >= 50:
		return scoreMidStyle.Render(text)
	default:
		return scoreLowStyle.Render(text)
	}
}

// renderRecipeTable lists recipes one per line with slug, score, and source.
func renderRecipeTable(recipes []models.Recipe) string {
	if len(recipes) == 0 {
		return dimStyle.Render("No recipes found.")
	}

	var b strings.Builder
	for i, r := range recipes {
		b.WriteString(fmt.Sprintf("%d. %s  %s\n", i+1, titleStyle.Render(r.Title), renderScore(&r)))
		b.WriteString(fmt.Sprintf("   %s\n", dimStyle.Render(r.Slug)))
		if r.SourceURL != "" {
			b.WriteString(fmt.Sprintf("   %s\n", dimStyle.Render(r.SourceURL)))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderRecipeDetail shows the full recipe: ingredients, steps, times, and
// the trust reasoning.
func renderRecipeDetail(r *models.Recipe) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(r.Title))
	b.WriteString("\n")
	if r.Description != "" {
		b.WriteString(r.Description)
		b.WriteString("\n")
	}

	var meta []string
	if r.PrepTime != "" {
		meta = append(meta, "Prep: "+r.PrepTime)
	}
	if r.CookTime != "" {
		meta = append(meta, "Cook: "+r.CookTime)
	}
	if r.ServingYield != "" {
		meta = append(meta, "Yield: "+r.ServingYield)
	}
	if len(meta) > 0 {
		b.WriteString(dimStyle.Render(strings.Join(meta, "  |  ")))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(headerStyle.Render("Ingredients"))
	b.WriteString("\n")
	for _, ing := range r.Ingredients {
		line := "  - "
		if ing.Quantity != "" {
			line += ing.Quantity + " "
		}
		if ing.Unit != "" {
			line += ing.Unit + " "
		}
		line += ing.Name
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(headerStyle.Render("Instructions"))
	b.WriteString("\n")
	for i, step := range r.Instructions {
		b.WriteString(fmt.Sprintf("  %d. %s\n", i+1, step))
	}

	if trust := r.Trust(); trust != nil {
		b.WriteString("\n")
		b.WriteString(headerStyle.Render("Trust Score"))
		b.WriteString(": ")
		b.WriteString(renderScore(r))
		b.WriteString("\n")
		if trust.Reasoning != "" {
			b.WriteString(dimStyle.Render(trust.Reasoning))
			b.WriteString("\n")
		}
	}

	if r.SourceURL != "" {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("Source: " + r.SourceURL))
	}

	return strings.TrimRight(b.String(), "\n")
}
