// Package prompt builds the literal text sent to each provider. Builders are
// pure: identical inputs always produce identical prompts.
package prompt

import "strings"

// BuildPlanning produces the instruction for the high-reasoning planner.
func BuildPlanning(task string) string {
	var sb strings.Builder

	sb.WriteString("You are an expert full-stack developer using React, Tailwind, and modern web technologies.\n\n")
	sb.WriteString("Your task: ")
	sb.WriteString(task)
	sb.WriteString("\n\n")
	sb.WriteString("Analyze the requirements and create a detailed plan including:\n")
	sb.WriteString("1. Component architecture\n")
	sb.WriteString("2. Data flow and state management\n")
	sb.WriteString("3. Styling approach\n")
	sb.WriteString("4. Key features and interactions\n")
	sb.WriteString("5. Implementation steps\n\n")
	sb.WriteString("Be thorough and consider best practices, accessibility, and mobile responsiveness.")

	return sb.String()
}

// BuildCoding produces the instruction for the fast coder. Optional context
// and a caller-supplied system prompt are appended verbatim.
func BuildCoding(task, context, systemPrompt string) string {
	var sb strings.Builder

	sb.WriteString("You are an expert full-stack developer using React, Tailwind CSS, and modern web technologies. ")
	sb.WriteString("Prefer shadcn/ui components when appropriate. Always build mobile-responsive layouts. ")
	sb.WriteString("If requirements are ambiguous, make reasonable assumptions based on best practices.\n\n")
	sb.WriteString("Task: ")
	sb.WriteString(task)
	sb.WriteString("\n\n")
	sb.WriteString("Generate production-ready code following these guidelines:\n")
	sb.WriteString("- Use React best practices\n")
	sb.WriteString("- Use Tailwind CSS for styling\n")
	sb.WriteString("- Make it fully responsive\n")
	sb.WriteString("- Include proper error handling\n")
	sb.WriteString("- Add comments for complex logic\n")
	sb.WriteString("- Use semantic HTML\n")
	sb.WriteString("- Ensure accessibility\n")

	if context != "" {
		sb.WriteString("\nContext: ")
		sb.WriteString(context)
		sb.WriteString("\n")
	}
	if systemPrompt != "" {
		sb.WriteString("\n")
		sb.WriteString(systemPrompt)
	}

	return sb.String()
}

// BuildVision produces the instruction for multimodal screenshot analysis.
func BuildVision(task string) string {
	var sb strings.Builder

	sb.WriteString("You are an expert web developer. Analyze the provided image/screenshot and:\n\n")
	sb.WriteString("1. Identify the UI components and layout structure\n")
	sb.WriteString("2. Describe the design patterns and styling approach\n")
	sb.WriteString("3. Suggest the technology stack\n")
	sb.WriteString("4. Provide implementation guidance\n\n")
	sb.WriteString("Task: ")
	sb.WriteString(task)
	sb.WriteString("\n\n")
	sb.WriteString("Be specific about colors, spacing, typography, and interactive elements.")

	return sb.String()
}

// BuildAsset produces the instruction for image generation. assetType
// defaults to "image".
func BuildAsset(task, assetType string) string {
	if assetType == "" {
		assetType = "image"
	}

	var sb strings.Builder
	sb.WriteString("Create a high-quality, professional ")
	sb.WriteString(assetType)
	sb.WriteString(" for a web application.\n\n")
	sb.WriteString("Requirements: ")
	sb.WriteString(task)
	sb.WriteString("\n\n")
	sb.WriteString("Style: Modern, clean, web-appropriate. Avoid text in images. Use appropriate colors and composition.")

	return sb.String()
}
