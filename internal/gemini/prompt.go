package gemini

// SystemPrompt describes the assistant role for every generation call.
const SystemPrompt = `You are an LCSH Recommendation Agent for East Asian Studies Librarians.
Your task is to analyze bibliographic information and suggest appropriate Library of Congress Subject Headings (LCSH).
Provide a detailed subject analysis and recommend 3-5 LCSH terms with proper MARC coding.`

const promptRequirements = `Please provide:
1. A detailed subject analysis
2. 3-5 LCSH recommendations with proper formatting
3. MARC coding for each recommendation

DO NOT include any API validation information in your response as I will handle that separately.`

// buildPrompt constructs the user prompt. Text input is embedded directly;
// image-only requests get an image-analysis framing instead.
func buildPrompt(text string) string {
	if text != "" {
		return "Please analyze the following bibliographic information and suggest appropriate Library of Congress Subject Headings (LCSH):\n\n" +
			text + "\n\n" + promptRequirements
	}
	return "Please analyze this image and suggest appropriate Library of Congress Subject Headings (LCSH).\n\n" + promptRequirements
}
