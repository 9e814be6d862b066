// Package generator turns legal text into SHACL mappings by prompting an
// OpenAI-compatible assistant and post-processing its Turtle output.
package generator

import (
	"strings"

	"github.com/foerderfunke/shaclgen/internal/registry"
	"github.com/foerderfunke/shaclgen/internal/store"
	"github.com/foerderfunke/shaclgen/internal/vocab"
)

// generationSystemPrompt fixes the structural skeleton every generated
// profile must follow: a RequirementProfile linked to a MainPersonShape
// that targets ff:Citizen.
const generationSystemPrompt = `You are a SHACL shape generator that converts legal text requirements into SHACL shapes.
Follow these structural requirements for all shapes:

1. Create a RequirementProfile with a succinct name in the ff namespace that reflects the benefit type
   Example: ff:buergergeld a ff:RequirementProfile ;

2. Create a MainPersonShape with a name that combines the benefit name with 'MainPersonShape'
   Example: ff:buergergeldMainPersonShape a sh:NodeShape, ff:EligibilityConstraint ;

3. Link them using ff:hasMainPersonShape
   Example: ff:buergergeld ff:hasMainPersonShape ff:buergergeldMainPersonShape .

4. Set the MainPersonShape target class
   Example: ff:buergergeldMainPersonShape sh:targetClass ff:Citizen .

Complete example structure:
@prefix ff: <` + vocab.NamespaceFF + `> .
@prefix sh: <` + vocab.NamespaceSH + `> .

ff:buergergeld a ff:RequirementProfile ;
    ff:hasMainPersonShape ff:buergergeldMainPersonShape .

ff:buergergeldMainPersonShape a sh:NodeShape, ff:EligibilityConstraint ;
    sh:targetClass ff:Citizen .

Additional guidelines:
- Use meaningful IDs for shapes and properties
- Add rdfs:label and rdfs:comment where appropriate
- Use existing vocabulary terms when possible
- Follow SHACL best practices for constraint definitions

Analyze the legal text and create appropriate SHACL property shapes within the MainPersonShape.
Use a succinct, lowercase name for the benefit type in the ff namespace.`

const improvementSystemPrompt = "You are a specialized AI that improves SHACL shapes based on feedback. Output only valid Turtle syntax."

const repairSystemPrompt = "You are a Turtle/SHACL syntax expert. Fix the syntax issues in the provided Turtle content."

// buildGenerationPrompt assembles the user message for a generation run.
// Sections are appended in a fixed order so identical inputs hash to the
// same cache key.
func buildGenerationPrompt(
	legalText string,
	reg *registry.Registry,
	examples []store.Example,
	feedback []store.Feedback,
	guidelines []store.Guideline,
) string {
	lines := []string{
		"You are a specialized AI that converts legal texts about social benefits into SHACL shapes.",
		"SHACL shapes formally describe the requirements that must be met for a person to be eligible for the benefit.",
		"\nYour task is to create a SHACL shape that captures all requirements from the following legal text.",
		"\nLEGAL TEXT:",
		legalText,
		"\nGUIDELINES:",
		"1. Use sh:NodeShape to define the main shape for the person/applicant",
		"2. Use meaningful property paths that reflect the requirement's nature",
		"3. Include appropriate cardinality constraints (sh:minCount, sh:maxCount)",
		"4. Use sh:datatype for data type constraints",
		"5. Use sh:pattern for string patterns when applicable",
		"6. Add sh:description to explain each constraint in plain language",
		"\nIMPORTANT OUTPUT FORMAT RULES:",
		"1. Start with ALL necessary prefix declarations (@prefix)",
		"2. ALWAYS include these prefixes:",
		"   @prefix sh: <" + vocab.NamespaceSH + "> .",
		"   @prefix rdf: <" + vocab.NamespaceRDF + "> .",
		"   @prefix rdfs: <" + vocab.NamespaceRDFS + "> .",
		"   @prefix xsd: <" + vocab.NamespaceXSD + "> .",
		"   @prefix ff: <" + vocab.NamespaceFF + "> .",
		"3. Use proper Turtle syntax with dots (.) after each statement",
		"4. End each prefix declaration with a dot (.)",
		"5. Use semicolons (;) for multiple properties of the same subject",
		"6. Output ONLY the Turtle syntax, no explanations or markdown",
	}

	if reg != nil && reg.Len() > 0 {
		lines = append(lines,
			"\nEXISTING DATA FIELDS:",
			"When defining properties, first check if there's a matching field below.",
			"Only create new property paths if no existing field matches the requirement.",
			reg.PromptFormat(),
		)
	}

	lines = appendGuidelines(lines, guidelines)

	if len(examples) > 0 {
		lines = append(lines, "\nEXAMPLE MAPPINGS:")
		for _, ex := range examples {
			annotations := ex.Annotations
			if annotations == "" {
				annotations = "None provided"
			}
			lines = append(lines,
				"\nInput text:", ex.LegalText,
				"\nSHACL shape:", ex.Turtle,
				"\nAnnotations:", annotations,
			)
		}
	}

	lines = appendFeedbackHistory(lines, "\nRELEVANT FEEDBACK FROM PREVIOUS GENERATIONS:", feedback)
	return strings.Join(lines, "\n")
}

// buildImprovementPrompt assembles the user message for an improvement run
// on an existing shape.
func buildImprovementPrompt(
	currentTurtle string,
	feedbackText string,
	reg *registry.Registry,
	history []store.Feedback,
	guidelines []store.Guideline,
) string {
	lines := []string{
		"You are a specialized AI that improves SHACL shapes based on feedback.",
		"Your task is to modify the following SHACL shape according to the provided feedback.",
		"\nCURRENT SHAPE:",
		currentTurtle,
		"\nFEEDBACK TO ADDRESS:",
		feedbackText,
		"\nGUIDELINES:",
		"1. Preserve the existing structure where possible",
		"2. Only make changes that address the feedback",
		"3. Ensure the output remains valid Turtle syntax",
		"4. Add comments to explain significant changes",
	}

	if reg != nil && reg.Len() > 0 {
		lines = append(lines,
			"\nEXISTING DATA FIELDS:",
			"When modifying properties, first check if there's a matching field below.",
			"Only create new property paths if no existing field matches the requirement.",
			reg.PromptFormat(),
		)
	}

	lines = appendGuidelines(lines, guidelines)
	lines = appendFeedbackHistory(lines, "\nPREVIOUS FEEDBACK AND IMPROVEMENTS:", history)
	return strings.Join(lines, "\n")
}

// buildRepairPrompt asks the assistant to fix Turtle that failed the local
// sanity checks.
func buildRepairPrompt(turtle string) string {
	return "The following Turtle syntax is invalid. Please fix it to be valid Turtle/SHACL:\n\n" +
		turtle +
		"\n\nOutput only the fixed Turtle syntax, no explanations."
}

func appendGuidelines(lines []string, guidelines []store.Guideline) []string {
	if len(guidelines) == 0 {
		return lines
	}
	lines = append(lines, "\nADDITIONAL GUIDELINES:")
	for _, g := range guidelines {
		lines = append(lines, "- "+g.Text)
	}
	return lines
}

func appendFeedbackHistory(lines []string, header string, history []store.Feedback) []string {
	if len(history) == 0 {
		return lines
	}
	lines = append(lines, header)
	for _, fb := range history {
		lines = append(lines,
			"\nFeedback: "+fb.Feedback,
			"Improved shape: "+fb.ImprovedTurtle,
		)
	}
	return lines
}
